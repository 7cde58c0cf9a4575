// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmdrun

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/greenmaskio/rowsync/internal/bucketio"
	"github.com/greenmaskio/rowsync/internal/domains"
	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/loaders"
	"github.com/greenmaskio/rowsync/internal/models"
	"github.com/greenmaskio/rowsync/internal/storages/builder"
	"github.com/greenmaskio/rowsync/internal/task"
	"github.com/greenmaskio/rowsync/internal/transform"
	"github.com/greenmaskio/rowsync/internal/utils"
)

// setupContext - attaches the run logger to the context.
func setupContext(ctx context.Context, taskName, runID string) context.Context {
	ctx = utils.WithRunID(ctx, runID)
	return log.Logger.With().
		Str(models.MetaKeyTask, taskName).
		Str(models.MetaKeyRunID, runID).
		Logger().
		WithContext(ctx)
}

// RunTransform - transforms every bucket file found in the task input directory.
func RunTransform(ctx context.Context, cfg *domains.Config) error {
	if err := cfg.Task.Validate(); err != nil {
		return fmt.Errorf("validate task config: %w", err)
	}
	runID := uuid.NewString()
	ctx = setupContext(ctx, cfg.Task.Name, runID)

	st, err := builder.GetStorage(ctx, &cfg.Storage, &cfg.Log)
	if err != nil {
		return fmt.Errorf("get storage: %w", err)
	}
	loader, err := loaders.New(ctx, &cfg.Catalog)
	if err != nil {
		return fmt.Errorf("init data loader: %w", err)
	}
	defer func() {
		if err := loader.Close(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("error closing data loader")
		}
	}()

	work := task.NewWork(cfg.Task.Name, loader, cfg.Task.TableMappers()...)
	stats, err := NewTransformRunner(st, work, transform.NewDefaultPipeline(), &cfg.Task).Run(ctx)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Int64("Buckets", stats.Buckets).
		Int64("Rows", stats.Rows).
		Msg("task run completed")
	return nil
}

type TransformStats struct {
	Buckets int64
	Rows    int64
}

// TransformRunner - processes the bucket files of the task. The buckets are independent,
// so they are transformed concurrently. The first failed bucket cancels the run, the
// buckets written before the failure stay in the output directory.
type TransformRunner struct {
	st        interfaces.Storager
	work      *task.Work
	pipeline  *transform.Pipeline
	inputDir  string
	outputDir string
	jobs      int
	buckets   atomic.Int64
	rows      atomic.Int64
}

func NewTransformRunner(
	st interfaces.Storager, work *task.Work, pipeline *transform.Pipeline, cfg *domains.TaskConfig,
) *TransformRunner {
	return &TransformRunner{
		st:        st,
		work:      work,
		pipeline:  pipeline,
		inputDir:  cfg.InputDir,
		outputDir: cfg.OutputDir,
		jobs:      cfg.Jobs,
	}
}

func (tr *TransformRunner) Run(ctx context.Context) (stats TransformStats, err error) {
	owner := utils.RunIDFromCtx(ctx)
	if err := task.Lock(ctx, tr.st, tr.work.Name(), owner); err != nil {
		return stats, fmt.Errorf("lock task: %w", err)
	}
	defer func() {
		// The run context is already done after a signal or a failed bucket.
		if unlockErr := task.Unlock(context.WithoutCancel(ctx), tr.st, tr.work.Name()); unlockErr != nil {
			err = errors.Join(err, fmt.Errorf("unlock task: %w", unlockErr))
		}
	}()

	in := tr.st.SubStorage(tr.inputDir)
	out := tr.st.SubStorage(tr.outputDir)
	files, err := in.ListFiles(ctx)
	if err != nil {
		return stats, fmt.Errorf("list input files: %w", err)
	}
	files = slices.DeleteFunc(files, func(name string) bool {
		return !bucketio.IsBucketFile(name)
	})
	log.Ctx(ctx).Info().
		Int("Files", len(files)).
		Str("InputDir", tr.inputDir).
		Msg("transforming buckets")

	eg, gtx := errgroup.WithContext(ctx)
	eg.SetLimit(tr.jobs)
	for _, name := range files {
		name := name
		eg.Go(func() error {
			return tr.processFile(gtx, in, out, name)
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}
	return TransformStats{Buckets: tr.buckets.Load(), Rows: tr.rows.Load()}, nil
}

func (tr *TransformRunner) processFile(ctx context.Context, in, out interfaces.Storager, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = log.Ctx(ctx).With().
		Str(models.MetaKeyBucketFile, name).
		Logger().
		WithContext(ctx)

	bucket, err := bucketio.Read(ctx, in, name)
	if err != nil {
		return fmt.Errorf("read bucket file %s: %w", name, err)
	}
	ctx = log.Ctx(ctx).With().
		Int64(models.MetaKeyBucket, bucket.Sequence).
		Logger().
		WithContext(ctx)

	if err := tr.pipeline.Transform(ctx, bucket, tr.work); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("bucket transformation failed")
		return fmt.Errorf("bucket file %s: %w", name, err)
	}
	// Cancellation is checked between buckets only. A transformed bucket is written whole.
	if err := bucketio.Write(context.WithoutCancel(ctx), out, name, bucket); err != nil {
		return fmt.Errorf("write bucket file %s: %w", name, err)
	}
	tr.buckets.Add(1)
	tr.rows.Add(int64(len(bucket.Rows)))
	log.Ctx(ctx).Debug().
		Int("Rows", len(bucket.Rows)).
		Msg("bucket transformed")
	return nil
}
