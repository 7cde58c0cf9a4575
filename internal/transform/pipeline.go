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

package transform

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

// Pipeline - ordered set of transformation stages applied to a bucket one by one.
type Pipeline struct {
	transformers []interfaces.Transformer
}

// NewPipeline - sorts the transformers by Order. Transformers with the same order keep the
// registration order.
func NewPipeline(transformers ...interfaces.Transformer) *Pipeline {
	sorted := slices.Clone(transformers)
	slices.SortStableFunc(sorted, func(a, b interfaces.Transformer) int {
		return cmp.Compare(a.Order(), b.Order())
	})
	return &Pipeline{
		transformers: sorted,
	}
}

// NewDefaultPipeline - the pipeline with the row transformer only.
func NewDefaultPipeline() *Pipeline {
	return NewPipeline(NewRowTransformer())
}

func (p *Pipeline) Transformers() []interfaces.Transformer {
	return p.transformers
}

func (p *Pipeline) Transform(ctx context.Context, bucket *models.Bucket, task interfaces.TaskContext) error {
	if err := bucket.Validate(); err != nil {
		return fmt.Errorf("validate bucket %d: %w", bucket.Sequence, err)
	}
	for _, t := range p.transformers {
		if err := t.Transform(ctx, bucket, task); err != nil {
			log.Ctx(ctx).Warn().
				Err(err).
				Int64(models.MetaKeyBucket, bucket.Sequence).
				Str("Transformer", fmt.Sprintf("%T", t)).
				Msg("transformation failed")
			return fmt.Errorf("transform bucket %d: %w", bucket.Sequence, err)
		}
	}
	return nil
}
