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
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/rowsync/internal/domains"
	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/loaders"
	"github.com/greenmaskio/rowsync/internal/models"
)

var errFatalWarnings = errors.New("fatal validation warnings found")

// RunCheck - resolves the destination tables of the configured mappings and prints the problems
// found. It fails when any of the problems would stop the task.
func RunCheck(ctx context.Context, cfg *domains.Config, w io.Writer) error {
	if err := cfg.Task.Validate(); err != nil {
		return fmt.Errorf("validate task config: %w", err)
	}
	ctx = setupContext(ctx, cfg.Task.Name, uuid.NewString())

	loader, err := loaders.New(ctx, &cfg.Catalog)
	if err != nil {
		return fmt.Errorf("init data loader: %w", err)
	}
	defer func() {
		if err := loader.Close(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("error closing data loader")
		}
	}()

	warns := CheckMappings(ctx, loader, cfg.Task.TableMappers())
	printWarnings(w, warns)
	if warns.IsFatal() {
		return errFatalWarnings
	}
	return nil
}

// CheckMappings - validates every mapping bound to a concrete destination table against the
// table structure.
func CheckMappings(
	ctx context.Context, loader interfaces.DataLoader, mappers []*models.TableMapper,
) models.ValidationWarnings {
	var warns models.ValidationWarnings
	for _, m := range mappers {
		warns = append(warns, checkMapping(ctx, loader, m)...)
	}
	return warns
}

func checkMapping(ctx context.Context, loader interfaces.DataLoader, m *models.TableMapper) models.ValidationWarnings {
	if m.Schema == nil || m.Table == nil {
		return models.ValidationWarnings{
			models.NewValidationWarning().
				SetMsg("mapping is not bound to a single destination table and is checked at runtime only").
				AddMeta(models.MetaKeyTableSchema, pairTarget(m.Schema)).
				AddMeta(models.MetaKeyTableName, pairTarget(m.Table)),
		}
	}
	schema, table := m.Schema.Target, m.Table.Target

	t, err := loader.FindTable(ctx, schema, table)
	if err != nil || t == nil {
		msg := "destination table is not found"
		if err != nil {
			msg = fmt.Sprintf("cannot resolve destination table: %v", err)
		}
		return models.ValidationWarnings{
			models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsg(msg).
				AddMeta(models.MetaKeyTableSchema, schema).
				AddMeta(models.MetaKeyTableName, table),
		}
	}

	var warns models.ValidationWarnings
	sourceByTarget := make(map[string]string, len(m.Column))
	for src, dst := range m.Column {
		sourceByTarget[strings.ToLower(dst)] = src
	}
	for _, dst := range m.TargetColumns() {
		if t.FindColumn(dst) != nil {
			continue
		}
		warns = append(warns, models.NewValidationWarning().
			SetSeverity(models.ValidationSeverityError).
			SetMsg("mapped column is absent in the destination table").
			AddMeta(models.MetaKeyTableSchema, schema).
			AddMeta(models.MetaKeyTableName, table).
			AddMeta(models.MetaKeyColumnName, dst).
			AddMeta(models.MetaKeySourceColumn, sourceByTarget[strings.ToLower(dst)]),
		)
	}
	for _, c := range t.RequiredColumns() {
		if c.DefaultValue != nil {
			continue
		}
		if _, ok := sourceByTarget[strings.ToLower(c.Name)]; ok {
			continue
		}
		warns = append(warns, models.NewValidationWarning().
			SetMsg("required column without default is not produced by the mapping and must come from the stream").
			AddMeta(models.MetaKeyTableSchema, schema).
			AddMeta(models.MetaKeyTableName, table).
			AddMeta(models.MetaKeyColumnName, c.Name),
		)
	}
	return warns
}

func pairTarget(p *models.NamePair) string {
	if p == nil {
		return "*"
	}
	return p.Target
}

func printWarnings(w io.Writer, warns models.ValidationWarnings) {
	if len(warns) == 0 {
		_, _ = fmt.Fprintln(w, "no problems found")
		return
	}
	sorted := slices.Clone(warns)
	slices.SortStableFunc(sorted, func(a, b *models.ValidationWarning) int {
		if a.IsFatal() == b.IsFatal() {
			return 0
		}
		if a.IsFatal() {
			return -1
		}
		return 1
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"severity", "schema", "table", "column", "message"})
	for _, warn := range sorted {
		table.Append([]string{
			string(warn.Severity),
			metaString(warn, models.MetaKeyTableSchema),
			metaString(warn, models.MetaKeyTableName),
			metaString(warn, models.MetaKeyColumnName),
			warn.Msg,
		})
	}
	table.SetRowLine(true)
	table.Render()
}

func metaString(warn *models.ValidationWarning, key string) string {
	v, ok := warn.Meta[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}
