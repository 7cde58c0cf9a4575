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
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

const rowTransformerOrder = 0

var _ interfaces.Transformer = (*RowTransformer)(nil)

// RowTransformer - maps the row names, reconciles the row with the destination table and
// validates the result. Any failed check aborts the whole bucket with StopTriggerError.
type RowTransformer struct{}

func NewRowTransformer() *RowTransformer {
	return &RowTransformer{}
}

func (rt *RowTransformer) Order() int {
	return rowTransformerOrder
}

func (rt *RowTransformer) Transform(ctx context.Context, bucket *models.Bucket, task interfaces.TaskContext) error {
	log.Ctx(ctx).Debug().
		Int64(models.MetaKeyBucket, bucket.Sequence).
		Int("Size", len(bucket.Rows)).
		Msg("start transforming bucket")
	for _, row := range bucket.Rows {
		if err := rt.transformRow(ctx, row, task); err != nil {
			return err
		}
	}
	return nil
}

func (rt *RowTransformer) transformRow(ctx context.Context, row *models.Row, task interfaces.TaskContext) error {
	logger := log.Ctx(ctx).With().
		Str(models.MetaKeyPosition, row.Position.Render()).
		Logger()
	logger.Debug().Any("Row", row).Msg("transforming row")

	mapper := task.GetTableMapper(row.FinalSchema, row.FinalTable)
	MapRow(mapper, row)

	loader := task.GetDataLoader()
	table, err := findTable(ctx, loader, row.FinalSchema, row.FinalTable)
	if err != nil {
		logger.Error().Err(err).Msg("unable to resolve destination table")
		return err
	}
	if mapper != nil && mapper.IgnoreTargetCase {
		table = table.ToUpperCase()
	}

	removed := Reconcile(table, row)
	if err := checkStrictMatch(removed, mapper, table, row); err != nil {
		return err
	}
	if err := checkInsertCompleteness(mapper, table, row); err != nil {
		return err
	}
	detectKeyChange(row)

	if err := loader.MouldRow(ctx, row); err != nil {
		return models.NewStopTriggerError(
			models.ErrMouldRow, row.FinalSchema, row.FinalTable, fmt.Sprintf("error: %s", err.Error()),
		)
	}

	logger.Debug().Any("Row", row).Msg("row transformed")
	return nil
}

// findTable - resolves the destination table. Every loader failure is turned into a stop trigger
// with the original error text only.
func findTable(ctx context.Context, loader interfaces.DataLoader, schema, table string) (*models.TableSchema, error) {
	res, err := loader.FindTable(ctx, schema, table)
	if err != nil {
		return nil, models.NewStopTriggerError(
			models.ErrTableNotFound, schema, table, fmt.Sprintf("error: %s", err.Error()),
		)
	}
	if res == nil {
		return nil, models.NewStopTriggerError(
			models.ErrTableNotFound, schema, table, "error: loader returned empty table structure",
		)
	}
	return res, nil
}

// checkStrictMatch - missing mapper means the structures must be equal.
func checkStrictMatch(removed bool, mapper *models.TableMapper, table *models.TableSchema, row *models.Row) error {
	if !removed || (mapper != nil && !mapper.ForceMatched) {
		return nil
	}
	return models.NewStopTriggerError(
		models.ErrSchemaMismatch, row.FinalSchema, row.FinalTable,
		fmt.Sprintf("mapper: %s, destination table: %s", dump(mapper), dump(table)),
	)
}

// checkInsertCompleteness - every configured target column must be present in the inserted row.
func checkInsertCompleteness(mapper *models.TableMapper, table *models.TableSchema, row *models.Row) error {
	if row.FinalOpType != models.EventTypeInsert || mapper == nil || len(mapper.Column) == 0 {
		return nil
	}
	for _, target := range mapper.TargetColumns() {
		if row.FindColumn(target) != nil {
			continue
		}
		return models.NewStopTriggerError(
			models.ErrMappingMismatch, row.FinalSchema, row.FinalTable,
			fmt.Sprintf(
				"column \"%s\" is absent: mapper: %s, destination table: %s",
				target, dump(mapper), dump(table),
			),
		)
	}
	return nil
}

// detectKeyChange - an update that changes the key must be loaded as delete and insert.
func detectKeyChange(row *models.Row) {
	if row.FinalOpType != models.EventTypeUpdate {
		return
	}
	row.KeyChangedOnUpdate = false
	for _, c := range row.Columns {
		if c.Key && trimToEmpty(c.OldValue) != trimToEmpty(c.NewValue) {
			row.KeyChangedOnUpdate = true
			return
		}
	}
}

func trimToEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func dump(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
