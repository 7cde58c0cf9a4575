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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/rowsync/internal/models"
)

func getOrdersTable() *models.TableSchema {
	return models.NewTableSchema("public", "orders", []*models.TableColumn{
		models.NewTableColumn("id", models.TypeBigInt, true, true, nil),
		models.NewTableColumn("title", models.TypeVarchar, false, false, nil),
		models.NewTableColumn("amt", models.TypeNumeric, false, true, models.NewValue("0")),
	})
}

func TestReconcile(t *testing.T) {
	t.Run("destination metadata wins", func(t *testing.T) {
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			models.NewColumn("ID", nil, models.NewValue("1")),
			models.NewColumn("title", nil, models.NewValue("book")),
			models.NewColumn("amt", nil, models.NewValue("10")),
		})
		row.Columns[1].Key = true
		row.Columns[1].Required = true

		removed := Reconcile(getOrdersTable(), row)

		assert.False(t, removed)
		require.Len(t, row.Columns, 3)
		assert.Equal(t, models.TypeBigInt, row.Columns[0].FinalType)
		assert.True(t, row.Columns[0].Key)
		assert.True(t, row.Columns[0].Required)
		assert.False(t, row.Columns[1].Key)
		assert.False(t, row.Columns[1].Required)
		assert.Equal(t, models.TypeVarchar, row.Columns[1].FinalType)
		assert.Empty(t, row.AdditionalRequired)
	})

	t.Run("unknown columns removed", func(t *testing.T) {
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			models.NewColumn("id", nil, models.NewValue("1")),
			models.NewColumn("legacy", nil, models.NewValue("x")),
			models.NewColumn("title", nil, models.NewValue("book")),
			models.NewColumn("amt", nil, models.NewValue("10")),
		})

		removed := Reconcile(getOrdersTable(), row)

		assert.True(t, removed)
		names := make([]string, 0, len(row.Columns))
		for _, c := range row.Columns {
			names = append(names, c.FinalName)
		}
		assert.Equal(t, []string{"id", "title", "amt"}, names)
	})

	t.Run("backfill required column", func(t *testing.T) {
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			models.NewColumn("id", nil, models.NewValue("1")),
		})

		removed := Reconcile(getOrdersTable(), row)

		assert.False(t, removed)
		require.Len(t, row.Columns, 1)
		require.Len(t, row.AdditionalRequired, 1)
		amt := row.AdditionalRequired[0]
		assert.Equal(t, "amt", amt.FinalName)
		assert.True(t, amt.Required)
		assert.False(t, amt.Key)
		assert.Equal(t, models.TypeNumeric, amt.FinalType)
		require.NotNil(t, amt.OldValue)
		require.NotNil(t, amt.NewValue)
		require.NotNil(t, amt.FinalValue)
		assert.Equal(t, "0", *amt.OldValue)
		assert.Equal(t, "0", *amt.NewValue)
		assert.Equal(t, "0", *amt.FinalValue)
		assert.Nil(t, row.FindColumn("amt"))
	})

	t.Run("backfill with null default", func(t *testing.T) {
		table := models.NewTableSchema("public", "orders", []*models.TableColumn{
			models.NewTableColumn("id", models.TypeBigInt, true, true, nil),
		})
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			models.NewColumn("title", nil, models.NewValue("book")),
		})

		removed := Reconcile(table, row)

		assert.True(t, removed)
		assert.Empty(t, row.Columns)
		require.Len(t, row.AdditionalRequired, 1)
		assert.True(t, row.AdditionalRequired[0].Key)
		assert.Nil(t, row.AdditionalRequired[0].OldValue)
		assert.Nil(t, row.AdditionalRequired[0].NewValue)
		assert.Nil(t, row.AdditionalRequired[0].FinalValue)
	})

	t.Run("required column matched case insensitive", func(t *testing.T) {
		table := getOrdersTable().ToUpperCase()
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			models.NewColumn("id", nil, models.NewValue("1")),
			models.NewColumn("Amt", nil, models.NewValue("3")),
		})

		removed := Reconcile(table, row)

		assert.False(t, removed)
		assert.Empty(t, row.AdditionalRequired)
		for _, c := range row.Columns {
			assert.NotNil(t, table.FindColumn(c.FinalName))
		}
	})

	t.Run("default value is not shared", func(t *testing.T) {
		table := getOrdersTable()
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			models.NewColumn("id", nil, models.NewValue("1")),
		})

		Reconcile(table, row)
		require.Len(t, row.AdditionalRequired, 1)
		*row.AdditionalRequired[0].FinalValue = "100"

		assert.Equal(t, "0", *table.FindColumn("amt").DefaultValue)
		assert.Equal(t, "0", *row.AdditionalRequired[0].NewValue)
	})

	t.Run("primary and additional sequences do not share columns", func(t *testing.T) {
		table := getOrdersTable()
		legacy := models.NewColumn("legacy", nil, models.NewValue("x"))
		id := models.NewColumn("id", nil, models.NewValue("1"))
		row := models.NewRow(models.Position{}, "public", "orders", models.EventTypeInsert, []*models.Column{
			id, legacy,
		})

		Reconcile(table, row)

		assert.Equal(t, []*models.Column{id}, row.Columns)
		for _, ar := range row.AdditionalRequired {
			assert.NotSame(t, id, ar)
			assert.NotSame(t, legacy, ar)
			for _, c := range row.Columns {
				assert.NotSame(t, c, ar)
				assert.NotEqual(t, c.FinalName, ar.FinalName)
			}
		}
		for _, c := range row.Columns {
			assert.NotSame(t, legacy, c)
		}
	})
}
