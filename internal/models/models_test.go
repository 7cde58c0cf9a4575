package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSchema_ToUpperCase(t *testing.T) {
	table := NewTableSchema("public", "orders", []*TableColumn{
		NewTableColumn("id", TypeBigInt, true, true, nil),
		NewTableColumn("Title", TypeText, false, false, NewValue("none")),
	})

	upper := table.ToUpperCase()

	assert.Equal(t, "ID", upper.Columns[0].Name)
	assert.Equal(t, "TITLE", upper.Columns[1].Name)
	assert.Equal(t, "id", table.Columns[0].Name)
	assert.Equal(t, "Title", table.Columns[1].Name)
	assert.Same(t, upper.Columns[1], upper.FindColumn("title"))
	assert.Nil(t, upper.FindColumn("missing"))
}

func TestTableMapper_Match(t *testing.T) {
	type test struct {
		name        string
		mapper      *TableMapper
		schema      string
		table       string
		ok          bool
		specificity int
	}
	tests := []test{
		{
			name:   "catch all",
			mapper: NewTableMapper(nil, nil, nil, false, false),
			schema: "public", table: "orders",
			ok: true, specificity: 0,
		},
		{
			name:   "schema and table",
			mapper: NewTableMapper(NewNamePair("public", "dwh"), NewNamePair("ORDERS", "o"), nil, false, false),
			schema: "public", table: "orders",
			ok: true, specificity: 3,
		},
		{
			name:   "table only",
			mapper: NewTableMapper(nil, NewNamePair("orders", "o"), nil, false, false),
			schema: "sales", table: "orders",
			ok: true, specificity: 2,
		},
		{
			name:   "schema differs",
			mapper: NewTableMapper(NewNamePair("public", "dwh"), nil, nil, false, false),
			schema: "sales", table: "orders",
			ok: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specificity, ok := tt.mapper.Match(tt.schema, tt.table)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.specificity, specificity)
		})
	}
}

func TestStopTriggerError(t *testing.T) {
	err := fmt.Errorf("transform bucket 1: %w", NewStopTriggerError(ErrSchemaMismatch, "public", "orders", "dump"))

	assert.ErrorIs(t, err, ErrTaskStopTrigger)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.NotErrorIs(t, err, ErrMappingMismatch)
	assert.NotErrorIs(t, err, ErrTaskLock)
	assert.Contains(t, err.Error(), "public.orders")

	var lockErr *TaskLockError
	assert.False(t, errors.As(err, &lockErr))
	assert.ErrorIs(t, NewTaskLockError("orders-sync", "worker-1"), ErrTaskLock)
}

func TestTypeCode_JSON(t *testing.T) {
	col := NewTableColumn("amt", TypeNumeric, false, true, NewValue("0"))
	data, err := json.Marshal(col)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type_code":"numeric"`)

	var tc TypeCode
	require.NoError(t, tc.UnmarshalText([]byte("character varying")))
	assert.Equal(t, TypeVarchar, tc)
	assert.Error(t, tc.UnmarshalText([]byte("geometry")))
	assert.Equal(t, TypeUnknown, TypeCodeFromName("geometry"))
	assert.Equal(t, TypeTimestamp, TypeCodeFromName("Timestamp With Time Zone"))
}

func TestBucket_Validate(t *testing.T) {
	row := &Row{Schema: "public", Table: "orders", OpType: EventTypeUpdate, Columns: []*Column{{Name: "id"}}}
	b := NewBucket(1, []*Row{row})

	require.NoError(t, b.Validate())
	assert.Equal(t, "public", row.FinalSchema)
	assert.Equal(t, "orders", row.FinalTable)
	assert.Equal(t, EventTypeUpdate, row.FinalOpType)
	assert.Equal(t, "id", row.Columns[0].FinalName)

	b.Rows = append(b.Rows, &Row{OpType: "MERGE"})
	assert.Error(t, b.Validate())
}
