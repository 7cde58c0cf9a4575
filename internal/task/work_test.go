package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenmaskio/rowsync/internal/mocks"
	"github.com/greenmaskio/rowsync/internal/models"
)

func TestWork_GetTableMapper(t *testing.T) {
	schemaOnly := models.NewTableMapper(models.NewNamePair("src", "dst"), nil, nil, false, false)
	tableOnly := models.NewTableMapper(nil, models.NewNamePair("orders", "orders_v2"), nil, false, false)
	both := models.NewTableMapper(
		models.NewNamePair("src", "dst"), models.NewNamePair("orders", "orders_v3"), nil, false, false,
	)
	duplicate := models.NewTableMapper(
		models.NewNamePair("SRC", "other"), models.NewNamePair("ORDERS", "other"), nil, false, false,
	)
	loader := mocks.NewDataLoaderMock()
	w := NewWork("orders-sync", loader, schemaOnly, tableOnly, both, duplicate)

	tests := []struct {
		name   string
		schema string
		table  string
		want   *models.TableMapper
	}{
		{name: "schema and table wins", schema: "src", table: "orders", want: both},
		{name: "table only", schema: "public", table: "orders", want: tableOnly},
		{name: "schema only", schema: "src", table: "users", want: schemaOnly},
		{name: "no mapper", schema: "public", table: "users", want: nil},
		{name: "case insensitive source", schema: "Src", table: "Orders", want: both},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, w.GetTableMapper(tt.schema, tt.table))
		})
	}

	assert.Equal(t, "orders-sync", w.Name())
	assert.Len(t, w.Mappers(), 4)
	assert.Same(t, loader, w.GetDataLoader())
}
