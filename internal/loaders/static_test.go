package loaders

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/rowsync/internal/domains"
	"github.com/greenmaskio/rowsync/internal/models"
)

const staticCatalogYaml = `
dialect: mysql
tables:
  - schema: shop
    name: orders
    columns:
      - name: id
        type: bigint
        primary_key: true
        required: true
      - name: amt
        type: decimal
        required: true
        default: 0
      - name: ratio
        type: float
        default: 0.5
      - name: title
        type: varchar
`

func TestStaticCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("find table", func(t *testing.T) {
		sc, err := NewStaticCatalog(strings.NewReader(staticCatalogYaml))
		require.NoError(t, err)
		assert.Equal(t, DialectMySQL, sc.Dialect())

		table, err := sc.FindTable(ctx, "SHOP", "Orders")
		require.NoError(t, err)
		require.NotNil(t, table)
		require.Len(t, table.Columns, 4)

		id := table.FindColumn("id")
		assert.Equal(t, models.TypeBigInt, id.TypeCode)
		assert.True(t, id.PrimaryKey)
		assert.True(t, id.Required)
		assert.Nil(t, id.DefaultValue)

		amt := table.FindColumn("amt")
		assert.Equal(t, models.TypeNumeric, amt.TypeCode)
		require.NotNil(t, amt.DefaultValue)
		assert.Equal(t, "0", *amt.DefaultValue)

		require.NotNil(t, table.FindColumn("ratio").DefaultValue)
		assert.Equal(t, "0.5", *table.FindColumn("ratio").DefaultValue)
	})

	t.Run("missing table", func(t *testing.T) {
		sc, err := NewStaticCatalog(strings.NewReader(staticCatalogYaml))
		require.NoError(t, err)

		table, err := sc.FindTable(ctx, "shop", "users")
		require.NoError(t, err)
		assert.Nil(t, table)
	})

	t.Run("default dialect", func(t *testing.T) {
		sc, err := NewStaticCatalog(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DialectPostgres, sc.Dialect())
	})

	t.Run("duplicated table", func(t *testing.T) {
		_, err := NewStaticCatalog(strings.NewReader(`
tables:
  - {schema: public, name: orders}
  - {schema: PUBLIC, name: ORDERS}
`))
		assert.ErrorIs(t, err, errDuplicatedTable)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewStaticCatalog(strings.NewReader(`
tables:
  - name: orders
    columns:
      - {name: id, type: hyperint}
`))
		assert.Error(t, err)
	})

	t.Run("built from config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yml")
		require.NoError(t, os.WriteFile(path, []byte(staticCatalogYaml), 0o600))

		l, err := New(ctx, &domains.CatalogConfig{Type: CatalogTypeStatic, Path: path, Cache: true})
		require.NoError(t, err)
		defer l.Close()

		assert.Equal(t, DialectMySQL, l.Dialect())
		table, err := l.FindTable(ctx, "shop", "orders")
		require.NoError(t, err)
		assert.Equal(t, "shop.orders", table.FullName())
	})

	t.Run("unknown catalog type", func(t *testing.T) {
		_, err := New(ctx, &domains.CatalogConfig{Type: "oracle"})
		assert.ErrorIs(t, err, errUnknownCatalogType)
	})

	t.Run("dsn is required", func(t *testing.T) {
		_, err := New(ctx, &domains.CatalogConfig{Type: CatalogTypePostgres})
		assert.ErrorIs(t, err, errDsnIsRequired)
	})
}
