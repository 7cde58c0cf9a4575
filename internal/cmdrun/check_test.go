package cmdrun

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/rowsync/internal/mocks"
	"github.com/greenmaskio/rowsync/internal/models"
)

func TestCheckMappings(t *testing.T) {
	ctx := context.Background()

	t.Run("problems reported", func(t *testing.T) {
		work := newTestWork(t)
		mappers := []*models.TableMapper{
			models.NewTableMapper(
				models.NewNamePair("src", "shop"), models.NewNamePair("orders", "orders"),
				map[string]string{"amt": "amount", "legacy": "legacy_code"}, false, false,
			),
			models.NewTableMapper(
				models.NewNamePair("src", "shop"), models.NewNamePair("users", "users"), nil, false, false,
			),
			models.NewTableMapper(models.NewNamePair("audit", "audit"), nil, nil, false, false),
		}

		warns := CheckMappings(ctx, work.GetDataLoader(), mappers)

		require.Len(t, warns, 4)
		assert.True(t, warns.IsFatal())

		assert.Equal(t, models.ValidationSeverityError, warns[0].Severity)
		assert.Equal(t, "legacy_code", warns[0].Meta[models.MetaKeyColumnName])
		assert.Equal(t, "legacy", warns[0].Meta[models.MetaKeySourceColumn])

		assert.Equal(t, models.ValidationSeverityWarning, warns[1].Severity)
		assert.Equal(t, "id", warns[1].Meta[models.MetaKeyColumnName])

		assert.Equal(t, models.ValidationSeverityError, warns[2].Severity)
		assert.Equal(t, "users", warns[2].Meta[models.MetaKeyTableName])

		assert.Equal(t, models.ValidationSeverityWarning, warns[3].Severity)
	})

	t.Run("catalog failure", func(t *testing.T) {
		loader := mocks.NewDataLoaderMock()
		loader.On("FindTable", mock.Anything, "shop", "orders").Return(nil, errors.New("timeout"))
		mappers := []*models.TableMapper{
			models.NewTableMapper(models.NewNamePair("src", "shop"), models.NewNamePair("orders", "orders"), nil, false, false),
		}

		warns := CheckMappings(ctx, loader, mappers)

		require.Len(t, warns, 1)
		assert.True(t, warns[0].IsFatal())
		assert.Contains(t, warns[0].Msg, "timeout")
		loader.AssertExpectations(t)
	})
}

func TestPrintWarnings(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		buf := &bytes.Buffer{}
		printWarnings(buf, nil)
		assert.Equal(t, "no problems found\n", buf.String())
	})

	t.Run("errors first", func(t *testing.T) {
		buf := &bytes.Buffer{}
		printWarnings(buf, models.ValidationWarnings{
			models.NewValidationWarning().SetMsg("soft problem"),
			models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsg("hard problem").
				AddMeta(models.MetaKeyTableName, "orders"),
		})

		out := buf.String()
		assert.Contains(t, out, "SEVERITY")
		assert.Contains(t, out, "orders")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("hard problem")), bytes.Index(buf.Bytes(), []byte("soft problem")))
	})
}
