package bucketio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/rowsync/internal/mocks"
	"github.com/greenmaskio/rowsync/internal/models"
	"github.com/greenmaskio/rowsync/internal/storages/directory"
)

func getBucket() *models.Bucket {
	insert := models.NewRow(
		models.Position{Source: "binlog.000001", Offset: 120}, "shop", "orders", models.EventTypeInsert,
		[]*models.Column{
			models.NewColumn("id", nil, models.NewValue("1")),
			models.NewColumn("note", nil, nil),
		},
	)
	return models.NewBucket(42, []*models.Row{insert})
}

func TestReadWrite(t *testing.T) {
	ctx := context.Background()
	st, err := directory.NewStorage(&directory.Config{Path: t.TempDir()})
	require.NoError(t, err)

	for _, name := range []string{"0001.json", "0002.json.gz"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Write(ctx, st, name, getBucket()))

			b, err := Read(ctx, st, name)
			require.NoError(t, err)
			assert.Equal(t, getBucket(), b)
		})
	}
}

func TestRead_NotBucketFile(t *testing.T) {
	st := mocks.NewStoragerMock()
	_, err := Read(context.Background(), st, "task.lock")
	assert.ErrorIs(t, err, errNotBucketFile)
	st.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
}

func TestWrite_StorageFailure(t *testing.T) {
	st := mocks.NewStoragerMock()
	st.On("PutObject", mock.Anything, "0001.json", mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.ReadAll(io.LimitReader(args.Get(2).(io.Reader), 1))
		}).
		Return(errors.New("access denied"))

	err := Write(context.Background(), st, "0001.json", getBucket())

	require.ErrorContains(t, err, "access denied")
	st.AssertExpectations(t)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Read(context.Background(), newObjectStorage(t, "0001.json", "{"), "0001.json")
	assert.Error(t, err)
}

func newObjectStorage(t *testing.T, name, content string) *mocks.StoragerMock {
	t.Helper()
	st := mocks.NewStoragerMock()
	st.On("GetObject", mock.Anything, name).Return(io.NopCloser(strings.NewReader(content)), nil)
	return st
}
