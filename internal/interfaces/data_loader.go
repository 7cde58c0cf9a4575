package interfaces

import (
	"context"

	"github.com/greenmaskio/rowsync/internal/models"
)

// DataLoader - destination side collaborator. It resolves the destination table structure
// and shapes the row right before loading.
type DataLoader interface {
	FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error)
	MouldRow(ctx context.Context, row *models.Row) error
}
