package interfaces

import (
	"context"

	"github.com/greenmaskio/rowsync/internal/models"
)

// Transformer - a stage of the bucket transformation pipeline. Stages are executed in
// ascending Order. A stage mutates the rows in place and must not reorder them.
type Transformer interface {
	Order() int
	Transform(ctx context.Context, bucket *models.Bucket, task TaskContext) error
}
