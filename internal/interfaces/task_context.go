package interfaces

import "github.com/greenmaskio/rowsync/internal/models"

type TaskContext interface {
	// GetTableMapper - returns the mapping rules for the source schema and table or nil
	// if nothing is configured.
	GetTableMapper(schema, table string) *models.TableMapper
	GetDataLoader() DataLoader
}
