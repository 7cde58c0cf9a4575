package interfaces

import (
	"context"
	"io"
)

type Storager interface {
	// GetCwd - get current working directory (CWD) path
	GetCwd() string
	// ListFiles - returns the file names in the cwd
	ListFiles(ctx context.Context) ([]string, error)
	// GetObject - returns ReadCloser by the provided path
	GetObject(ctx context.Context, filePath string) (io.ReadCloser, error)
	// PutObject - puts data to the provided file path
	PutObject(ctx context.Context, filePath string, body io.Reader) error
	// Delete - delete list of objects by the provided paths
	Delete(ctx context.Context, filePaths ...string) error
	// Exists - check object existence
	Exists(ctx context.Context, fileName string) (bool, error)
	// SubStorage - get new Storage instance with the same config but with cwd changed to the sub path
	SubStorage(subPath string) Storager
}
