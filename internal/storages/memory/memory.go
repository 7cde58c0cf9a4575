package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/greenmaskio/rowsync/internal/interfaces"
)

var _ interfaces.Storager = (*Storage)(nil)

type memoryObject struct {
	data []byte
}

type objects struct {
	mu    sync.RWMutex
	files map[string]*memoryObject
}

// Storage - in-memory storage. The sub storages share the objects of the root storage.
// It serves ephemeral runs and tests.
type Storage struct {
	basePath string
	objs     *objects
}

func New(basePath string) *Storage {
	return &Storage{
		basePath: path.Clean("/" + basePath),
		objs: &objects{
			files: make(map[string]*memoryObject),
		},
	}
}

func (s *Storage) fullPath(filePath string) string {
	return path.Join(s.basePath, filePath)
}

func (s *Storage) GetCwd() string {
	return s.basePath
}

func (s *Storage) ListFiles(_ context.Context) ([]string, error) {
	s.objs.mu.RLock()
	defer s.objs.mu.RUnlock()

	prefix := strings.TrimSuffix(s.basePath, "/") + "/"
	var files []string
	for fp := range s.objs.files {
		rel, ok := strings.CutPrefix(fp, prefix)
		if !ok || strings.Contains(rel, "/") {
			continue
		}
		files = append(files, rel)
	}
	slices.Sort(files)
	return files, nil
}

func (s *Storage) GetObject(_ context.Context, filePath string) (io.ReadCloser, error) {
	s.objs.mu.RLock()
	defer s.objs.mu.RUnlock()

	obj, ok := s.objs.files[s.fullPath(filePath)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filePath, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *Storage) PutObject(ctx context.Context, filePath string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.objs.mu.Lock()
	defer s.objs.mu.Unlock()
	s.objs.files[s.fullPath(filePath)] = &memoryObject{data: data}
	return nil
}

func (s *Storage) Delete(_ context.Context, filePaths ...string) error {
	s.objs.mu.Lock()
	defer s.objs.mu.Unlock()

	for _, filePath := range filePaths {
		delete(s.objs.files, s.fullPath(filePath))
	}
	return nil
}

func (s *Storage) Exists(_ context.Context, fileName string) (bool, error) {
	s.objs.mu.RLock()
	defer s.objs.mu.RUnlock()

	_, ok := s.objs.files[s.fullPath(fileName)]
	return ok, nil
}

func (s *Storage) SubStorage(subPath string) interfaces.Storager {
	return &Storage{
		basePath: s.fullPath(subPath),
		objs:     s.objs,
	}
}
