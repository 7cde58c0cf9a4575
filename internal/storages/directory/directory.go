// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/greenmaskio/rowsync/internal/interfaces"
)

var (
	errPathIsRequired = errors.New("path is required")
	errPathIsFile     = errors.New("received directory path is file")
)

const (
	dirMode  os.FileMode = 0750
	fileMode os.FileMode = 0640

	tmpSuffix = ".tmp"
)

var _ interfaces.Storager = (*Storage)(nil)

type Config struct {
	Path string `mapstructure:"path" yaml:"path" json:"path,omitempty"`
}

func NewConfig() *Config {
	return &Config{}
}

type Storage struct {
	dirMode  os.FileMode
	fileMode os.FileMode
	cwd      string
	mx       *sync.Mutex
}

func NewStorage(cfg *Config) (*Storage, error) {
	if cfg.Path == "" {
		return nil, errPathIsRequired
	}
	fileInfo, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		return nil, errPathIsFile
	}
	return &Storage{
		dirMode:  dirMode,
		fileMode: fileMode,
		cwd:      cfg.Path,
		mx:       &sync.Mutex{},
	}, nil
}

func (s *Storage) GetCwd() string {
	return s.cwd
}

// ListFiles - returns the sorted file names of the cwd without the files being written.
// Missing cwd is treated as empty.
func (s *Storage) ListFiles(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.cwd)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && !strings.HasSuffix(entry.Name(), tmpSuffix) {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

func (s *Storage) GetObject(_ context.Context, filePath string) (io.ReadCloser, error) {
	return os.Open(path.Join(s.cwd, filePath))
}

// PutObject - writes the object into a temporary file next to the target and renames it on
// success. A cancelled or failed write never leaves a partial file under the target name.
func (s *Storage) PutObject(ctx context.Context, filePath string, body io.Reader) (err error) {
	dir := path.Join(s.cwd, path.Dir(filePath))
	s.mx.Lock()
	err = os.MkdirAll(dir, s.dirMode)
	s.mx.Unlock()
	if err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	f, err := os.CreateTemp(dir, path.Base(filePath)+".*"+tmpSuffix)
	if err != nil {
		return fmt.Errorf("unable to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	done := make(chan error, 1)
	go func() {
		_, copyErr := io.Copy(f, body)
		done <- copyErr
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err = <-done:
	}
	if err != nil {
		return fmt.Errorf("error writing data: %w", err)
	}

	if err = f.Chmod(s.fileMode); err != nil {
		return fmt.Errorf("error setting file mode: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	if err = os.Rename(f.Name(), path.Join(s.cwd, filePath)); err != nil {
		return fmt.Errorf("error renaming file: %w", err)
	}
	return nil
}

func (s *Storage) Delete(_ context.Context, filePaths ...string) error {
	for _, fp := range filePaths {
		if err := os.RemoveAll(path.Join(s.cwd, fp)); err != nil {
			return fmt.Errorf(`error deleting %s: %w`, fp, err)
		}
	}
	return nil
}

func (s *Storage) Exists(_ context.Context, fileName string) (bool, error) {
	_, err := os.Stat(path.Join(s.cwd, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Storage) SubStorage(subPath string) interfaces.Storager {
	return &Storage{
		cwd:      path.Join(s.cwd, subPath),
		dirMode:  s.dirMode,
		fileMode: s.fileMode,
		mx:       s.mx,
	}
}
