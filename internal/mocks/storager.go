package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/greenmaskio/rowsync/internal/interfaces"
)

var (
	_ interfaces.Storager = (*StoragerMock)(nil)
)

type StoragerMock struct {
	mock.Mock
}

func NewStoragerMock() *StoragerMock {
	return &StoragerMock{}
}

func (s *StoragerMock) GetCwd() string {
	args := s.Called()
	return args.String(0)
}

func (s *StoragerMock) ListFiles(ctx context.Context) ([]string, error) {
	args := s.Called(ctx)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.([]string), args.Error(1)
}

func (s *StoragerMock) GetObject(ctx context.Context, filePath string) (io.ReadCloser, error) {
	args := s.Called(ctx, filePath)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(io.ReadCloser), args.Error(1)
}

func (s *StoragerMock) PutObject(ctx context.Context, filePath string, body io.Reader) error {
	args := s.Called(ctx, filePath, body)
	return args.Error(0)
}

func (s *StoragerMock) Delete(ctx context.Context, filePaths ...string) error {
	args := s.Called(ctx, filePaths)
	return args.Error(0)
}

func (s *StoragerMock) Exists(ctx context.Context, fileName string) (bool, error) {
	args := s.Called(ctx, fileName)
	return args.Bool(0), args.Error(1)
}

func (s *StoragerMock) SubStorage(subPath string) interfaces.Storager {
	args := s.Called(subPath)
	return args.Get(0).(interfaces.Storager)
}
