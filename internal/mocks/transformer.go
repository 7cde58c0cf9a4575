// Copyright 2025 Greenmask
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

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

var (
	_ interfaces.Transformer = (*TransformerMock)(nil)
)

type TransformerMock struct {
	mock.Mock
}

func NewTransformerMock() *TransformerMock {
	return &TransformerMock{}
}

func (t *TransformerMock) Order() int {
	args := t.Called()
	return args.Int(0)
}

func (t *TransformerMock) Transform(ctx context.Context, bucket *models.Bucket, task interfaces.TaskContext) error {
	args := t.Called(ctx, bucket, task)
	return args.Error(0)
}
