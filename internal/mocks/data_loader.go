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
	_ interfaces.DataLoader = (*DataLoaderMock)(nil)
)

type DataLoaderMock struct {
	mock.Mock
}

func NewDataLoaderMock() *DataLoaderMock {
	return &DataLoaderMock{}
}

func (d *DataLoaderMock) FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error) {
	args := d.Called(ctx, schema, table)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*models.TableSchema), args.Error(1)
}

func (d *DataLoaderMock) MouldRow(ctx context.Context, row *models.Row) error {
	args := d.Called(ctx, row)
	return args.Error(0)
}
