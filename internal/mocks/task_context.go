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
	"github.com/stretchr/testify/mock"

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

var (
	_ interfaces.TaskContext = (*TaskContextMock)(nil)
)

type TaskContextMock struct {
	mock.Mock
}

func NewTaskContextMock() *TaskContextMock {
	return &TaskContextMock{}
}

func (t *TaskContextMock) GetTableMapper(schema, table string) *models.TableMapper {
	args := t.Called(schema, table)
	res := args.Get(0)
	if res == nil {
		return nil
	}
	return res.(*models.TableMapper)
}

func (t *TaskContextMock) GetDataLoader() interfaces.DataLoader {
	args := t.Called()
	return args.Get(0).(interfaces.DataLoader)
}
