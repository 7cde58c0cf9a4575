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

package task

import (
	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

var _ interfaces.TaskContext = (*Work)(nil)

// Work - read only runtime of the task. It is shared between the buckets processed
// concurrently, so nothing here may be mutated after creation.
type Work struct {
	name    string
	mappers []*models.TableMapper
	loader  interfaces.DataLoader
}

func NewWork(name string, loader interfaces.DataLoader, mappers ...*models.TableMapper) *Work {
	return &Work{
		name:    name,
		mappers: mappers,
		loader:  loader,
	}
}

func (w *Work) Name() string {
	return w.name
}

func (w *Work) Mappers() []*models.TableMapper {
	return w.mappers
}

// GetTableMapper - finds the most specific mapper for the source table. The first declared
// mapper wins among the equally specific ones.
func (w *Work) GetTableMapper(schema, table string) *models.TableMapper {
	var (
		res  *models.TableMapper
		best = -1
	)
	for _, m := range w.mappers {
		specificity, ok := m.Match(schema, table)
		if !ok || specificity <= best {
			continue
		}
		res = m
		best = specificity
	}
	return res
}

func (w *Work) GetDataLoader() interfaces.DataLoader {
	return w.loader
}
