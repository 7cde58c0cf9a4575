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

package transform

import "github.com/greenmaskio/rowsync/internal/models"

// MapRow - rewrites the final schema, table and column names of the row using the mapper.
// A column without a mapping keeps its current final name. Nil mapper is a no-op.
func MapRow(mapper *models.TableMapper, row *models.Row) {
	if mapper == nil {
		return
	}
	if mapper.Schema != nil {
		row.FinalSchema = mapper.Schema.Target
	}
	if mapper.Table != nil {
		row.FinalTable = mapper.Table.Target
	}
	if mapper.Column == nil {
		return
	}
	for _, c := range row.Columns {
		if target, ok := mapper.Column[c.FinalName]; ok {
			c.FinalName = target
		}
	}
}
