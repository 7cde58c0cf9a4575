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

import (
	"strings"

	"github.com/greenmaskio/rowsync/internal/models"
)

// Reconcile - matches the row columns against the destination table.
//
// Forward pass: every column found in the table takes the destination type, key and required
// flags; columns unknown to the destination are removed from the row.
// Reverse pass: required destination columns absent in the row are synthesized from the
// destination default value and appended to Row.AdditionalRequired.
//
// It returns true if at least one column was removed.
func Reconcile(table *models.TableSchema, row *models.Row) bool {
	kept := make([]*models.Column, 0, len(row.Columns))
	for _, c := range row.Columns {
		tc := table.FindColumn(c.FinalName)
		if tc == nil {
			continue
		}
		c.FinalType = tc.TypeCode
		c.Key = tc.PrimaryKey
		c.Required = tc.Required
		kept = append(kept, c)
	}
	removed := len(kept) != len(row.Columns)
	row.Columns = kept

	present := make(map[string]struct{}, len(kept))
	for _, c := range kept {
		present[strings.ToLower(c.FinalName)] = struct{}{}
	}
	for _, tc := range table.RequiredColumns() {
		if _, ok := present[strings.ToLower(tc.Name)]; ok {
			continue
		}
		row.AdditionalRequired = append(row.AdditionalRequired, newDefaultColumn(tc))
	}

	return removed
}

func newDefaultColumn(tc *models.TableColumn) *models.Column {
	return &models.Column{
		Name:       tc.Name,
		FinalName:  tc.Name,
		OldValue:   copyValue(tc.DefaultValue),
		NewValue:   copyValue(tc.DefaultValue),
		FinalValue: copyValue(tc.DefaultValue),
		Key:        tc.PrimaryKey,
		Required:   tc.Required,
		FinalType:  tc.TypeCode,
	}
}

// copyValue - the value slots never share a pointer with each other or with the table.
func copyValue(v *string) *string {
	if v == nil {
		return nil
	}
	res := *v
	return &res
}
