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

package models

import (
	"fmt"
	"strings"
)

type TableColumn struct {
	Name         string   `json:"name" yaml:"name"`
	TypeCode     TypeCode `json:"type_code" yaml:"type_code"`
	PrimaryKey   bool     `json:"primary_key" yaml:"primary_key"`
	Required     bool     `json:"required" yaml:"required"`
	DefaultValue *string  `json:"default_value" yaml:"default_value"`
}

func NewTableColumn(name string, typeCode TypeCode, primaryKey, required bool, defaultValue *string) *TableColumn {
	return &TableColumn{
		Name:         name,
		TypeCode:     typeCode,
		PrimaryKey:   primaryKey,
		Required:     required,
		DefaultValue: defaultValue,
	}
}

// TableSchema - the destination table metadata resolved by the catalog.
type TableSchema struct {
	Schema  string         `json:"schema" yaml:"schema"`
	Name    string         `json:"name" yaml:"name"`
	Columns []*TableColumn `json:"columns" yaml:"columns"`
}

func NewTableSchema(schema, name string, columns []*TableColumn) *TableSchema {
	return &TableSchema{
		Schema:  schema,
		Name:    name,
		Columns: columns,
	}
}

func (t *TableSchema) FullName() string {
	return fmt.Sprintf("%s.%s", t.Schema, t.Name)
}

// FindColumn - case-insensitive lookup of the column by name.
func (t *TableSchema) FindColumn(name string) *TableColumn {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// ToUpperCase - returns a copy of the table with the column names forced to upper case.
// The receiver is left untouched since it may be shared through the catalog cache.
func (t *TableSchema) ToUpperCase() *TableSchema {
	columns := make([]*TableColumn, len(t.Columns))
	for idx, c := range t.Columns {
		cc := *c
		cc.Name = strings.ToUpper(c.Name)
		columns[idx] = &cc
	}
	return NewTableSchema(t.Schema, t.Name, columns)
}

func (t *TableSchema) RequiredColumns() []*TableColumn {
	var res []*TableColumn
	for _, c := range t.Columns {
		if c.Required {
			res = append(res, c)
		}
	}
	return res
}
