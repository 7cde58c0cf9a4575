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

package loaders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/greenmaskio/rowsync/internal/models"
)

var (
	errCatalogPathIsRequired = errors.New("catalog path is required")
	errDuplicatedTable       = errors.New("table is declared twice")
	errEmptyName             = errors.New("name is empty")
)

var _ Catalog = (*StaticCatalog)(nil)

type staticFile struct {
	Dialect Dialect       `yaml:"dialect"`
	Tables  []staticTable `yaml:"tables"`
}

type staticTable struct {
	Schema  string         `yaml:"schema"`
	Name    string         `yaml:"name"`
	Columns []staticColumn `yaml:"columns"`
}

type staticColumn struct {
	Name       string          `yaml:"name"`
	Type       models.TypeCode `yaml:"type"`
	PrimaryKey bool            `yaml:"primary_key"`
	Required   bool            `yaml:"required"`
	// Default - any yaml scalar, null means no default
	Default any `yaml:"default"`
}

// StaticCatalog - the table structures declared in a yaml file. It is used when the
// destination is not reachable from the transformation worker.
type StaticCatalog struct {
	dialect Dialect
	tables  map[string]*models.TableSchema
}

func NewStaticCatalogFromFile(path string) (*StaticCatalog, error) {
	if path == "" {
		return nil, errCatalogPathIsRequired
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return NewStaticCatalog(f)
}

func NewStaticCatalog(r io.Reader) (*StaticCatalog, error) {
	var sf staticFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if sf.Dialect == "" {
		sf.Dialect = DialectPostgres
	}
	if err := sf.Dialect.Validate(); err != nil {
		return nil, fmt.Errorf("dialect \"%s\": %w", sf.Dialect, err)
	}

	tables := make(map[string]*models.TableSchema, len(sf.Tables))
	for idx, st := range sf.Tables {
		t, err := st.toTableSchema()
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", idx, err)
		}
		key := staticKey(t.Schema, t.Name)
		if _, ok := tables[key]; ok {
			return nil, fmt.Errorf("%s: %w", t.FullName(), errDuplicatedTable)
		}
		tables[key] = t
	}
	return &StaticCatalog{
		dialect: sf.Dialect,
		tables:  tables,
	}, nil
}

func (sc *StaticCatalog) Dialect() Dialect {
	return sc.dialect
}

func (sc *StaticCatalog) FindTable(_ context.Context, schema, table string) (*models.TableSchema, error) {
	return sc.tables[staticKey(schema, table)], nil
}

func (sc *StaticCatalog) Close() error {
	return nil
}

func (st staticTable) toTableSchema() (*models.TableSchema, error) {
	if st.Name == "" {
		return nil, fmt.Errorf("table: %w", errEmptyName)
	}
	columns := make([]*models.TableColumn, 0, len(st.Columns))
	for idx, sc := range st.Columns {
		if sc.Name == "" {
			return nil, fmt.Errorf("column %d: %w", idx, errEmptyName)
		}
		var defaultValue *string
		if sc.Default != nil {
			v, err := cast.ToStringE(sc.Default)
			if err != nil {
				return nil, fmt.Errorf("column \"%s\" default: %w", sc.Name, err)
			}
			defaultValue = &v
		}
		columns = append(columns, models.NewTableColumn(sc.Name, sc.Type, sc.PrimaryKey, sc.Required, defaultValue))
	}
	return models.NewTableSchema(st.Schema, st.Name, columns), nil
}

func staticKey(schema, table string) string {
	return strings.ToLower(schema) + "." + strings.ToLower(table)
}
