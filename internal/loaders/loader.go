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

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

var (
	errUnknownDialect = errors.New("unknown dialect")
)

// Dialect - the destination DBMS flavour. It decides how the values are rendered.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

func (d Dialect) Validate() error {
	switch d {
	case DialectPostgres, DialectMySQL:
		return nil
	}
	return errUnknownDialect
}

// Catalog - the source of the destination table structures. A missing table is reported
// as a nil table without an error.
type Catalog interface {
	FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error)
	Close() error
}

var _ interfaces.DataLoader = (*Loader)(nil)

// Loader - DataLoader over a catalog.
type Loader struct {
	catalog Catalog
	dialect Dialect
}

func NewLoader(catalog Catalog, dialect Dialect) *Loader {
	return &Loader{
		catalog: catalog,
		dialect: dialect,
	}
}

func (l *Loader) FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error) {
	return l.catalog.FindTable(ctx, schema, table)
}

func (l *Loader) Dialect() Dialect {
	return l.dialect
}

func (l *Loader) Close() error {
	return l.catalog.Close()
}
