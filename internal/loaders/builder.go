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

	"github.com/greenmaskio/rowsync/internal/domains"
)

const (
	CatalogTypePostgres = "postgres"
	CatalogTypeMySQL    = "mysql"
	CatalogTypeStatic   = "static"
)

var (
	errUnknownCatalogType = errors.New("unknown catalog type")
	errDsnIsRequired      = errors.New("dsn is required")
)

// New - builds the loader for the configured catalog. The caller closes the loader.
func New(ctx context.Context, cfg *domains.CatalogConfig) (*Loader, error) {
	var (
		catalog Catalog
		dialect Dialect
		err     error
	)
	switch cfg.Type {
	case CatalogTypePostgres:
		if cfg.DSN == "" {
			return nil, errDsnIsRequired
		}
		catalog, err = NewPostgresCatalog(ctx, cfg.DSN)
		dialect = DialectPostgres
	case CatalogTypeMySQL:
		if cfg.DSN == "" {
			return nil, errDsnIsRequired
		}
		catalog, err = NewMySQLCatalog(ctx, cfg.DSN)
		dialect = DialectMySQL
	case CatalogTypeStatic:
		var sc *StaticCatalog
		sc, err = NewStaticCatalogFromFile(cfg.Path)
		if err == nil {
			catalog, dialect = sc, sc.Dialect()
		}
	default:
		return nil, fmt.Errorf("catalog type \"%s\": %w", cfg.Type, errUnknownCatalogType)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s catalog: %w", cfg.Type, err)
	}

	if cfg.Cache {
		catalog = NewCached(catalog)
	}
	return NewLoader(catalog, dialect), nil
}
