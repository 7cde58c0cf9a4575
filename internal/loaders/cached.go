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
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/greenmaskio/rowsync/internal/models"
)

var _ Catalog = (*Cached)(nil)

type tableKey struct {
	schema string
	table  string
}

// String - the singleflight key. Names are quoted so dots inside them stay unambiguous.
func (k tableKey) String() string {
	return strconv.Quote(k.schema) + "." + strconv.Quote(k.table)
}

// Cached - keeps the resolved tables for the catalog lifetime. Concurrent lookups of the
// same table hit the underlying catalog once. Failed and missing lookups are not cached.
//
// The cached tables are shared between the buckets and must not be mutated.
type Cached struct {
	catalog Catalog
	mx      sync.RWMutex
	tables  map[tableKey]*models.TableSchema
	group   singleflight.Group
}

func NewCached(catalog Catalog) *Cached {
	return &Cached{
		catalog: catalog,
		tables:  make(map[tableKey]*models.TableSchema),
	}
}

func (c *Cached) FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error) {
	key := tableKey{schema: schema, table: table}
	c.mx.RLock()
	t, ok := c.tables[key]
	c.mx.RUnlock()
	if ok {
		return t, nil
	}

	res, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		t, err := c.catalog.FindTable(ctx, schema, table)
		if err != nil || t == nil {
			return t, err
		}
		c.mx.Lock()
		c.tables[key] = t
		c.mx.Unlock()
		log.Ctx(ctx).Debug().
			Str(models.MetaKeyTableSchema, schema).
			Str(models.MetaKeyTableName, table).
			Msg("table structure cached")
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.TableSchema), nil
}

// Invalidate - drops the table from the cache. Empty schema and table drop everything.
func (c *Cached) Invalidate(schema, table string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if schema == "" && table == "" {
		c.tables = make(map[tableKey]*models.TableSchema)
		return
	}
	delete(c.tables, tableKey{schema: schema, table: table})
}

func (c *Cached) Close() error {
	return c.catalog.Close()
}
