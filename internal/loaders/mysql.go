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
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/greenmaskio/rowsync/internal/models"
)

// In mysql the schema is the database.
const mysqlColumnsQuery = `
	SELECT c.COLUMN_NAME,
	       c.DATA_TYPE,
	       c.IS_NULLABLE = 'NO'  AS not_null,
	       c.COLUMN_DEFAULT,
	       c.COLUMN_KEY = 'PRI'  AS is_pk,
	       c.EXTRA
	FROM information_schema.COLUMNS c
	WHERE c.TABLE_SCHEMA = ?
	  AND c.TABLE_NAME = ?
	ORDER BY c.ORDINAL_POSITION;
`

const (
	mysqlExtraAutoIncrement = "auto_increment"
	// covers VIRTUAL GENERATED, STORED GENERATED and DEFAULT_GENERATED
	mysqlExtraGenerated = "generated"
)

const (
	mysqlMaxOpenConns = 4
	mysqlMaxIdleConns = 2
)

var _ Catalog = (*MySQLCatalog)(nil)

// MySQLCatalog - reads the table structures from information_schema of the destination.
type MySQLCatalog struct {
	db *sql.DB
}

func NewMySQLCatalog(ctx context.Context, dsn string) (*MySQLCatalog, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	db.SetMaxOpenConns(mysqlMaxOpenConns)
	db.SetMaxIdleConns(mysqlMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &MySQLCatalog{db: db}, nil
}

func (mc *MySQLCatalog) FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error) {
	rows, err := mc.db.QueryContext(ctx, mysqlColumnsQuery, schema, table)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var columns []*models.TableColumn
	for rows.Next() {
		var (
			name, dataType, extra string
			notNull, isPk         bool
			columnDefault         *string
		)
		if err := rows.Scan(&name, &dataType, &notNull, &columnDefault, &isPk, &extra); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		defaultValue, required := mysqlColumnDefault(notNull, columnDefault, extra)
		columns = append(columns, models.NewTableColumn(
			name, models.TypeCodeFromName(dataType), isPk, required, defaultValue,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, nil
	}
	return models.NewTableSchema(schema, table, columns), nil
}

func (mc *MySQLCatalog) Close() error {
	return mc.db.Close()
}

// mysqlColumnDefault - auto increment, generated columns and the columns with expression
// defaults are filled by the database and never required from the stream.
func mysqlColumnDefault(notNull bool, columnDefault *string, extra string) (*string, bool) {
	extra = strings.ToLower(extra)
	if strings.Contains(extra, mysqlExtraAutoIncrement) || strings.Contains(extra, mysqlExtraGenerated) {
		return nil, false
	}
	return columnDefault, notNull
}
