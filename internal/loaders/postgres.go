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
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenmaskio/rowsync/internal/models"
	"github.com/greenmaskio/rowsync/internal/utils/pgerrors"
)

const pgColumnsQuery = `
	SELECT c.column_name,
	       c.data_type,
	       c.udt_name,
	       c.is_nullable = 'NO'        AS not_null,
	       c.column_default,
	       c.is_identity = 'YES'       AS is_identity,
	       c.is_generated <> 'NEVER'   AS is_generated,
	       pk.column_name IS NOT NULL  AS is_pk
	FROM information_schema.columns c
	         LEFT JOIN (SELECT kcu.column_name
	                    FROM information_schema.table_constraints tc
	                             JOIN information_schema.key_column_usage kcu
	                                  ON tc.constraint_schema = kcu.constraint_schema
	                                      AND tc.constraint_name = kcu.constraint_name
	                    WHERE tc.constraint_type = 'PRIMARY KEY'
	                      AND tc.table_schema = $1
	                      AND tc.table_name = $2) pk ON pk.column_name = c.column_name
	WHERE c.table_schema = $1
	  AND c.table_name = $2
	ORDER BY c.ordinal_position;
`

var (
	pgQuotedLiteral  = regexp.MustCompile(`^'((?:[^']|'')*)'(?:::[\w\s."\[\]]+)?$`)
	pgNumericLiteral = regexp.MustCompile(`^\(?(-?\d+(?:\.\d+)?)\)?(?:::[\w\s."]+)?$`)
	pgBoolLiteral    = regexp.MustCompile(`^(true|false)$`)
	pgNullLiteral    = regexp.MustCompile(`^NULL(?:::[\w\s."\[\]]+)?$`)
)

var _ Catalog = (*PostgresCatalog)(nil)

// PostgresCatalog - reads the table structures from information_schema of the destination.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalog(ctx context.Context, dsn string) (*PostgresCatalog, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PostgresCatalog{pool: pool}, nil
}

func (pc *PostgresCatalog) FindTable(ctx context.Context, schema, table string) (*models.TableSchema, error) {
	rows, err := pc.pool.Query(ctx, pgColumnsQuery, schema, table)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", pgerrors.Wrap(err))
	}
	defer rows.Close()

	var columns []*models.TableColumn
	for rows.Next() {
		var (
			name, dataType, udtName          string
			notNull, isIdentity, isGenerated bool
			isPk                             bool
			columnDefault                    *string
		)
		if err := rows.Scan(
			&name, &dataType, &udtName, &notNull, &columnDefault, &isIdentity, &isGenerated, &isPk,
		); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		tc := models.TypeCodeFromName(dataType)
		if tc == models.TypeUnknown {
			tc = models.TypeCodeFromName(udtName)
		}
		defaultValue, isLiteral := parsePgDefault(columnDefault)
		required := notNull && !isIdentity && !isGenerated && isLiteral
		columns = append(columns, models.NewTableColumn(name, tc, isPk, required, defaultValue))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read columns: %w", pgerrors.Wrap(err))
	}
	if len(columns) == 0 {
		return nil, nil
	}
	return models.NewTableSchema(schema, table, columns), nil
}

func (pc *PostgresCatalog) Close() error {
	pc.pool.Close()
	return nil
}

// parsePgDefault - extracts the literal from the column default expression. The second
// value is false when the default is computed by the database (nextval, now() and so on),
// such columns are filled by the destination itself.
func parsePgDefault(expr *string) (*string, bool) {
	if expr == nil {
		return nil, true
	}
	v := strings.TrimSpace(*expr)
	switch {
	case pgNullLiteral.MatchString(v):
		return nil, true
	case pgQuotedLiteral.MatchString(v):
		res := strings.ReplaceAll(pgQuotedLiteral.FindStringSubmatch(v)[1], "''", "'")
		return &res, true
	case pgNumericLiteral.MatchString(v):
		res := pgNumericLiteral.FindStringSubmatch(v)[1]
		return &res, true
	case pgBoolLiteral.MatchString(v):
		return &v, true
	default:
		return nil, false
	}
}
