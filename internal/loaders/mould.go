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
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/greenmaskio/rowsync/internal/models"
)

var (
	errNotInteger = errors.New("value is not an integer")
)

// MouldRow - resolves the final value of every column and renders it for the destination.
// Deleted rows are identified by the old values, the rest by the new ones.
func (l *Loader) MouldRow(_ context.Context, row *models.Row) error {
	op := row.FinalOpType
	if op == "" {
		op = row.OpType
	}
	for _, c := range row.Columns {
		if err := l.mouldColumn(op, c); err != nil {
			return fmt.Errorf("column \"%s\": %w", c.FinalName, err)
		}
	}
	for _, c := range row.AdditionalRequired {
		if err := l.mouldColumn(op, c); err != nil {
			return fmt.Errorf("additional column \"%s\": %w", c.FinalName, err)
		}
	}
	return nil
}

func (l *Loader) mouldColumn(op models.EventType, c *models.Column) error {
	value := c.NewValue
	if op == models.EventTypeDelete {
		value = c.OldValue
	}
	if value == nil {
		c.FinalValue = nil
		return nil
	}
	res, err := l.renderValue(c.FinalType, *value)
	if err != nil {
		return err
	}
	c.FinalValue = &res
	return nil
}

func (l *Loader) renderValue(tc models.TypeCode, value string) (string, error) {
	switch tc {
	case models.TypeInteger, models.TypeBigInt:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return "", fmt.Errorf("parse %s \"%s\": %w", tc, value, err)
		}
		if !d.IsInteger() {
			return "", fmt.Errorf("parse %s \"%s\": %w", tc, value, errNotInteger)
		}
		return d.String(), nil
	case models.TypeNumeric:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return "", fmt.Errorf("parse %s \"%s\": %w", tc, value, err)
		}
		return d.String(), nil
	case models.TypeFloat:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return "", fmt.Errorf("parse %s \"%s\": %w", tc, value, err)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case models.TypeBoolean:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return "", fmt.Errorf("parse %s \"%s\": %w", tc, value, err)
		}
		return l.renderBool(b), nil
	default:
		return value, nil
	}
}

func (l *Loader) renderBool(b bool) string {
	if l.dialect == DialectMySQL {
		if b {
			return "1"
		}
		return "0"
	}
	return strconv.FormatBool(b)
}
