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
	"errors"
	"fmt"
	"strings"
)

var errUnknownEventType = errors.New("unknown event type")

type EventType string

const (
	EventTypeInsert EventType = "INSERT"
	EventTypeUpdate EventType = "UPDATE"
	EventTypeDelete EventType = "DELETE"
)

func (e EventType) Validate() error {
	switch e {
	case EventTypeInsert, EventTypeUpdate, EventTypeDelete:
		return nil
	}
	return fmt.Errorf("event type \"%s\": %w", e, errUnknownEventType)
}

// Position - the offset of the captured change in the source stream. It is used for
// replaying and resuming the task from the last durable position.
type Position struct {
	Source string `json:"source"`
	Offset int64  `json:"offset"`
}

func (p Position) Render() string {
	return fmt.Sprintf("%s:%d", p.Source, p.Offset)
}

// Column - the value triple of a captured field.
type Column struct {
	Name       string   `json:"name"`
	FinalName  string   `json:"final_name"`
	OldValue   *string  `json:"old_value"`
	NewValue   *string  `json:"new_value"`
	FinalValue *string  `json:"final_value"`
	Key        bool     `json:"key"`
	Required   bool     `json:"required"`
	FinalType  TypeCode `json:"final_type"`
}

func NewColumn(name string, oldValue, newValue *string) *Column {
	return &Column{
		Name:      name,
		FinalName: name,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
}

// Row - a single captured change event.
type Row struct {
	Position    Position  `json:"position"`
	Schema      string    `json:"schema"`
	Table       string    `json:"table"`
	FinalSchema string    `json:"final_schema"`
	FinalTable  string    `json:"final_table"`
	OpType      EventType `json:"op_type"`
	FinalOpType EventType `json:"final_op_type"`
	Columns     []*Column `json:"columns"`
	// AdditionalRequired - columns required by the destination table but absent in the captured row.
	// They are synthesized from the destination defaults and never merged into Columns.
	AdditionalRequired []*Column `json:"additional_required"`
	KeyChangedOnUpdate bool      `json:"key_changed_on_update"`
}

func NewRow(position Position, schema, table string, opType EventType, columns []*Column) *Row {
	return &Row{
		Position:    position,
		Schema:      schema,
		Table:       table,
		FinalSchema: schema,
		FinalTable:  table,
		OpType:      opType,
		FinalOpType: opType,
		Columns:     columns,
	}
}

// Normalize - fills the final attributes that were not provided by the capture side.
func (r *Row) Normalize() {
	if r.FinalSchema == "" {
		r.FinalSchema = r.Schema
	}
	if r.FinalTable == "" {
		r.FinalTable = r.Table
	}
	if r.FinalOpType == "" {
		r.FinalOpType = r.OpType
	}
	for _, c := range r.Columns {
		if c.FinalName == "" {
			c.FinalName = c.Name
		}
	}
}

func (r *Row) FindColumn(name string) *Column {
	for _, c := range r.Columns {
		if strings.EqualFold(c.FinalName, name) {
			return c
		}
	}
	return nil
}

// Bucket - ordered batch of captured changes. The order of rows is significant.
type Bucket struct {
	Sequence int64  `json:"sequence"`
	Rows     []*Row `json:"rows"`
}

func NewBucket(sequence int64, rows []*Row) *Bucket {
	return &Bucket{
		Sequence: sequence,
		Rows:     rows,
	}
}

// Validate - checks the operation kinds of the rows and normalizes their final attributes.
func (b *Bucket) Validate() error {
	for idx, r := range b.Rows {
		r.Normalize()
		if err := r.FinalOpType.Validate(); err != nil {
			return fmt.Errorf("validate row %d at %s: %w", idx, r.Position.Render(), err)
		}
	}
	return nil
}

// NewValue - helper for building non-null column values.
func NewValue(v string) *string {
	return &v
}
