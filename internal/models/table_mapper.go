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
	"slices"
	"strings"
)

// NamePair - source and target names of the schema or table.
type NamePair struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

func NewNamePair(source, target string) *NamePair {
	return &NamePair{
		Source: source,
		Target: target,
	}
}

func (p *NamePair) MatchSource(name string) bool {
	return strings.EqualFold(p.Source, name)
}

// TableMapper - per task rules for translating the source names into the destination names.
type TableMapper struct {
	Schema *NamePair `json:"schema,omitempty"`
	Table  *NamePair `json:"table,omitempty"`
	// Column - source column name to target column name.
	Column map[string]string `json:"column,omitempty"`
	// IgnoreTargetCase - force destination column names to upper case before matching.
	IgnoreTargetCase bool `json:"ignore_target_case"`
	// ForceMatched - require source and destination structures to match exactly.
	ForceMatched bool `json:"force_matched"`
}

func NewTableMapper(
	schema, table *NamePair, column map[string]string, ignoreTargetCase, forceMatched bool,
) *TableMapper {
	return &TableMapper{
		Schema:           schema,
		Table:            table,
		Column:           column,
		IgnoreTargetCase: ignoreTargetCase,
		ForceMatched:     forceMatched,
	}
}

// Match - reports whether the mapper applies to the source schema and table and how specific
// the match is. Absent pairs match any name.
func (m *TableMapper) Match(schema, table string) (specificity int, ok bool) {
	if m.Schema != nil {
		if !m.Schema.MatchSource(schema) {
			return 0, false
		}
		specificity++
	}
	if m.Table != nil {
		if !m.Table.MatchSource(table) {
			return 0, false
		}
		specificity += 2
	}
	return specificity, true
}

// TargetColumns - the configured destination column names in a stable order.
func (m *TableMapper) TargetColumns() []string {
	res := make([]string, 0, len(m.Column))
	for _, target := range m.Column {
		res = append(res, target)
	}
	slices.Sort(res)
	return res
}
