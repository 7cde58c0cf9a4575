// Copyright 2023 Greenmask
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
)

type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

const (
	MetaKeyTask         = "Task"
	MetaKeyRunID        = "RunID"
	MetaKeyBucket       = "Bucket"
	MetaKeyBucketFile   = "BucketFile"
	MetaKeyPosition     = "Position"
	MetaKeyTableSchema  = "TableSchema"
	MetaKeyTableName    = "TableName"
	MetaKeyColumnName   = "ColumnName"
	MetaKeySourceColumn = "SourceColumn"
)

type ValidationWarnings []*ValidationWarning

func (re ValidationWarnings) IsFatal() bool {
	return slices.ContainsFunc(re, func(warning *ValidationWarning) bool {
		return warning.Severity == ValidationSeverityError
	})
}

// ValidationWarning - a problem found by the mapping check before the task starts.
type ValidationWarning struct {
	Msg      string             `json:"msg,omitempty"`
	Severity ValidationSeverity `json:"severity,omitempty"`
	Meta     map[string]any     `json:"meta,omitempty"`
}

func NewValidationWarning() *ValidationWarning {
	return &ValidationWarning{
		Severity: ValidationSeverityWarning,
		Meta:     make(map[string]any),
	}
}

func (re *ValidationWarning) IsFatal() bool {
	return re.Severity == ValidationSeverityError
}

func (re *ValidationWarning) SetMsg(msg string) *ValidationWarning {
	re.Msg = msg
	return re
}

func (re *ValidationWarning) SetSeverity(severity ValidationSeverity) *ValidationWarning {
	re.Severity = severity
	return re
}

func (re *ValidationWarning) AddMeta(key string, value any) *ValidationWarning {
	re.Meta[key] = value
	return re
}
