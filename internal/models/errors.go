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
)

var (
	ErrTaskStopTrigger = errors.New("task stop trigger")
	ErrTaskLock        = errors.New("task lock")

	ErrSchemaMismatch  = errors.New("destination and source table structures do not match")
	ErrMappingMismatch = errors.New("table mapper and destination table structure do not match")
	ErrTableNotFound   = errors.New("destination table structure cannot be resolved")
	ErrMouldRow        = errors.New("data loader cannot mould row")
)

// StopTriggerError - fatal error that halts the task until an operator fixes the mapping
// or the destination schema. The message is meant for the logs, not for matching. Use
// errors.Is with ErrTaskStopTrigger or with the Reason sentinel instead.
type StopTriggerError struct {
	Reason error
	Schema string
	Table  string
	Msg    string
}

func NewStopTriggerError(reason error, schema, table, msg string) *StopTriggerError {
	return &StopTriggerError{
		Reason: reason,
		Schema: schema,
		Table:  table,
		Msg:    msg,
	}
}

func (e *StopTriggerError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s: %s", ErrTaskStopTrigger, e.Schema, e.Table, e.Reason, e.Msg)
}

func (e *StopTriggerError) Is(target error) bool {
	return target == ErrTaskStopTrigger
}

func (e *StopTriggerError) Unwrap() error {
	return e.Reason
}

// TaskLockError - the task is locked by another worker.
type TaskLockError struct {
	Task  string
	Owner string
}

func NewTaskLockError(task, owner string) *TaskLockError {
	return &TaskLockError{
		Task:  task,
		Owner: owner,
	}
}

func (e *TaskLockError) Error() string {
	return fmt.Sprintf("%s: task \"%s\" is held by \"%s\"", ErrTaskLock, e.Task, e.Owner)
}

func (e *TaskLockError) Is(target error) bool {
	return target == ErrTaskLock
}
