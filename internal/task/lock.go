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

package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

const lockFileSuffix = ".lock"

type lockInfo struct {
	Task     string    `json:"task"`
	Owner    string    `json:"owner"`
	LockedAt time.Time `json:"locked_at"`
}

// Lock - marks the task as running by the owner. The lock is stored as an object in the storage
// so the workers sharing the storage see each other. It returns TaskLockError if the task
// is already locked.
//
// The check and the write are not atomic, two workers started at the same moment may both
// acquire the lock.
func Lock(ctx context.Context, st interfaces.Storager, taskName, owner string) error {
	fileName := lockFileName(taskName)
	exists, err := st.Exists(ctx, fileName)
	if err != nil {
		return fmt.Errorf("check lock existence: %w", err)
	}
	if exists {
		holder, err := readLockOwner(ctx, st, fileName)
		if err != nil {
			return fmt.Errorf("read lock: %w", err)
		}
		return models.NewTaskLockError(taskName, holder)
	}

	data, err := json.Marshal(lockInfo{Task: taskName, Owner: owner, LockedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("encode lock: %w", err)
	}
	if err := st.PutObject(ctx, fileName, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("put lock: %w", err)
	}
	log.Ctx(ctx).Debug().
		Str(models.MetaKeyTask, taskName).
		Str("Owner", owner).
		Msg("task locked")
	return nil
}

func Unlock(ctx context.Context, st interfaces.Storager, taskName string) error {
	if err := st.Delete(ctx, lockFileName(taskName)); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	return nil
}

func readLockOwner(ctx context.Context, st interfaces.Storager, fileName string) (string, error) {
	r, err := st.GetObject(ctx, fileName)
	if err != nil {
		return "", err
	}
	defer r.Close()
	var info lockInfo
	if err := json.NewDecoder(r).Decode(&info); err != nil {
		return "", fmt.Errorf("decode %s: %w", fileName, err)
	}
	return info.Owner, nil
}

func lockFileName(taskName string) string {
	return taskName + lockFileSuffix
}
