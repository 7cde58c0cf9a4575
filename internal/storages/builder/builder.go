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

package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenmaskio/rowsync/internal/domains"
	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/storages/directory"
	"github.com/greenmaskio/rowsync/internal/storages/memory"
	"github.com/greenmaskio/rowsync/internal/storages/s3"
)

const (
	DirectoryStorageType = "directory"
	S3StorageType        = "s3"
	MemoryStorageType    = "memory"
)

var errUnknownStorageType = errors.New("unknown storage type")

// GetStorage returns a storage based on the configuration.
func GetStorage(ctx context.Context, stCfg *domains.StorageConfig, logCfg *domains.LogConfig) (
	interfaces.Storager, error,
) {
	switch stCfg.Type {
	case DirectoryStorageType:
		return directory.NewStorage(stCfg.Directory)
	case S3StorageType:
		return s3.NewStorage(ctx, stCfg.S3, logCfg.Level)
	case MemoryStorageType:
		return memory.New("/"), nil
	}
	return nil, fmt.Errorf("storage type \"%s\": %w", stCfg.Type, errUnknownStorageType)
}
