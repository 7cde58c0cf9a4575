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

package domains

import (
	"errors"
	"fmt"
	"sync"

	"github.com/greenmaskio/rowsync/internal/models"
	"github.com/greenmaskio/rowsync/internal/storages/directory"
	"github.com/greenmaskio/rowsync/internal/storages/s3"
)

var (
	Cfg  *Config
	once sync.Once
)

const (
	defaultStorageType = "directory"
	defaultCatalogType = "static"
	defaultInputDir    = "incoming"
	defaultOutputDir   = "transformed"
	defaultJobs        = 1
)

var (
	errTaskNameIsRequired  = errors.New("task name is required")
	errSameInputAndOutput  = errors.New("input and output directories must differ")
	errJobsMustBePositive  = errors.New("jobs must be positive")
	errDuplicatedMapperKey = errors.New("mapper for the same source table is declared twice")
)

func NewConfig() *Config {
	once.Do(
		func() {
			Cfg = &Config{
				Storage: StorageConfig{
					Type:      defaultStorageType,
					S3:        s3.NewConfig(),
					Directory: directory.NewConfig(),
				},
				Catalog: CatalogConfig{
					Type:  defaultCatalogType,
					Cache: true,
				},
				Task: TaskConfig{
					InputDir:  defaultInputDir,
					OutputDir: defaultOutputDir,
					Jobs:      defaultJobs,
				},
			}
		},
	)
	return Cfg
}

type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage" json:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog" json:"catalog"`
	Task    TaskConfig    `mapstructure:"task" yaml:"task" json:"task"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
}

type StorageConfig struct {
	Type      string            `mapstructure:"type" yaml:"type" json:"type,omitempty"`
	S3        *s3.Config        `mapstructure:"s3" json:"s3,omitempty" yaml:"s3"`
	Directory *directory.Config `mapstructure:"directory" json:"directory,omitempty" yaml:"directory"`
}

// CatalogConfig - where the destination table structures are resolved from.
type CatalogConfig struct {
	// Type - postgres, mysql or static
	Type string `mapstructure:"type" yaml:"type" json:"type,omitempty"`
	// DSN - connection string of the destination database
	DSN string `mapstructure:"dsn" yaml:"dsn" json:"-"`
	// Path - path to the yaml file with the table structures for the static catalog
	Path string `mapstructure:"path" yaml:"path" json:"path,omitempty"`
	// Cache - keep the resolved table structures for the whole run
	Cache bool `mapstructure:"cache" yaml:"cache" json:"cache"`
}

type TaskConfig struct {
	Name      string               `mapstructure:"name" yaml:"name" json:"name,omitempty"`
	InputDir  string               `mapstructure:"input_dir" yaml:"input_dir" json:"input_dir,omitempty"`
	OutputDir string               `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir,omitempty"`
	Jobs      int                  `mapstructure:"jobs" yaml:"jobs" json:"jobs,omitempty"`
	Mappings  []*TableMapperConfig `mapstructure:"mappings" yaml:"mappings" json:"mappings,omitempty"`
}

func (tc *TaskConfig) Validate() error {
	if tc.Name == "" {
		return errTaskNameIsRequired
	}
	if tc.InputDir == tc.OutputDir {
		return errSameInputAndOutput
	}
	if tc.Jobs <= 0 {
		return errJobsMustBePositive
	}
	seen := make(map[string]int, len(tc.Mappings))
	for idx, m := range tc.Mappings {
		key := m.sourceKey()
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("mappings %d and %d: %w", prev, idx, errDuplicatedMapperKey)
		}
		seen[key] = idx
	}
	return nil
}

func (tc *TaskConfig) TableMappers() []*models.TableMapper {
	res := make([]*models.TableMapper, len(tc.Mappings))
	for idx, m := range tc.Mappings {
		res[idx] = m.ToTableMapper()
	}
	return res
}

// TableMapperConfig - the schema and table are declared as "source:target" pairs.
type TableMapperConfig struct {
	Schema           *models.NamePair  `mapstructure:"schema" yaml:"schema" json:"schema,omitempty"`
	Table            *models.NamePair  `mapstructure:"table" yaml:"table" json:"table,omitempty"`
	Column           map[string]string `mapstructure:"column" yaml:"column" json:"column,omitempty"`
	IgnoreTargetCase bool              `mapstructure:"ignore_target_case" yaml:"ignore_target_case" json:"ignore_target_case,omitempty"`
	ForceMatched     bool              `mapstructure:"force_matched" yaml:"force_matched" json:"force_matched,omitempty"`
}

func (tmc *TableMapperConfig) ToTableMapper() *models.TableMapper {
	return models.NewTableMapper(
		tmc.Schema,
		tmc.Table,
		tmc.Column,
		tmc.IgnoreTargetCase,
		tmc.ForceMatched,
	)
}

func (tmc *TableMapperConfig) sourceKey() string {
	var schema, table string
	if tmc.Schema != nil {
		schema = tmc.Schema.Source
	}
	if tmc.Table != nil {
		table = tmc.Table.Source
	}
	return fmt.Sprintf("%s.%s", schema, table)
}
