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

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfigState(t *testing.T) {
	t.Helper()
	origCfgFile := cfgFile
	t.Cleanup(func() {
		cfgFile = origCfgFile
		viper.Reset()
	})
	viper.Reset()
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestExplicitConfigFile - the --config file takes precedence over the default one.
func TestExplicitConfigFile(t *testing.T) {
	resetConfigState(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	explicitConfigPath := filepath.Join(tempDir, "config.yml")
	writeConfig(t, explicitConfigPath, `
log:
  level: info
task:
  name: orders-sync
  jobs: 4
  mappings:
    - schema: "src:shop"
      table: "t1:orders"
      column:
        amt: amount
`)
	writeConfig(t, filepath.Join(tempDir, defaultConfigDirName, defaultConfigFileName), `
log:
  level: debug
`)

	cfgFile = explicitConfigPath
	initConfig()

	assert.Equal(t, "info", viper.GetString("log.level"))
	assert.Equal(t, explicitConfigPath, cfgFile)
	assert.Equal(t, "orders-sync", Config.Task.Name)
	assert.Equal(t, 4, Config.Task.Jobs)
	require.Len(t, Config.Task.Mappings, 1)
	mapper := Config.Task.Mappings[0].ToTableMapper()
	assert.Equal(t, "shop", mapper.Schema.Target)
	assert.Equal(t, "orders", mapper.Table.Target)
	assert.Equal(t, map[string]string{"amt": "amount"}, mapper.Column)
}

// TestDefaultConfigFile - the config from the user config directory is used without --config.
func TestDefaultConfigFile(t *testing.T) {
	resetConfigState(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	defaultPath := filepath.Join(tempDir, defaultConfigDirName, defaultConfigFileName)
	writeConfig(t, defaultPath, `
log:
  level: debug
`)

	cfgFile = ""
	initConfig()

	assert.Equal(t, "debug", viper.GetString("log.level"))
	assert.Equal(t, defaultPath, cfgFile)
}

func TestNoConfigFile(t *testing.T) {
	resetConfigState(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfgFile = ""
	initConfig()

	assert.Equal(t, "", cfgFile)
}
