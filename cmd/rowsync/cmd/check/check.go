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

package check

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenmaskio/rowsync/internal/cmdrun"
	"github.com/greenmaskio/rowsync/internal/domains"
	"github.com/greenmaskio/rowsync/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "check",
		Short: "check the task mappings against the destination table structures",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("setup logger")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if err := cmdrun.RunCheck(ctx, Config, os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config = domains.NewConfig()
)
