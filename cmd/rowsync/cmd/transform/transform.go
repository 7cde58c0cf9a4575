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

package transform

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/rowsync/internal/cmdrun"
	"github.com/greenmaskio/rowsync/internal/domains"
	"github.com/greenmaskio/rowsync/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "transform",
		Short: "transform the buckets of the task input directory and store them in the output directory",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("setup logger")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := cmdrun.RunTransform(ctx, Config); err != nil {
				log.Fatal().Err(err).Msg("task run failed")
			}
		},
	}
	Config = domains.NewConfig()
)

func init() {
	taskFlagName := "task"
	Cmd.Flags().String(taskFlagName, "", "name of the task")
	flag := Cmd.Flags().Lookup(taskFlagName)
	if err := viper.BindPFlag("task.name", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	inputDirFlagName := "input-dir"
	Cmd.Flags().String(inputDirFlagName, "incoming", "directory with the captured buckets")
	flag = Cmd.Flags().Lookup(inputDirFlagName)
	if err := viper.BindPFlag("task.input_dir", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	outputDirFlagName := "output-dir"
	Cmd.Flags().String(outputDirFlagName, "transformed", "directory for the transformed buckets")
	flag = Cmd.Flags().Lookup(outputDirFlagName)
	if err := viper.BindPFlag("task.output_dir", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	jobsFlagName := "jobs"
	Cmd.Flags().IntP(jobsFlagName, "j", 1, "number of buckets transformed concurrently")
	flag = Cmd.Flags().Lookup(jobsFlagName)
	if err := viper.BindPFlag("task.jobs", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
