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

package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogFormatJsonValue = "json"
	LogFormatTextValue = "text"
)

func parseLevel(logLevelStr string) (zerolog.Level, error) {
	switch logLevelStr {
	case zerolog.LevelDebugValue:
		return zerolog.DebugLevel, nil
	case zerolog.LevelInfoValue, "":
		return zerolog.InfoLevel, nil
	case zerolog.LevelWarnValue:
		return zerolog.WarnLevel, nil
	case zerolog.LevelErrorValue:
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %s", logLevelStr)
	}
}

func formatWriter(out io.Writer, logFormat string) (io.Writer, error) {
	switch logFormat {
	case LogFormatJsonValue:
		return out, nil
	case LogFormatTextValue, "":
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}, nil
	default:
		return nil, fmt.Errorf("unknown log format %s", logFormat)
	}
}

// NewLogger - builds the process logger. Debug level adds the caller and pid.
func NewLogger(out io.Writer, logLevelStr string, logFormat string) (zerolog.Logger, error) {
	logLevel, err := parseLevel(logLevelStr)
	if err != nil {
		return zerolog.Nop(), err
	}
	w, err := formatWriter(out, logFormat)
	if err != nil {
		return zerolog.Nop(), err
	}

	lc := zerolog.New(w).
		Level(logLevel).
		With().
		Timestamp()
	if logLevel == zerolog.DebugLevel {
		lc = lc.Caller().Int("pid", os.Getpid())
	}
	return lc.Logger(), nil
}

func SetLogLevel(logLevelStr string, logFormat string) error {
	l, err := NewLogger(os.Stderr, logLevelStr, logFormat)
	if err != nil {
		return err
	}
	log.Logger = l
	return nil
}
