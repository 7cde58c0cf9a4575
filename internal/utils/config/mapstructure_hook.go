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

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/greenmaskio/rowsync/internal/models"
)

const namePairSeparator = ":"

var errInvalidNamePair = errors.New("name pair must be \"source:target\" or a list of two names")

// StringToNamePairHookFunc - decodes "source:target" strings and two element lists into
// models.NamePair.
func StringToNamePairHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != reflect.TypeOf(models.NamePair{}) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			source, target, ok := strings.Cut(v, namePairSeparator)
			if !ok || source == "" || target == "" {
				return nil, fmt.Errorf("parse \"%s\": %w", v, errInvalidNamePair)
			}
			return models.NamePair{Source: source, Target: target}, nil
		case []interface{}:
			if len(v) != 2 {
				return nil, fmt.Errorf("parse %v: %w", v, errInvalidNamePair)
			}
			return models.NamePair{Source: fmt.Sprint(v[0]), Target: fmt.Sprint(v[1])}, nil
		case []string:
			if len(v) != 2 {
				return nil, fmt.Errorf("parse %v: %w", v, errInvalidNamePair)
			}
			return models.NamePair{Source: v[0], Target: v[1]}, nil
		default:
			return data, nil
		}
	}
}

// DecoderConfig - the decoder options shared by every command.
func DecoderConfig(cfg *mapstructure.DecoderConfig) {
	cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		StringToNamePairHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	cfg.ErrorUnused = true
}
