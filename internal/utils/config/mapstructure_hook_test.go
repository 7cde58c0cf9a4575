package config

import (
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/rowsync/internal/domains"
)

func decode(t *testing.T, input map[string]any, output any) error {
	t.Helper()
	dc := &mapstructure.DecoderConfig{Result: output}
	DecoderConfig(dc)
	decoder, err := mapstructure.NewDecoder(dc)
	require.NoError(t, err)
	return decoder.Decode(input)
}

func TestStringToNamePairHookFunc(t *testing.T) {
	t.Run("string and list pairs", func(t *testing.T) {
		var tc domains.TaskConfig
		err := decode(t, map[string]any{
			"name": "orders-sync",
			"mappings": []any{
				map[string]any{
					"schema":        "src:dst",
					"table":         []any{"t1", "t2"},
					"column":        map[string]any{"c1": "c2"},
					"force_matched": true,
				},
			},
		}, &tc)

		require.NoError(t, err)
		require.Len(t, tc.Mappings, 1)
		m := tc.Mappings[0].ToTableMapper()
		assert.Equal(t, "src", m.Schema.Source)
		assert.Equal(t, "dst", m.Schema.Target)
		assert.Equal(t, "t1", m.Table.Source)
		assert.Equal(t, "t2", m.Table.Target)
		assert.Equal(t, map[string]string{"c1": "c2"}, m.Column)
		assert.True(t, m.ForceMatched)
		assert.False(t, m.IgnoreTargetCase)
	})

	t.Run("invalid pair", func(t *testing.T) {
		var tc domains.TaskConfig
		err := decode(t, map[string]any{
			"mappings": []any{map[string]any{"schema": "src"}},
		}, &tc)

		assert.ErrorContains(t, err, errInvalidNamePair.Error())
	})

	t.Run("unknown key", func(t *testing.T) {
		var tc domains.TaskConfig
		err := decode(t, map[string]any{
			"mappings": []any{map[string]any{"tables": "t1:t2"}},
		}, &tc)

		assert.Error(t, err)
	})
}
