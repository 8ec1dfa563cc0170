package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/RoyceAzure/lab/storeadmin/internal/constants"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestJSONOutsideLocalEnv(t *testing.T) {
	restoreLevel(t)
	var buf bytes.Buffer
	logger, err := New(constants.Prod, "info", &buf)
	require.NoError(t, err)

	logger.Info().Str("order", "o1").Msg("updated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "updated", entry["message"])
	assert.Equal(t, "o1", entry["order"])
	assert.Equal(t, constants.ModuleName, entry["module"])
}

func TestConsoleInLocalEnv(t *testing.T) {
	restoreLevel(t)
	var buf bytes.Buffer
	logger, err := New(constants.Dev, "debug", &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestSetLevel(t *testing.T) {
	restoreLevel(t)
	var buf bytes.Buffer
	logger, err := New(constants.Prod, "warn", &buf)
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	require.NoError(t, SetLevel("INFO"))
	logger.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")

	require.Error(t, SetLevel("loud"))
	require.NoError(t, SetLevel(""))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
