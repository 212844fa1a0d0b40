//go:build unit || !integration

package logger

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLogging(t *testing.T) {
	oldLogger := log.Logger
	oldContextLogger := zerolog.DefaultContextLogger

	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.DefaultContextLogger = oldContextLogger
	})

	var logging strings.Builder
	configureLogging(LogModeDefault, func(w *zerolog.ConsoleWriter) {
		w.Out = &logging
		w.NoColor = true
	})

	log.Info().Str("instance", "inst-1").Msg("testing message")

	actual := logging.String()
	t.Log(actual)

	assert.Contains(t, actual, "testing message", "Log statement doesn't contain the log message")
	assert.Contains(t, actual, "[instance:inst-1]", "Log statement doesn't contain the field")
	assert.Contains(t, actual, "logger/logger_test.go", "Log statement doesn't contain the caller")
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLogLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLogLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, ParseLogLevel(""))
	require.Equal(t, zerolog.InfoLevel, ParseLogLevel("bogus"))
}

func TestLeveledLoggerFields(t *testing.T) {
	var out strings.Builder
	l := NewLeveledLogger(zerolog.New(&out))

	l.Warn("retrying request", "url", "http://example.com", "attempt", 2)

	assert.Contains(t, out.String(), `"message":"retrying request"`)
	assert.Contains(t, out.String(), `"url":"http://example.com"`)
	assert.Contains(t, out.String(), `"attempt":2`)
}

func TestParseLogMode(t *testing.T) {
	mode, err := ParseLogMode("JSON")
	require.NoError(t, err)
	require.Equal(t, LogModeJSON, mode)

	_, err = ParseLogMode("station")
	require.Error(t, err)
}
