package logger

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// LeveledLogger adapts a zerolog.Logger to retryablehttp.LeveledLogger.
// Key/value pairs are attached as fields.
type LeveledLogger struct {
	l zerolog.Logger
}

func NewLeveledLogger(l zerolog.Logger) *LeveledLogger {
	return &LeveledLogger{l: l}
}

func (z *LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	z.l.Error().Fields(keysAndValues).Msg(msg)
}

func (z *LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	z.l.Info().Fields(keysAndValues).Msg(msg)
}

// Debug logs at trace level: retryablehttp logs every request at debug.
func (z *LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	z.l.Trace().Fields(keysAndValues).Msg(msg)
}

func (z *LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	z.l.Warn().Fields(keysAndValues).Msg(msg)
}

var _ retryablehttp.LeveledLogger = (*LeveledLogger)(nil)
