package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogMode string

// Available logging modes
const (
	LogModeDefault  LogMode = "default"
	LogModeJSON     LogMode = "json"
	LogModeCombined LogMode = "combined"
	LogModeEvent    LogMode = "event"
)

// ParseLogMode validates a --log-mode value.
func ParseLogMode(s string) (LogMode, error) {
	mode := LogMode(strings.ToLower(s))
	switch mode {
	case LogModeDefault, LogModeJSON, LogModeCombined, LogModeEvent:
		return mode, nil
	}
	return LogModeDefault, fmt.Errorf("%q is an invalid log-mode (valid modes: %q)",
		s, []LogMode{LogModeDefault, LogModeJSON, LogModeCombined, LogModeEvent})
}

var stderr = struct{ io.Writer }{os.Stderr}

func init() { //nolint:gochecknoinits // init with zerolog is idiomatic
	ConfigureLogging(LogMode(strings.ToLower(os.Getenv("LOG_TYPE"))))
}

type tTesting interface {
	Log(args ...interface{})
	Logf(format string, args ...interface{})
	Helper()
	Cleanup(f func())
}

// ConfigureTestLogging allows logs to be associated with individual tests
func ConfigureTestLogging(t tTesting) {
	oldLogger := log.Logger
	oldContextLogger := zerolog.DefaultContextLogger
	configureLogging(LogModeDefault, zerolog.ConsoleTestWriter(t))
	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.DefaultContextLogger = oldContextLogger
	})
}

// ConfigureLogging sets up the global logger from LOG_LEVEL and the given mode.
func ConfigureLogging(mode LogMode) {
	configureLogging(mode)
}

// ParseLogLevel maps LOG_LEVEL values to zerolog levels, defaulting to info.
func ParseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func configureLogging(mode LogMode, loggingOptions ...func(w *zerolog.ConsoleWriter)) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLogLevel(os.Getenv("LOG_LEVEL")))

	isTerminal := isatty.IsTerminal(os.Stdout.Fd())

	defaultLogging := func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
		w.NoColor = !isTerminal
		w.TimeFormat = "15:04:05.999 |"
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		}

		w.FormatFieldName = func(i interface{}) string {
			return fmt.Sprintf("[%s:", i)
		}

		w.FormatFieldValue = func(i interface{}) string {
			// don't print nil in case field value wasn't preset
			if i == nil {
				i = ""
			}
			return fmt.Sprintf("%s]", i)
		}
	}

	loggingOptions = append([]func(w *zerolog.ConsoleWriter){defaultLogging}, loggingOptions...)

	textWriter := zerolog.NewConsoleWriter(loggingOptions...)

	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		short := file

		separatorCount := 2
		countedSeparators := 0

		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				countedSeparators += 1
				if countedSeparators >= separatorCount {
					short = file[i+1:]
					break
				}
			}
		}
		return short + ":" + strconv.Itoa(line)
	}

	// we default to text output
	var useLogWriter io.Writer = textWriter

	switch mode {
	case LogModeJSON:
		useLogWriter = os.Stdout
	case LogModeCombined:
		useLogWriter = zerolog.MultiLevelWriter(textWriter, os.Stdout)
	case LogModeEvent:
		useLogWriter = io.Discard
	}

	log.Logger = zerolog.New(useLogWriter).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}
