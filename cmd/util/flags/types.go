package flags

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/logger"
	"github.com/wataki/wataki-go/pkg/models"
)

// A Parser is a function that can convert a string into a native object.
type Parser[T any] func(string) (T, error)

// A Stringer is a function that can convert a native object into a string.
type Stringer[T any] func(*T) string

// A ValueFlag is a pflag.Value that knows how to take a command line value
// represented as a string and set it as a native object into a struct.
type ValueFlag[T any] struct {
	value    *T
	parser   Parser[T]
	stringer Stringer[T]

	// How the value should be described in the help string. (e.g. string, int)
	typeStr string
}

// Set implements pflag.Value
func (s *ValueFlag[T]) Set(input string) error {
	value, err := s.parser(input)
	if err != nil {
		return err
	}
	*s.value = value
	return nil
}

// String implements pflag.Value
func (s *ValueFlag[T]) String() string {
	return s.stringer(s.value)
}

// Type implements pflag.Value
func (s *ValueFlag[T]) Type() string {
	return s.typeStr
}

var _ pflag.Value = (*ValueFlag[int])(nil)

func oneOf[T ~string](valid []T) Parser[T] {
	return func(s string) (T, error) {
		v := T(s)
		if !lo.Contains(valid, v) {
			return "", fmt.Errorf("should be one of %q", valid)
		}
		return v, nil
	}
}

func LoggingFlag(value *logger.LogMode) *ValueFlag[logger.LogMode] {
	return &ValueFlag[logger.LogMode]{
		value:    value,
		parser:   logger.ParseLogMode,
		stringer: func(p *logger.LogMode) string { return string(*p) },
		typeStr:  "logging-mode",
	}
}

func OutputFormatFlag(value *output.OutputFormat) *ValueFlag[output.OutputFormat] {
	return &ValueFlag[output.OutputFormat]{
		value:    value,
		parser:   oneOf(output.AllFormats),
		stringer: func(o *output.OutputFormat) string { return string(*o) },
		typeStr:  "format",
	}
}

func NonTabularFormatFlag(value *output.OutputFormat) *ValueFlag[output.OutputFormat] {
	return &ValueFlag[output.OutputFormat]{
		value:    value,
		parser:   oneOf(output.NonTabularFormats),
		stringer: func(o *output.OutputFormat) string { return string(*o) },
		typeStr:  "format",
	}
}

func MessageTypeFlag(value *models.MessageType) *ValueFlag[models.MessageType] {
	return &ValueFlag[models.MessageType]{
		value:    value,
		parser:   oneOf(models.MessageTypes),
		stringer: func(t *models.MessageType) string { return string(*t) },
		typeStr:  "type",
	}
}

func PresenceFlag(value *models.PresenceState) *ValueFlag[models.PresenceState] {
	return &ValueFlag[models.PresenceState]{
		value:    value,
		parser:   oneOf(models.PresenceStates),
		stringer: func(p *models.PresenceState) string { return string(*p) },
		typeStr:  "state",
	}
}
