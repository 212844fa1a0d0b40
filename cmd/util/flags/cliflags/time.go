package cliflags

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is used to resolve relative times. Tests replace it.
var Clock clock.Clock = clock.New()

type timeFlag struct {
	value *time.Time
}

// TimeFlag accepts either an RFC3339 timestamp or a duration, which is read
// as that long before now.
func TimeFlag(value *time.Time) *timeFlag {
	return &timeFlag{value: value}
}

func (f *timeFlag) Set(s string) error {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*f.value = t
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%q is neither an RFC3339 time nor a duration", s)
	}
	*f.value = Clock.Now().Add(-d)
	return nil
}

func (f *timeFlag) String() string {
	if f.value == nil || f.value.IsZero() {
		return ""
	}
	return f.value.Format(time.RFC3339)
}

func (f *timeFlag) Type() string {
	return "time"
}
