package stream

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultReconnect            = true
	DefaultReconnectInterval    = 3 * time.Second
	DefaultMaxReconnectAttempts = 10
)

// Policy governs automatic recovery from abnormal closure. The delay between
// attempts is fixed; there is no backoff.
type Policy struct {
	Reconnect   bool
	Interval    time.Duration
	MaxAttempts int
}

// DefaultPolicy reconnects every 3 seconds and gives up after 10 attempts.
func DefaultPolicy() Policy {
	return Policy{
		Reconnect:   DefaultReconnect,
		Interval:    DefaultReconnectInterval,
		MaxAttempts: DefaultMaxReconnectAttempts,
	}
}

type listenerOption struct {
	kind    Kind
	handler Handler
}

type options struct {
	policy    Policy
	dialer    Dialer
	clock     clock.Clock
	logger    zerolog.Logger
	listeners []listenerOption
}

func defaultOptions() options {
	return options{
		policy: DefaultPolicy(),
		dialer: NewWebsocketDialer(),
		clock:  clock.New(),
		logger: log.Logger,
	}
}

// Option configures a Stream.
type Option func(*options)

// WithPolicy replaces the whole reconnection policy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func WithReconnect(enabled bool) Option {
	return func(o *options) {
		o.policy.Reconnect = enabled
	}
}

func WithReconnectInterval(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.policy.Interval = d
		}
	}
}

func WithMaxReconnectAttempts(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.policy.MaxAttempts = n
		}
	}
}

// WithDialer replaces the websocket transport.
func WithDialer(d Dialer) Option {
	return func(o *options) {
		if d != nil {
			o.dialer = d
		}
	}
}

// WithClock replaces the clock used to schedule reconnects.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithListener registers h before the first connection attempt starts, so
// no event of the first connection can be missed. A nil h is ignored.
func WithListener(kind Kind, h Handler) Option {
	return func(o *options) {
		o.listeners = append(o.listeners, listenerOption{kind: kind, handler: h})
	}
}
