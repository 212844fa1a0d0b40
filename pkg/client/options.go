package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wataki/wataki-go/pkg/stream"
	"github.com/wataki/wataki-go/pkg/version"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultRetryMax     = 2
	DefaultRetryWaitMin = 500 * time.Millisecond
	DefaultRetryWaitMax = 5 * time.Second
)

// Config holds the settings of a Client. Use the With* options to change them.
type Config struct {
	APIKey       string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// HTTPClient replaces the underlying client. Its Timeout and Transport
	// are used as given.
	HTTPClient *http.Client
	UserAgent  string
	Logger     zerolog.Logger
	// StreamOptions are applied to every stream opened with Subscribe,
	// before the options passed to Subscribe itself.
	StreamOptions []stream.Option
}

func defaultConfig() Config {
	return Config{
		Timeout:      DefaultTimeout,
		RetryMax:     DefaultRetryMax,
		RetryWaitMin: DefaultRetryWaitMin,
		RetryWaitMax: DefaultRetryWaitMax,
		UserAgent:    version.UserAgent(),
		Logger:       log.Logger,
	}
}

type OptionFn func(*Config)

// WithAPIKey sets the key sent as X-API-Key and embedded in stream addresses.
func WithAPIKey(key string) OptionFn {
	return func(c *Config) {
		c.APIKey = key
	}
}

func WithTimeout(d time.Duration) OptionFn {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithRetryMax sets how many times an idempotent request is retried. Zero
// disables retries.
func WithRetryMax(n int) OptionFn {
	return func(c *Config) {
		if n >= 0 {
			c.RetryMax = n
		}
	}
}

func WithRetryWait(min, max time.Duration) OptionFn {
	return func(c *Config) {
		c.RetryWaitMin = min
		c.RetryWaitMax = max
	}
}

func WithHTTPClient(hc *http.Client) OptionFn {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

func WithUserAgent(ua string) OptionFn {
	return func(c *Config) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

func WithLogger(l zerolog.Logger) OptionFn {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithStreamOptions sets defaults for streams opened with Subscribe.
func WithStreamOptions(opts ...stream.Option) OptionFn {
	return func(c *Config) {
		c.StreamOptions = append(c.StreamOptions, opts...)
	}
}
