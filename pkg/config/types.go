package config

import "time"

// WatakiConfig is the configuration of the wataki CLI.
type WatakiConfig struct {
	API      APIConfig      `yaml:"API" mapstructure:"api"`
	Stream   StreamConfig   `yaml:"Stream" mapstructure:"stream"`
	Instance InstanceConfig `yaml:"Instance" mapstructure:"instance"`
}

type APIConfig struct {
	URL      string        `yaml:"URL" mapstructure:"url"`
	Key      string        `yaml:"Key" mapstructure:"key"`
	Timeout  time.Duration `yaml:"Timeout" mapstructure:"timeout"`
	RetryMax int           `yaml:"RetryMax" mapstructure:"retrymax"`
}

type StreamConfig struct {
	Reconnect            bool          `yaml:"Reconnect" mapstructure:"reconnect"`
	ReconnectInterval    time.Duration `yaml:"ReconnectInterval" mapstructure:"reconnectinterval"`
	MaxReconnectAttempts int           `yaml:"MaxReconnectAttempts" mapstructure:"maxreconnectattempts"`
}

// InstanceConfig names the instance commands act on when none is given.
type InstanceConfig struct {
	ID string `yaml:"ID" mapstructure:"id"`
}
