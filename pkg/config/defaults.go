package config

import (
	"github.com/spf13/viper"

	"github.com/wataki/wataki-go/pkg/client"
	"github.com/wataki/wataki-go/pkg/stream"
)

const DefaultAPIURL = "https://api.wataki.cloud"

// Default is used for every key not set in the config file or environment.
var Default = WatakiConfig{
	API: APIConfig{
		URL:      DefaultAPIURL,
		Timeout:  client.DefaultTimeout,
		RetryMax: client.DefaultRetryMax,
	},
	Stream: StreamConfig{
		Reconnect:            stream.DefaultReconnect,
		ReconnectInterval:    stream.DefaultReconnectInterval,
		MaxReconnectAttempts: stream.DefaultMaxReconnectAttempts,
	},
}

// SetDefault registers cfg as the fallback for every key.
func SetDefault(cfg WatakiConfig) {
	viper.SetDefault(APIURL, cfg.API.URL)
	viper.SetDefault(APIKey, cfg.API.Key)
	viper.SetDefault(APITimeout, cfg.API.Timeout)
	viper.SetDefault(APIRetryMax, cfg.API.RetryMax)
	viper.SetDefault(StreamReconnect, cfg.Stream.Reconnect)
	viper.SetDefault(StreamReconnectInterval, cfg.Stream.ReconnectInterval)
	viper.SetDefault(StreamMaxReconnectAttempts, cfg.Stream.MaxReconnectAttempts)
	viper.SetDefault(InstanceID, cfg.Instance.ID)
}
