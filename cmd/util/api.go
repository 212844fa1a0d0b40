package util

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/pkg/client"
	"github.com/wataki/wataki-go/pkg/config"
	"github.com/wataki/wataki-go/pkg/stream"
	"github.com/wataki/wataki-go/pkg/version"
)

type contextKey struct {
	name string
}

var configKey = contextKey{name: "context key for storing the loaded config"}

// SetupConfig loads the configuration and stores it in the command context.
func SetupConfig(cmd *cobra.Command) (config.WatakiConfig, error) {
	dir, err := config.Dir()
	if err != nil {
		return config.WatakiConfig{}, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return config.WatakiConfig{}, err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
	return cfg, nil
}

// GetConfig returns the configuration loaded by SetupConfig, or the defaults.
func GetConfig(ctx context.Context) config.WatakiConfig {
	if cfg, ok := ctx.Value(configKey).(config.WatakiConfig); ok {
		return cfg
	}
	return config.Default
}

// GetAPIClient builds a client from the loaded configuration.
func GetAPIClient(ctx context.Context) *client.Client {
	cfg := GetConfig(ctx)
	return client.New(cfg.API.URL,
		client.WithAPIKey(cfg.API.Key),
		client.WithTimeout(cfg.API.Timeout),
		client.WithRetryMax(cfg.API.RetryMax),
		client.WithUserAgent(version.UserAgent()),
		client.WithLogger(log.Ctx(ctx).With().Logger()),
		client.WithStreamOptions(stream.WithPolicy(stream.Policy{
			Reconnect:   cfg.Stream.Reconnect,
			Interval:    cfg.Stream.ReconnectInterval,
			MaxAttempts: cfg.Stream.MaxReconnectAttempts,
		})),
	)
}

// InstanceID returns the instance named on the command line, falling back to
// the configured default instance.
func InstanceID(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if id := GetConfig(ctx).Instance.ID; id != "" {
		return id, nil
	}
	return "", errors.New("no instance given: pass an instance ID or set " + config.KeyAsEnvVar(config.InstanceID))
}
