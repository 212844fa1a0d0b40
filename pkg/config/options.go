package config

import (
	"os"

	"github.com/spf13/viper"
)

type Option func(options *Params)

func WithFileName(name string) Option {
	return func(options *Params) {
		options.FileName = name
	}
}

// WithEnvFile changes the dotenv file read before the environment. An empty
// name disables it.
func WithEnvFile(name string) Option {
	return func(options *Params) {
		options.EnvFile = name
	}
}

func WithDefaultConfig(cfg WatakiConfig) Option {
	return func(options *Params) {
		options.DefaultConfig = cfg
	}
}

func WithFileHandler(handler func(name string) error) Option {
	return func(options *Params) {
		options.FileHandler = handler
	}
}

func NoopConfigHandler(string) error {
	return nil
}

func ReadConfigHandler(fileName string) error {
	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		// no config file, defaults and environment apply
		return nil
	} else if err != nil {
		return err
	}
	return viper.ReadInConfig()
}
