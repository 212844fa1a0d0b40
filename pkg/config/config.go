package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	environmentVariablePrefix = "WATAKI"
	inferConfigTypes          = true
	automaticEnvVar           = true

	// DirEnvVar overrides the directory holding config.yaml.
	DirEnvVar = "WATAKI_DIR"
)

var environmentVariableReplace = strings.NewReplacer(".", "_")

const (
	configType = "yaml"
	configName = "config"
	envFile    = ".env"
)

// Dir returns the directory holding the config file: $WATAKI_DIR, or
// wataki under the user's config directory.
func Dir() (string, error) {
	if dir := os.Getenv(DirEnvVar); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to find user config directory")
	}
	return filepath.Join(base, "wataki"), nil
}

// Load reads the configuration from path/config.yaml, a .env file in the
// working directory and WATAKI_* environment variables, in increasing order
// of precedence. A missing config file or .env file is not an error.
func Load(path string, opts ...Option) (WatakiConfig, error) {
	return initConfig(path, append([]Option{WithFileHandler(ReadConfigHandler)}, opts...)...)
}

type Params struct {
	FileName      string
	FileType      string
	EnvFile       string
	FileHandler   func(fileName string) error
	DefaultConfig WatakiConfig
}

func initConfig(path string, opts ...Option) (WatakiConfig, error) {
	params := &Params{
		FileName:      configName,
		FileType:      configType,
		EnvFile:       envFile,
		FileHandler:   NoopConfigHandler,
		DefaultConfig: Default,
	}
	for _, opt := range opts {
		opt(params)
	}

	if params.EnvFile != "" {
		if err := godotenv.Load(params.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return WatakiConfig{}, pkgerrors.Wrapf(err, "failed to load %s", params.EnvFile)
		}
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(params.FileName)
	viper.SetConfigType(params.FileType)
	viper.SetEnvPrefix(environmentVariablePrefix)
	viper.SetTypeByDefaultValue(inferConfigTypes)
	viper.SetEnvKeyReplacer(environmentVariableReplace)
	SetDefault(params.DefaultConfig)

	if err := params.FileHandler(ConfigFile(path, params)); err != nil {
		return WatakiConfig{}, err
	}

	if automaticEnvVar {
		viper.AutomaticEnv()
	}

	var out WatakiConfig
	if err := viper.Unmarshal(&out); err != nil {
		return WatakiConfig{}, err
	}
	log.Trace().Str("path", path).Msg("configuration loaded")
	return out, nil
}

// ConfigFile is the path of the config file inside dir.
func ConfigFile(dir string, params *Params) string {
	if params == nil {
		params = &Params{FileName: configName, FileType: configType}
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", params.FileName, params.FileType))
}

// Reset clears all configuration, useful for testing.
func Reset() {
	viper.Reset()
}

// Get returns the value of key as T.
func Get[T any](key string) (T, error) {
	raw := viper.Get(key)
	if raw == nil {
		var zero T
		return zero, fmt.Errorf("value not found for %s", key)
	}
	val, ok := raw.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("value not of expected type, got: %T", raw)
	}
	return val, nil
}

// GetString returns the value of key converted to a string.
func GetString(key string) string {
	return viper.GetString(key)
}

// Getenv wraps os.Getenv and retrieves the value of the environment variable named by the config key.
// It returns the value, which will be empty if the variable is not present.
func Getenv(key string) string {
	return os.Getenv(KeyAsEnvVar(key))
}

// KeyAsEnvVar returns the environment variable corresponding to a config key
func KeyAsEnvVar(key string) string {
	return strings.ToUpper(
		fmt.Sprintf("%s_%s", environmentVariablePrefix, environmentVariableReplace.Replace(key)),
	)
}
