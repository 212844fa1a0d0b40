package config

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

// Set overrides key for the rest of the process.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// WriteValue stores key=value in the config file in dir, keeping the other
// values already in the file.
func WriteValue(dir, key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	path := ConfigFile(dir, nil)

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType(configType)
	if _, err := os.Stat(path); err == nil {
		if err = file.ReadInConfig(); err != nil {
			return pkgerrors.Wrapf(err, "failed to read %s", path)
		}
	}
	file.Set(key, value)

	out, err := yaml.Marshal(file.AllSettings())
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), os.FileMode(0o700)); err != nil { //nolint:gomnd
		return err
	}
	// the file may hold an API key
	return os.WriteFile(path, out, os.FileMode(0o600)) //nolint:gomnd
}
