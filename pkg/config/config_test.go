//go:build unit || !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyAsEnvVar(t *testing.T) {
	assert.Equal(t, "WATAKI_API_KEY", KeyAsEnvVar(APIKey))
	assert.Equal(t, "WATAKI_STREAM_MAXRECONNECTATTEMPTS", KeyAsEnvVar(StreamMaxReconnectAttempts))
}

func TestLoadDefaults(t *testing.T) {
	defer Reset()

	cfg, err := Load(t.TempDir(), WithEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, Default, cfg)
}

func TestLoadFile(t *testing.T) {
	defer Reset()

	dir := t.TempDir()
	content := []byte("api:\n  url: http://localhost:8080\n  timeout: 30s\nstream:\n  maxreconnectattempts: 4\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := Load(dir, WithEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 4, cfg.Stream.MaxReconnectAttempts)
	assert.Equal(t, Default.Stream.ReconnectInterval, cfg.Stream.ReconnectInterval)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	defer Reset()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api:\n  key: from-file\n"), 0o600))
	t.Setenv("WATAKI_API_KEY", "from-env")
	t.Setenv("WATAKI_STREAM_RECONNECT", "false")

	cfg, err := Load(dir, WithEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Key)
	assert.False(t, cfg.Stream.Reconnect)
	assert.Equal(t, "from-env", Getenv(APIKey))
}

func TestLoadEnvFile(t *testing.T) {
	defer Reset()
	t.Cleanup(func() { _ = os.Unsetenv("WATAKI_INSTANCE_ID") })

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("WATAKI_INSTANCE_ID=inst-9\n"), 0o600))

	cfg, err := Load(dir, WithEnvFile(envFile))
	require.NoError(t, err)
	assert.Equal(t, "inst-9", cfg.Instance.ID)
}

func TestGet(t *testing.T) {
	defer Reset()

	_, err := Load(t.TempDir(), WithEnvFile(""))
	require.NoError(t, err)

	url, err := Get[string](APIURL)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, url)

	_, err = Get[int](APIURL)
	assert.Error(t, err)

	Set(InstanceID, "inst-2")
	assert.Equal(t, "inst-2", GetString(InstanceID))
}

func TestWriteValue(t *testing.T) {
	defer Reset()

	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, WriteValue(dir, APIKey, "secret"))
	require.NoError(t, WriteValue(dir, InstanceID, "inst-3"))
	require.Error(t, WriteValue(dir, "api.bogus", "x"))

	info, err := os.Stat(ConfigFile(dir, nil))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(dir, WithEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, "inst-3", cfg.Instance.ID)
}

func TestDir(t *testing.T) {
	t.Setenv(DirEnvVar, "/tmp/wataki-test")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wataki-test", dir)
}
