//go:build unit || !integration

package instance

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFlagsOnlySendsChanged(t *testing.T) {
	var c configFlags
	fs := c.flagSet()
	require.NoError(t, fs.Parse(nil))
	assert.Nil(t, c.toConfig(fs))

	c = configFlags{}
	fs = c.flagSet()
	require.NoError(t, fs.Parse([]string{"--auto-reconnect=false", "--allowed-groups", "g1,g2"}))
	cfg := c.toConfig(fs)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"g1", "g2"}, cfg.AllowedGroups)
	assert.Equal(t, lo.ToPtr(false), cfg.AutoReconnect)
	assert.Nil(t, cfg.DownloadMedia)
	assert.Nil(t, cfg.AllowedDMs)
}
