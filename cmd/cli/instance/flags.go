package instance

import (
	"github.com/spf13/pflag"

	"github.com/wataki/wataki-go/pkg/models"
)

// configFlags are the instance behaviour settings shared by create and
// update. Only flags the user actually set end up in the request.
type configFlags struct {
	allowedGroups         []string
	allowedDMs            []string
	respondToMentionsOnly bool
	autoReconnect         bool
	downloadMedia         bool
	emitRaw               bool
}

func (c *configFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("Instance settings", pflag.ContinueOnError)
	fs.StringSliceVar(&c.allowedGroups, "allowed-groups", nil, "Only handle messages from these group IDs")
	fs.StringSliceVar(&c.allowedDMs, "allowed-dms", nil, "Only handle direct messages from these numbers")
	fs.BoolVar(&c.respondToMentionsOnly, "mentions-only", false, "Only deliver group messages that mention the instance")
	fs.BoolVar(&c.autoReconnect, "auto-reconnect", true, "Reconnect to WhatsApp automatically after a drop")
	fs.BoolVar(&c.downloadMedia, "download-media", false, "Store incoming media on the platform")
	fs.BoolVar(&c.emitRaw, "emit-raw", false, "Include the raw WhatsApp payload in events")
	return fs
}

// toConfig returns nil when no setting was changed on the command line.
func (c *configFlags) toConfig(fs *pflag.FlagSet) *models.InstanceConfig {
	var cfg models.InstanceConfig
	changed := false
	boolFlag := func(name string, v bool) *bool {
		if !fs.Changed(name) {
			return nil
		}
		changed = true
		return &v
	}
	if fs.Changed("allowed-groups") {
		cfg.AllowedGroups = c.allowedGroups
		changed = true
	}
	if fs.Changed("allowed-dms") {
		cfg.AllowedDMs = c.allowedDMs
		changed = true
	}
	cfg.RespondToMentionsOnly = boolFlag("mentions-only", c.respondToMentionsOnly)
	cfg.AutoReconnect = boolFlag("auto-reconnect", c.autoReconnect)
	cfg.DownloadMedia = boolFlag("download-media", c.downloadMedia)
	cfg.EmitRaw = boolFlag("emit-raw", c.emitRaw)
	if !changed {
		return nil
	}
	return &cfg
}
