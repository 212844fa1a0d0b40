package hook

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
)

type RunE func(cmd *cobra.Command, args []string) error

// ClientPreRunHooks loads the configuration before a command talks to the API.
func ClientPreRunHooks(cmd *cobra.Command, _ []string) error {
	_, err := util.SetupConfig(cmd)
	return err
}

// ApplyPorcelainLogLevel quietens logging for commands whose stdout is meant
// to be parsed.
func ApplyPorcelainLogLevel(cmd *cobra.Command, _ []string) {
	if zerolog.GlobalLevel() < zerolog.ErrorLevel {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}

// AfterParentPreRun runs the root's persistent pre-run before fn. cobra only
// runs the nearest PersistentPreRun, so groups that need their own must chain
// to the root explicitly.
func AfterParentPreRun(fn RunE) RunE {
	return func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		if root.PersistentPreRun != nil {
			root.PersistentPreRun(cmd, args)
		}
		return fn(cmd, args)
	}
}
