package util

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/apierrors"
	"github.com/wataki/wataki-go/pkg/config"
)

var Fatal = fatalError

func fatalError(cmd *cobra.Command, err error, code int) {
	if msg := err.Error(); msg != "" {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		cmd.PrintErr(output.RedStr(msg))
	}
	if apierrors.IsUnauthorized(err) {
		cmd.PrintErrf("Check the API key in %s or the config file.\n", config.KeyAsEnvVar(config.APIKey))
	}
	os.Exit(code)
}
