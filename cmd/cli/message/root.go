package message

import (
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util/hook"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "message",
		Aliases:           []string{"messages", "msg"},
		Short:             "Send, read and react to messages.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.PersistentFlags().StringVar(&instanceFlag, "instance", "", "The instance to act as (defaults to the configured instance)")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newReactCmd())
	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newPresenceCmd())
	return cmd
}

var instanceFlag string
