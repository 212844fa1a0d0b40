package instance

import (
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util/hook"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "instance",
		Aliases:           []string{"instances"},
		Short:             "Create, connect and manage WhatsApp instances.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewCreateCmd())
	cmd.AddCommand(NewDescribeCmd())
	cmd.AddCommand(NewUpdateCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewConnectCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewDisconnectCmd())
	return cmd
}
