package instance

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
)

func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an instance and its WhatsApp session.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if err := util.GetAPIClient(ctx).Instances().Delete(ctx, args[0]); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to delete instance %s: %w", args[0], err), 1)
			}
			cmd.Printf("Instance %s deleted\n", args[0])
		},
	}
}
