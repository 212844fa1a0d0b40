package instance

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id]",
		Short: "Show the WhatsApp connection state of an instance.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			status, err := util.GetAPIClient(ctx).Instances().Status(ctx, instanceID)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("could not get status of instance %s: %w", instanceID, err), 1)
			}
			printStatus(cmd, status)
		},
	}
}

func NewDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect [id]",
		Short: "Log an instance out of WhatsApp.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			status, err := util.GetAPIClient(ctx).Instances().Disconnect(ctx, instanceID)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to disconnect instance %s: %w", instanceID, err), 1)
			}
			printStatus(cmd, status)
		},
	}
}

func printStatus(cmd *cobra.Command, status *models.InstanceStatus) {
	output.KeyValue(cmd, []lo.Entry[string, any]{
		{Key: "State", Value: status.State},
		{Key: "Last error", Value: lo.FromPtr(status.LastError)},
		{Key: "Updated", Value: status.UpdatedAt},
	})
}
