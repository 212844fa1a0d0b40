package instance

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

type UpdateOptions struct {
	Name        string
	Description string
	Config      configFlags
	OutputOpts  output.NonTabularOutputOptions
}

func NewUpdateOptions() *UpdateOptions {
	return &UpdateOptions{
		OutputOpts: output.NonTabularOutputOptions{Format: output.YAMLFormat},
	}
}

func NewUpdateCmd() *cobra.Command {
	o := NewUpdateOptions()
	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change the name, description or settings of an instance.",
		Args:  cobra.MaximumNArgs(1),
		Run:   o.run,
	}
	updateCmd.Flags().StringVar(&o.Name, "name", o.Name, "New name of the instance")
	updateCmd.Flags().StringVar(&o.Description, "description", o.Description, "New description of the instance")
	updateCmd.Flags().AddFlagSet(o.Config.flagSet())
	updateCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&o.OutputOpts))
	return updateCmd
}

func (o *UpdateOptions) run(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	instanceID, err := util.InstanceID(ctx, args)
	if err != nil {
		util.Fatal(cmd, err, 1)
	}

	req := &models.UpdateInstanceRequest{Config: o.Config.toConfig(cmd.Flags())}
	if cmd.Flags().Changed("name") {
		req.Name = &o.Name
	}
	if cmd.Flags().Changed("description") {
		req.Description = &o.Description
	}

	res, err := util.GetAPIClient(ctx).Instances().Update(ctx, instanceID, req)
	if err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to update instance %s: %w", instanceID, err), 1)
	}
	if err = output.OutputOneNonTabular(cmd, o.OutputOpts, res); err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to write instance %s: %w", instanceID, err), 1)
	}
}
