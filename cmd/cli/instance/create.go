package instance

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

type CreateOptions struct {
	Description string
	Config      configFlags
	OutputOpts  output.NonTabularOutputOptions
}

func NewCreateOptions() *CreateOptions {
	return &CreateOptions{
		OutputOpts: output.NonTabularOutputOptions{Format: output.YAMLFormat},
	}
}

func NewCreateCmd() *cobra.Command {
	o := NewCreateOptions()
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an instance. Connect it afterwards to pair a phone.",
		Args:  cobra.ExactArgs(1),
		Run:   o.run,
	}
	createCmd.Flags().StringVar(&o.Description, "description", o.Description, "A description of the instance")
	createCmd.Flags().AddFlagSet(o.Config.flagSet())
	createCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&o.OutputOpts))
	return createCmd
}

func (o *CreateOptions) run(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	res, err := util.GetAPIClient(ctx).Instances().Create(ctx, &models.CreateInstanceRequest{
		Name:        args[0],
		Description: o.Description,
		Config:      o.Config.toConfig(cmd.Flags()),
	})
	if err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to create instance: %w", err), 1)
	}
	if err = output.OutputOneNonTabular(cmd, o.OutputOpts, res); err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to write instance %s: %w", res.ID, err), 1)
	}
}
