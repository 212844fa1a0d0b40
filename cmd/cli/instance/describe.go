package instance

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
)

// DescribeOptions is a struct to support instance command
type DescribeOptions struct {
	OutputOpts output.NonTabularOutputOptions
}

// NewDescribeOptions returns initialized Options
func NewDescribeOptions() *DescribeOptions {
	return &DescribeOptions{
		OutputOpts: output.NonTabularOutputOptions{Format: output.YAMLFormat},
	}
}

func NewDescribeCmd() *cobra.Command {
	o := NewDescribeOptions()
	describeCmd := &cobra.Command{
		Use:   "describe [id]",
		Short: "Get the info of an instance by id.",
		Args:  cobra.MaximumNArgs(1),
		Run:   o.run,
	}
	describeCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&o.OutputOpts))
	return describeCmd
}

func (o *DescribeOptions) run(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	instanceID, err := util.InstanceID(ctx, args)
	if err != nil {
		util.Fatal(cmd, err, 1)
	}
	res, err := util.GetAPIClient(ctx).Instances().Get(ctx, instanceID)
	if err != nil {
		util.Fatal(cmd, fmt.Errorf("could not get instance %s: %w", instanceID, err), 1)
	}

	if err = output.OutputOneNonTabular(cmd, o.OutputOpts, res); err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to write instance %s: %w", instanceID, err), 1)
	}
}
