package version

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
	"github.com/wataki/wataki-go/pkg/version"
)

type VersionOptions struct {
	OutputOpts output.OutputOptions
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewCmd() *cobra.Command {
	oV := NewVersionOptions()

	versionCmd := &cobra.Command{
		Use:    "version",
		Short:  "Get the client version.",
		Args:   cobra.NoArgs,
		PreRun: hook.ApplyPorcelainLogLevel,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := oV.Run(cmd); err != nil {
				util.Fatal(cmd, fmt.Errorf("error running version: %w", err), 1)
			}
		},
	}
	versionCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&oV.OutputOpts))
	return versionCmd
}

var versionColumns = []output.TableColumn[*models.BuildVersionInfo]{
	{
		ColumnConfig: table.ColumnConfig{Name: "version"},
		Value:        func(v *models.BuildVersionInfo) string { return v.GitVersion },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "commit"},
		Value:        func(v *models.BuildVersionInfo) string { return v.GitCommit },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "platform"},
		Value:        func(v *models.BuildVersionInfo) string { return v.GOOS + "/" + v.GOARCH },
	},
}

func (oV *VersionOptions) Run(cmd *cobra.Command) error {
	return output.OutputOne(cmd, versionColumns, oV.OutputOpts, version.Get())
}
