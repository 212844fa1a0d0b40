package instance

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

// ListOptions is a struct to support instance listing
type ListOptions struct {
	output.OutputOptions
	models.ListParams
}

// NewListOptions returns initialized Options
func NewListOptions() *ListOptions {
	return &ListOptions{
		OutputOptions: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewListCmd() *cobra.Command {
	o := NewListOptions()
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List instances.",
		Args:  cobra.NoArgs,
		Run:   o.run,
	}
	listCmd.Flags().AddFlagSet(cliflags.ListFlags(&o.ListParams))
	listCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOptions))
	return listCmd
}

var instanceColumns = []output.TableColumn[models.Instance]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID", WidthMax: 36, WidthMaxEnforcer: text.WrapText},
		Value:        func(i models.Instance) string { return i.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name", WidthMax: 24, WidthMaxEnforcer: text.WrapText},
		Value:        func(i models.Instance) string { return i.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "State"},
		Value:        func(i models.Instance) string { return string(i.Status.State) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Phone"},
		Value:        func(i models.Instance) string { return lo.FromPtr(i.PhoneNumber) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Created"},
		Value:        func(i models.Instance) string { return i.CreatedAt },
	},
}

func (o *ListOptions) run(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	res, err := util.GetAPIClient(ctx).Instances().List(ctx, &o.ListParams)
	if err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to list instances: %w", err), 1)
	}

	if err = output.Output(cmd, instanceColumns, o.OutputOptions, res.Data); err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to output instances: %w", err), 1)
	}
	printNextPage(cmd, o.OutputOptions, res.Page)
}

// printNextPage tells a human reader how to fetch the next page.
func printNextPage(cmd *cobra.Command, opts output.OutputOptions, page models.PageInfo) {
	if opts.Format == output.TableFormat && page.HasMore() {
		cmd.Printf("\nMore results available, rerun with --cursor %s\n", *page.NextCursor)
	}
}
