package message

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

type listOptions struct {
	output.OutputOptions
	models.ListParams
	ChatID string
}

var messageColumns = []output.TableColumn[models.Message]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID", WidthMax: 24, WidthMaxEnforcer: text.WrapText},
		Value:        func(m models.Message) string { return m.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Time"},
		Value:        func(m models.Message) string { return m.Timestamp },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Dir."},
		Value:        func(m models.Message) string { return string(m.Direction) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "From", WidthMax: 20, WidthMaxEnforcer: text.WrapText},
		Value:        func(m models.Message) string { return m.From },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Type"},
		Value:        func(m models.Message) string { return string(m.Type) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Status"},
		Value:        func(m models.Message) string { return string(m.Status) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Text", WidthMax: 50, WidthMaxEnforcer: text.Trim},
		Value:        func(m models.Message) string { return m.Text() },
	},
}

func newListCmd() *cobra.Command {
	o := &listOptions{OutputOptions: output.OutputOptions{Format: output.TableFormat}}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the messages of a chat, newest first.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, []string{instanceFlag})
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			res, err := util.GetAPIClient(ctx).Messages().List(ctx, instanceID, o.ChatID, &o.ListParams)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to list messages: %w", err), 1)
			}
			if err = output.Output(cmd, messageColumns, o.OutputOptions, res.Data); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to output messages: %w", err), 1)
			}
		},
	}
	listCmd.Flags().StringVar(&o.ChatID, "chat", "", "The chat to list messages of")
	_ = listCmd.MarkFlagRequired("chat")
	listCmd.Flags().AddFlagSet(cliflags.ListFlags(&o.ListParams))
	listCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOptions))
	return listCmd
}
