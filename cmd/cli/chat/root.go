package chat

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "chat",
		Aliases:           []string{"chats"},
		Short:             "Browse the chats and groups of an instance.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newGroupsCmd())
	return cmd
}

type listOptions struct {
	output.OutputOptions
	models.ListParams
}

func newListOptions() *listOptions {
	return &listOptions{OutputOptions: output.OutputOptions{Format: output.TableFormat}}
}

func countString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

var chatColumns = []output.TableColumn[models.Chat]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID", WidthMax: 40, WidthMaxEnforcer: text.WrapText},
		Value:        func(c models.Chat) string { return c.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name", WidthMax: 30, WidthMaxEnforcer: text.WrapText},
		Value:        func(c models.Chat) string { return c.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Group"},
		Value:        func(c models.Chat) string { return strconv.FormatBool(c.IsGroup) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Members"},
		Value:        func(c models.Chat) string { return countString(c.ParticipantCount) },
	},
}

var groupColumns = []output.TableColumn[models.Group]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID", WidthMax: 40, WidthMaxEnforcer: text.WrapText},
		Value:        func(g models.Group) string { return g.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name", WidthMax: 30, WidthMaxEnforcer: text.WrapText},
		Value:        func(g models.Group) string { return g.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Description", WidthMax: 40, WidthMaxEnforcer: text.WrapText},
		Value:        func(g models.Group) string { return lo.FromPtr(g.Description) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Members"},
		Value:        func(g models.Group) string { return countString(g.ParticipantCount) },
	},
}

func newListCmd() *cobra.Command {
	o := newListOptions()
	listCmd := &cobra.Command{
		Use:   "list [instance-id]",
		Short: "List the chats of an instance.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			res, err := util.GetAPIClient(ctx).Chats().List(ctx, instanceID, &o.ListParams)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to list chats: %w", err), 1)
			}
			if err = output.Output(cmd, chatColumns, o.OutputOptions, res.Data); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to output chats: %w", err), 1)
			}
		},
	}
	listCmd.Flags().AddFlagSet(cliflags.ListFlags(&o.ListParams))
	listCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOptions))
	return listCmd
}

func newGroupsCmd() *cobra.Command {
	o := newListOptions()
	groupsCmd := &cobra.Command{
		Use:   "groups [instance-id]",
		Short: "List the groups an instance is a member of.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			res, err := util.GetAPIClient(ctx).Groups().List(ctx, instanceID, &o.ListParams)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to list groups: %w", err), 1)
			}
			if err = output.Output(cmd, groupColumns, o.OutputOptions, res.Data); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to output groups: %w", err), 1)
			}
		},
	}
	groupsCmd.Flags().AddFlagSet(cliflags.ListFlags(&o.ListParams))
	groupsCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOptions))
	return groupsCmd
}

func newDescribeCmd() *cobra.Command {
	var instanceID string
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	describeCmd := &cobra.Command{
		Use:   "describe <chat-id>",
		Short: "Get a chat by id.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			id, err := util.InstanceID(ctx, []string{instanceID})
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			res, err := util.GetAPIClient(ctx).Chats().Get(ctx, id, args[0])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("could not get chat %s: %w", args[0], err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	describeCmd.Flags().StringVar(&instanceID, "instance", "", "The instance the chat belongs to")
	describeCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return describeCmd
}
