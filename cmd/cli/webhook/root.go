package webhook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
	"github.com/wataki/wataki-go/pkg/stream"
)

var instanceFlag string

// defaultEvents subscribes a new webhook to every server event.
var defaultEvents = []string{
	stream.KindMessageReceived.String(),
	stream.KindMessageStatus.String(),
	stream.KindConnectionUpdate.String(),
	stream.KindQRUpdated.String(),
}

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "webhook",
		Aliases:           []string{"webhooks"},
		Short:             "Manage the webhooks events are delivered to.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.PersistentFlags().StringVar(&instanceFlag, "instance", "", "The instance owning the webhooks (defaults to the configured instance)")
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newDeleteCmd())
	return cmd
}

func instanceOrFatal(cmd *cobra.Command) string {
	instanceID, err := util.InstanceID(cmd.Context(), []string{instanceFlag})
	if err != nil {
		util.Fatal(cmd, err, 1)
	}
	return instanceID
}

var webhookColumns = []output.TableColumn[models.Webhook]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID"},
		Value:        func(w models.Webhook) string { return w.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "URL", WidthMax: 50, WidthMaxEnforcer: text.WrapText},
		Value:        func(w models.Webhook) string { return w.URL },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Events", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		Value:        func(w models.Webhook) string { return strings.Join(w.Events, ", ") },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Active"},
		Value:        func(w models.Webhook) string { return strconv.FormatBool(w.Active) },
	},
}

func newListCmd() *cobra.Command {
	opts := output.OutputOptions{Format: output.TableFormat}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List webhooks.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Webhooks().List(ctx, instanceOrFatal(cmd))
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to list webhooks: %w", err), 1)
			}
			if err = output.Output(cmd, webhookColumns, opts, res.Data); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	listCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&opts))
	return listCmd
}

func newCreateCmd() *cobra.Command {
	req := &models.CreateWebhookRequest{Events: defaultEvents}
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	createCmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Deliver events of an instance to a URL.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			req.URL = args[0]
			res, err := util.GetAPIClient(ctx).Webhooks().Create(ctx, instanceOrFatal(cmd), req)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to create webhook: %w", err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	createCmd.Flags().StringSliceVar(&req.Events, "events", req.Events, "The events to deliver")
	createCmd.Flags().StringVar(&req.Secret, "secret", "", "Secret used to sign deliveries")
	createCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return createCmd
}

func newUpdateCmd() *cobra.Command {
	var (
		url, secret string
		events      []string
		active      bool
	)
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	updateCmd := &cobra.Command{
		Use:   "update <webhook-id>",
		Short: "Change the URL, events, secret or state of a webhook.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			req := &models.UpdateWebhookRequest{}
			if cmd.Flags().Changed("url") {
				req.URL = &url
			}
			if cmd.Flags().Changed("secret") {
				req.Secret = &secret
			}
			if cmd.Flags().Changed("events") {
				req.Events = events
			}
			if cmd.Flags().Changed("active") {
				req.Active = &active
			}
			res, err := util.GetAPIClient(ctx).Webhooks().Update(ctx, instanceOrFatal(cmd), args[0], req)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to update webhook %s: %w", args[0], err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	updateCmd.Flags().StringVar(&url, "url", "", "New delivery URL")
	updateCmd.Flags().StringVar(&secret, "secret", "", "New signing secret")
	updateCmd.Flags().StringSliceVar(&events, "events", nil, "New list of events")
	updateCmd.Flags().BoolVar(&active, "active", true, "Enable or pause deliveries")
	updateCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return updateCmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <webhook-id>",
		Short: "Delete a webhook.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if err := util.GetAPIClient(ctx).Webhooks().Delete(ctx, instanceOrFatal(cmd), args[0]); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to delete webhook %s: %w", args[0], err), 1)
			}
			cmd.Printf("Webhook %s deleted\n", args[0])
		},
	}
}
