package observability

import (
	"context"
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
	"github.com/wataki/wataki-go/pkg/client"
	"github.com/wataki/wataki-go/pkg/models"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "observability",
		Aliases:           []string{"obs"},
		Short:             "Reports on message volume, webhook deliveries and API usage.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.AddCommand(newOverviewCmd())
	cmd.AddCommand(newMessagesCmd())
	cmd.AddCommand(newWebhooksCmd())
	cmd.AddCommand(newAPIUsageCmd())
	cmd.AddCommand(newInstancesCmd())
	cmd.AddCommand(newErrorsCmd())
	return cmd
}

type reportOptions struct {
	output.OutputOptions
	params models.ObservabilityParams
}

func newReportOptions() *reportOptions {
	return &reportOptions{OutputOptions: output.OutputOptions{Format: output.TableFormat}}
}

// reportCmd wires the window and output flags shared by every report. fetch
// takes the method expression of the report, e.g. (*client.Observability).Errors.
// tabular prints the response when the output is a table or CSV.
func reportCmd[T any](
	use, short string,
	fetch func(o *client.Observability, ctx context.Context, params *models.ObservabilityParams) (T, error), //nolint:revive
	tabular func(cmd *cobra.Command, opts output.OutputOptions, res T) error,
) *cobra.Command {
	o := newReportOptions()
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := fetch(util.GetAPIClient(ctx).Observability(), ctx, &o.params)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to get %s report: %w", use, err), 1)
			}
			switch o.Format {
			case output.TableFormat, output.CSVFormat:
				err = tabular(cmd, o.OutputOptions, res)
			default:
				err = output.OutputOneNonTabular(cmd, output.NonTabularOutputOptions{Format: o.Format, Pretty: o.Pretty}, res)
			}
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	cmd.Flags().AddFlagSet(cliflags.ObservabilityFlags(&o.params))
	cmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOptions))
	return cmd
}

func count(n int64) string {
	return strconv.FormatInt(n, 10)
}

func latency(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 1, 64) + "ms"
}

var messageColumns = []output.TableColumn[models.MessageBreakdown]{
	{ColumnConfig: table.ColumnConfig{Name: "Direction"}, Value: func(m models.MessageBreakdown) string { return m.Direction }},
	{ColumnConfig: table.ColumnConfig{Name: "Type"}, Value: func(m models.MessageBreakdown) string { return m.Type }},
	{ColumnConfig: table.ColumnConfig{Name: "Status"}, Value: func(m models.MessageBreakdown) string { return m.Status }},
	{
		ColumnConfig: table.ColumnConfig{Name: "Count", Align: text.AlignRight},
		Value:        func(m models.MessageBreakdown) string { return count(m.Count) },
	},
}

var apiColumns = []output.TableColumn[models.APIBreakdown]{
	{ColumnConfig: table.ColumnConfig{Name: "Method"}, Value: func(a models.APIBreakdown) string { return a.Method }},
	{
		ColumnConfig: table.ColumnConfig{Name: "Path", WidthMax: 50, WidthMaxEnforcer: text.WrapText},
		Value:        func(a models.APIBreakdown) string { return a.Path },
	},
	{ColumnConfig: table.ColumnConfig{Name: "Status"}, Value: func(a models.APIBreakdown) string { return a.StatusBucket }},
	{
		ColumnConfig: table.ColumnConfig{Name: "Count", Align: text.AlignRight},
		Value:        func(a models.APIBreakdown) string { return count(a.Count) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Avg latency", Align: text.AlignRight},
		Value:        func(a models.APIBreakdown) string { return latency(a.AvgLatencyMs) },
	},
}

var healthColumns = []output.TableColumn[models.ObservabilityInstanceHealth]{
	{ColumnConfig: table.ColumnConfig{Name: "ID"}, Value: func(h models.ObservabilityInstanceHealth) string { return h.ID }},
	{ColumnConfig: table.ColumnConfig{Name: "Name"}, Value: func(h models.ObservabilityInstanceHealth) string { return h.Name }},
	{
		ColumnConfig: table.ColumnConfig{Name: "State"},
		Value:        func(h models.ObservabilityInstanceHealth) string { return string(h.Status.State) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Inbound", Align: text.AlignRight},
		Value:        func(h models.ObservabilityInstanceHealth) string { return count(h.InboundCount) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Outbound", Align: text.AlignRight},
		Value:        func(h models.ObservabilityInstanceHealth) string { return count(h.OutboundCount) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Media", Align: text.AlignRight},
		Value:        func(h models.ObservabilityInstanceHealth) string { return count(h.MediaCount) },
	},
}

var deliveryColumns = []output.TableColumn[models.WebhookDelivery]{
	{ColumnConfig: table.ColumnConfig{Name: "Time"}, Value: func(d models.WebhookDelivery) string { return d.CreatedAt }},
	{ColumnConfig: table.ColumnConfig{Name: "Event"}, Value: func(d models.WebhookDelivery) string { return d.Event }},
	{
		ColumnConfig: table.ColumnConfig{Name: "URL", WidthMax: 40, WidthMaxEnforcer: text.WrapText},
		Value:        func(d models.WebhookDelivery) string { return d.URL },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Status"},
		Value: func(d models.WebhookDelivery) string {
			if d.StatusCode == nil {
				return "-"
			}
			return strconv.Itoa(*d.StatusCode)
		},
	},
	{ColumnConfig: table.ColumnConfig{Name: "Attempt"}, Value: func(d models.WebhookDelivery) string { return strconv.Itoa(d.Attempt) }},
	{
		ColumnConfig: table.ColumnConfig{Name: "Error", WidthMax: 40, WidthMaxEnforcer: text.WrapText},
		Value:        func(d models.WebhookDelivery) string { return lo.FromPtr(d.Error) },
	},
}

func newOverviewCmd() *cobra.Command {
	return reportCmd("overview", "Totals for messages, instances, webhooks and API calls.",
		(*client.Observability).Overview,
		func(cmd *cobra.Command, _ output.OutputOptions, res *models.ObservabilityOverview) error {
			output.KeyValue(cmd, []lo.Entry[string, any]{
				{Key: "Messages", Value: res.Messages.Total},
				{Key: "Instances", Value: res.Instances.Total},
				{Key: "Connected", Value: res.Instances.Connected},
				{Key: "Webhook deliveries", Value: res.Webhooks.Total},
				{Key: "Webhook success rate", Value: fmt.Sprintf("%.1f%%", res.Webhooks.SuccessRate*100)}, //nolint:gomnd
				{Key: "API requests", Value: res.API.TotalRequests},
			})
			return nil
		})
}

func newMessagesCmd() *cobra.Command {
	return reportCmd("messages", "Message counts by direction, type and status.",
		(*client.Observability).Messages,
		func(cmd *cobra.Command, opts output.OutputOptions, res *models.ObservabilityMessageStats) error {
			return output.Output(cmd, messageColumns, opts, res.Stats)
		})
}

func newWebhooksCmd() *cobra.Command {
	return reportCmd("webhooks", "Webhook delivery totals and recent failures.",
		(*client.Observability).Webhooks,
		func(cmd *cobra.Command, opts output.OutputOptions, res *models.ObservabilityWebhookStats) error {
			output.KeyValue(cmd, []lo.Entry[string, any]{
				{Key: "Deliveries", Value: res.Stats.Total},
				{Key: "Succeeded", Value: res.Stats.SuccessCount},
				{Key: "Failed", Value: res.Stats.FailureCount},
				{Key: "Avg latency", Value: latency(res.Stats.AvgLatencyMs)},
			})
			if len(res.RecentFailures) == 0 {
				return nil
			}
			cmd.Println("\nRecent failures:")
			return output.Output(cmd, deliveryColumns, opts, res.RecentFailures)
		})
}

func newAPIUsageCmd() *cobra.Command {
	return reportCmd("api-usage", "API request counts and latency by endpoint.",
		(*client.Observability).APIUsage,
		func(cmd *cobra.Command, opts output.OutputOptions, res *models.ObservabilityAPIUsage) error {
			return output.Output(cmd, apiColumns, opts, res.Stats)
		})
}

func newInstancesCmd() *cobra.Command {
	return reportCmd("instances", "Connection state and message counts per instance.",
		func(o *client.Observability, ctx context.Context, _ *models.ObservabilityParams) (*models.ObservabilityInstanceHealthList, error) {
			return o.Instances(ctx)
		},
		func(cmd *cobra.Command, opts output.OutputOptions, res *models.ObservabilityInstanceHealthList) error {
			return output.Output(cmd, healthColumns, opts, res.Data)
		})
}

func newErrorsCmd() *cobra.Command {
	return reportCmd("errors", "Failure counts across the platform.",
		(*client.Observability).Errors,
		func(cmd *cobra.Command, _ output.OutputOptions, res *models.ObservabilityErrors) error {
			output.KeyValue(cmd, []lo.Entry[string, any]{
				{Key: "Failed messages", Value: res.FailedMessages},
				{Key: "Failed webhooks", Value: res.FailedWebhooks},
				{Key: "API 5xx", Value: res.API5xx},
				{Key: "Errored instances", Value: res.ErroredInstances},
			})
			return nil
		})
}
