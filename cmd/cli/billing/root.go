package billing

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
		Use:               "billing",
		Short:             "Show plans and usage, and upgrade.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.AddCommand(newPlansCmd())
	cmd.AddCommand(newUsageCmd())
	cmd.AddCommand(newUpgradeCmd())
	return cmd
}

// formatCents renders an amount in cents as dollars.
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100) //nolint:gomnd
}

var planColumns = []output.TableColumn[models.BillingPlan]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID"},
		Value:        func(p models.BillingPlan) string { return p.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name"},
		Value:        func(p models.BillingPlan) string { return p.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Price", Align: text.AlignRight},
		Value:        func(p models.BillingPlan) string { return formatCents(p.PriceCents) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Messages", Align: text.AlignRight},
		Value:        func(p models.BillingPlan) string { return strconv.FormatInt(p.IncludedMessages, 10) },
	},
}

func newPlansCmd() *cobra.Command {
	opts := output.OutputOptions{Format: output.TableFormat}
	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "List the available plans.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Billing().Plans(ctx)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to list plans: %w", err), 1)
			}
			if err = output.Output(cmd, planColumns, opts, res.Data); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	plansCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&opts))
	return plansCmd
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show the message usage of the current billing cycle.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Billing().Usage(ctx)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to get usage: %w", err), 1)
			}
			output.KeyValue(cmd, usageEntries(res))
		},
	}
}

func usageEntries(u *models.BillingUsage) []lo.Entry[string, any] {
	return []lo.Entry[string, any]{
		{Key: "Plan", Value: u.Plan.Name},
		{Key: "Cycle start", Value: lo.FromPtr(u.BillingCycle.Start)},
		{Key: "Cycle end", Value: lo.FromPtr(u.BillingCycle.End)},
		{Key: "Days remaining", Value: u.BillingCycle.DaysRemaining},
		{Key: "Sent", Value: u.Usage.Sent},
		{Key: "Included", Value: u.Usage.Included},
		{Key: "Remaining", Value: u.Usage.Remaining},
		{Key: "Cancels at cycle end", Value: u.Plan.CancelsAtCycleEnd},
	}
}

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "upgrade <plan>",
		Short:     "Start a checkout for a paid plan.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: models.PaidPlans,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Billing().Upgrade(ctx, args[0])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to upgrade: %w", err), 1)
			}
			if res.CheckoutURL == nil {
				cmd.Printf("Plan changed to %s\n", res.Plan)
				return
			}
			cmd.Printf("Complete the upgrade to %s at:\n%s\n", res.Plan, *res.CheckoutURL)
		},
	}
}
