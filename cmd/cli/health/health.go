package health

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
)

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Short:   "Check that the Wataki API is reachable and healthy.",
		Args:    cobra.NoArgs,
		PreRunE: hook.ClientPreRunHooks,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			api := util.GetAPIClient(ctx)
			res, err := api.Health(ctx)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("%s is unreachable: %w", api.BaseURL(), err), 1)
			}
			entries := []lo.Entry[string, any]{
				{Key: "API", Value: api.BaseURL()},
				{Key: "Status", Value: res.Status},
				{Key: "Uptime", Value: fmt.Sprintf("%.0fs", res.UptimeS)},
			}
			for _, name := range lo.Keys(res.Checks) {
				entries = append(entries, lo.Entry[string, any]{Key: "Check " + name, Value: res.Checks[name]})
			}
			output.KeyValue(cmd, entries)
			if !res.IsOK() {
				util.Fatal(cmd, fmt.Errorf("API reported status %q", res.Status), 1)
			}
		},
	}
}
