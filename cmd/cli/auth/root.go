package auth

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/config"
	"github.com/wataki/wataki-go/pkg/models"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "auth",
		Short:             "Sign up and manage API keys.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.AddCommand(newSignupCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newKeysCmd())
	return cmd
}

func newSignupCmd() *cobra.Command {
	var (
		req  models.SignupRequest
		save bool
	)
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a tenant and print its first API key.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Auth().Signup(ctx, &req)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("signup failed: %w", err), 1)
			}
			output.KeyValue(cmd, []lo.Entry[string, any]{
				{Key: "Tenant", Value: res.Tenant.ID},
				{Key: "Plan", Value: res.Tenant.Plan},
				{Key: "API key", Value: res.APIKey},
			})
			cmd.Println("\nThe API key is shown only once.")
			if save {
				saveKey(cmd, res.APIKey)
			}
		},
	}
	signupCmd.Flags().StringVar(&req.Name, "name", "", "Name of the tenant")
	signupCmd.Flags().StringVar(&req.Email, "email", "", "Contact email of the tenant")
	signupCmd.Flags().BoolVar(&save, "save", false, "Store the new API key in the config file")
	return signupCmd
}

func saveKey(cmd *cobra.Command, key string) {
	dir, err := config.Dir()
	if err == nil {
		err = config.WriteValue(dir, config.APIKey, key)
	}
	if err != nil {
		util.Fatal(cmd, fmt.Errorf("failed to save API key: %w", err), 1)
	}
	cmd.Printf("API key saved to %s\n", config.ConfigFile(dir, nil))
}

func newWhoamiCmd() *cobra.Command {
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the tenant owning the API key in use.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Auth().Me(ctx)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	whoamiCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return whoamiCmd
}

var keyColumns = []output.TableColumn[models.APIKeySummary]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID"},
		Value:        func(k models.APIKeySummary) string { return k.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Prefix"},
		Value:        func(k models.APIKeySummary) string { return k.KeyPrefix },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name"},
		Value:        func(k models.APIKeySummary) string { return k.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Created"},
		Value:        func(k models.APIKeySummary) string { return k.CreatedAt },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Last used"},
		Value:        func(k models.APIKeySummary) string { return lo.FromPtr(k.LastUsedAt) },
	},
}

func newKeysCmd() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:     "key",
		Aliases: []string{"keys"},
		Short:   "List, create and revoke API keys.",
	}

	opts := output.OutputOptions{Format: output.TableFormat}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Auth().ListAPIKeys(ctx)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to list API keys: %w", err), 1)
			}
			if err = output.Output(cmd, keyColumns, opts, res.Data); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	listCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&opts))

	var name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Issue a new API key.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Auth().CreateAPIKey(ctx, name)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to create API key: %w", err), 1)
			}
			output.KeyValue(cmd, []lo.Entry[string, any]{
				{Key: "ID", Value: res.ID},
				{Key: "Name", Value: res.Name},
				{Key: "API key", Value: res.APIKey},
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "A label for the key")

	deleteCmd := &cobra.Command{
		Use:   "delete <key-id>",
		Short: "Revoke an API key.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if err := util.GetAPIClient(ctx).Auth().DeleteAPIKey(ctx, args[0]); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to revoke API key %s: %w", args[0], err), 1)
			}
			cmd.Printf("API key %s revoked\n", args[0])
		},
	}

	keysCmd.AddCommand(listCmd, createCmd, deleteCmd)
	return keysCmd
}
