package config

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/config"
)

func NewCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:               "config",
		Short:             "Interact with the wataki configuration system.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	configCmd.AddCommand(newShowCmd())
	configCmd.AddCommand(newListCmd())
	configCmd.AddCommand(newSetCmd())
	return configCmd
}

func newShowCmd() *cobra.Command {
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := util.GetConfig(cmd.Context())
			cfg.API.Key = maskSecret(cfg.API.Key)
			if err := output.OutputOneNonTabular(cmd, opts, cfg); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	showCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return showCmd
}

type keyRow struct {
	Key    string `json:"key"`
	EnvVar string `json:"env_var"`
	Value  string `json:"value"`
}

var keyColumns = []output.TableColumn[keyRow]{
	{ColumnConfig: table.ColumnConfig{Name: "Key"}, Value: func(r keyRow) string { return r.Key }},
	{ColumnConfig: table.ColumnConfig{Name: "Environment variable"}, Value: func(r keyRow) string { return r.EnvVar }},
	{ColumnConfig: table.ColumnConfig{Name: "Value"}, Value: func(r keyRow) string { return r.Value }},
}

func newListCmd() *cobra.Command {
	opts := output.OutputOptions{Format: output.TableFormat}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every config key with its environment variable and current value.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			rows := lo.Map(config.Keys, func(key string, _ int) keyRow {
				value := viper.GetString(key)
				if key == config.APIKey {
					value = maskSecret(value)
				}
				return keyRow{Key: key, EnvVar: config.KeyAsEnvVar(key), Value: value}
			})
			if err := output.Output(cmd, keyColumns, opts, rows); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	listCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&opts))
	return listCmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Store a value in the config file.",
		Args:      cobra.ExactArgs(2), //nolint:gomnd
		ValidArgs: config.Keys,
		Run: func(cmd *cobra.Command, args []string) {
			dir, err := config.Dir()
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			key := strings.ToLower(args[0])
			if err = config.WriteValue(dir, key, args[1]); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to set %s: %w", key, err), 1)
			}
			cmd.Printf("Wrote %s to %s\n", key, config.ConfigFile(dir, nil))
		},
	}
}

// maskSecret keeps the first four characters of a secret.
func maskSecret(s string) string {
	const visible = 4
	if len(s) <= visible {
		return strings.Repeat("*", len(s))
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}
