package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/wataki/wataki-go/cmd/cli/auth"
	"github.com/wataki/wataki-go/cmd/cli/billing"
	"github.com/wataki/wataki-go/cmd/cli/chat"
	configcmd "github.com/wataki/wataki-go/cmd/cli/config"
	"github.com/wataki/wataki-go/cmd/cli/health"
	"github.com/wataki/wataki-go/cmd/cli/instance"
	"github.com/wataki/wataki-go/cmd/cli/media"
	"github.com/wataki/wataki-go/cmd/cli/message"
	"github.com/wataki/wataki-go/cmd/cli/observability"
	streamcmd "github.com/wataki/wataki-go/cmd/cli/stream"
	"github.com/wataki/wataki-go/cmd/cli/version"
	"github.com/wataki/wataki-go/cmd/cli/webhook"
	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags"
	"github.com/wataki/wataki-go/pkg/config"
	"github.com/wataki/wataki-go/pkg/logger"
	"github.com/wataki/wataki-go/pkg/system"
	"github.com/wataki/wataki-go/pkg/telemetry"
)

// cleanupTimeout bounds how long exporting the last spans may delay exit.
const cleanupTimeout = 5 * time.Second

var loggingMode = logger.LogModeDefault

func init() { //nolint:gochecknoinits
	if logtype, set := os.LookupEnv("LOG_TYPE"); set {
		loggingMode = logger.LogMode(strings.ToLower(logtype))
	}
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wataki",
		Short:         "Manage WhatsApp instances on the Wataki platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			logger.ConfigureLogging(loggingMode)

			var names []string
			for c := cmd; c.HasParent(); c = c.Parent() {
				names = append([]string{c.Name()}, names...)
			}
			name := fmt.Sprintf("wataki.%s", strings.Join(names, "."))
			ctx, span := telemetry.NewSpan(ctx, telemetry.GetTracer(), name)
			ctx = context.WithValue(ctx, spanKey, span)

			cmd.SetContext(ctx)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if span, ok := cmd.Context().Value(spanKey).(trace.Span); ok {
				span.End()
			}
		},
	}

	rootCmd.AddCommand(instance.NewCmd())
	rootCmd.AddCommand(chat.NewCmd())
	rootCmd.AddCommand(message.NewCmd())
	rootCmd.AddCommand(media.NewCmd())
	rootCmd.AddCommand(webhook.NewCmd())
	rootCmd.AddCommand(streamcmd.NewCmd())

	rootCmd.AddCommand(auth.NewCmd())
	rootCmd.AddCommand(billing.NewCmd())
	rootCmd.AddCommand(observability.NewCmd())

	rootCmd.AddCommand(health.NewCmd())
	rootCmd.AddCommand(version.NewCmd())
	rootCmd.AddCommand(configcmd.NewCmd())

	rootCmd.PersistentFlags().String("api-url", config.DefaultAPIURL,
		fmt.Sprintf("The address of the Wataki API. Overrides %s.", config.KeyAsEnvVar(config.APIURL)))
	rootCmd.PersistentFlags().String("api-key", "",
		fmt.Sprintf("The API key to authenticate with. Overrides %s.", config.KeyAsEnvVar(config.APIKey)))
	rootCmd.PersistentFlags().Var(
		flags.LoggingFlag(&loggingMode), "log-mode",
		`Log format: 'default','json','combined','event'`,
	)
	bindFlag(rootCmd, config.APIURL, "api-url")
	bindFlag(rootCmd, config.APIKey, "api-key")

	return rootCmd
}

func bindFlag(cmd *cobra.Command, key, name string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("DEVELOPER ERROR: %s", err))
	}
}

func Execute() {
	rootCmd := NewRootCmd()

	// Ensure commands are able to stop cleanly if someone presses ctrl+c
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	rootCmd.SetContext(ctx)

	telemetry.SetupFromEnvs()
	cm := system.NewCleanupManager()
	cm.RegisterCallback(telemetry.Cleanup)
	defer cm.CleanupWithTimeout(cleanupTimeout)

	// Use stdout, not stderr for cmd.Print output, so that
	// e.g. ID=$(wataki instance create) works
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("command failed")
		cancel()
		cm.CleanupWithTimeout(cleanupTimeout)
		util.Fatal(rootCmd, err, 1)
	}
}

type contextKey struct {
	name string
}

var spanKey = contextKey{name: "context key for storing the root span"}
