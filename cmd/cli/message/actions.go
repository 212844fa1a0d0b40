package message

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

func instanceOrFatal(cmd *cobra.Command) string {
	instanceID, err := util.InstanceID(cmd.Context(), []string{instanceFlag})
	if err != nil {
		util.Fatal(cmd, err, 1)
	}
	return instanceID
}

func newDescribeCmd() *cobra.Command {
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	describeCmd := &cobra.Command{
		Use:   "describe <message-id>",
		Short: "Get a message by id.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Messages().Get(ctx, instanceOrFatal(cmd), args[0])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("could not get message %s: %w", args[0], err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	describeCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return describeCmd
}

func newReactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "react <message-id> <emoji>",
		Short: "React to a message with an emoji.",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Messages().React(ctx, instanceOrFatal(cmd), args[0], args[1])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to react to message %s: %w", args[0], err), 1)
			}
			cmd.Printf("Reaction sent as message %s\n", res.ID)
		},
	}
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <message-id>",
		Short: "Mark a message as read.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Messages().MarkRead(ctx, instanceOrFatal(cmd), args[0])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to mark message %s read: %w", args[0], err), 1)
			}
			output.KeyValue(cmd, []lo.Entry[string, any]{
				{Key: "Message", Value: res.MessageID},
				{Key: "Status", Value: res.Status},
				{Key: "Time", Value: res.Timestamp},
			})
		},
	}
}

func newPresenceCmd() *cobra.Command {
	state := models.PresenceComposing
	presenceCmd := &cobra.Command{
		Use:   "presence <chat-id>",
		Short: "Show a typing or recording indicator in a chat.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			res, err := util.GetAPIClient(ctx).Messages().SendPresence(ctx, instanceOrFatal(cmd), &models.PresenceRequest{
				ChatID: args[0],
				State:  state,
			})
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to send presence: %w", err), 1)
			}
			cmd.Printf("%s in %s\n", res.State, res.ChatID)
		},
	}
	presenceCmd.Flags().Var(flags.PresenceFlag(&state), "state", fmt.Sprintf("One of %q", models.PresenceStates))
	return presenceCmd
}
