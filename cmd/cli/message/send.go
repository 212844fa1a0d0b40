package message

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

type sendOptions struct {
	ChatID         string
	Type           models.MessageType
	Content        string
	IdempotencyKey string
	OutputOpts     output.NonTabularOutputOptions
}

func newSendCmd() *cobra.Command {
	o := &sendOptions{
		Type:       models.MessageTypeText,
		OutputOpts: output.NonTabularOutputOptions{Format: output.YAMLFormat},
	}
	sendCmd := &cobra.Command{
		Use:   "send [text]",
		Short: "Send a message to a chat.",
		Long: `Send a message to a chat. A text message takes its body from the argument;
other types take a JSON object with --content.

Every send carries an idempotency key so a retried request is delivered at most
once. A random key is generated unless --idempotency-key is given.`,
		Example: `  wataki message send --chat 15551234567@s.whatsapp.net "hello"
  wataki message send --chat 15551234567@s.whatsapp.net --type image --content '{"media_id":"med-1"}'`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, []string{instanceFlag})
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			req, err := o.request(args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			res, err := util.GetAPIClient(ctx).Messages().Send(ctx, instanceID, req)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to send message: %w", err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, o.OutputOpts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	sendCmd.Flags().StringVar(&o.ChatID, "chat", "", "The chat to send to")
	_ = sendCmd.MarkFlagRequired("chat")
	sendCmd.Flags().Var(flags.MessageTypeFlag(&o.Type), "type", fmt.Sprintf("The message type (one of %q)", models.MessageTypes))
	sendCmd.Flags().StringVar(&o.Content, "content", "", "The message content as a JSON object")
	sendCmd.Flags().StringVar(&o.IdempotencyKey, "idempotency-key", "", "Key that deduplicates retries of this send")
	sendCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&o.OutputOpts))
	return sendCmd
}

func (o *sendOptions) request(args []string) (*models.SendMessageRequest, error) {
	var req *models.SendMessageRequest
	switch {
	case o.Content != "":
		content := map[string]interface{}{}
		if err := json.Unmarshal([]byte(o.Content), &content); err != nil {
			return nil, fmt.Errorf("--content is not a JSON object: %w", err)
		}
		req = &models.SendMessageRequest{ChatID: o.ChatID, Type: o.Type, Content: content}
	case len(args) == 1 && o.Type == models.MessageTypeText:
		req = models.NewTextMessage(o.ChatID, args[0])
	default:
		return nil, fmt.Errorf("a %s message needs --content", o.Type)
	}

	req.IdempotencyKey = o.IdempotencyKey
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}
	return req, nil
}
