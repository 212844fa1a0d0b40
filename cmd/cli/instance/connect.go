package instance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/pkg/models"
	"github.com/wataki/wataki-go/pkg/stream"
)

const defaultConnectTimeout = 3 * time.Minute

type ConnectOptions struct {
	Timeout time.Duration
	NoWait  bool
}

func NewConnectOptions() *ConnectOptions {
	return &ConnectOptions{Timeout: defaultConnectTimeout}
}

func NewConnectCmd() *cobra.Command {
	o := NewConnectOptions()
	connectCmd := &cobra.Command{
		Use:   "connect [id]",
		Short: "Pair an instance with a phone, printing QR codes until it is connected.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			if err = o.run(ctx, cmd, instanceID); err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to connect instance %s: %w", instanceID, err), 1)
			}
		},
	}
	connectCmd.Flags().DurationVar(&o.Timeout, "timeout", o.Timeout, "How long to wait for the phone to be paired")
	connectCmd.Flags().BoolVar(&o.NoWait, "no-wait", o.NoWait, "Print the first QR code and exit without waiting")
	return connectCmd
}

func (o *ConnectOptions) run(ctx context.Context, cmd *cobra.Command, instanceID string) error {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	api := util.GetAPIClient(ctx)

	// subscribe before asking for a connection so no QR update is missed
	updates := make(chan stream.Event, 16)
	forward := func(ev stream.Event) {
		select {
		case updates <- ev:
		default:
			log.Ctx(ctx).Warn().Str("event", ev.Kind.String()).Msg("dropping update, printer is behind")
		}
	}
	events, err := api.Subscribe(instanceID,
		stream.WithListener(stream.KindQRUpdated, forward),
		stream.WithListener(stream.KindConnectionUpdate, forward),
	)
	if err != nil {
		return err
	}
	defer events.Close()

	if err = events.WaitOpen(ctx); err != nil {
		return fmt.Errorf("event stream did not open: %w", err)
	}

	res, err := api.Instances().Connect(ctx, instanceID)
	if err != nil {
		return err
	}
	if res.Status.State == models.InstanceStateConnected {
		cmd.Println("Instance is already connected")
		return nil
	}
	if res.QR != nil {
		printQR(cmd, *res.QR)
		if o.NoWait {
			return nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("phone not paired within %s", o.Timeout)
			}
			return ctx.Err()
		case <-events.Done():
			return fmt.Errorf("event stream stopped: %w", events.Err())
		case ev := <-updates:
			done, err := o.handle(cmd, ev)
			if done || err != nil {
				return err
			}
		}
	}
}

// handle prints one update and reports whether pairing finished.
func (o *ConnectOptions) handle(cmd *cobra.Command, ev stream.Event) (bool, error) {
	switch ev.Kind {
	case stream.KindQRUpdated:
		var qr stream.QRUpdate
		if err := ev.Decode(&qr); err != nil {
			return false, err
		}
		printQR(cmd, qr.QR)
		return o.NoWait, nil
	case stream.KindConnectionUpdate:
		var update stream.ConnectionUpdate
		if err := ev.Decode(&update); err != nil {
			return false, err
		}
		cmd.Printf("Connection state: %s\n", update.State)
		switch update.State {
		case models.InstanceStateConnected:
			return true, nil
		case models.InstanceStateLoggedOut, models.InstanceStateError:
			if update.LastError != nil {
				return true, fmt.Errorf("instance %s: %s", update.State, *update.LastError)
			}
			return true, fmt.Errorf("instance %s", update.State)
		}
	}
	return false, nil
}

func printQR(cmd *cobra.Command, qr string) {
	cmd.Println("Scan this code from WhatsApp > Linked devices:")
	cmd.Println(qr)
}
