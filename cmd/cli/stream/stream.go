package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/pkg/stream"
)

var serverKinds = []stream.Kind{
	stream.KindMessageReceived,
	stream.KindMessageStatus,
	stream.KindConnectionUpdate,
	stream.KindQRUpdated,
}

type Options struct {
	Events []string
	JSON   bool
}

func NewOptions() *Options {
	return &Options{
		Events: lo.Map(serverKinds, func(k stream.Kind, _ int) string { return k.String() }),
	}
}

func NewCmd() *cobra.Command {
	o := NewOptions()
	streamCmd := &cobra.Command{
		Use:   "stream [instance-id]",
		Short: "Print the live events of an instance until interrupted.",
		Long: `Print the live events of an instance until interrupted. The connection is
re-established after a drop, following the stream settings of the config.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: hook.ClientPreRunHooks,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, args)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			kinds, err := o.kinds()
			if err != nil {
				util.Fatal(cmd, err, 1)
			}

			p := &printer{out: cmd.OutOrStdout(), json: o.JSON}
			opts := []stream.Option{
				stream.WithListener(stream.KindOpen, p.print),
				stream.WithListener(stream.KindClose, p.print),
				stream.WithListener(stream.KindError, p.print),
			}
			for _, k := range kinds {
				opts = append(opts, stream.WithListener(k, p.print))
			}

			events, err := util.GetAPIClient(ctx).Subscribe(instanceID, opts...)
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			defer events.Close()

			select {
			case <-ctx.Done():
			case <-events.Done():
				// a server-side normal close ends the tail quietly
				if err = events.Err(); errors.Is(err, stream.ErrMaxReconnectAttempts) {
					util.Fatal(cmd, err, 1)
				}
			}
		},
	}
	streamCmd.Flags().StringSliceVar(&o.Events, "events", o.Events, "The event types to print")
	streamCmd.Flags().BoolVar(&o.JSON, "json", o.JSON, "Print one JSON object per event")
	return streamCmd
}

func (o *Options) kinds() ([]stream.Kind, error) {
	kinds := make([]stream.Kind, 0, len(o.Events))
	for _, e := range o.Events {
		k := stream.Kind(e)
		if !lo.Contains(serverKinds, k) {
			return nil, fmt.Errorf("unknown event type %q, expected one of %q", e, serverKinds)
		}
		kinds = append(kinds, k)
	}
	return lo.Uniq(kinds), nil
}

// printer writes events as they arrive. Listeners may run on different
// goroutines across reconnects, so writes are serialized.
type printer struct {
	mu   sync.Mutex
	out  io.Writer
	json bool
	now  func() time.Time
}

type jsonEvent struct {
	Time   time.Time       `json:"time"`
	Event  stream.Kind     `json:"event"`
	Data   json.RawMessage `json:"data,omitempty"`
	Code   int             `json:"code,omitempty"`
	Reason string          `json:"reason,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (p *printer) print(ev stream.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.now != nil {
		now = p.now()
	}

	if p.json {
		line := jsonEvent{Time: now.UTC(), Event: ev.Kind, Data: ev.Data, Code: ev.Code, Reason: ev.Reason}
		if ev.Err != nil {
			line.Error = ev.Err.Error()
		}
		_ = json.NewEncoder(p.out).Encode(line)
		return
	}

	prefix := fmt.Sprintf("%s %-18s", now.Format(time.TimeOnly), ev.Kind)
	switch ev.Kind {
	case stream.KindOpen:
		fmt.Fprintf(p.out, "%s connected\n", prefix)
	case stream.KindClose:
		fmt.Fprintf(p.out, "%s code=%d %s\n", prefix, ev.Code, ev.Reason)
	case stream.KindError:
		fmt.Fprintf(p.out, "%s %v\n", prefix, ev.Err)
	default:
		fmt.Fprintf(p.out, "%s %s\n", prefix, ev.Data)
	}
}
