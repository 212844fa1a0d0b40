package stream

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

var (
	// ErrMaxReconnectAttempts is matched by the terminal error emitted once the
	// reconnection policy is exhausted.
	ErrMaxReconnectAttempts = errors.New("max reconnect attempts reached")
	// ErrClosed is returned by WaitOpen and Await after Close was called.
	ErrClosed = errors.New("stream closed")
	// ErrDisconnected is returned by WaitOpen and Await when the connection
	// ended and reconnection is disabled.
	ErrDisconnected = errors.New("stream disconnected")
)

// MaxReconnectAttemptsError is emitted as the last error event of a stream
// whose reconnection policy ran out.
type MaxReconnectAttemptsError struct {
	Attempts int
}

func (e *MaxReconnectAttemptsError) Error() string {
	return fmt.Sprintf("max reconnect attempts (%d) reached", e.Attempts)
}

func (e *MaxReconnectAttemptsError) Is(target error) bool {
	return target == ErrMaxReconnectAttempts
}

type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Stream is one logical subscription to the event stream. It starts
// connecting as soon as it is created and keeps at most one connection open
// at a time.
//
// Each connection attempt runs on its own goroutine and the next attempt is
// only scheduled after the previous connection's close event has been
// dispatched, so listeners never run concurrently with each other.
//
// A failed dial is reported only as a close event with code 1006 whose
// reason is the dial error. No error event is emitted for it.
type Stream struct {
	address string
	policy  Policy
	dialer  Dialer
	clock   clock.Clock
	logger  zerolog.Logger
	router  *Router

	mu         sync.Mutex
	state      State
	attempt    int
	terminal   bool // set by Close
	stopped    bool // no further transitions
	err        error
	conn       Conn
	cancelDial context.CancelFunc
	timer      *clock.Timer
	changed    chan struct{}
	done       chan struct{}
}

// New creates a stream for address and starts connecting immediately.
func New(address string, opts ...Option) *Stream {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Stream{
		address: address,
		policy:  o.policy,
		dialer:  o.dialer,
		clock:   o.clock,
		logger:  o.logger.With().Str("stream", redactAddress(address)).Logger(),
		changed: make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.router = NewRouter(s.logger)
	for _, l := range o.listeners {
		s.router.On(l.kind, l.handler)
	}

	s.mu.Lock()
	s.startLocked()
	s.mu.Unlock()
	return s
}

// startLocked begins a new connection generation. s.mu must be held.
func (s *Stream) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s.state = StateConnecting
	s.cancelDial = cancel
	s.timer = nil
	s.notifyLocked()
	go s.run(ctx, cancel)
}

func (s *Stream) run(ctx context.Context, cancel context.CancelFunc) {
	conn, err := s.dialer.Dial(ctx, s.address)
	cancel()
	if err != nil {
		s.logger.Debug().Err(err).Msg("stream connection failed")
		s.closed(CloseAbnormalClosure, err.Error(), nil)
		return
	}

	s.mu.Lock()
	s.cancelDial = nil
	if s.terminal {
		s.mu.Unlock()
		_ = conn.Close()
		s.closed(CloseNormalClosure, "", nil)
		return
	}
	s.conn = conn
	s.state = StateOpen
	s.attempt = 0
	s.notifyLocked()
	s.mu.Unlock()

	s.logger.Debug().Msg("stream open")
	s.router.Dispatch(openEvent())

	code, reason, err := s.read(conn)
	_ = conn.Close()
	s.closed(code, reason, err)
}

// read forwards frames until the connection ends and reports how it ended.
// The returned error is set only for failures other than a close frame.
func (s *Stream) read(conn Conn) (int, string, error) {
	for {
		frame, err := conn.ReadMessage()
		if err != nil {
			var closeErr *CloseError
			if errors.As(err, &closeErr) {
				return closeErr.Code, closeErr.Text, nil
			}
			return CloseAbnormalClosure, err.Error(), err
		}

		env, err := DecodeEnvelope(frame)
		if err != nil {
			s.logger.Debug().Err(err).Msg("skipping malformed stream frame")
			s.router.Dispatch(errorEvent(err))
			continue
		}
		ev := envelopeEvent(env)
		s.router.Dispatch(ev)
		if ev.payloadErr != nil {
			s.router.Dispatch(errorEvent(ev.payloadErr))
		}
	}
}

// closed ends the current generation and applies the reconnection policy.
func (s *Stream) closed(code int, reason string, transportErr error) {
	s.mu.Lock()
	s.conn = nil
	s.cancelDial = nil
	s.state = StateClosed
	terminal := s.terminal
	reconnect := !terminal && s.policy.Reconnect
	exhausted := false
	if reconnect {
		s.attempt++
		exhausted = s.attempt >= s.policy.MaxAttempts
	}
	attempt := s.attempt
	s.notifyLocked()
	s.mu.Unlock()

	if terminal {
		// the socket error is our own doing
		if transportErr != nil || code == CloseAbnormalClosure {
			code, reason = CloseNormalClosure, "closed by client"
		}
		transportErr = nil
	}

	s.logger.Debug().Int("code", code).Str("reason", reason).Int("attempt", attempt).Msg("stream closed")
	if transportErr != nil {
		s.router.Dispatch(errorEvent(fmt.Errorf("stream transport: %w", transportErr)))
	}
	s.router.Dispatch(closeEvent(code, reason))

	switch {
	case terminal:
		s.finish(ErrClosed)
		return
	case !reconnect:
		s.finish(ErrDisconnected)
		return
	case exhausted:
		err := &MaxReconnectAttemptsError{Attempts: s.policy.MaxAttempts}
		s.logger.Warn().Err(err).Msg("giving up on stream")
		s.router.Dispatch(errorEvent(err))
		s.finish(err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		// Close ran while the close event was being dispatched
		s.finishLocked(ErrClosed)
		return
	}
	s.logger.Debug().Int("attempt", attempt).Dur("interval", s.policy.Interval).Msg("scheduling stream reconnect")
	s.timer = s.clock.AfterFunc(s.policy.Interval, s.reconnect)
}

func (s *Stream) reconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal || s.stopped {
		return
	}
	s.startLocked()
}

func (s *Stream) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked(err)
}

func (s *Stream) finishLocked(err error) {
	if s.stopped {
		return
	}
	s.stopped = true
	s.err = err
	s.state = StateClosed
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	close(s.done)
	s.notifyLocked()
}

// notifyLocked wakes everyone waiting for a state change. s.mu must be held.
func (s *Stream) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Close stops the stream for good: the pending reconnect is cancelled, an
// in-flight connection attempt is aborted and the open connection is closed.
// An active connection produces one last close event. Calling Close more than
// once is a no-op.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.terminal {
		s.mu.Unlock()
		return nil
	}
	s.terminal = true
	conn := s.conn
	cancel := s.cancelDial
	idle := false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
		idle = true
	}
	if idle {
		s.finishLocked(ErrClosed)
	}
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// State returns the current connection state.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the stream has stopped for good.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Err returns why the stream stopped, or nil while it is still running.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// WaitOpen blocks until the stream is open, the stream stops, or ctx ends.
func (s *Stream) WaitOpen(ctx context.Context) error {
	for {
		s.mu.Lock()
		state, stopped, err, changed := s.state, s.stopped, s.err, s.changed
		s.mu.Unlock()

		if stopped {
			return err
		}
		if state == StateOpen {
			return nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Await blocks until an event of kind satisfying match is dispatched. A nil
// match accepts the first event of kind. The temporary listener is removed
// before Await returns.
func (s *Stream) Await(ctx context.Context, kind Kind, match func(Event) bool) (Event, error) {
	found := make(chan Event, 1)
	reg := s.On(kind, func(ev Event) {
		if match != nil && !match(ev) {
			return
		}
		select {
		case found <- ev:
		default:
		}
	})
	defer reg.Remove()

	select {
	case ev := <-found:
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case <-s.done:
		select {
		case ev := <-found:
			return ev, nil
		default:
			return Event{}, s.Err()
		}
	}
}

// On registers h for events of kind, including kinds this package does not
// know about.
// A nil handler registers nothing.
func (s *Stream) On(kind Kind, h Handler) *Registration {
	return s.router.On(kind, h)
}

func (s *Stream) OnOpen(fn func()) *Registration {
	if fn == nil {
		return &Registration{}
	}
	return s.On(KindOpen, func(Event) { fn() })
}

func (s *Stream) OnClose(fn func(code int, reason string)) *Registration {
	if fn == nil {
		return &Registration{}
	}
	return s.On(KindClose, func(ev Event) { fn(ev.Code, ev.Reason) })
}

func (s *Stream) OnError(fn func(err error)) *Registration {
	if fn == nil {
		return &Registration{}
	}
	return s.On(KindError, func(ev Event) { fn(ev.Err) })
}

func (s *Stream) OnMessageReceived(fn func(MessageReceived)) *Registration {
	return s.On(KindMessageReceived, typedHandler(fn))
}

func (s *Stream) OnMessageStatus(fn func(MessageStatusUpdate)) *Registration {
	return s.On(KindMessageStatus, typedHandler(fn))
}

func (s *Stream) OnConnectionUpdate(fn func(ConnectionUpdate)) *Registration {
	return s.On(KindConnectionUpdate, typedHandler(fn))
}

func (s *Stream) OnQRUpdated(fn func(QRUpdate)) *Registration {
	return s.On(KindQRUpdated, typedHandler(fn))
}

// typedHandler hands fn the payload decoded by the read loop. A payload that
// did not fit T was already reported there, once for the frame, and the
// listener is skipped.
func typedHandler[T any](fn func(T)) Handler {
	if fn == nil {
		return nil
	}
	return func(ev Event) {
		if payload, ok := ev.payload.(T); ok {
			fn(payload)
		}
	}
}

// redactAddress hides the credential embedded in the stream address.
func redactAddress(address string) string {
	u, err := url.Parse(address)
	if err != nil {
		return "invalid-address"
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
