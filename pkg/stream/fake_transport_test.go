//go:build unit || !integration

package stream_test

import (
	"context"
	"errors"
	"sync"

	"github.com/wataki/wataki-go/pkg/stream"
)

var errUseOfClosedConn = errors.New("use of closed network connection")

type readResult struct {
	frame []byte
	err   error
}

// fakeConn delivers scripted reads in the order they were queued.
type fakeConn struct {
	reads     chan readResult
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		reads:  make(chan readResult, 64),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case r := <-c.reads:
		return r.frame, r.err
	case <-c.closed:
		return nil, errUseOfClosedConn
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) send(frame string) {
	c.reads <- readResult{frame: []byte(frame)}
}

func (c *fakeConn) serverClose(code int, text string) {
	c.reads <- readResult{err: &stream.CloseError{Code: code, Text: text}}
}

func (c *fakeConn) fail(err error) {
	c.reads <- readResult{err: err}
}

type dialResult struct {
	conn stream.Conn
	err  error
}

// fakeDialer hands out scripted dial results. A dial with nothing scripted
// blocks until a result is queued or the context ends.
type fakeDialer struct {
	results chan dialResult

	mu        sync.Mutex
	dials     int
	addresses []string
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{results: make(chan dialResult, 16)}
}

func (d *fakeDialer) Dial(ctx context.Context, address string) (stream.Conn, error) {
	d.mu.Lock()
	d.dials++
	d.addresses = append(d.addresses, address)
	d.mu.Unlock()

	select {
	case r := <-d.results:
		return r.conn, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func (d *fakeDialer) succeed(c *fakeConn) {
	d.results <- dialResult{conn: c}
}

func (d *fakeDialer) refuse(err error) {
	d.results <- dialResult{err: err}
}

// recorder captures every event dispatched to it.
type recorder struct {
	mu     sync.Mutex
	events []stream.Event
}

func (r *recorder) handle(ev stream.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []stream.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]stream.Event(nil), r.events...)
}

func (r *recorder) kinds() []stream.Kind {
	events := r.all()
	kinds := make([]stream.Kind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func (r *recorder) count(kind stream.Kind) int {
	n := 0
	for _, ev := range r.all() {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// options registers the recorder for the given kinds before the first dial.
func (r *recorder) options(kinds ...stream.Kind) []stream.Option {
	opts := make([]stream.Option, 0, len(kinds))
	for _, k := range kinds {
		opts = append(opts, stream.WithListener(k, r.handle))
	}
	return opts
}
