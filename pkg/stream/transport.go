package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

//go:generate mockgen -source=transport.go -destination=mock_stream/mock_transport.go -package=mock_stream

// Close codes used by the stream, matching RFC 6455.
const (
	CloseNormalClosure   = websocket.CloseNormalClosure
	CloseGoingAway       = websocket.CloseGoingAway
	CloseAbnormalClosure = websocket.CloseAbnormalClosure
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	closeFrameTimeout       = time.Second
)

// Conn is one established stream connection.
type Conn interface {
	// ReadMessage blocks until the next frame arrives. A close frame from the
	// peer is reported as a *CloseError.
	ReadMessage() ([]byte, error)
	// Close releases the connection. A blocked ReadMessage returns an error.
	Close() error
}

// Dialer opens stream connections.
type Dialer interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// CloseError reports that the peer closed the connection with a close frame.
type CloseError struct {
	Code int
	Text string
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("stream closed with code %d: %s", e.Code, e.Text)
}

// WebsocketDialer dials the stream over a websocket.
type WebsocketDialer struct {
	HandshakeTimeout time.Duration
	Header           http.Header
}

func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{HandshakeTimeout: defaultHandshakeTimeout}
}

func (d *WebsocketDialer) Dial(ctx context.Context, address string) (Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.HandshakeTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, address, d.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) && resp != nil {
			return nil, fmt.Errorf("dial stream: %w (HTTP %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial stream: %w", err)
	}
	return &websocketConn{conn: conn}, nil
}

type websocketConn struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	closeErr  error
}

func (c *websocketConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) {
			return nil, &CloseError{Code: closeErr.Code, Text: closeErr.Text}
		}
		return nil, err
	}
	return data, nil
}

func (c *websocketConn) Close() error {
	c.closeOnce.Do(func() {
		// best effort, the peer may already be gone
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeFrameTimeout),
		)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// compile-time interface assertions
var _ Dialer = (*WebsocketDialer)(nil)
var _ Conn = (*websocketConn)(nil)
