package client

import (
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/wataki/wataki-go/pkg/stream"
)

// StreamURL returns the websocket address of an instance's event stream,
// with the API key embedded as the api_key query parameter.
func (c *Client) StreamURL(instanceID string) (string, error) {
	if err := requireID("instance id", instanceID); err != nil {
		return "", err
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", pkgerrors.Wrap(err, "invalid base url")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", pkgerrors.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	u.RawQuery = ""
	u.Fragment = ""

	q := url.Values{}
	q.Set("api_key", c.key())
	return strings.TrimRight(u.String(), "/") + instancePath(instanceID) + "/stream?" + q.Encode(), nil
}

// Subscribe opens the event stream of an instance. The stream starts
// connecting immediately; pass stream.WithListener options to be sure no
// early event is missed, or use WaitOpen before acting.
func (c *Client) Subscribe(instanceID string, opts ...stream.Option) (*stream.Stream, error) {
	address, err := c.StreamURL(instanceID)
	if err != nil {
		return nil, err
	}

	dialer := stream.NewWebsocketDialer()
	dialer.Header = http.Header{}
	dialer.Header.Set("User-Agent", c.userAgent)

	all := make([]stream.Option, 0, len(c.streamOptions)+len(opts)+2)
	all = append(all,
		stream.WithDialer(dialer),
		stream.WithLogger(c.logger.With().Str("instance", instanceID).Logger()),
	)
	all = append(all, c.streamOptions...)
	all = append(all, opts...)
	return stream.New(address, all...), nil
}
