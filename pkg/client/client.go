package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wataki/wataki-go/pkg/apierrors"
	"github.com/wataki/wataki-go/pkg/logger"
	"github.com/wataki/wataki-go/pkg/models"
	"github.com/wataki/wataki-go/pkg/stream"
	"github.com/wataki/wataki-go/pkg/telemetry"
)

const (
	headerAPIKey         = "X-API-Key"
	headerIdempotencyKey = "Idempotency-Key"

	// error bodies beyond this are truncated
	maxErrorBody = 64 * 1024
)

// Client talks to the control plane of a Wataki deployment and opens event
// streams for its instances. It is safe for concurrent use.
type Client struct {
	baseURL       string
	userAgent     string
	http          *retryablehttp.Client
	logger        zerolog.Logger
	streamOptions []stream.Option

	mu     sync.RWMutex
	apiKey string
}

// New returns a client for the API at baseURL, e.g. https://api.wataki.cloud.
func New(baseURL string, optFns ...OptionFn) *Client {
	cfg := defaultConfig()
	for _, fn := range optFns {
		fn(&cfg)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(nil),
		}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.CheckRetry = retryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = logger.NewLeveledLogger(cfg.Logger)

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		userAgent:     cfg.UserAgent,
		http:          rc,
		logger:        cfg.Logger,
		streamOptions: cfg.StreamOptions,
		apiKey:        cfg.APIKey,
	}
}

// BaseURL returns the API address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAPIKey replaces the key used by subsequent requests and streams.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Health reports whether the platform is up. It needs no API key.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var res models.HealthStatus
	err := c.get(ctx, "Health", "/health", nil, &res)
	return &res, err
}

// DashboardURL is the address of the web dashboard.
func (c *Client) DashboardURL() string {
	return c.baseURL + "/dashboard"
}

type retryableKey struct{}

// retryPolicy only retries requests marked as safe to repeat. Everything
// else fails on the first error so a POST is never sent twice.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if retryable, _ := ctx.Value(retryableKey{}).(bool); !retryable {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	// body is JSON encoded unless it is an io.Reader
	body        interface{}
	contentType string
	header      http.Header
}

func (r *request) retryable() bool {
	switch r.method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	case http.MethodPost:
		return r.header.Get(headerIdempotencyKey) != ""
	default:
		return false
	}
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	return c.do(ctx, &request{op: op, method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, op, path string, in, out interface{}) error {
	return c.do(ctx, &request{op: op, method: http.MethodPost, path: path, body: in}, out)
}

func (c *Client) patch(ctx context.Context, op, path string, in, out interface{}) error {
	return c.do(ctx, &request{op: op, method: http.MethodPatch, path: path, body: in}, out)
}

func (c *Client) delete(ctx context.Context, op, path string) error {
	return c.do(ctx, &request{op: op, method: http.MethodDelete, path: path}, nil)
}

// do sends r and decodes a successful response into out. out may be nil to
// discard the body, or a *[]byte to receive it raw.
func (c *Client) do(ctx context.Context, r *request, out interface{}) error {
	ctx, span := telemetry.NewSpan(ctx, telemetry.GetTracer(), "wataki.client."+r.op,
		trace.WithAttributes(
			attribute.String("http.method", r.method),
			attribute.String("wataki.path", r.path),
		),
	)
	defer span.End()
	record := telemetry.RecordErrorOnSpan(span)

	res, err := c.send(ctx, r)
	if err != nil {
		return record(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		apiErr := apierrors.FromResponse(res.StatusCode, res.Header, body)
		c.logger.Debug().
			Str("op", r.op).
			Int("status", res.StatusCode).
			Str("code", apiErr.Code).
			Msg("request failed")
		return record(apiErr)
	}

	switch v := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	case *[]byte:
		*v, err = io.ReadAll(res.Body)
		if err != nil {
			return record(apierrors.NewUnknownError(pkgerrors.Wrap(err, "error reading response body")))
		}
		return nil
	default:
		if err = decodeBody(res, out); err != nil {
			return record(apierrors.NewUnknownError(pkgerrors.Wrap(err, "error decoding response body")))
		}
		return nil
	}
}

func (c *Client) send(ctx context.Context, r *request) (*http.Response, error) {
	body, contentType, err := encodeBody(r.body, r.contentType)
	if err != nil {
		return nil, apierrors.NewInvalidRequestError(pkgerrors.Wrap(err, "error encoding request body"))
	}

	addr := c.baseURL + r.path
	if len(r.query) > 0 {
		addr += "?" + r.query.Encode()
	}

	if r.retryable() {
		ctx = context.WithValue(ctx, retryableKey{}, true)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, r.method, addr, body)
	if err != nil {
		return nil, apierrors.NewUnknownError(pkgerrors.Wrapf(err, "error creating %s request", r.method))
	}

	for name, values := range r.header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if key := c.key(); key != "" {
		req.Header.Set(headerAPIKey, key)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apierrors.NewContextCanceledError(ctxErr)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apierrors.NewContextCanceledError(err)
		}
		return nil, apierrors.NewUnknownError(pkgerrors.Wrapf(err, "%s %s", r.method, r.path))
	}
	return res, nil
}
