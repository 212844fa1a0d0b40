package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes set by the client itself. Codes returned by the server are
// passed through unchanged.
const (
	ErrorCodeUnknown         = "error-unknown"
	ErrorCodeContextCanceled = "error-context-canceled"
	ErrorCodeInvalidRequest  = "error-invalid-request"
)

const maxMessageBody = 512

// ErrorResponse is a failed control-plane call.
type ErrorResponse struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	RequestID  string                 `json:"-"`
	Err        error                  `json:"-"`
}

func (e *ErrorResponse) Error() string {
	var sb strings.Builder
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, "%d ", e.StatusCode)
	}
	sb.WriteString(e.Code)
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&sb, " (request %s)", e.RequestID)
	}
	return sb.String()
}

func (e *ErrorResponse) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request may succeed later.
func (e *ErrorResponse) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// NewUnknownError wraps a failure that happened before or after the server
// answered, such as a transport or decoding failure.
func NewUnknownError(err error) *ErrorResponse {
	return &ErrorResponse{
		Code:    ErrorCodeUnknown,
		Message: err.Error(),
		Err:     err,
	}
}

// NewContextCanceledError wraps a call aborted by its context.
func NewContextCanceledError(err error) *ErrorResponse {
	return &ErrorResponse{
		Code:    ErrorCodeContextCanceled,
		Message: err.Error(),
		Err:     err,
	}
}

// NewInvalidRequestError reports arguments rejected before any request was sent.
func NewInvalidRequestError(err error) *ErrorResponse {
	return &ErrorResponse{
		Code:    ErrorCodeInvalidRequest,
		Message: err.Error(),
		Err:     err,
	}
}

// FromResponse builds the error for a non-2xx response. The body may be
// {"error": {...}}, a bare {"code", "message"} object, or anything else.
func FromResponse(statusCode int, header http.Header, body []byte) *ErrorResponse {
	e := &ErrorResponse{StatusCode: statusCode}
	if header != nil {
		e.RequestID = header.Get("X-Request-ID")
	}

	var wrapped struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		switch {
		case len(wrapped.Error) > 0 && wrapped.Error[0] == '{':
			_ = json.Unmarshal(wrapped.Error, e)
		case len(wrapped.Error) > 0 && wrapped.Error[0] == '"':
			_ = json.Unmarshal(wrapped.Error, &e.Message)
		default:
			_ = json.Unmarshal(body, e)
		}
	}

	if e.Code == "" {
		e.Code = ErrorCodeUnknown
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
		if len(e.Message) > maxMessageBody {
			e.Message = e.Message[:maxMessageBody] + "..."
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}
	return e
}

func statusCode(err error) int {
	var e *ErrorResponse
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports a missing, invalid or insufficient API key.
func IsUnauthorized(err error) bool {
	code := statusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func IsRateLimited(err error) bool {
	return statusCode(err) == http.StatusTooManyRequests
}

// IsPaymentRequired reports that the plan's message quota is used up.
func IsPaymentRequired(err error) bool {
	return statusCode(err) == http.StatusPaymentRequired
}
