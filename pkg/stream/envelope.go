package stream

import (
	"encoding/json"
	"fmt"
)

// Envelope is the decoded form of one inbound frame.
type Envelope struct {
	Kind Kind
	// Data is the frame's "data" field exactly as it appeared on the wire.
	Data json.RawMessage
}

// wireEnvelope mirrors the frame layout. Event is a pointer so a missing
// field can be told apart from an empty one.
type wireEnvelope struct {
	Event *string         `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// DecodeError is returned when an inbound frame is not a well formed envelope.
type DecodeError struct {
	Raw    string
	Reason string
	Err    error
}

// NewDecodeError creates a new DecodeError for the given frame.
func NewDecodeError(raw []byte, reason string, err error) *DecodeError {
	return &DecodeError{Raw: string(raw), Reason: reason, Err: err}
}

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid stream message (%s): %s", e.Reason, e.Raw)
}

// Unwrap returns the underlying error for DecodeError.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeEnvelope decodes a raw frame. It never returns a partial envelope.
func DecodeEnvelope(frame []byte) (*Envelope, error) {
	if len(frame) == 0 {
		return nil, NewDecodeError(frame, "empty frame", nil)
	}

	var wire wireEnvelope
	if err := json.Unmarshal(frame, &wire); err != nil {
		return nil, NewDecodeError(frame, "malformed envelope", err)
	}
	if wire.Event == nil {
		return nil, NewDecodeError(frame, "missing event field", nil)
	}
	if *wire.Event == "" {
		return nil, NewDecodeError(frame, "empty event field", nil)
	}

	env := &Envelope{Kind: Kind(*wire.Event)}
	if len(wire.Data) > 0 {
		env.Data = append(json.RawMessage(nil), wire.Data...)
	}
	return env, nil
}

// compile time check
var _ interface{ Unwrap() error } = (*DecodeError)(nil)
