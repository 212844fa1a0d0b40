package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wataki/wataki-go/pkg/models"
)

// Kind names an event. Server events use the envelope's event field verbatim,
// so any string is a valid Kind.
type Kind string

const (
	// Lifecycle events. The stream emits them itself, and the server may
	// send error and close frames of its own.
	KindOpen  Kind = "open"
	KindClose Kind = "close"
	KindError Kind = "error"

	// Server events.
	KindMessageReceived  Kind = "message.received"
	KindMessageStatus    Kind = "message.status"
	KindConnectionUpdate Kind = "connection.update"
	KindQRUpdated        Kind = "qr.updated"
)

func (k Kind) String() string {
	return string(k)
}

// IsLifecycle reports whether the kind is one of open, close or error.
func (k Kind) IsLifecycle() bool {
	return k == KindOpen || k == KindClose || k == KindError
}

// Event is what listeners receive. Which fields are set depends on Kind:
// server events carry Data, close carries Code and Reason, error carries Err.
type Event struct {
	Kind   Kind
	Data   json.RawMessage
	Code   int
	Reason string
	Err    error

	// payload is the typed form of Data for the known server kinds, decoded
	// once per frame and shared by every typed listener.
	payload    interface{}
	payloadErr error
}

// Decode unmarshals the event's data into v.
func (e Event) Decode(v interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s has no data", e.Kind)
	}
	return json.Unmarshal(e.Data, v)
}

func openEvent() Event {
	return Event{Kind: KindOpen}
}

func closeEvent(code int, reason string) Event {
	return Event{Kind: KindClose, Code: code, Reason: reason}
}

func errorEvent(err error) Event {
	return Event{Kind: KindError, Err: err}
}

// ServerError is the error carried by an error frame sent by the server.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "stream server error: " + e.Message
}

// serverLifecycle is the data of a server sent error or close frame. The
// message may also arrive as a bare string.
type serverLifecycle struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
}

func envelopeEvent(env *Envelope) Event {
	ev := Event{Kind: env.Kind, Data: env.Data}
	if env.Kind.IsLifecycle() {
		var data serverLifecycle
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &data) != nil {
			var text string
			if json.Unmarshal(env.Data, &text) == nil {
				data.Message = text
			} else {
				data.Message = string(env.Data)
			}
		}
		switch env.Kind {
		case KindError:
			if data.Message == "" {
				data.Message = "unspecified"
			}
			ev.Err = &ServerError{Message: data.Message}
		case KindClose:
			ev.Code, ev.Reason = data.Code, data.Reason
			if ev.Reason == "" {
				ev.Reason = data.Message
			}
		}
		return ev
	}

	if decode, ok := payloadDecoders[env.Kind]; ok {
		ev.payload, ev.payloadErr = decode(env.Data)
		if ev.payloadErr != nil {
			ev.payload = nil
			ev.payloadErr = NewDecodeError(env.Data, "unexpected "+env.Kind.String()+" payload", ev.payloadErr)
		}
	}
	return ev
}

var payloadDecoders = map[Kind]func(json.RawMessage) (interface{}, error){
	KindMessageReceived:  decodePayload[MessageReceived],
	KindMessageStatus:    decodePayload[MessageStatusUpdate],
	KindConnectionUpdate: decodePayload[ConnectionUpdate],
	KindQRUpdated:        decodePayload[QRUpdate],
}

func decodePayload[T any](data json.RawMessage) (interface{}, error) {
	if len(data) == 0 {
		return nil, errors.New("missing data")
	}
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// MessageReceived is the payload of message.received. The server may send
// either the bare message record or {"instance_id", "message"}.
type MessageReceived struct {
	InstanceID string `json:"instance_id,omitempty"`
	models.Message
}

func (m *MessageReceived) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		InstanceID string          `json:"instance_id"`
		Message    *models.Message `json:"message"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	m.InstanceID = wrapped.InstanceID
	if wrapped.Message != nil {
		m.Message = *wrapped.Message
		return nil
	}
	return json.Unmarshal(b, &m.Message)
}

// MessageStatusUpdate is the payload of message.status.
type MessageStatusUpdate struct {
	InstanceID string               `json:"instance_id,omitempty"`
	MessageID  string               `json:"message_id"`
	Status     models.MessageStatus `json:"status"`
	Timestamp  string               `json:"timestamp,omitempty"`
}

// ConnectionUpdate is the payload of connection.update. The server may send
// either the bare status record or {"instance_id", "status"}.
type ConnectionUpdate struct {
	InstanceID string `json:"instance_id,omitempty"`
	models.InstanceStatus
}

func (c *ConnectionUpdate) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		InstanceID string          `json:"instance_id"`
		Status     json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	c.InstanceID = wrapped.InstanceID
	if status := bytes.TrimSpace(wrapped.Status); len(status) > 0 && status[0] == '{' {
		return json.Unmarshal(status, &c.InstanceStatus)
	}
	return json.Unmarshal(b, &c.InstanceStatus)
}

// QRUpdate is the payload of qr.updated.
type QRUpdate struct {
	InstanceID string `json:"instance_id,omitempty"`
	QR         string `json:"qr"`
}
