//go:build unit || !integration

package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"event":"message.status","data":{"message_id":"m1"}}`))
	require.NoError(t, err)
	require.Equal(t, KindMessageStatus, env.Kind)
	require.JSONEq(t, `{"message_id":"m1"}`, string(env.Data))
}

func TestDecodeEnvelopeWithoutData(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"event":"ping"}`))
	require.NoError(t, err)
	require.Equal(t, Kind("ping"), env.Kind)
	require.Nil(t, env.Data)
}

func TestDecodeEnvelopeKeepsDataBytes(t *testing.T) {
	frame := []byte(`{"data":  [1, "two" ,{"x":null}] ,"event":"custom"}`)
	env, err := DecodeEnvelope(frame)
	require.NoError(t, err)
	require.Equal(t, `[1, "two" ,{"x":null}]`, string(env.Data))

	// the envelope must not alias the read buffer
	frame[10] = '9'
	require.Equal(t, `[1, "two" ,{"x":null}]`, string(env.Data))
}

func TestDecodeEnvelopeFailures(t *testing.T) {
	for _, tc := range []struct {
		name   string
		frame  string
		reason string
	}{
		{name: "empty", frame: "", reason: "empty frame"},
		{name: "not json", frame: "not-json", reason: "malformed envelope"},
		{name: "truncated", frame: `{"event":"qr.updated"`, reason: "malformed envelope"},
		{name: "array", frame: `[1,2]`, reason: "malformed envelope"},
		{name: "missing event", frame: `{"data":{}}`, reason: "missing event field"},
		{name: "null event", frame: `{"event":null}`, reason: "missing event field"},
		{name: "empty event", frame: `{"event":""}`, reason: "empty event field"},
		{name: "numeric event", frame: `{"event":12}`, reason: "malformed envelope"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tc.frame))
			require.Nil(t, env)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			require.Equal(t, tc.reason, decodeErr.Reason)
			require.Equal(t, tc.frame, decodeErr.Raw)
			require.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestKindIsLifecycle(t *testing.T) {
	require.True(t, KindOpen.IsLifecycle())
	require.True(t, KindClose.IsLifecycle())
	require.True(t, KindError.IsLifecycle())
	require.False(t, KindQRUpdated.IsLifecycle())
	require.False(t, Kind("custom").IsLifecycle())
}

func TestEventDecodeWithoutData(t *testing.T) {
	var v map[string]interface{}
	require.Error(t, Event{Kind: KindQRUpdated}.Decode(&v))
}

func TestEnvelopeEventServerLifecycle(t *testing.T) {
	ev := envelopeEvent(&Envelope{Kind: KindClose, Data: []byte(`{"code":4000,"reason":"bye"}`)})
	require.Equal(t, 4000, ev.Code)
	require.Equal(t, "bye", ev.Reason)
	require.NoError(t, ev.Err)

	ev = envelopeEvent(&Envelope{Kind: KindError, Data: []byte(`{"message":"boom"}`)})
	require.EqualError(t, ev.Err, "stream server error: boom")
}

func TestEnvelopeEventDecodesPayloadOnce(t *testing.T) {
	ev := envelopeEvent(&Envelope{Kind: KindQRUpdated, Data: []byte(`{"qr":"2@abc"}`)})
	require.NoError(t, ev.payloadErr)
	require.Equal(t, QRUpdate{QR: "2@abc"}, ev.payload)

	ev = envelopeEvent(&Envelope{Kind: KindQRUpdated, Data: []byte(`"bad"`)})
	require.Nil(t, ev.payload)
	var decodeErr *DecodeError
	require.ErrorAs(t, ev.payloadErr, &decodeErr)
	require.Equal(t, `"bad"`, decodeErr.Raw)

	ev = envelopeEvent(&Envelope{Kind: "custom", Data: []byte(`"anything"`)})
	require.Nil(t, ev.payload)
	require.NoError(t, ev.payloadErr)
}
