//go:build unit || !integration

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func TestRecordErrorOnSpan(t *testing.T) {
	span := &testSpan{}
	f := RecordErrorOnSpan(span)

	expectedErr := errors.New("dummy error")
	actualErr := f(expectedErr)

	assert.Equal(t, expectedErr, actualErr)
	assert.False(t, span.ended, "span should be closed by a defer statement in the calling function")
	assert.Equal(t, expectedErr, span.err)
	assert.Equal(t, codes.Error, span.statusCode)
	assert.Equal(t, actualErr.Error(), span.statusDescription)
}

func TestRecordErrorOnSpanWithoutError(t *testing.T) {
	span := &testSpan{}
	assert.NoError(t, RecordErrorOnSpan(span)(nil))
	assert.Nil(t, span.err)
	assert.Empty(t, span.statusCode)
}

func TestRecordErrorOnSpanTwo(t *testing.T) {
	span := &testSpan{}
	f := RecordErrorOnSpanTwo[string](span)

	expectedErr := errors.New("dummy error")
	actualParam, actualErr := f("blah", expectedErr)

	assert.Equal(t, "blah", actualParam)
	assert.Equal(t, expectedErr, actualErr)
	assert.Equal(t, expectedErr, span.err)
	assert.Equal(t, codes.Error, span.statusCode)
}

func TestNewSpanWithoutExporter(t *testing.T) {
	t.Setenv(disableTracing, "1")
	SetupFromEnvs()

	ctx, span := NewSpan(context.Background(), GetTracer(), "wataki.test")
	defer span.End()
	assert.NotNil(t, ctx)
	assert.NoError(t, Cleanup())
}

var _ trace.Span = &testSpan{}

type testSpan struct {
	err               error
	ended             bool
	statusCode        codes.Code
	statusDescription string
}

func (t *testSpan) End(...trace.SpanEndOption) {
	t.ended = true
}

func (t *testSpan) AddEvent(string, ...trace.EventOption) {}

func (t *testSpan) IsRecording() bool {
	return true
}

func (t *testSpan) RecordError(err error, _ ...trace.EventOption) {
	t.err = err
}

func (t *testSpan) SpanContext() trace.SpanContext {
	return trace.SpanContext{}
}

func (t *testSpan) SetStatus(code codes.Code, description string) {
	t.statusCode = code
	t.statusDescription = description
}

func (t *testSpan) SetName(string) {}

func (t *testSpan) SetAttributes(...attribute.KeyValue) {}

func (t *testSpan) TracerProvider() trace.TracerProvider {
	return trace.NewNoopTracerProvider()
}
