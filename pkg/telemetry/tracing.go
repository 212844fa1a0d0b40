package telemetry

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/wataki/wataki-go/pkg/version"
)

// ----------------------------------------
// Tracer Setup and Teardown
// ----------------------------------------
func newTraceProvider() {
	if !isTracingEnabled() {
		log.Debug().Msgf("OLTP tracing endpoints are not defined. No traces will be exported")
		return
	}

	// The context passed in to the exporter is only passed to the client and used when connecting to the endpoint
	ctx := context.Background()
	client, err := getTraceClient()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize OLTP trace client")
		return
	}

	exp, err := otlptrace.New(ctx, client)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize OLTP trace exporter")
		return
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(newResource()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
}

func getTraceClient() (client otlptrace.Client, err error) {
	protocol := otlpProtocolHTTP
	if v := os.Getenv(otlpProtocol); v != "" {
		protocol = v
	}
	if v := os.Getenv(otlpTracesProtocol); v != "" {
		protocol = v
	}
	switch protocol {
	case otlpProtocolHTTP:
		client = otlptracehttp.NewClient()
	case otlpProtocolGrpc:
		client = otlptracegrpc.NewClient()
	default:
		err = fmt.Errorf("unknown or unsupported OLTP protocol: %s. No traces will be exported", protocol)
	}
	return
}

func isTracingEnabled() bool {
	if v, ok := os.LookupEnv(disableTracing); ok && v == "1" {
		return false
	}
	_, endpointDefined := os.LookupEnv(otlpEndpoint)
	_, tracingEndpointDefined := os.LookupEnv(otlpTracesEndpoint)
	return endpointDefined || tracingEndpointDefined
}

func cleanupTraceProvider() error {
	type shutdown interface {
		oteltrace.TracerProvider
		Shutdown(ctx context.Context) error
	}
	tracer, ok := otel.GetTracerProvider().(shutdown)
	if ok {
		return tracer.Shutdown(context.Background())
	}
	return nil
}

// ----------------------------------------
// Span helpers
// ----------------------------------------

// GetTracer returns the tracer of the currently installed provider.
func GetTracer() oteltrace.Tracer {
	return otel.GetTracerProvider().Tracer(version.TracerName())
}

// NewSpan starts a client span named name.
func NewSpan(ctx context.Context, t oteltrace.Tracer, name string,
	opts ...oteltrace.SpanStartOption) (context.Context, oteltrace.Span) {
	opts = append(opts, oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	return t.Start(ctx, name, opts...)
}

// RecordErrorOnSpan returns a function that records a non-nil error on span
// and passes it through. The span is not ended.
func RecordErrorOnSpan(span oteltrace.Span) func(error) error {
	return func(err error) error {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

// RecordErrorOnSpanTwo is RecordErrorOnSpan for calls returning a value and an error.
func RecordErrorOnSpanTwo[T any](span oteltrace.Span) func(T, error) (T, error) {
	record := RecordErrorOnSpan(span)
	return func(t T, err error) (T, error) {
		return t, record(err)
	}
}
