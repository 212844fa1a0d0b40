package telemetry

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/wataki/wataki-go/pkg/version"
)

const (
	otlpEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	otlpTracesEndpoint = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	otlpProtocol       = "OTEL_EXPORTER_OTLP_PROTOCOL"
	otlpTracesProtocol = "OTEL_EXPORTER_OTLP_TRACES_PROTOCOL"
	disableTracing     = "WATAKI_DISABLE_TRACING"

	otlpProtocolGrpc = "grpc"
	otlpProtocolHTTP = "http/protobuf"
)

// SetupFromEnvs installs an OTLP trace exporter when one of the standard
// OTEL_EXPORTER_OTLP_* endpoints is set. Without one, spans go to the no-op
// provider.
func SetupFromEnvs() {
	newTraceProvider()

	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		log.Debug().Err(err).Msg("Error occurred while handling spans")
	}))
}

// Cleanup flushes the remaining spans to the exporter and releases any telemetry resources.
func Cleanup() error {
	if err := cleanupTraceProvider(); err != nil {
		return errors.Wrap(err, "tracing cleanup error")
	}
	return nil
}

// newResource returns a resource describing this application.
func newResource() *resource.Resource {
	res, err := resource.Merge(
		resource.Environment(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("wataki-go"),
			semconv.ServiceVersionKey.String(version.GITVERSION),
		),
	)

	if err != nil {
		log.Error().Err(err).Msg("failed to create otel resource. Falling back to default resource config")
		res = resource.Default()
	}
	return res
}
