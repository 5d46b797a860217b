package writepayload

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/tempid"
)

// Option configures a Writer.
type Option func(*config)

// config holds configuration for a Writer instance.
type config struct {
	registry       attribute.Registry
	descriptorPath string
	logger         *slog.Logger
	tracer         trace.Tracer
	meter          metric.Meter
	tempIDs        tempid.Generator
}

// WithRegistry sets the attribute descriptors used to serialize records.
func WithRegistry(registry attribute.Registry) Option {
	return func(c *config) {
		c.registry = registry
	}
}

// WithDescriptorFile loads attribute descriptors from a YAML file, or from
// attributes.yaml inside a directory. It is ignored when WithRegistry is
// also given.
func WithDescriptorFile(path string) Option {
	return func(c *config) {
		c.descriptorPath = path
	}
}

// WithLogger sets a custom logger.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for build and commit spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for document and prune counters.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

// WithTempIDGenerator replaces the UUID temp-id generator.
func WithTempIDGenerator(gen tempid.Generator) Option {
	return func(c *config) {
		c.tempIDs = gen
	}
}
