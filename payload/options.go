package payload

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/writepayload/tempid"
)

const instrumentationName = "github.com/zero-day-ai/writepayload/payload"

// Option configures a Builder.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	tempIDs tempid.Generator
}

func defaultConfig() config {
	return config{
		logger:  slog.Default(),
		tracer:  otel.Tracer(instrumentationName),
		meter:   otel.Meter(instrumentationName),
		tempIDs: tempid.Default,
	}
}

// WithLogger sets the logger used for debug output about omitted records.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for build and reconcile spans.
// If not provided, the global tracer provider is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMeter sets the meter used for build and reconcile counters.
// If not provided, the global meter provider is used.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		if meter != nil {
			c.meter = meter
		}
	}
}

// WithTempIDGenerator sets the generator for temporary identifiers.
// If not provided, tempid.Default is used.
func WithTempIDGenerator(gen tempid.Generator) Option {
	return func(c *config) {
		if gen != nil {
			c.tempIDs = gen
		}
	}
}
