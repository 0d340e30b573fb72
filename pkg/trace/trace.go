// Package trace wraps opentelemetry so every component starts spans the
// same way, following the teacher repo's pkg/trace convention.
package trace

import (
	"context"
	"time"

	"acs/pkg/logger"
	"acs/pkg/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is a wrapper for the opentelemetry tracer
type Tracer struct {
	TP *sdktrace.TracerProvider
	trace.Tracer
	log *logger.Log
}

// New returns a new tracer. Spans are created but never exported: no
// exporter is configured, and cfg.Common.Tracing is not read.
func New(ctx context.Context, cfg *model.Cfg, log *logger.Log, serviceName string) (*Tracer, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	}

	tracer := &Tracer{
		TP:  sdktrace.NewTracerProvider(opts...),
		log: log,
	}

	otel.SetTracerProvider(tracer.TP)
	tracer.Tracer = otel.Tracer(serviceName)

	return tracer, nil
}

// NewForTesting returns a Tracer suitable for unit tests: spans are
// created but never exported, and no configuration is required.
func NewForTesting(serviceName string) *Tracer {
	tp := sdktrace.NewTracerProvider()
	return &Tracer{
		TP:     tp,
		Tracer: tp.Tracer(serviceName),
		log:    logger.NewSimple(serviceName),
	}
}

// Shutdown shuts down the tracer, flushing any pending spans.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.log.Info("Shutting down tracer")
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return t.TP.Shutdown(ctx)
}
