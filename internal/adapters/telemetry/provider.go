package telemetry

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Shutdown flushes and stops a provider installed by Setup.
type Shutdown func(ctx context.Context) error

// Setup installs a global tracer provider that writes finished spans to w as
// JSON. The returned Shutdown must be called before exit to flush them.
func Setup(w io.Writer, version string) (Shutdown, error) {
	tp, err := NewProvider(w, version)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewProvider builds a synchronous stdout tracer provider on w.
func NewProvider(w io.Writer, version string) (*sdktrace.TracerProvider, error) {
	if w == nil {
		return nil, zerr.Wrap(errors.New("nil writer"), domain.ErrTelemetrySetupFailed.Error())
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTelemetrySetupFailed.Error())
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", "strata"),
		attribute.String("service.version", version),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	), nil
}
