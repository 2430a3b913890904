package telemetry

import (
	"context"

	"go.trai.ch/rmk/internal/core/ports"
)

// NoopTracer is a tracer that records nothing. Useful in tests and when
// tracing is disabled.
type NoopTracer struct{}

// NewNoopTracer creates a new NoopTracer.
func NewNoopTracer() *NoopTracer {
	return &NoopTracer{}
}

var _ ports.Tracer = (*NoopTracer)(nil)

// Start returns the context unchanged and a span that does nothing.
func (t *NoopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) SetChanged(bool) {}
func (noopSpan) SetError(error)  {}
func (noopSpan) End()            {}
