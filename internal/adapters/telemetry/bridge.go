package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rmk/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor, turning span lifecycle events
// into log lines: "making X" on start, "made X in D" when the span ends
// with the changed attribute set.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Setup installs a tracer provider backed by the bridge as the global
// OTel provider.
func Setup(bridge *Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil {
		return
	}
	b.logger.Info("making " + s.Name())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}

	if s.Status().Code == codes.Error {
		// The failure unwinds through the engine and is reported once at
		// the top; no per-span error line here.
		return
	}

	for _, attr := range s.Attributes() {
		if string(attr.Key) == ChangedKey && attr.Value.AsBool() {
			duration := s.EndTime().Sub(s.StartTime())
			b.logger.Info("made " + s.Name() + " in " + duration.Round(time.Microsecond).String())
			return
		}
	}
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}
