package ports

import "context"

// Tracer creates spans around units of build work. Span lifecycle events
// are forwarded to the logging bridge, which turns them into progress
// output.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start opens a span with the given name, usually a target token.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents one unit of build work in flight.
type Span interface {
	// SetChanged annotates the span with whether the target was rebuilt.
	SetChanged(changed bool)

	// SetError marks the span as failed.
	SetError(err error)

	// End closes the span.
	End()
}
