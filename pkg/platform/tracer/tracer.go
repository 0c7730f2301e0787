// Package tracer defines a minimal tracing facade so domain packages can emit
// spans without depending on OpenTelemetry APIs directly.
package tracer

import "context"

// Attribute is a key/value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String builds a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool builds a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int builds an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span represents an in-flight traced operation.
type Span interface {
	// End completes the span, recording err if non-nil.
	End(err error)
	// SetAttributes adds attributes to the span.
	SetAttributes(attrs ...Attribute)
	// AddEvent records an event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Noop returns a tracer that records nothing. Useful default for tests.
func Noop() Tracer {
	return noopTracer{}
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error)                       {}
func (noopSpan) SetAttributes(...Attribute)      {}
func (noopSpan) AddEvent(string, ...Attribute)   {}
