// Package tracing defines the CORE's span-emission surface: a minimal,
// OTEL-shaped interface the client and server pipelines call into so a
// front end can plug in any tracing backend without the core importing
// one directly.
package tracing

import "context"

// SpanKind classifies the role a span plays in a trace, matching the
// OTEL SDK's span kinds so an adapter translates 1:1.
type SpanKind int

// Enumerates SpanKind.
const (
	SpanKindInternal SpanKind = iota
	SpanKindClient
	SpanKindServer
	SpanKindProducer
	SpanKindConsumer
)

// SpanStatus is the terminal status recorded on a span.
type SpanStatus int

// Enumerates SpanStatus.
const (
	SpanStatusUnset SpanStatus = iota
	SpanStatusOK
	SpanStatusError
)

// TracerProvider vends named Tracers, the entry point a client or server
// Options struct holds onto.
type TracerProvider interface {
	Tracer(name string, opts ...TracerOption) Tracer
}

// TracerOption configures a Tracer obtained from a TracerProvider.
type TracerOption func(*TracerOptions)

// TracerOptions holds the configurable fields of a Tracer.
type TracerOptions struct {
	InstrumentationVersion string
}

// Tracer starts spans.
type Tracer interface {
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// SpanOption configures a span at start time.
type SpanOption func(*SpanOptions)

// SpanOptions holds the configurable fields of a span.
type SpanOptions struct {
	Kind       SpanKind
	Properties Properties
}

// WithSpanKind sets the kind of a span being started.
func WithSpanKind(kind SpanKind) SpanOption {
	return func(o *SpanOptions) { o.Kind = kind }
}

// Properties is the attribute bag a span accumulates, mirroring
// relay.Properties so callers don't need to import the root package just
// to set a span attribute.
type Properties struct {
	values map[any]any
}

// Set stores a key/value pair, later projected onto the underlying
// tracing backend's attribute model by an adapter.
func (p *Properties) Set(key, value any) {
	if p.values == nil {
		p.values = map[any]any{}
	}
	p.values[key] = value
}

// Each calls fn once per stored key/value pair.
func (p *Properties) Each(fn func(key, value any) bool) {
	for k, v := range p.values {
		if !fn(k, v) {
			return
		}
	}
}

// Span is a single unit of work within a trace.
type Span interface {
	// Name sets or replaces the span's name.
	Name(name string)
	// AddEvent attaches a point-in-time annotation.
	AddEvent(name string, opts ...EventOption)
	// SetProperty records a span attribute.
	SetProperty(key, value any)
	// SetStatus records the span's terminal status.
	SetStatus(status SpanStatus)
	// End completes the span; subsequent calls are a no-op.
	End()
}

// EventOption configures a span event.
type EventOption func(*EventOptions)

// EventOptions holds the configurable fields of a span event.
type EventOptions struct {
	Properties Properties
}

type contextKey struct{}

// WithTracer stores tracer on ctx for hooks further down a pipeline to
// retrieve without threading an extra parameter through every signature.
func WithTracer(ctx context.Context, tracer Tracer) context.Context {
	return context.WithValue(ctx, contextKey{}, tracer)
}

// TracerFromContext returns the Tracer stored by WithTracer, or a no-op
// tracer if none was stored.
func TracerFromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(contextKey{}).(Tracer); ok {
		return t
	}
	return NoopTracer{}
}

// NoopTracer is a Tracer that starts spans which discard everything
// recorded on them. It's the default in any Options struct that doesn't
// configure a TracerProvider.
type NoopTracer struct{}

// StartSpan returns ctx unchanged and a Span that discards all calls.
func (NoopTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) Name(string)                  {}
func (noopSpan) AddEvent(string, ...EventOption) {}
func (noopSpan) SetProperty(any, any)         {}
func (noopSpan) SetStatus(SpanStatus)         {}
func (noopSpan) End()                         {}
