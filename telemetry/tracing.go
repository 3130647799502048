package telemetry

import (
	"context"

	"github.com/relaywire/relay/tracing"
	otelattribute "go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// AdaptTracerProvider wraps an OTEL SDK TracerProvider so it satisfies
// relay's tracing.TracerProvider, the interface the client and server
// pipelines read their Tracer from.
func AdaptTracerProvider(provider oteltrace.TracerProvider) tracing.TracerProvider {
	return &tracerProvider{provider: provider}
}

type tracerProvider struct {
	provider oteltrace.TracerProvider
}

func (a *tracerProvider) Tracer(name string, opts ...tracing.TracerOption) tracing.Tracer {
	var o tracing.TracerOptions
	for _, fn := range opts {
		fn(&o)
	}
	var otelOpts []oteltrace.TracerOption
	if o.InstrumentationVersion != "" {
		otelOpts = append(otelOpts, oteltrace.WithInstrumentationVersion(o.InstrumentationVersion))
	}
	return &tracer{tracer: a.provider.Tracer(name, otelOpts...)}
}

type tracer struct {
	tracer oteltrace.Tracer
}

func (a *tracer) StartSpan(ctx context.Context, name string, opts ...tracing.SpanOption) (context.Context, tracing.Span) {
	var o tracing.SpanOptions
	for _, fn := range opts {
		fn(&o)
	}

	ctx, span := a.tracer.Start(ctx, name, oteltrace.WithSpanKind(toOTELSpanKind(o.Kind)))
	setOTELAttributes(span, &o.Properties)
	return ctx, &adaptedSpan{span: span}
}

type adaptedSpan struct {
	span oteltrace.Span
}

func (a *adaptedSpan) Name(name string) {
	a.span.SetName(name)
}

func (a *adaptedSpan) AddEvent(name string, opts ...tracing.EventOption) {
	var o tracing.EventOptions
	for _, fn := range opts {
		fn(&o)
	}
	var attrs []otelattribute.KeyValue
	o.Properties.Each(func(k, v any) bool {
		attrs = append(attrs, toOTELKeyValue(k, v))
		return true
	})
	a.span.AddEvent(name, oteltrace.WithAttributes(attrs...))
}

func (a *adaptedSpan) SetProperty(k, v any) {
	a.span.SetAttributes(toOTELKeyValue(k, v))
}

func (a *adaptedSpan) SetStatus(status tracing.SpanStatus) {
	a.span.SetStatus(toOTELSpanStatus(status), "")
}

func (a *adaptedSpan) End() {
	a.span.End()
}

func setOTELAttributes(span oteltrace.Span, props *tracing.Properties) {
	var attrs []otelattribute.KeyValue
	props.Each(func(k, v any) bool {
		attrs = append(attrs, toOTELKeyValue(k, v))
		return true
	})
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func toOTELSpanKind(kind tracing.SpanKind) oteltrace.SpanKind {
	switch kind {
	case tracing.SpanKindClient:
		return oteltrace.SpanKindClient
	case tracing.SpanKindServer:
		return oteltrace.SpanKindServer
	case tracing.SpanKindProducer:
		return oteltrace.SpanKindProducer
	case tracing.SpanKindConsumer:
		return oteltrace.SpanKindConsumer
	case tracing.SpanKindInternal:
		return oteltrace.SpanKindInternal
	default:
		return oteltrace.SpanKindInternal
	}
}

func toOTELSpanStatus(status tracing.SpanStatus) otelcodes.Code {
	switch status {
	case tracing.SpanStatusOK:
		return otelcodes.Ok
	case tracing.SpanStatusError:
		return otelcodes.Error
	case tracing.SpanStatusUnset:
		return otelcodes.Unset
	default:
		return otelcodes.Unset
	}
}
