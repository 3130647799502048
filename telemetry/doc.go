// Package telemetry adapts relay's [tracing] and [metrics] interfaces onto
// the OpenTelemetry Go SDK, the way aws-smithy-go's smithy-otel-tracing and
// smithy-otel-metrics submodules do for the AWS SDK for Go v2.
//
// # Usage
//
// Callers use [AdaptTracerProvider] and [AdaptMeterProvider] to wrap a
// concrete OTEL SDK provider and hand the result to a client or server
// Options struct:
//
//	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	opts.TracerProvider = telemetry.AdaptTracerProvider(provider)
//
// # OTEL attributes
//
// This adapter supports all attribute types used in the OTEL SDK
// (including their slice-of variants): bool, int, int64, float64, string.
// A key/value pair set on a [tracing.Properties] or [metrics.Properties]
// container propagates to the underlying OTEL SDK automatically when its
// key is a string and its value is one of the supported types; a value with
// a String method is rendered with it, and anything else with
// fmt.Sprintf("%#v", ...), never silently dropped.
package telemetry
