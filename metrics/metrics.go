// Package metrics defines the CORE's metric-emission surface: a minimal,
// OTEL-shaped instrument interface the client and server pipelines call
// into (call duration, attempt count, retry count) without importing an
// OTEL SDK directly.
package metrics

import "context"

// MeterProvider vends named Meters.
type MeterProvider interface {
	Meter(name string, opts ...MeterOption) Meter
}

// MeterOption configures a Meter obtained from a MeterProvider.
type MeterOption func(*MeterOptions)

// MeterOptions holds the configurable fields of a Meter.
type MeterOptions struct {
	InstrumentationVersion string
}

// Meter creates instruments.
type Meter interface {
	Int64Counter(name string, opts ...InstrumentOption) (Int64Counter, error)
	Int64UpDownCounter(name string, opts ...InstrumentOption) (Int64UpDownCounter, error)
	Int64Histogram(name string, opts ...InstrumentOption) (Int64Histogram, error)
	Int64AsyncGauge(name string, callback Int64Callback, opts ...InstrumentOption) (AsyncInstrument, error)
	Float64Counter(name string, opts ...InstrumentOption) (Float64Counter, error)
	Float64UpDownCounter(name string, opts ...InstrumentOption) (Float64UpDownCounter, error)
	Float64Histogram(name string, opts ...InstrumentOption) (Float64Histogram, error)
	Float64AsyncGauge(name string, callback Float64Callback, opts ...InstrumentOption) (AsyncInstrument, error)
}

// InstrumentOption configures an instrument at creation.
type InstrumentOption func(*InstrumentOptions)

// InstrumentOptions holds the configurable fields of an instrument.
type InstrumentOptions struct {
	Unit        string
	Description string
}

// WithUnit sets an instrument's unit of measure.
func WithUnit(unit string) InstrumentOption {
	return func(o *InstrumentOptions) { o.Unit = unit }
}

// WithDescription sets an instrument's human-readable description.
func WithDescription(description string) InstrumentOption {
	return func(o *InstrumentOptions) { o.Description = description }
}

// RecordOption configures a single measurement.
type RecordOption func(*RecordOptions)

// RecordOptions holds the configurable fields of a single measurement.
type RecordOptions struct {
	Properties Properties
}

// Properties is the attribute bag attached to a measurement.
type Properties struct {
	values map[any]any
}

// Set stores a key/value pair alongside a recorded measurement.
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

// Int64Counter accumulates a monotonically increasing int64 value.
type Int64Counter interface {
	Add(ctx context.Context, incr int64, opts ...RecordOption)
}

// Int64UpDownCounter accumulates an int64 value that may increase or decrease.
type Int64UpDownCounter interface {
	Add(ctx context.Context, incr int64, opts ...RecordOption)
}

// Int64Histogram records a distribution of int64 values.
type Int64Histogram interface {
	Record(ctx context.Context, incr int64, opts ...RecordOption)
}

// Float64Counter accumulates a monotonically increasing float64 value.
type Float64Counter interface {
	Add(ctx context.Context, incr float64, opts ...RecordOption)
}

// Float64UpDownCounter accumulates a float64 value that may increase or decrease.
type Float64UpDownCounter interface {
	Add(ctx context.Context, incr float64, opts ...RecordOption)
}

// Float64Histogram records a distribution of float64 values.
type Float64Histogram interface {
	Record(ctx context.Context, incr float64, opts ...RecordOption)
}

// Int64Callback reports an observation for an async int64 gauge.
type Int64Callback func(ctx context.Context, obs Int64Observer) error

// Int64Observer receives observations from an Int64Callback.
type Int64Observer interface {
	Observe(value int64, opts ...RecordOption)
}

// Float64Callback reports an observation for an async float64 gauge.
type Float64Callback func(ctx context.Context, obs Float64Observer) error

// Float64Observer receives observations from a Float64Callback.
type Float64Observer interface {
	Observe(value float64, opts ...RecordOption)
}

// AsyncInstrument is a handle to an asynchronously-observed instrument;
// Stop releases its registration with the Meter.
type AsyncInstrument interface {
	Stop()
}

type contextKey struct{}

// WithMeter stores meter on ctx for hooks further down a pipeline.
func WithMeter(ctx context.Context, meter Meter) context.Context {
	return context.WithValue(ctx, contextKey{}, meter)
}

// MeterFromContext returns the Meter stored by WithMeter, or a no-op
// meter if none was stored.
func MeterFromContext(ctx context.Context) Meter {
	if m, ok := ctx.Value(contextKey{}).(Meter); ok {
		return m
	}
	return NoopMeter{}
}

// NoopMeter is a Meter whose instruments discard every measurement. It's
// the default in any Options struct that doesn't configure a MeterProvider.
type NoopMeter struct{}

func (NoopMeter) Int64Counter(string, ...InstrumentOption) (Int64Counter, error) {
	return noopInt64Instrument{}, nil
}
func (NoopMeter) Int64UpDownCounter(string, ...InstrumentOption) (Int64UpDownCounter, error) {
	return noopInt64Instrument{}, nil
}
func (NoopMeter) Int64Histogram(string, ...InstrumentOption) (Int64Histogram, error) {
	return noopInt64Instrument{}, nil
}
func (NoopMeter) Int64AsyncGauge(string, Int64Callback, ...InstrumentOption) (AsyncInstrument, error) {
	return noopAsync{}, nil
}
func (NoopMeter) Float64Counter(string, ...InstrumentOption) (Float64Counter, error) {
	return noopFloat64Instrument{}, nil
}
func (NoopMeter) Float64UpDownCounter(string, ...InstrumentOption) (Float64UpDownCounter, error) {
	return noopFloat64Instrument{}, nil
}
func (NoopMeter) Float64Histogram(string, ...InstrumentOption) (Float64Histogram, error) {
	return noopFloat64Instrument{}, nil
}
func (NoopMeter) Float64AsyncGauge(string, Float64Callback, ...InstrumentOption) (AsyncInstrument, error) {
	return noopAsync{}, nil
}

type noopInt64Instrument struct{}

func (noopInt64Instrument) Add(context.Context, int64, ...RecordOption)    {}
func (noopInt64Instrument) Record(context.Context, int64, ...RecordOption) {}

type noopFloat64Instrument struct{}

func (noopFloat64Instrument) Add(context.Context, float64, ...RecordOption)    {}
func (noopFloat64Instrument) Record(context.Context, float64, ...RecordOption) {}

type noopAsync struct{}

func (noopAsync) Stop() {}
