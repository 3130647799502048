package telemetry

import (
	"context"

	"github.com/relaywire/relay/metrics"
	otelattribute "go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// AdaptMeterProvider wraps an OTEL SDK MeterProvider so it satisfies
// relay's metrics.MeterProvider, the interface the client and server
// pipelines read their Meter from for call-duration, attempt-count, and
// retry-count instruments.
func AdaptMeterProvider(provider otelmetric.MeterProvider) metrics.MeterProvider {
	return &meterProvider{provider: provider}
}

type meterProvider struct {
	provider otelmetric.MeterProvider
}

func (a *meterProvider) Meter(name string, opts ...metrics.MeterOption) metrics.Meter {
	var o metrics.MeterOptions
	for _, fn := range opts {
		fn(&o)
	}
	var otelOpts []otelmetric.MeterOption
	if o.InstrumentationVersion != "" {
		otelOpts = append(otelOpts, otelmetric.WithInstrumentationVersion(o.InstrumentationVersion))
	}
	return &meter{meter: a.provider.Meter(name, otelOpts...)}
}

type meter struct {
	meter otelmetric.Meter
}

func toOTELInstrumentOptions(opts ...metrics.InstrumentOption) metrics.InstrumentOptions {
	var o metrics.InstrumentOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (a *meter) Int64Counter(name string, opts ...metrics.InstrumentOption) (metrics.Int64Counter, error) {
	o := toOTELInstrumentOptions(opts...)
	ctr, err := a.meter.Int64Counter(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	return &int64Counter{ctr}, nil
}

func (a *meter) Int64UpDownCounter(name string, opts ...metrics.InstrumentOption) (metrics.Int64UpDownCounter, error) {
	o := toOTELInstrumentOptions(opts...)
	ctr, err := a.meter.Int64UpDownCounter(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	return &int64UpDownCounter{ctr}, nil
}

func (a *meter) Int64Histogram(name string, opts ...metrics.InstrumentOption) (metrics.Int64Histogram, error) {
	o := toOTELInstrumentOptions(opts...)
	h, err := a.meter.Int64Histogram(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	return &int64Histogram{h}, nil
}

func (a *meter) Int64AsyncGauge(name string, callback metrics.Int64Callback, opts ...metrics.InstrumentOption) (metrics.AsyncInstrument, error) {
	o := toOTELInstrumentOptions(opts...)
	gauge, err := a.meter.Int64ObservableGauge(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	reg, err := a.meter.RegisterCallback(func(ctx context.Context, obs otelmetric.Observer) error {
		return callback(ctx, &int64Observer{obs: obs, inst: gauge})
	}, gauge)
	if err != nil {
		return nil, err
	}
	return &registration{reg}, nil
}

func (a *meter) Float64Counter(name string, opts ...metrics.InstrumentOption) (metrics.Float64Counter, error) {
	o := toOTELInstrumentOptions(opts...)
	ctr, err := a.meter.Float64Counter(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	return &float64Counter{ctr}, nil
}

func (a *meter) Float64UpDownCounter(name string, opts ...metrics.InstrumentOption) (metrics.Float64UpDownCounter, error) {
	o := toOTELInstrumentOptions(opts...)
	ctr, err := a.meter.Float64UpDownCounter(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	return &float64UpDownCounter{ctr}, nil
}

func (a *meter) Float64Histogram(name string, opts ...metrics.InstrumentOption) (metrics.Float64Histogram, error) {
	o := toOTELInstrumentOptions(opts...)
	h, err := a.meter.Float64Histogram(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	return &float64Histogram{h}, nil
}

func (a *meter) Float64AsyncGauge(name string, callback metrics.Float64Callback, opts ...metrics.InstrumentOption) (metrics.AsyncInstrument, error) {
	o := toOTELInstrumentOptions(opts...)
	gauge, err := a.meter.Float64ObservableGauge(name, otelmetric.WithUnit(o.Unit), otelmetric.WithDescription(o.Description))
	if err != nil {
		return nil, err
	}
	reg, err := a.meter.RegisterCallback(func(ctx context.Context, obs otelmetric.Observer) error {
		return callback(ctx, &float64Observer{obs: obs, inst: gauge})
	}, gauge)
	if err != nil {
		return nil, err
	}
	return &registration{reg}, nil
}

func toOTELAttrs(opts ...metrics.RecordOption) otelmetric.MeasurementOption {
	var o metrics.RecordOptions
	for _, fn := range opts {
		fn(&o)
	}
	var attrs []otelattribute.KeyValue
	o.Properties.Each(func(k, v any) bool {
		attrs = append(attrs, toOTELKeyValue(k, v))
		return true
	})
	return otelmetric.WithAttributes(attrs...)
}

type int64Counter struct{ ctr otelmetric.Int64Counter }

func (a *int64Counter) Add(ctx context.Context, incr int64, opts ...metrics.RecordOption) {
	a.ctr.Add(ctx, incr, toOTELAttrs(opts...))
}

type int64UpDownCounter struct{ ctr otelmetric.Int64UpDownCounter }

func (a *int64UpDownCounter) Add(ctx context.Context, incr int64, opts ...metrics.RecordOption) {
	a.ctr.Add(ctx, incr, toOTELAttrs(opts...))
}

type int64Histogram struct{ h otelmetric.Int64Histogram }

func (a *int64Histogram) Record(ctx context.Context, incr int64, opts ...metrics.RecordOption) {
	a.h.Record(ctx, incr, toOTELAttrs(opts...))
}

type float64Counter struct{ ctr otelmetric.Float64Counter }

func (a *float64Counter) Add(ctx context.Context, incr float64, opts ...metrics.RecordOption) {
	a.ctr.Add(ctx, incr, toOTELAttrs(opts...))
}

type float64UpDownCounter struct{ ctr otelmetric.Float64UpDownCounter }

func (a *float64UpDownCounter) Add(ctx context.Context, incr float64, opts ...metrics.RecordOption) {
	a.ctr.Add(ctx, incr, toOTELAttrs(opts...))
}

type float64Histogram struct{ h otelmetric.Float64Histogram }

func (a *float64Histogram) Record(ctx context.Context, incr float64, opts ...metrics.RecordOption) {
	a.h.Record(ctx, incr, toOTELAttrs(opts...))
}

// registration adapts an OTEL callback registration to metrics.AsyncInstrument.
type registration struct {
	reg otelmetric.Registration
}

func (r *registration) Stop() {
	_ = r.reg.Unregister()
}

type int64Observer struct {
	obs  otelmetric.Observer
	inst otelmetric.Int64Observable
}

func (a *int64Observer) Observe(value int64, opts ...metrics.RecordOption) {
	a.obs.ObserveInt64(a.inst, value, toOTELAttrs(opts...))
}

type float64Observer struct {
	obs  otelmetric.Observer
	inst otelmetric.Float64Observable
}

func (a *float64Observer) Observe(value float64, opts ...metrics.RecordOption) {
	a.obs.ObserveFloat64(a.inst, value, toOTELAttrs(opts...))
}
