package telemetry

import (
	"fmt"

	otelattribute "go.opentelemetry.io/otel/attribute"
)

// stringer is satisfied by any value with a String method, used as the
// fallback attribute rendering for a value of an otherwise-unsupported
// type.
type stringer interface {
	String() string
}

// toOTELKeyValue projects a single relay tracing/metrics Properties entry
// onto an OTEL attribute.KeyValue. A non-string key is rendered with
// fmt.Sprintf; an unsupported value type falls back to its fmt.Sprintf
// %#v (or its String() method if it implements Stringer), never dropped.
func toOTELKeyValue(k, v any) otelattribute.KeyValue {
	key, ok := k.(string)
	if !ok {
		key = fmt.Sprintf("%v", k)
	}

	switch tv := v.(type) {
	case bool:
		return otelattribute.Bool(key, tv)
	case []bool:
		return otelattribute.BoolSlice(key, tv)
	case int:
		return otelattribute.Int(key, tv)
	case []int:
		return otelattribute.IntSlice(key, tv)
	case int64:
		return otelattribute.Int64(key, tv)
	case []int64:
		return otelattribute.Int64Slice(key, tv)
	case float64:
		return otelattribute.Float64(key, tv)
	case []float64:
		return otelattribute.Float64Slice(key, tv)
	case string:
		return otelattribute.String(key, tv)
	case []string:
		return otelattribute.StringSlice(key, tv)
	case stringer:
		return otelattribute.String(key, tv.String())
	default:
		return otelattribute.String(key, fmt.Sprintf("%#v", v))
	}
}
