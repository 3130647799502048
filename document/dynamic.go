package document

import (
	"fmt"
	"reflect"
	"time"
)

// Kind identifies which alternative of the Document value tree is held.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindBlob
	KindTimestamp
	KindList
	KindMap
)

// Settings carries the codec-specific quirks a Document needs to remember
// in order to re-serialize itself faithfully through the codec family it
// came from (field renaming, timestamp format). Two Documents built with
// different Settings from the same underlying value are not required to
// serialize identically.
type Settings struct {
	UseJSONName     bool
	TimestampFormat string // "epoch-seconds" | "date-time" | "http-date"
}

// Document is a dynamic, codec-agnostic value tree: null, bool, arbitrary
// precision number, string, blob, timestamp, list, or string-keyed map.
// Document values are immutable once constructed.
type Document struct {
	kind     Kind
	b        bool
	n        Number
	s        string
	blob     []byte
	ts       time.Time
	list     []Document
	m        map[string]Document
	settings Settings

	// wrapped, when non-nil, is the typed struct this Document was built
	// from via Of. Serializing a wrapped Document defers to the struct's
	// own schema-driven Serialize rather than walking the value tree, so
	// the struct's codec settings win.
	wrapped SmithyDocumentMarshaler
}

// Null returns the null Document.
func Null() Document { return Document{kind: KindNull} }

// NewBool wraps a bool.
func NewBool(v bool) Document { return Document{kind: KindBool, b: v} }

// NewNumber wraps an arbitrary-precision number.
func NewNumber(v Number) Document { return Document{kind: KindNumber, n: v} }

// NewString wraps a string.
func NewString(v string) Document { return Document{kind: KindString, s: v} }

// NewBlob wraps a byte slice.
func NewBlob(v []byte) Document { return Document{kind: KindBlob, blob: v} }

// NewTimestamp wraps a time.Time.
func NewTimestamp(v time.Time) Document { return Document{kind: KindTimestamp, ts: v} }

// NewList wraps an ordered sequence of Documents. Order is significant and
// preserved, including null slots (sparse lists).
func NewList(v []Document) Document { return Document{kind: KindList, list: v} }

// NewMap wraps a string-keyed collection of Documents. Map key order is not
// significant for equality.
func NewMap(v map[string]Document) Document { return Document{kind: KindMap, m: v} }

// WithSettings returns a copy of d carrying the given codec Settings.
func (d Document) WithSettings(s Settings) Document {
	d.settings = s
	return d
}

// Settings returns the codec settings attached to d.
func (d Document) Settings() Settings { return d.settings }

// Kind reports which alternative d holds.
func (d Document) Kind() Kind { return d.kind }

// IsNull reports whether d is the null Document.
func (d Document) IsNull() bool { return d.kind == KindNull }

// AsBool returns the wrapped bool and whether d holds one.
func (d Document) AsBool() (bool, bool) { return d.b, d.kind == KindBool }

// AsNumber returns the wrapped number and whether d holds one.
func (d Document) AsNumber() (Number, bool) { return d.n, d.kind == KindNumber }

// AsString returns the wrapped string and whether d holds one.
func (d Document) AsString() (string, bool) { return d.s, d.kind == KindString }

// AsBlob returns the wrapped blob and whether d holds one.
func (d Document) AsBlob() ([]byte, bool) { return d.blob, d.kind == KindBlob }

// AsTimestamp returns the wrapped time and whether d holds one.
func (d Document) AsTimestamp() (time.Time, bool) { return d.ts, d.kind == KindTimestamp }

// AsList returns the wrapped list and whether d holds one.
func (d Document) AsList() ([]Document, bool) { return d.list, d.kind == KindList }

// AsMap returns the wrapped map and whether d holds one.
func (d Document) AsMap() (map[string]Document, bool) { return d.m, d.kind == KindMap }

// Wrapped returns the typed struct d was constructed from via Of, if any.
func (d Document) Wrapped() (SmithyDocumentMarshaler, bool) {
	return d.wrapped, d.wrapped != nil
}

// Of builds a Document from an arbitrary Go value using the given codec
// Settings. Supported inputs: nil, bool, string, []byte, time.Time, any
// numeric kind, slices/arrays (-> list), maps with string keys (-> map),
// a SmithyDocumentMarshaler (wrapped, deferring to its own Serialize), or
// another Document (returned as-is with Settings applied).
func Of(v interface{}, settings Settings) (Document, error) {
	if v == nil {
		return Null().WithSettings(settings), nil
	}
	if doc, ok := v.(Document); ok {
		return doc.WithSettings(settings), nil
	}
	if m, ok := v.(SmithyDocumentMarshaler); ok {
		return Document{kind: KindMap, wrapped: m, settings: settings}, nil
	}

	switch t := v.(type) {
	case bool:
		return NewBool(t).WithSettings(settings), nil
	case string:
		return NewString(t).WithSettings(settings), nil
	case []byte:
		return NewBlob(t).WithSettings(settings), nil
	case time.Time:
		return NewTimestamp(t).WithSettings(settings), nil
	case Number:
		return NewNumber(t).WithSettings(settings), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewNumber(Number(fmt.Sprintf("%d", rv.Int()))).WithSettings(settings), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewNumber(Number(fmt.Sprintf("%d", rv.Uint()))).WithSettings(settings), nil
	case reflect.Float32, reflect.Float64:
		return NewNumber(Number(fmt.Sprintf("%v", rv.Float()))).WithSettings(settings), nil
	case reflect.Slice, reflect.Array:
		list := make([]Document, rv.Len())
		for i := range list {
			item, err := Of(rv.Index(i).Interface(), settings)
			if err != nil {
				return Document{}, err
			}
			list[i] = item
		}
		return NewList(list).WithSettings(settings), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Document{}, fmt.Errorf("document: map keys must be strings, got %s", rv.Type().Key())
		}
		m := make(map[string]Document, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, err := Of(iter.Value().Interface(), settings)
			if err != nil {
				return Document{}, err
			}
			m[iter.Key().String()] = item
		}
		return NewMap(m).WithSettings(settings), nil
	case reflect.Ptr:
		if rv.IsNil() {
			return Null().WithSettings(settings), nil
		}
		return Of(rv.Elem().Interface(), settings)
	}

	return Document{}, fmt.Errorf("document: unsupported Go type %T", v)
}

// Equal reports structural equality between two Documents: every level
// must match in kind and value, map comparison is key-order-insensitive,
// list comparison is order-sensitive (including null slots), and numeric
// values compare by canonical magnitude rather than lexical form (so "1"
// and "1.0" are equal).
func (d Document) Equal(o Document) bool {
	if d.kind != o.kind {
		return false
	}
	switch d.kind {
	case KindNull:
		return true
	case KindBool:
		return d.b == o.b
	case KindString:
		return d.s == o.s
	case KindBlob:
		return string(d.blob) == string(o.blob)
	case KindTimestamp:
		return d.ts.Equal(o.ts)
	case KindNumber:
		return numericEqual(d.n, o.n)
	case KindList:
		if len(d.list) != len(o.list) {
			return false
		}
		for i := range d.list {
			if !d.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(d.m) != len(o.m) {
			return false
		}
		for k, v := range d.m {
			ov, ok := o.m[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

func numericEqual(a, b Number) bool {
	if a == b {
		return true
	}
	af, aerr := a.Float64()
	bf, berr := b.Float64()
	if aerr == nil && berr == nil {
		return af == bf
	}
	return false
}
