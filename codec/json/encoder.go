package json

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
)

// Encoder is a streaming JSON encoder that builds output through chained
// Value/Object/Array calls rather than reflecting over a Go value, so a
// ShapeSerializer can drive it directly from schema-guided writes.
type Encoder struct {
	buf     bytes.Buffer
	scratch []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{scratch: make([]byte, 0, 64)}
}

// Bytes returns the encoded document so far.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// String returns the encoded document so far.
func (e *Encoder) String() string { return e.buf.String() }

// Value returns the root Value of the document.
func (e *Encoder) Value() Value { return newValue(&e.buf, &e.scratch) }

// Value represents one JSON value position: exactly one of its write
// methods (or Object/Array) should be called.
type Value struct {
	buf     *bytes.Buffer
	scratch *[]byte
}

func newValue(buf *bytes.Buffer, scratch *[]byte) Value {
	return Value{buf: buf, scratch: scratch}
}

// String writes a JSON string.
func (v Value) String(s string) {
	*v.scratch = escapeString((*v.scratch)[:0], s)
	v.buf.Write(*v.scratch)
}

// Boolean writes a JSON bool literal.
func (v Value) Boolean(b bool) {
	if b {
		v.buf.WriteString("true")
	} else {
		v.buf.WriteString("false")
	}
}

// Byte writes an int8 as a JSON number.
func (v Value) Byte(n int8) { v.Long(int64(n)) }

// Short writes an int16 as a JSON number.
func (v Value) Short(n int16) { v.Long(int64(n)) }

// Integer writes an int32 as a JSON number.
func (v Value) Integer(n int32) { v.Long(int64(n)) }

// Long writes an int64 as a JSON number.
func (v Value) Long(n int64) {
	*v.scratch = strconv.AppendInt((*v.scratch)[:0], n, 10)
	v.buf.Write(*v.scratch)
}

// Float writes a float32 as a JSON number, falling back to the quoted
// strings "NaN"/"Infinity"/"-Infinity" for non-finite values the way AWS's
// JSON protocols do, since raw JSON has no such literals.
func (v Value) Float(f float32) { v.writeFloat(float64(f), 32) }

// Double writes a float64 as a JSON number (see Float for non-finite
// handling).
func (v Value) Double(f float64) { v.writeFloat(f, 64) }

func (v Value) writeFloat(f float64, bits int) {
	switch {
	case math.IsNaN(f):
		v.String("NaN")
	case math.IsInf(f, 1):
		v.String("Infinity")
	case math.IsInf(f, -1):
		v.String("-Infinity")
	default:
		*v.scratch = strconv.AppendFloat((*v.scratch)[:0], f, 'g', -1, bits)
		v.buf.Write(*v.scratch)
	}
}

// Null writes the JSON null literal.
func (v Value) Null() { v.buf.WriteString("null") }

// Base64EncodeBytes writes b as a base64-encoded JSON string.
func (v Value) Base64EncodeBytes(b []byte) {
	v.String(base64.StdEncoding.EncodeToString(b))
}

// Raw copies pre-encoded JSON bytes verbatim (used to splice in a Document's
// own serialized form).
func (v Value) Raw(b []byte) { v.buf.Write(b) }

// Object opens a JSON object at this value position and returns its
// builder; the caller must call Close when done.
func (v Value) Object() *Object {
	v.buf.WriteByte('{')
	return &Object{buf: v.buf, scratch: v.scratch}
}

// Array opens a JSON array at this value position and returns its builder;
// the caller must call Close when done.
func (v Value) Array() *Array {
	v.buf.WriteByte('[')
	return &Array{buf: v.buf, scratch: v.scratch}
}

// Object builds a JSON object member-by-member.
type Object struct {
	buf     *bytes.Buffer
	scratch *[]byte
	wrote   bool
}

// Key starts a new member with the given name and returns the Value to
// write its contents into.
func (o *Object) Key(name string) Value {
	if o.wrote {
		o.buf.WriteByte(',')
	}
	o.wrote = true
	*o.scratch = escapeString((*o.scratch)[:0], name)
	o.buf.Write(*o.scratch)
	o.buf.WriteByte(':')
	return newValue(o.buf, o.scratch)
}

// Close writes the closing brace.
func (o *Object) Close() { o.buf.WriteByte('}') }

// Array builds a JSON array element-by-element.
type Array struct {
	buf     *bytes.Buffer
	scratch *[]byte
	wrote   bool
}

// Value returns the Value for the next element.
func (a *Array) Value() Value {
	if a.wrote {
		a.buf.WriteByte(',')
	}
	a.wrote = true
	return newValue(a.buf, a.scratch)
}

// Close writes the closing bracket.
func (a *Array) Close() { a.buf.WriteByte(']') }
