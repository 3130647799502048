package httpbinding

import (
	"encoding/base64"
	"math/big"
	"strconv"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/document"
	"github.com/relaywire/relay/traits"
)

// ShapeSerializer writes schema-described shapes onto the non-payload parts
// of an HTTP request (httpLabel, httpHeader, httpQuery). Map members,
// including httpPrefixHeaders- and httpQueryParams-bound ones, are not
// written. Members without one of those bindings are ignored: the
// payload, if any, is serialized separately by a body codec and spliced in
// as the request stream.
type ShapeSerializer struct {
	enc *Encoder
}

var _ relay.ShapeSerializer = (*ShapeSerializer)(nil)

// New returns a ShapeSerializer writing through enc.
func New(enc *Encoder) *ShapeSerializer {
	return &ShapeSerializer{enc: enc}
}

// Bytes returns nil; HTTP binding serialization writes directly to the
// request via Encode, not to an intermediate buffer.
func (s *ShapeSerializer) Bytes() []byte { return nil }

type destination struct {
	label  *URIValue
	header *HeaderValue
	query  *QueryValue
}

func (s *ShapeSerializer) destinationFor(schema *relay.Schema) destination {
	if _, ok := relay.SchemaTrait[*traits.HTTPLabel](schema); ok {
		v := s.enc.SetURI(schema.ID.Member)
		return destination{label: &v}
	}
	if h, ok := relay.SchemaTrait[*traits.HTTPHeader](schema); ok {
		v := s.enc.SetHeader(h.Name)
		return destination{header: &v}
	}
	if q, ok := relay.SchemaTrait[*traits.HTTPQuery](schema); ok {
		v := s.enc.SetQuery(q.Name)
		return destination{query: &v}
	}
	return destination{}
}

func (s *ShapeSerializer) WriteInt8(schema *relay.Schema, v int8) { s.WriteInt64(schema, int64(v)) }
func (s *ShapeSerializer) WriteInt16(schema *relay.Schema, v int16) {
	s.WriteInt64(schema, int64(v))
}
func (s *ShapeSerializer) WriteInt32(schema *relay.Schema, v int32) {
	s.WriteInt64(schema, int64(v))
}

func (s *ShapeSerializer) WriteInt64(schema *relay.Schema, v int64) {
	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		d.label.Long(v)
	case d.header != nil:
		d.header.Long(v)
	case d.query != nil:
		d.query.Long(v)
	}
}

func (s *ShapeSerializer) WriteInt8Ptr(schema *relay.Schema, v *int8) {
	if v != nil {
		s.WriteInt8(schema, *v)
	}
}
func (s *ShapeSerializer) WriteInt16Ptr(schema *relay.Schema, v *int16) {
	if v != nil {
		s.WriteInt16(schema, *v)
	}
}
func (s *ShapeSerializer) WriteInt32Ptr(schema *relay.Schema, v *int32) {
	if v != nil {
		s.WriteInt32(schema, *v)
	}
}
func (s *ShapeSerializer) WriteInt64Ptr(schema *relay.Schema, v *int64) {
	if v != nil {
		s.WriteInt64(schema, *v)
	}
}

func (s *ShapeSerializer) WriteFloat32(schema *relay.Schema, v float32) {
	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		d.label.Float(v)
	case d.header != nil:
		d.header.Float(v)
	case d.query != nil:
		d.query.Float(v)
	}
}

func (s *ShapeSerializer) WriteFloat64(schema *relay.Schema, v float64) {
	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		d.label.Double(v)
	case d.header != nil:
		d.header.Double(v)
	case d.query != nil:
		d.query.Double(v)
	}
}

func (s *ShapeSerializer) WriteFloat32Ptr(schema *relay.Schema, v *float32) {
	if v != nil {
		s.WriteFloat32(schema, *v)
	}
}
func (s *ShapeSerializer) WriteFloat64Ptr(schema *relay.Schema, v *float64) {
	if v != nil {
		s.WriteFloat64(schema, *v)
	}
}

func (s *ShapeSerializer) WriteBool(schema *relay.Schema, v bool) {
	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		d.label.Boolean(v)
	case d.header != nil:
		d.header.Boolean(v)
	case d.query != nil:
		d.query.Boolean(v)
	}
}

func (s *ShapeSerializer) WriteBoolPtr(schema *relay.Schema, v *bool) {
	if v != nil {
		s.WriteBool(schema, *v)
	}
}

func (s *ShapeSerializer) WriteString(schema *relay.Schema, v string) {
	if _, ok := relay.SchemaTrait[*traits.Sensitive](schema); ok {
		v = relay.RedactedText
	}
	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		d.label.String(v)
	case d.header != nil:
		d.header.String(v)
	case d.query != nil:
		d.query.String(v)
	}
}

func (s *ShapeSerializer) WriteStringPtr(schema *relay.Schema, v *string) {
	if v != nil {
		s.WriteString(schema, *v)
	}
}

// WriteBigInteger is unsupported for HTTP-bound scalars; no protocol in
// this runtime binds a BigInteger member to a label, header, or query.
func (s *ShapeSerializer) WriteBigInteger(schema *relay.Schema, v big.Int) {
	panic("httpbinding: BigInteger is not supported")
}

// WriteBigDecimal is unsupported; see WriteBigInteger.
func (s *ShapeSerializer) WriteBigDecimal(schema *relay.Schema, v big.Float) {
	panic("httpbinding: BigDecimal is not supported")
}

func (s *ShapeSerializer) WriteBlob(schema *relay.Schema, v []byte) {
	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		// labels don't carry a Blob setter; base64 it as a string segment.
		d.label.String(base64.StdEncoding.EncodeToString(v))
	case d.header != nil:
		d.header.Blob(v)
	case d.query != nil:
		d.query.Blob(v)
	}
}

func (s *ShapeSerializer) WriteTime(schema *relay.Schema, v time.Time) {
	format := "date-time"
	if tf, ok := relay.SchemaTrait[*traits.TimestampFormat](schema); ok {
		format = tf.Format
	} else if _, ok := relay.SchemaTrait[*traits.HTTPHeader](schema); ok {
		format = "http-date"
	}

	str := formatTime(v, format)

	d := s.destinationFor(schema)
	switch {
	case d.label != nil:
		d.label.String(str)
	case d.header != nil:
		d.header.String(str)
	case d.query != nil:
		d.query.String(str)
	}
}

func (s *ShapeSerializer) WriteTimePtr(schema *relay.Schema, v *time.Time) {
	if v != nil {
		s.WriteTime(schema, *v)
	}
}

func formatTime(v time.Time, format string) string {
	switch format {
	case "http-date":
		return v.UTC().Format(time.RFC1123)
	case "epoch-seconds":
		return strconv.FormatInt(v.Unix(), 10)
	default:
		return v.UTC().Format(time.RFC3339)
	}
}

// WriteStruct is a no-op: a structure can only appear in the HTTP payload,
// which is serialized by a separate body codec.
func (s *ShapeSerializer) WriteStruct(schema *relay.Schema, v relay.Serializable) {}

// WriteUnion is a no-op; see WriteStruct.
func (s *ShapeSerializer) WriteUnion(schema, variant *relay.Schema, v relay.Serializable) {}

// WriteDocument is a no-op; see WriteStruct.
func (s *ShapeSerializer) WriteDocument(schema *relay.Schema, v document.Document) {}

func (s *ShapeSerializer) WriteNil(schema *relay.Schema) {}

// WriteList opens a list for a httpQuery-bound member; CloseList is a
// no-op, since each element is written as its own AddQuery call rather
// than through an intermediate buffer.
func (s *ShapeSerializer) WriteList(schema *relay.Schema) {}

func (s *ShapeSerializer) CloseList() {}

// WriteMap, WriteKey and CloseMap are no-ops: map members, including
// relay.api#httpQueryParams and relay.api#httpPrefixHeaders ones, write
// nothing to the request.
func (s *ShapeSerializer) WriteMap(schema *relay.Schema) {}

func (s *ShapeSerializer) WriteKey(schema *relay.Schema, key string) {}

func (s *ShapeSerializer) CloseMap() {}
