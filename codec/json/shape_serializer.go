package json

import (
	"math/big"
	"strconv"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/document"
	"github.com/relaywire/relay/traits"
)

// ShapeSerializer implements marshaling of schema-described shapes to JSON,
// honoring the dialect knobs of the Codec that created it.
type ShapeSerializer struct {
	enc  *Encoder
	opts *Codec
	head stack
}

var _ relay.ShapeSerializer = (*ShapeSerializer)(nil)

// stack tracks the nesting of in-progress Objects/Arrays/member Values so
// Write* calls know where their value belongs without the caller having to
// pass it explicitly.
type stack struct {
	values []any
}

type empty struct{}

func (s *stack) Top() any {
	if len(s.values) == 0 {
		return empty{}
	}
	return s.values[len(s.values)-1]
}

func (s *stack) Push(v any) { s.values = append(s.values, v) }

func (s *stack) Pop() {
	if len(s.values) > 0 {
		s.values = s.values[:len(s.values)-1]
	}
}

// Bytes returns the encoded document, applying pretty-printing if the
// dialect requests it.
func (ss *ShapeSerializer) Bytes() []byte {
	return ss.opts.finalize(ss.enc.Bytes())
}

// memberName resolves the wire name for a member schema: @jsonName if the
// dialect honors it, else the member's declared name.
func (ss *ShapeSerializer) memberName(s *relay.Schema) string {
	if ss.opts.UseJSONName {
		if jn, ok := relay.SchemaTrait[*traits.JSONName](s); ok {
			return jn.Name
		}
	}
	return s.ID.Member
}

// next returns the Value to write into for the current position: a member
// slot on the open Object, the next element of the open Array, a pending
// keyed Value, or the document root.
func (ss *ShapeSerializer) next(s *relay.Schema) Value {
	switch top := ss.head.Top().(type) {
	case *Object:
		return top.Key(ss.memberName(s))
	case *Array:
		return top.Value()
	case Value:
		ss.head.Pop()
		return top
	default:
		return ss.enc.Value()
	}
}

func (ss *ShapeSerializer) WriteInt8(s *relay.Schema, v int8)   { ss.next(s).Byte(v) }
func (ss *ShapeSerializer) WriteInt16(s *relay.Schema, v int16) { ss.next(s).Short(v) }
func (ss *ShapeSerializer) WriteInt32(s *relay.Schema, v int32) { ss.next(s).Integer(v) }
func (ss *ShapeSerializer) WriteInt64(s *relay.Schema, v int64) { ss.next(s).Long(v) }

func (ss *ShapeSerializer) WriteInt8Ptr(s *relay.Schema, v *int8) {
	if v != nil {
		ss.WriteInt8(s, *v)
	}
}
func (ss *ShapeSerializer) WriteInt16Ptr(s *relay.Schema, v *int16) {
	if v != nil {
		ss.WriteInt16(s, *v)
	}
}
func (ss *ShapeSerializer) WriteInt32Ptr(s *relay.Schema, v *int32) {
	if v != nil {
		ss.WriteInt32(s, *v)
	}
}
func (ss *ShapeSerializer) WriteInt64Ptr(s *relay.Schema, v *int64) {
	if v != nil {
		ss.WriteInt64(s, *v)
	}
}

func (ss *ShapeSerializer) WriteFloat32(s *relay.Schema, v float32) { ss.next(s).Float(v) }
func (ss *ShapeSerializer) WriteFloat64(s *relay.Schema, v float64) { ss.next(s).Double(v) }

func (ss *ShapeSerializer) WriteFloat32Ptr(s *relay.Schema, v *float32) {
	if v != nil {
		ss.WriteFloat32(s, *v)
	}
}
func (ss *ShapeSerializer) WriteFloat64Ptr(s *relay.Schema, v *float64) {
	if v != nil {
		ss.WriteFloat64(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBool(s *relay.Schema, v bool) { ss.next(s).Boolean(v) }

func (ss *ShapeSerializer) WriteBoolPtr(s *relay.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteString(s *relay.Schema, v string) {
	if _, ok := relay.SchemaTrait[*traits.Sensitive](s); ok {
		v = relay.RedactedText
	}
	ss.next(s).String(v)
}

func (ss *ShapeSerializer) WriteStringPtr(s *relay.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

// WriteBigInteger renders an arbitrary-precision integer as a JSON number
// literal, splicing the decimal text in directly rather than routing it
// through a fixed-width numeric encoder.
func (ss *ShapeSerializer) WriteBigInteger(s *relay.Schema, v big.Int) {
	ss.next(s).Raw([]byte(v.String()))
}

// WriteBigDecimal renders an arbitrary-precision decimal as a JSON number
// literal.
func (ss *ShapeSerializer) WriteBigDecimal(s *relay.Schema, v big.Float) {
	ss.next(s).Raw([]byte(v.Text('g', -1)))
}

// WriteBlob base64-encodes v. The codec's Base64Blobs setting is not
// consulted; blobs are never rejected.
func (ss *ShapeSerializer) WriteBlob(s *relay.Schema, v []byte) {
	ss.next(s).Base64EncodeBytes(v)
}

// WriteTime formats v per the member's @timestampFormat trait, falling back
// to the codec's dialect default.
func (ss *ShapeSerializer) WriteTime(s *relay.Schema, v time.Time) {
	format := ss.opts.timestampFormat()
	if tf, ok := relay.SchemaTrait[*traits.TimestampFormat](s); ok {
		format = tf.Format
	}

	val := ss.next(s)
	switch format {
	case "epoch-seconds":
		sec := float64(v.UnixNano()) / 1e9
		val.Raw(strconv.AppendFloat(nil, sec, 'f', -1, 64))
	case "http-date":
		val.String(v.UTC().Format(time.RFC1123))
	default: // "date-time"
		val.String(v.UTC().Format(time.RFC3339Nano))
	}
}

func (ss *ShapeSerializer) WriteTimePtr(s *relay.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

// WriteStruct opens an object, lets v serialize its members into this
// serializer, then closes it.
func (ss *ShapeSerializer) WriteStruct(s *relay.Schema, v relay.Serializable) {
	ss.head.Push(ss.next(s).Object())
	v.Serialize(ss)
	ss.closeObject()
}

// WriteUnion opens a single-member object for the resolved variant.
func (ss *ShapeSerializer) WriteUnion(s, variant *relay.Schema, v relay.Serializable) {
	ss.head.Push(ss.next(s).Object())
	v.Serialize(ss)
	ss.closeObject()
}

func (ss *ShapeSerializer) closeObject() {
	if obj, ok := ss.head.Top().(*Object); ok {
		obj.Close()
		ss.head.Pop()
	}
}

// WriteDocument splices a dynamic Document value in as JSON, optionally
// tagging it with a "__type" discriminator when the dialect requests it and
// the Document wraps a named struct.
func (ss *ShapeSerializer) WriteDocument(s *relay.Schema, v document.Document) {
	val := ss.next(s)

	if ss.opts.SerializeTypeInDocuments {
		if wrapped, ok := v.Wrapped(); ok {
			if typed, ok := wrapped.(interface{ ShapeID() relay.ShapeID }); ok {
				obj := val.Object()
				obj.Key("__type").String(typed.ShapeID().String())
				ss.writeDocumentMembers(obj, v)
				obj.Close()
				return
			}
		}
	}

	writeDocumentValue(val, v)
}

func (ss *ShapeSerializer) writeDocumentMembers(obj *Object, v document.Document) {
	m, _ := v.AsMap()
	for k, mv := range m {
		writeDocumentValue(obj.Key(k), mv)
	}
}

// writeDocumentValue recursively encodes a dynamic Document tree.
func writeDocumentValue(val Value, d document.Document) {
	switch d.Kind() {
	case document.KindNull:
		val.Null()
	case document.KindBool:
		b, _ := d.AsBool()
		val.Boolean(b)
	case document.KindNumber:
		n, _ := d.AsNumber()
		val.Raw([]byte(n.String()))
	case document.KindString:
		s, _ := d.AsString()
		val.String(s)
	case document.KindBlob:
		b, _ := d.AsBlob()
		val.Base64EncodeBytes(b)
	case document.KindTimestamp:
		t, _ := d.AsTimestamp()
		val.String(t.UTC().Format(time.RFC3339Nano))
	case document.KindList:
		list, _ := d.AsList()
		arr := val.Array()
		for _, item := range list {
			writeDocumentValue(arr.Value(), item)
		}
		arr.Close()
	case document.KindMap:
		m, _ := d.AsMap()
		obj := val.Object()
		for k, mv := range m {
			writeDocumentValue(obj.Key(k), mv)
		}
		obj.Close()
	}
}

func (ss *ShapeSerializer) WriteNil(s *relay.Schema) {
	ss.next(s).Null()
}

// WriteList opens an array that subsequent Write* calls append elements to.
func (ss *ShapeSerializer) WriteList(s *relay.Schema) {
	ss.head.Push(ss.next(s).Array())
}

func (ss *ShapeSerializer) CloseList() {
	if arr, ok := ss.head.Top().(*Array); ok {
		arr.Close()
		ss.head.Pop()
	}
}

// WriteMap opens an object whose members are written via WriteKey followed
// by a value write.
func (ss *ShapeSerializer) WriteMap(s *relay.Schema) {
	ss.head.Push(ss.next(s).Object())
}

func (ss *ShapeSerializer) WriteKey(s *relay.Schema, key string) {
	if obj, ok := ss.head.Top().(*Object); ok {
		ss.head.Push(obj.Key(key))
	}
}

func (ss *ShapeSerializer) CloseMap() {
	ss.closeObject()
}
