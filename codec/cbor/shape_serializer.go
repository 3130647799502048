package cbor

import (
	"math/big"
	"strings"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/document"
	"github.com/relaywire/relay/traits"
)

// ShapeSerializer implements marshaling of schema-described shapes to a CBOR
// value tree (RFC 8949), encoded in full once Bytes is called.
//
// Unlike the JSON serializer, which streams directly onto a growing byte
// buffer, a cbor.Value is an immutable constructed syntax tree: every
// container must be fully built bottom-up before it can be placed into its
// parent. ShapeSerializer tracks this with a stack of open list/map frames,
// each holding a "place" closure captured at the moment the frame was
// opened, so closing the frame can hand the finished Value back to whatever
// slot it belongs in without the caller re-supplying the schema.
type ShapeSerializer struct {
	root    Value
	hasRoot bool
	head    stack
}

var _ relay.ShapeSerializer = (*ShapeSerializer)(nil)

type stack struct {
	values []any
}

func (s *stack) Top() any {
	if len(s.values) == 0 {
		return nil
	}
	return s.values[len(s.values)-1]
}

func (s *stack) Push(v any) { s.values = append(s.values, v) }

func (s *stack) Pop() any {
	if len(s.values) == 0 {
		return nil
	}
	top := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return top
}

// listFrame accumulates the elements of an in-progress CBOR list.
type listFrame struct {
	items []Value
	place func(Value)
}

// mapFrame accumulates the entries of an in-progress CBOR map, used both
// for struct/union members (keyed directly by member name) and for
// explicit Smithy map shapes (keyed via WriteKey).
type mapFrame struct {
	items map[string]Value
	place func(Value)
}

// pendingKey is pushed by WriteKey and consumed by the next scalar or
// container write, directing it into mf.items[key] instead of falling
// through to the member-name default.
type pendingKey struct {
	mf  *mapFrame
	key string
}

// Bytes encodes the completed value tree. Calling it before the root value
// has been written returns nil.
func (ss *ShapeSerializer) Bytes() []byte {
	if !ss.hasRoot {
		return nil
	}
	return Encode(ss.root)
}

// sink returns the closure to call with the Value produced for s: into the
// current list, into the current map's pending key, into the current map
// under s's member name, or the document root.
func (ss *ShapeSerializer) sink(s *relay.Schema) func(Value) {
	switch top := ss.head.Top().(type) {
	case *listFrame:
		return func(v Value) { top.items = append(top.items, v) }
	case pendingKey:
		ss.head.Pop()
		return func(v Value) { top.mf.items[top.key] = v }
	case *mapFrame:
		key := s.ID.Member
		return func(v Value) { top.items[key] = v }
	default:
		return func(v Value) {
			ss.root = v
			ss.hasRoot = true
		}
	}
}

func intValue(x int64) Value {
	if x >= 0 {
		return Uint(uint64(x))
	}
	return NegInt(uint64(-x))
}

func (ss *ShapeSerializer) WriteInt8(s *relay.Schema, v int8)   { ss.sink(s)(intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt16(s *relay.Schema, v int16) { ss.sink(s)(intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt32(s *relay.Schema, v int32) { ss.sink(s)(intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt64(s *relay.Schema, v int64) { ss.sink(s)(intValue(v)) }

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

func (ss *ShapeSerializer) WriteFloat32(s *relay.Schema, v float32) { ss.sink(s)(Float32(v)) }
func (ss *ShapeSerializer) WriteFloat64(s *relay.Schema, v float64) { ss.sink(s)(Float64(v)) }

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

func (ss *ShapeSerializer) WriteBool(s *relay.Schema, v bool) { ss.sink(s)(Bool(v)) }

func (ss *ShapeSerializer) WriteBoolPtr(s *relay.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteString(s *relay.Schema, v string) {
	if _, ok := relay.SchemaTrait[*traits.Sensitive](s); ok {
		v = relay.RedactedText
	}
	ss.sink(s)(String(v))
}

func (ss *ShapeSerializer) WriteStringPtr(s *relay.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

// bigIntValue converts n to an unsigned/negative bignum tag (RFC 8949
// §3.4.3, tags 2 and 3), falling back to Uint/NegInt when n fits in 64
// bits so small BigIntegers don't pay the tag overhead.
func bigIntValue(n big.Int) Value {
	if n.IsInt64() {
		return intValue(n.Int64())
	}
	if n.Sign() >= 0 {
		return &Tag{ID: 2, Value: Slice(n.Bytes())}
	}
	m := new(big.Int).Neg(&n)
	m.Sub(m, big.NewInt(1))
	return &Tag{ID: 3, Value: Slice(m.Bytes())}
}

func (ss *ShapeSerializer) WriteBigInteger(s *relay.Schema, v big.Int) {
	ss.sink(s)(bigIntValue(v))
}

// WriteBigDecimal encodes an arbitrary-precision decimal as a CBOR decimal
// fraction (RFC 8949 §3.4.4, tag 4): a two-element list of [exponent,
// mantissa], derived from the shortest fixed-point decimal text
// representation of v.
func (ss *ShapeSerializer) WriteBigDecimal(s *relay.Schema, v big.Float) {
	text := v.Text('f', -1)
	neg := strings.HasPrefix(text, "-")
	if neg {
		text = text[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(text, ".")
	mantissaStr := intPart + fracPart
	var exponent int64
	if hasFrac {
		exponent = -int64(len(fracPart))
	}

	mantissaStr = strings.TrimLeft(mantissaStr, "0")
	if mantissaStr == "" {
		mantissaStr = "0"
	}
	mantissa := new(big.Int)
	mantissa.SetString(mantissaStr, 10)
	if neg {
		mantissa.Neg(mantissa)
	}

	ss.sink(s)(&Tag{ID: 4, Value: List{intValue(exponent), bigIntValue(*mantissa)}})
}

func (ss *ShapeSerializer) WriteBlob(s *relay.Schema, v []byte) { ss.sink(s)(Slice(v)) }

// WriteTime encodes v as a CBOR epoch-based date/time (RFC 8949 §3.4.2, tag
// 1): an integer when v carries no sub-second precision, a float
// otherwise.
func (ss *ShapeSerializer) WriteTime(s *relay.Schema, v time.Time) {
	var val Value
	if v.Nanosecond() == 0 {
		val = intValue(v.Unix())
	} else {
		val = Float64(float64(v.UnixNano()) / 1e9)
	}
	ss.sink(s)(&Tag{ID: 1, Value: val})
}

func (ss *ShapeSerializer) WriteTimePtr(s *relay.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

// WriteStruct opens a map frame, lets v serialize its members directly into
// it keyed by member name, then places the finished map.
func (ss *ShapeSerializer) WriteStruct(s *relay.Schema, v relay.Serializable) {
	place := ss.sink(s)
	mf := &mapFrame{items: map[string]Value{}}
	ss.head.Push(mf)
	v.Serialize(ss)
	ss.head.Pop()
	place(Map(mf.items))
}

// WriteUnion opens a single-entry map frame for the resolved variant.
func (ss *ShapeSerializer) WriteUnion(s, variant *relay.Schema, v relay.Serializable) {
	ss.WriteStruct(s, v)
}

// WriteDocument splices a dynamic Document value in as a CBOR value tree.
func (ss *ShapeSerializer) WriteDocument(s *relay.Schema, v document.Document) {
	ss.sink(s)(documentValue(v))
}

func documentValue(d document.Document) Value {
	switch d.Kind() {
	case document.KindNull:
		return &Nil{}
	case document.KindBool:
		b, _ := d.AsBool()
		return Bool(b)
	case document.KindNumber:
		n, _ := d.AsNumber()
		if f, err := n.Float64(); err == nil {
			if i, err := n.Int64(); err == nil && float64(i) == f {
				return intValue(i)
			}
			return Float64(f)
		}
		return String(n.String())
	case document.KindString:
		s, _ := d.AsString()
		return String(s)
	case document.KindBlob:
		b, _ := d.AsBlob()
		return Slice(b)
	case document.KindTimestamp:
		t, _ := d.AsTimestamp()
		if t.Nanosecond() == 0 {
			return &Tag{ID: 1, Value: intValue(t.Unix())}
		}
		return &Tag{ID: 1, Value: Float64(float64(t.UnixNano()) / 1e9)}
	case document.KindList:
		list, _ := d.AsList()
		out := make(List, len(list))
		for i, item := range list {
			out[i] = documentValue(item)
		}
		return out
	case document.KindMap:
		m, _ := d.AsMap()
		out := make(Map, len(m))
		for k, mv := range m {
			out[k] = documentValue(mv)
		}
		return out
	default:
		return &Nil{}
	}
}

func (ss *ShapeSerializer) WriteNil(s *relay.Schema) { ss.sink(s)(&Nil{}) }

// WriteList opens a list frame that subsequent Write* calls append
// elements to; CloseList places the finished list into the slot captured
// when the frame was opened.
func (ss *ShapeSerializer) WriteList(s *relay.Schema) {
	ss.head.Push(&listFrame{place: ss.sink(s)})
}

func (ss *ShapeSerializer) CloseList() {
	if lf, ok := ss.head.Pop().(*listFrame); ok && lf.place != nil {
		lf.place(List(lf.items))
	}
}

// WriteMap opens a map frame for a Smithy map shape; entries are driven by
// WriteKey followed by a value write, then CloseMap places the finished map.
func (ss *ShapeSerializer) WriteMap(s *relay.Schema) {
	ss.head.Push(&mapFrame{items: map[string]Value{}, place: ss.sink(s)})
}

func (ss *ShapeSerializer) WriteKey(s *relay.Schema, key string) {
	if mf, ok := ss.head.Top().(*mapFrame); ok {
		ss.head.Push(pendingKey{mf: mf, key: key})
	}
}

func (ss *ShapeSerializer) CloseMap() {
	if mf, ok := ss.head.Pop().(*mapFrame); ok && mf.place != nil {
		mf.place(Map(mf.items))
	}
}
