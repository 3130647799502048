package json

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/document"
	"github.com/relaywire/relay/traits"
)

type shapeDeserializer struct {
	dec  *json.Decoder
	opts *Codec
	head stack
}

func newShapeDeserializer(p []byte, opts *Codec) *shapeDeserializer {
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	return &shapeDeserializer{dec: dec, opts: opts}
}

var _ relay.ShapeDeserializer = (*shapeDeserializer)(nil)

func (d *shapeDeserializer) token() (json.Token, error) {
	return d.dec.Token()
}

func (d *shapeDeserializer) expectDelim(e json.Delim) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	if a, ok := tok.(json.Delim); ok {
		if e != a {
			return fmt.Errorf("expect %s, got %s", string(e), string(a))
		}
		return nil
	}
	return fmt.Errorf("expect delim, got %T", tok)
}

func (d *shapeDeserializer) readInt(min, max int64) (int64, error) {
	tok, err := d.token()
	if err != nil {
		return 0, err
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected number, got %T", tok)
	}
	n, err := num.Int64()
	if err != nil {
		return 0, err
	}
	if n < min || n > max {
		return 0, fmt.Errorf("int %d exceeds range [%d, %d]", n, min, max)
	}
	return n, nil
}

func (d *shapeDeserializer) ReadInt8(s *relay.Schema, v *int8) error {
	n, err := d.readInt(math.MinInt8, math.MaxInt8)
	*v = int8(n)
	return err
}

func (d *shapeDeserializer) ReadInt16(s *relay.Schema, v *int16) error {
	n, err := d.readInt(math.MinInt16, math.MaxInt16)
	*v = int16(n)
	return err
}

func (d *shapeDeserializer) ReadInt32(s *relay.Schema, v *int32) error {
	n, err := d.readInt(math.MinInt32, math.MaxInt32)
	*v = int32(n)
	return err
}

func (d *shapeDeserializer) ReadInt64(s *relay.Schema, v *int64) error {
	n, err := d.readInt(math.MinInt64, math.MaxInt64)
	*v = n
	return err
}

func (d *shapeDeserializer) ReadInt8Ptr(s *relay.Schema, v **int8) error {
	if *v == nil {
		*v = new(int8)
	}
	return d.ReadInt8(s, *v)
}

func (d *shapeDeserializer) ReadInt16Ptr(s *relay.Schema, v **int16) error {
	if *v == nil {
		*v = new(int16)
	}
	return d.ReadInt16(s, *v)
}

func (d *shapeDeserializer) ReadInt32Ptr(s *relay.Schema, v **int32) error {
	if *v == nil {
		*v = new(int32)
	}
	return d.ReadInt32(s, *v)
}

func (d *shapeDeserializer) ReadInt64Ptr(s *relay.Schema, v **int64) error {
	if *v == nil {
		*v = new(int64)
	}
	return d.ReadInt64(s, *v)
}

func (d *shapeDeserializer) readFloat() (float64, error) {
	tok, err := d.token()
	if err != nil {
		return 0, err
	}
	switch v := tok.(type) {
	case json.Number:
		return v.Float64()
	case string:
		switch {
		case strings.EqualFold(v, "NaN"):
			return math.NaN(), nil
		case strings.EqualFold(v, "Infinity"):
			return math.Inf(1), nil
		case strings.EqualFold(v, "-Infinity"):
			return math.Inf(-1), nil
		default:
			return 0, fmt.Errorf("unexpected string value for float: %s", v)
		}
	default:
		return 0, fmt.Errorf("expected number, got %T", tok)
	}
}

func (d *shapeDeserializer) ReadFloat32(s *relay.Schema, v *float32) error {
	n, err := d.readFloat()
	*v = float32(n)
	return err
}

func (d *shapeDeserializer) ReadFloat64(s *relay.Schema, v *float64) error {
	n, err := d.readFloat()
	*v = n
	return err
}

func (d *shapeDeserializer) ReadFloat32Ptr(s *relay.Schema, v **float32) error {
	if *v == nil {
		*v = new(float32)
	}
	return d.ReadFloat32(s, *v)
}

func (d *shapeDeserializer) ReadFloat64Ptr(s *relay.Schema, v **float64) error {
	if *v == nil {
		*v = new(float64)
	}
	return d.ReadFloat64(s, *v)
}

func (d *shapeDeserializer) ReadBool(s *relay.Schema, v *bool) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	b, ok := tok.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", tok)
	}
	*v = b
	return nil
}

func (d *shapeDeserializer) ReadBoolPtr(s *relay.Schema, v **bool) error {
	if *v == nil {
		*v = new(bool)
	}
	return d.ReadBool(s, *v)
}

func (d *shapeDeserializer) ReadString(s *relay.Schema, v *string) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	str, ok := tok.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", tok)
	}
	*v = str
	return nil
}

func (d *shapeDeserializer) ReadStringPtr(s *relay.Schema, v **string) error {
	if *v == nil {
		*v = new(string)
	}
	return d.ReadString(s, *v)
}

func (d *shapeDeserializer) ReadBlob(s *relay.Schema, v *[]byte) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	str, ok := tok.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", tok)
	}
	b, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	*v = b
	return nil
}

func (d *shapeDeserializer) ReadTime(s *relay.Schema, v *time.Time) error {
	format := d.opts.timestampFormat()
	if tf, ok := relay.SchemaTrait[*traits.TimestampFormat](s); ok {
		format = tf.Format
	}

	if format == "epoch-seconds" {
		tok, err := d.token()
		if err != nil {
			return err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return fmt.Errorf("expected number for epoch-seconds timestamp, got %T", tok)
		}
		f, err := num.Float64()
		if err != nil {
			return err
		}
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		*v = time.Unix(sec, nsec).UTC()
		return nil
	}

	var str string
	if err := d.ReadString(s, &str); err != nil {
		return err
	}

	var t time.Time
	var err error
	switch format {
	case "http-date":
		t, err = time.Parse(time.RFC1123, str)
	default:
		t, err = time.Parse(time.RFC3339, str)
	}
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	*v = t
	return nil
}

func (d *shapeDeserializer) ReadTimePtr(s *relay.Schema, v **time.Time) error {
	if *v == nil {
		*v = new(time.Time)
	}
	return d.ReadTime(s, *v)
}

func (d *shapeDeserializer) ReadList(s *relay.Schema) error {
	return d.expectDelim('[')
}

func (d *shapeDeserializer) ReadListItem(s *relay.Schema) (bool, error) {
	if !d.dec.More() {
		return false, d.expectDelim(']')
	}
	return true, nil
}

func (d *shapeDeserializer) ReadMap(s *relay.Schema) error {
	return d.expectDelim('{')
}

func (d *shapeDeserializer) ReadMapKey(s *relay.Schema) (string, bool, error) {
	if !d.dec.More() {
		return "", false, d.expectDelim('}')
	}
	tok, err := d.token()
	if err != nil {
		return "", false, err
	}
	key, ok := tok.(string)
	if !ok {
		return "", false, fmt.Errorf("expected string key, got %T", tok)
	}
	return key, true, nil
}

func (d *shapeDeserializer) ReadStruct(s *relay.Schema) error {
	if err := d.expectDelim('{'); err != nil {
		return err
	}
	d.head.Push(s)
	return nil
}

func (d *shapeDeserializer) ReadStructMember() (*relay.Schema, error) {
	if !d.dec.More() {
		d.head.Pop()
		return nil, d.expectDelim('}')
	}

	tok, err := d.token()
	if err != nil {
		return nil, err
	}
	key, ok := tok.(string)
	if !ok {
		return nil, fmt.Errorf("expected string key, got %T", tok)
	}

	schema, ok := d.head.Top().(*relay.Schema)
	if !ok {
		return nil, fmt.Errorf("ReadStructMember called without ReadStruct")
	}

	member := d.resolveMember(schema, key)
	if member == nil {
		if err := d.skip(); err != nil {
			return nil, err
		}
		return d.ReadStructMember()
	}

	return member, nil
}

// resolveMember finds the member schema for a wire field name, consulting
// @jsonName when the dialect honors it and the direct name lookup misses.
func (d *shapeDeserializer) resolveMember(schema *relay.Schema, key string) *relay.Schema {
	if m, ok := schema.Member(key); ok {
		return m
	}
	if !d.opts.UseJSONName {
		return nil
	}
	for _, m := range schema.Members() {
		if jn, ok := relay.SchemaTrait[*traits.JSONName](m); ok && jn.Name == key {
			return m
		}
	}
	return nil
}

func (d *shapeDeserializer) ReadUnion(s *relay.Schema) (*relay.Schema, error) {
	if err := d.expectDelim('{'); err != nil {
		return nil, err
	}
	if !d.dec.More() {
		return nil, fmt.Errorf("union must have exactly one member")
	}

	tok, err := d.token()
	if err != nil {
		return nil, err
	}
	key, ok := tok.(string)
	if !ok {
		return nil, fmt.Errorf("expected string key, got %T", tok)
	}

	member := d.resolveMember(s, key)
	if member == nil {
		return nil, fmt.Errorf("unknown union variant: %s", key)
	}
	return member, nil
}

// ReadDocument decodes the current JSON value into a dynamic Document tree.
func (d *shapeDeserializer) ReadDocument(s *relay.Schema, out *document.Document) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	val, err := d.readDocumentValue(tok)
	if err != nil {
		return err
	}
	*out = val.WithSettings(document.Settings{
		UseJSONName:     d.opts.UseJSONName,
		TimestampFormat: d.opts.timestampFormat(),
	})
	return nil
}

func (d *shapeDeserializer) readDocumentValue(tok json.Token) (document.Document, error) {
	switch v := tok.(type) {
	case nil:
		return document.Null(), nil
	case bool:
		return document.NewBool(v), nil
	case json.Number:
		return document.NewNumber(document.Number(v.String())), nil
	case string:
		return document.NewString(v), nil
	case json.Delim:
		switch v {
		case '{':
			m := make(map[string]document.Document)
			for d.dec.More() {
				ktok, err := d.token()
				if err != nil {
					return document.Document{}, err
				}
				key, ok := ktok.(string)
				if !ok {
					return document.Document{}, fmt.Errorf("expected string key, got %T", ktok)
				}
				vtok, err := d.token()
				if err != nil {
					return document.Document{}, err
				}
				vd, err := d.readDocumentValue(vtok)
				if err != nil {
					return document.Document{}, err
				}
				m[key] = vd
			}
			if _, err := d.token(); err != nil { // '}'
				return document.Document{}, err
			}
			return document.NewMap(m), nil
		case '[':
			var list []document.Document
			for d.dec.More() {
				vtok, err := d.token()
				if err != nil {
					return document.Document{}, err
				}
				vd, err := d.readDocumentValue(vtok)
				if err != nil {
					return document.Document{}, err
				}
				list = append(list, vd)
			}
			if _, err := d.token(); err != nil { // ']'
				return document.Document{}, err
			}
			return document.NewList(list), nil
		default:
			return document.Document{}, fmt.Errorf("unexpected delimiter: %v", v)
		}
	default:
		return document.Document{}, fmt.Errorf("unexpected JSON token: %T", tok)
	}
}

// skip discards the next complete JSON value (used for unrecognized struct
// members so decoding can continue past them).
func (d *shapeDeserializer) skip() error {
	tok, err := d.token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			for d.dec.More() {
				if _, err := d.token(); err != nil {
					return err
				}
				if err := d.skip(); err != nil {
					return err
				}
			}
			_, err := d.token()
			return err
		case '[':
			for d.dec.More() {
				if err := d.skip(); err != nil {
					return err
				}
			}
			_, err := d.token()
			return err
		default:
			return fmt.Errorf("unexpected delimiter: %v", v)
		}
	default:
		return nil
	}
}
