// Package json implements the JSON serde kernel: a schema-driven
// ShapeSerializer/ShapeDeserializer pair parameterized by the dialect knobs
// the restJson1 and awsJson1_0/1_1 protocols each need (field renaming,
// timestamp format, blob encoding, pretty-printing).
package json

import (
	"bytes"
	"encoding/json"

	"github.com/relaywire/relay"
)

// Codec is a JSON codec. The zero value ignores @jsonName and writes
// date-time timestamps; restJson1 sets UseJSONName: true. awsJson1_0/1_1
// construct a Codec with UseJSONName: false and TimestampFormat:
// "epoch-seconds".
type Codec struct {
	// UseJSONName controls whether member serialization honors the
	// @jsonName trait. awsJson dialects ignore it.
	UseJSONName bool

	// TimestampFormat is the default format used for members that don't
	// carry their own @timestampFormat trait. One of "date-time" (default),
	// "http-date", "epoch-seconds".
	TimestampFormat string

	// Base64Blobs is not consulted by the serializer or deserializer: blob
	// members are always base64-encoded, whatever its value.
	Base64Blobs bool

	// SerializeTypeInDocuments, when true, embeds a "__type" discriminator
	// in object-shaped Documents that wrap a typed struct.
	SerializeTypeInDocuments bool

	// PrettyPrint reformats the final output with indentation. It's a
	// cosmetic post-process over already-valid bytes, not a codec-level
	// semantic, so it's applied with encoding/json.Indent rather than
	// threaded through the streaming encoder.
	PrettyPrint bool
}

var _ relay.Codec = (*Codec)(nil)

func (c *Codec) timestampFormat() string {
	if c.TimestampFormat == "" {
		return "date-time"
	}
	return c.TimestampFormat
}

// Serializer returns a new JSON shape serializer using this codec's
// dialect settings.
func (c *Codec) Serializer() relay.ShapeSerializer {
	return &ShapeSerializer{
		enc:  NewEncoder(),
		opts: c,
	}
}

// Deserializer returns a new JSON shape deserializer over p using this
// codec's dialect settings.
func (c *Codec) Deserializer(p []byte) relay.ShapeDeserializer {
	return newShapeDeserializer(p, c)
}

// finalize applies PrettyPrint, if requested, to raw encoded bytes.
func (c *Codec) finalize(b []byte) []byte {
	if !c.PrettyPrint {
		return b
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return b
	}
	return buf.Bytes()
}
