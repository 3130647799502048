// Package cbor implements the serde kernel for the RPCv2-CBOR protocol: a
// schema-driven ShapeSerializer/ShapeDeserializer pair built over the
// low-level CBOR value tree. Unlike restJson1/awsJson, rpcv2cbor has no
// dialect knobs (no @jsonName equivalent, no pluggable timestamp default),
// so the Codec carries no fields.
package cbor

import (
	"github.com/relaywire/relay"
)

// Codec is the RPCv2-CBOR codec.
type Codec struct{}

var _ relay.Codec = (*Codec)(nil)

// Serializer returns a new CBOR shape serializer.
func (c *Codec) Serializer() relay.ShapeSerializer {
	return &ShapeSerializer{}
}

// Deserializer returns a new CBOR shape deserializer over p.
func (c *Codec) Deserializer(p []byte) relay.ShapeDeserializer {
	return newShapeDeserializer(p)
}
