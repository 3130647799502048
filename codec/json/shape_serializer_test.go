package json

import (
	"bytes"
	"testing"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/traits"
)

func TestShapeSerializer_WriteString_SensitiveRedacted(t *testing.T) {
	schema := relay.NewSchema(
		relay.ShapeID{Namespace: "example", Name: "Password"},
		relay.ShapeTypeString,
		[]relay.Trait{&traits.Sensitive{}},
	)

	c := &Codec{}
	ss := c.Serializer()
	ss.WriteString(schema, "hunter2")

	out := ss.(*ShapeSerializer).Bytes()
	if !bytes.Contains(out, []byte(relay.RedactedText)) {
		t.Errorf("output %q does not contain %q", out, relay.RedactedText)
	}
	if bytes.Contains(out, []byte("hunter2")) {
		t.Errorf("output %q leaks the original sensitive value", out)
	}
}

func TestShapeSerializer_WriteString_NonSensitiveUnaffected(t *testing.T) {
	schema := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "Name"}, relay.ShapeTypeString, nil)

	c := &Codec{}
	ss := c.Serializer()
	ss.WriteString(schema, "hunter2")

	out := ss.(*ShapeSerializer).Bytes()
	if !bytes.Contains(out, []byte("hunter2")) {
		t.Errorf("output %q should carry the plain value unchanged", out)
	}
}
