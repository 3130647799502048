package httpbinding

import (
	"net/http"
	"testing"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/traits"
)

func TestShapeSerializer_WriteString_SensitiveRedacted(t *testing.T) {
	schema := relay.NewSchema(
		relay.ShapeID{Member: "authorization"},
		relay.ShapeTypeString,
		[]relay.Trait{&traits.Sensitive{}, &traits.HTTPHeader{Name: "Authorization"}},
	)

	enc, err := NewEncoder("/", "", http.Header{})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	ss := New(enc)
	ss.WriteString(schema, "hunter2")

	req, err := enc.Encode(&http.Request{Header: http.Header{}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != relay.RedactedText {
		t.Errorf("Authorization header = %q, want %q", got, relay.RedactedText)
	}
}
