package hmacauth

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/relaywire/relay"
	smithyhttp "github.com/relaywire/relay/transport/http"
)

func newSignedRequest(t *testing.T) *smithyhttp.Request {
	t.Helper()

	raw, err := http.NewRequest(http.MethodPost, "https://example.service.internal/items", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	raw.Host = "example.service.internal"

	return &smithyhttp.Request{Request: raw}
}

func TestSignRequest_SetsAuthorizationHeader(t *testing.T) {
	req := newSignedRequest(t)

	var props relay.Properties
	smithyhttp.SetHMACScope(&props, "inventory")
	smithyhttp.SetHMACRegion(&props, "us-test-1")

	creds := Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET", SessionToken: "TOKEN"}

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewSigner()
	s.Now = func() time.Time { return fixed }

	if err := s.SignRequest(nil, req, creds, props); err != nil {
		t.Fatalf("SignRequest: %v", err)
	}

	auth := req.Header.Get("Authorization")
	if !strings.HasPrefix(auth, Algorithm+" Credential=AKID/20240102/us-test-1/inventory/relay_request") {
		t.Errorf("unexpected Authorization header: %s", auth)
	}
	if got := req.Header.Get("X-Relay-Date"); got != "20240102T030405Z" {
		t.Errorf("unexpected X-Relay-Date: %s", got)
	}
	if got := req.Header.Get("X-Relay-Token"); got != "TOKEN" {
		t.Errorf("unexpected X-Relay-Token: %s", got)
	}
}

func TestSignRequest_Deterministic(t *testing.T) {
	creds := Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	sign := func() string {
		req := newSignedRequest(t)
		s := NewSigner()
		s.Now = func() time.Time { return fixed }
		if err := s.SignRequest(nil, req, creds, relay.Properties{}); err != nil {
			t.Fatalf("SignRequest: %v", err)
		}
		return req.Header.Get("Authorization")
	}

	if a, b := sign(), sign(); a != b {
		t.Errorf("expected deterministic signature, got %q != %q", a, b)
	}
}
