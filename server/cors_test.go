package server

import (
	"testing"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/traits"
)

func newCORSService(origin string) *Service {
	schema := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "BeerService"}, relay.ShapeTypeService,
		[]relay.Trait{&traits.CORS{Origin: origin}})
	return &Service{Schema: schema, Operations: NewOperationRegistry()}
}

func TestApplyCORS_Reflects(t *testing.T) {
	svc := newCORSService("*")
	req := &Request{Origin: "https://example.com"}
	resp := &Response{}

	applyCORS(req, svc, resp)

	if got := resp.Fields.Get("Access-Control-Allow-Origin").Get(); got != "https://example.com" {
		t.Errorf("Allow-Origin = %q, want reflected origin", got)
	}
	if got := resp.Fields.Get("Access-Control-Max-Age").Get(); got != "600" {
		t.Errorf("Max-Age = %q, want 600", got)
	}
}

func TestApplyCORS_NoOriginHeader(t *testing.T) {
	svc := newCORSService("*")
	req := &Request{}
	resp := &Response{}

	applyCORS(req, svc, resp)

	if resp.Fields.Has("Access-Control-Allow-Origin") {
		t.Error("expected no CORS headers without an Origin request header")
	}
}

func TestApplyCORS_MismatchedConfiguredOrigin(t *testing.T) {
	svc := newCORSService("https://allowed.example.com, https://also.example.com")
	req := &Request{Origin: "https://evil.example.com"}
	resp := &Response{}

	applyCORS(req, svc, resp)

	if resp.Fields.Has("Access-Control-Allow-Origin") {
		t.Error("expected no CORS headers for an origin not in the configured list")
	}
}

func TestApplyCORS_MatchedFromList(t *testing.T) {
	svc := newCORSService("https://allowed.example.com, https://also.example.com")
	req := &Request{Origin: "https://also.example.com"}
	resp := &Response{}

	applyCORS(req, svc, resp)

	if got := resp.Fields.Get("Access-Control-Allow-Origin").Get(); got != "https://also.example.com" {
		t.Errorf("Allow-Origin = %q, want the matched origin", got)
	}
}
