package http

import (
	"context"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/auth"
)

const (
	// SchemeIDHMAC identifies the generalized canonical-request HMAC auth
	// scheme (a protocol-neutral generalization of the AWS SigV4 shape:
	// a signing scope, an optional region component, and a derived key
	// computed from an identity's secret).
	SchemeIDHMAC = "relay.auth#hmac"

	// SchemeIDBearer identifies the HTTP Bearer auth scheme.
	SchemeIDBearer = "relay.api#httpBearerAuth"

	// SchemeIDAnonymous identifies the anonymous or "no-auth" scheme.
	SchemeIDAnonymous = "relay.api#noAuth"
)

// Signer signs an HTTP request for a resolved identity.
type Signer interface {
	SignRequest(ctx context.Context, req *Request, identity auth.Identity, signerProps relay.Properties) error
}

// AuthScheme pairs an identity resolver lookup with a Signer for one auth
// scheme shape id, implementing the client pipeline's notion of an
// auth.Option's runtime behavior over HTTP transport.
type AuthScheme interface {
	SchemeID() string
	IdentityResolver(auth.IdentityResolverOptions) auth.IdentityResolver
	Signer() Signer
}

// NewHMACScheme returns an HMAC auth scheme that uses the given Signer.
func NewHMACScheme(signer Signer) AuthScheme {
	return &authScheme{
		schemeID: SchemeIDHMAC,
		signer:   signer,
	}
}

// NewBearerScheme returns an HTTP bearer auth scheme that uses the given Signer.
func NewBearerScheme(signer Signer) AuthScheme {
	return &authScheme{
		schemeID: SchemeIDBearer,
		signer:   signer,
	}
}

// NewAnonymousScheme returns an anonymous auth scheme.
func NewAnonymousScheme() AuthScheme {
	return &authScheme{
		schemeID: SchemeIDAnonymous,
		signer:   &nopSigner{},
	}
}

// authScheme is parameterized to generically implement the exported AuthScheme
// interface
type authScheme struct {
	schemeID string
	signer   Signer
}

var _ AuthScheme = (*authScheme)(nil)

func (s *authScheme) SchemeID() string {
	return s.schemeID
}

func (s *authScheme) IdentityResolver(o auth.IdentityResolverOptions) auth.IdentityResolver {
	return o.GetIdentityResolver(s.schemeID)
}

func (s *authScheme) Signer() Signer {
	return s.signer
}

type nopSigner struct{}

var _ Signer = (*nopSigner)(nil)

func (*nopSigner) SignRequest(context.Context, *Request, auth.Identity, relay.Properties) error {
	return nil
}
