package http

import (
	"github.com/relaywire/relay"
	"github.com/relaywire/relay/auth"
)

// NewHMACOption creates an HMAC auth Option from an input configuration.
// This is the vendor-neutral generalization of the canonical-request HMAC
// signing scheme (SigV4-shaped: a signing scope plus an optional region
// component).
func NewHMACOption(propFns ...func(*HMACProperties)) *auth.Option {
	var props HMACProperties
	for _, f := range propFns {
		f(&props)
	}

	return &auth.Option{
		SchemeID:         SchemeIDHMAC,
		SignerProperties: props.toSignerProperties(),
	}
}

// HMACProperties represent the inputs to the HMAC auth scheme.
type HMACProperties struct {
	// Scope names the service/endpoint the signature is scoped to (the
	// SigV4 "signing name" generalized away from AWS).
	Scope string
	// Region optionally further scopes the signature (SigV4's signing
	// region), for deployments that partition credentials by region.
	Region            string
	IsUnsignedPayload bool
}

func (p *HMACProperties) toSignerProperties() relay.Properties {
	var props relay.Properties
	SetHMACScope(&props, p.Scope)
	SetHMACRegion(&props, p.Region)
	SetIsUnsignedPayload(&props, p.IsUnsignedPayload)
	return props
}

// NewBearerOption creates a Bearer auth Option.
//
// The Bearer auth scheme currently has no configuration, so the inputs to this
// API will be ignored.
func NewBearerOption(propFns ...func(*BearerProperties)) *auth.Option {
	return &auth.Option{SchemeID: SchemeIDBearer}
}

// BearerProperties represents a configuration of the Bearer auth scheme.
type BearerProperties struct{}

// NewAnonymousOption creates an Anonymous auth Option.
//
// The Anonymous auth scheme currently has no configuration, so the inputs to
// this API will be ignored.
func NewAnonymousOption(propFns ...func(*AnonymousProperties)) *auth.Option {
	return &auth.Option{SchemeID: SchemeIDAnonymous}
}

// AnonymousProperties represents a configuration of the Anonymous auth scheme.
type AnonymousProperties struct{}
