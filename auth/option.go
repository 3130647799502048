package auth

import "github.com/relaywire/relay"

// Option represents a possible authentication method for an operation.
type Option struct {
	SchemeID           string
	IdentityProperties relay.Properties
	SignerProperties   relay.Properties
}
