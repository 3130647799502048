package transport

import "github.com/relaywire/relay"

// Endpoint is a Smithy endpoint.
type Endpoint struct {
	URI string

	Fields *Fields

	Properties relay.Properties
}
