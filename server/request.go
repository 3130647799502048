package server

import "github.com/relaywire/relay/transport"

// Request is the transport-agnostic inbound message a Protocol resolves
// and an operation Handler deserializes from. An HTTP front end fills this
// from an *http.Request; other transports (e.g. a raw stream framing)
// populate the same shape.
type Request struct {
	Method  string
	Path    string
	Fields  transport.Fields
	Body    []byte
	Origin  string // request Origin header, empty if absent
}

// Response is the transport-agnostic outbound message an operation Handler
// or the error mapper produces.
type Response struct {
	StatusCode int
	Fields     transport.Fields
	Body       []byte
}
