package server

import "github.com/relaywire/relay"

// statusCodeFor maps a handler-returned error to an HTTP status code per
// spec §4.5: @httpError takes precedence, else client-side modeled errors
// map to 400 and server-side ones to 500.
func statusCodeFor(err error) int {
	if err == nil {
		return 200
	}
	if httpErr, ok := err.(relay.HTTPError); ok {
		return httpErr.HTTPStatusCode()
	}
	if faulted, ok := err.(relay.FaultedError); ok {
		if faulted.ErrorFault() == relay.FaultClient {
			return 400
		}
		return 500
	}
	// Unmodeled / framework errors are never the caller's fault to have
	// triggered.
	return 500
}
