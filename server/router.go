// Package server implements the server pipeline (spec §4.5): protocol
// resolution, a bounded-concurrency orchestrator that drives each request
// through read/deserialize/invoke/serialize/write, CORS response headers,
// and status-code mapping for modeled errors.
package server

import (
	"strings"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/transport"
)

// Service describes one modeled service a Router can dispatch to: its
// schema (carrying the cors trait, if any) and the means to look up an
// operation handler by name.
type Service struct {
	Schema     *relay.Schema
	Operations *OperationRegistry
}

// OperationRegistry resolves an operation name to its Handler and schema,
// the server-side analog of relay.TypeRegistry.
type OperationRegistry struct {
	entries map[string]*OperationEntry
}

// OperationEntry pairs an operation's schema with its invocation handler
// and a factory for a blank input instance the protocol deserializes into.
type OperationEntry struct {
	Schema  *relay.Schema
	New     func() relay.Deserializable
	Handler Handler
}

// NewOperationRegistry returns an empty registry.
func NewOperationRegistry() *OperationRegistry {
	return &OperationRegistry{entries: map[string]*OperationEntry{}}
}

// Register adds an operation under its unqualified name.
func (r *OperationRegistry) Register(name string, entry *OperationEntry) {
	r.entries[name] = entry
}

// GetOperation returns the handler registered under name, the server
// analog of spec.md's get_operation(name).
func (r *OperationRegistry) GetOperation(name string) (*OperationEntry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Route associates a path prefix with the services willing to serve
// requests under it. Multiple services sharing a prefix is legal; the
// protocol resolver disambiguates using the parsed operation path.
type Route struct {
	Prefix   string
	Services []*Service
}

// Router holds the configured Routes and resolves one incoming request to
// a (service, operation) pair using a Protocol.
type Router struct {
	Routes   []Route
	Protocol Protocol
}

// NewRouter returns a Router that resolves every request with protocol.
func NewRouter(protocol Protocol) *Router {
	return &Router{Protocol: protocol}
}

// AddRoute registers services under prefix.
func (r *Router) AddRoute(prefix string, services ...*Service) {
	r.Routes = append(r.Routes, Route{Prefix: prefix, Services: services})
}

// Resolve finds the Route whose prefix matches req's path, then asks the
// configured Protocol to pick the specific service/operation within it.
func (r *Router) Resolve(req *Request) (*Service, *OperationEntry, error) {
	for _, route := range r.Routes {
		if !strings.HasPrefix(req.Path, route.Prefix) {
			continue
		}
		svc, opName, err := r.Protocol.ResolveOperation(req, route.Services)
		if err != nil {
			return nil, nil, err
		}
		entry, ok := svc.Operations.GetOperation(opName)
		if !ok {
			return nil, nil, &relay.GenericAPIError{
				Code:    "UnknownOperationException",
				Message: "no such operation: " + opName,
				Fault:   relay.FaultClient,
			}
		}
		return svc, entry, nil
	}
	return nil, nil, &relay.GenericAPIError{
		Code:    "UnknownOperationException",
		Message: "no route matches path " + req.Path,
		Fault:   relay.FaultClient,
	}
}

// Protocol resolves a (service, operation) pair from a raw request against
// a candidate service list, and knows how to serialize/deserialize that
// protocol's payloads. RpcV2CBOR below is the one concrete implementation;
// a server built on a different wire protocol supplies its own.
type Protocol interface {
	ID() string
	ResolveOperation(req *Request, candidates []*Service) (svc *Service, operationName string, err error)

	// DeserializeInput decodes req's body into a blank input instance
	// entry.New produces.
	DeserializeInput(entry *OperationEntry, body []byte) (relay.Deserializable, error)
	// SerializeOutput encodes a successful handler result to the wire.
	SerializeOutput(out relay.Serializable) ([]byte, error)
	// SerializeError renders a handler failure (modeled or framework) to
	// the wire in this protocol's error envelope shape.
	SerializeError(err error) []byte
	// ResponseFields returns the protocol-identifying headers every
	// response of this protocol carries (echoed on both success and
	// error responses).
	ResponseFields() transport.Fields
}
