// Package endpoint defines the client pipeline's endpoint resolution
// step (§4.4): given an operation and its input, a Resolver returns the
// destination URI a request is serialized against, optionally injecting
// extra transport fields (e.g. a signing-region header override).
package endpoint

import (
	"context"
	"strings"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/transport"
)

// Params carries the inputs a Resolver needs: the operation being
// invoked and its (already-built) input value, plus any caller-supplied
// properties (region, base URL override) threaded through Context.
type Params struct {
	OperationName string
	ServiceName   string
	Input         interface{}
	Properties    relay.Properties
}

// Resolver produces the destination transport.Endpoint for one call.
// Implementations may consult static configuration, a rules-engine-style
// decision tree built from endpoint/rulesfn helpers, or a discovery
// service; the core only depends on this interface.
type Resolver interface {
	ResolveEndpoint(ctx context.Context, params Params) (transport.Endpoint, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(ctx context.Context, params Params) (transport.Endpoint, error)

// ResolveEndpoint implements Resolver.
func (f ResolverFunc) ResolveEndpoint(ctx context.Context, params Params) (transport.Endpoint, error) {
	return f(ctx, params)
}

// Static returns a Resolver that always resolves to the given base URI,
// ignoring params. Useful for tests and for services with no per-operation
// endpoint logic.
func Static(uri string) Resolver {
	return ResolverFunc(func(_ context.Context, _ Params) (transport.Endpoint, error) {
		return transport.Endpoint{URI: uri}, nil
	})
}

// WithHostPrefix decorates a Resolver, appending the given host label
// prefix (resolved from traits.Endpoint.HostPrefix template substitution
// by the caller, since member substitution needs the typed input) ahead
// of the wrapped resolver's host.
func WithHostPrefix(base Resolver, prefixFn func(params Params) (string, error)) Resolver {
	return ResolverFunc(func(ctx context.Context, params Params) (transport.Endpoint, error) {
		ep, err := base.ResolveEndpoint(ctx, params)
		if err != nil {
			return ep, err
		}
		prefix, err := prefixFn(params)
		if err != nil {
			return transport.Endpoint{}, err
		}
		if prefix == "" {
			return ep, nil
		}
		ep.URI = prefixHost(ep.URI, prefix)
		return ep, nil
	})
}

func prefixHost(uri, prefix string) string {
	scheme, rest, found := strings.Cut(uri, "://")
	if !found {
		return prefix + uri
	}
	return scheme + "://" + prefix + rest
}
