package auth

import (
	"context"
	"fmt"

	"github.com/relaywire/relay"
)

// Scheme pairs an identity kind with the signer that uses it (glossary:
// "Auth scheme — a {identity-kind, signer} pair identified by a shape
// id"). SchemeID matches the shape id of the modeled @authDefinition
// trait the scheme implements (e.g. "smithy.api#httpApiKeyAuth").
type Scheme interface {
	SchemeID() string
}

// SchemeResolver returns the priority-ordered list of auth scheme Options
// an operation is willing to use (§4.4 step 3). The client pipeline picks
// the first option whose scheme ID is both returned here and registered
// with the active Resolvers.
type SchemeResolver interface {
	ResolveAuthSchemes(ctx context.Context, params SchemeParams) ([]Option, error)
}

// SchemeParams carries the operation identity the resolver needs to make
// its decision (most implementations just return the operation's static
// trait-declared scheme list, but a resolver may consult input values for
// per-request overrides).
type SchemeParams struct {
	OperationName string
	Properties    relay.Properties
}

// SchemeResolverFunc adapts a function to a SchemeResolver.
type SchemeResolverFunc func(ctx context.Context, params SchemeParams) ([]Option, error)

// ResolveAuthSchemes implements SchemeResolver.
func (f SchemeResolverFunc) ResolveAuthSchemes(ctx context.Context, params SchemeParams) ([]Option, error) {
	return f(ctx, params)
}

// Static returns a SchemeResolver that always returns the same ordered
// scheme option list regardless of operation or properties.
func Static(opts ...Option) SchemeResolver {
	return SchemeResolverFunc(func(context.Context, SchemeParams) ([]Option, error) {
		return opts, nil
	})
}

// SupportedSchemes reports which of a resolved Option list the caller has
// both an IdentityResolver and a Scheme registered for, in priority order
// (§4.4: "the first supported scheme is chosen").
func SupportedSchemes(opts []Option, resolvers IdentityResolverOptions, known map[string]Scheme) []Option {
	var out []Option
	for _, o := range opts {
		if resolvers.GetIdentityResolver(o.SchemeID) == nil {
			continue
		}
		if _, ok := known[o.SchemeID]; !ok {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Chain is an ordered list of IdentityResolvers tried in sequence (§4.4
// step 4, §8 scenario 6). A resolver signaling *relay.IdentityNotFoundError
// falls through to the next; any other error aborts the chain immediately.
type Chain []IdentityResolver

// GetIdentity tries each resolver in order, returning the first identity
// resolved. Returns *relay.IdentityNotFoundError if every resolver in the
// chain reports not-found.
func (c Chain) GetIdentity(ctx context.Context, props relay.Properties) (Identity, error) {
	for _, r := range c {
		id, err := r.GetIdentity(ctx, props)
		if err == nil {
			return id, nil
		}
		var nf *relay.IdentityNotFoundError
		if !isIdentityNotFound(err, &nf) {
			return nil, err
		}
	}
	return nil, &relay.IdentityNotFoundError{Resolver: fmt.Sprintf("chain of %d resolvers", len(c))}
}

func isIdentityNotFound(err error, target **relay.IdentityNotFoundError) bool {
	for err != nil {
		if nf, ok := err.(*relay.IdentityNotFoundError); ok {
			*target = nf
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
