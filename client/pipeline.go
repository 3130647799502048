package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/auth"
	"github.com/relaywire/relay/endpoint"
	"github.com/relaywire/relay/middleware"
	smithyhttp "github.com/relaywire/relay/transport/http"
)

// setURL rebases req onto the resolved endpoint: scheme, host, and any
// path prefix the endpoint carries are applied ahead of whatever path the
// serializer already wrote (operation path, query string).
func setURL(req *smithyhttp.Request, endpointURI string) error {
	base, err := url.Parse(endpointURI)
	if err != nil {
		return fmt.Errorf("parsing endpoint URI %q: %w", endpointURI, err)
	}
	if req.URL == nil {
		req.URL = &url.URL{}
	}
	req.URL.Scheme = base.Scheme
	req.URL.Host = base.Host
	req.URL.Path = joinPath(base.Path, req.URL.Path)
	req.Host = base.Host
	return nil
}

func joinPath(prefix, suffix string) string {
	switch {
	case prefix == "" || prefix == "/":
		return suffix
	case suffix == "":
		return prefix
	default:
		return prefix + suffix
	}
}

// resolvedAuthKey/resolvedIdentityKey stash the Finalize-step decisions
// (scheme option, and scheme plus identity) in ctx so signing middleware further down
// the same Finalize chain can read them without threading extra
// parameters through every HandleFinalize signature.
type resolvedAuthKey struct{}
type resolvedIdentityKey struct{}

// EndpointMiddleware resolves the destination URI (§4.4 step 2) and
// stamps it onto the transport request. It runs early in Build, after the
// request object exists but before any signing.
type EndpointMiddleware struct {
	Resolver endpoint.Resolver
	Params   func(input interface{}) endpoint.Params
}

func (EndpointMiddleware) Name() string { return "ResolveEndpoint" }

func (m EndpointMiddleware) HandleBuild(ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler) (
	middleware.BuildOutput, error,
) {
	req, ok := in.Request.(*smithyhttp.Request)
	if !ok {
		return middleware.BuildOutput{}, fmt.Errorf("client: endpoint middleware: unexpected request type %T", in.Request)
	}

	params := m.Params(req)
	ep, err := m.Resolver.ResolveEndpoint(ctx, params)
	if err != nil {
		return middleware.BuildOutput{}, fmt.Errorf("client: resolving endpoint: %w", err)
	}

	if err := setURL(req, ep.URI); err != nil {
		return middleware.BuildOutput{}, fmt.Errorf("client: applying resolved endpoint: %w", err)
	}

	in.Request = req
	return next.HandleBuild(ctx, in)
}

// AuthMiddleware performs auth scheme selection (§4.4 step 3) and identity
// resolution (step 4), then hands off to the next Finalize middleware
// (normally SigningMiddleware) with the chosen scheme and identity stashed
// in ctx.
type AuthMiddleware struct {
	SchemeResolver auth.SchemeResolver
	Schemes        map[string]smithyhttp.AuthScheme
	Identities     auth.IdentityResolverOptions
}

func (AuthMiddleware) Name() string { return "ResolveAuthSchemes" }

func (m AuthMiddleware) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, error,
) {
	opts, err := m.SchemeResolver.ResolveAuthSchemes(ctx, auth.SchemeParams{
		OperationName: middleware.GetOperationName(ctx),
	})
	if err != nil {
		return middleware.FinalizeOutput{}, fmt.Errorf("client: resolving auth schemes: %w", err)
	}

	supported := auth.SupportedSchemes(opts, m.Identities, toSchemeMap(m.Schemes))
	if len(supported) == 0 {
		return middleware.FinalizeOutput{}, fmt.Errorf("client: no supported auth scheme for operation %s", middleware.GetOperationName(ctx))
	}
	chosen := supported[0]
	scheme := m.Schemes[chosen.SchemeID]

	resolver := scheme.IdentityResolver(m.Identities)
	if resolver == nil {
		return middleware.FinalizeOutput{}, fmt.Errorf("client: no identity resolver registered for scheme %s", chosen.SchemeID)
	}

	identity, err := resolver.GetIdentity(ctx, chosen.IdentityProperties)
	if err != nil {
		return middleware.FinalizeOutput{}, fmt.Errorf("client: resolving identity: %w", err)
	}

	ctx = context.WithValue(ctx, resolvedAuthKey{}, chosen)
	ctx = context.WithValue(ctx, resolvedIdentityKey{}, signingContext{scheme: scheme, identity: identity, opt: chosen})

	return next.HandleFinalize(ctx, in)
}

func toSchemeMap(m map[string]smithyhttp.AuthScheme) map[string]auth.Scheme {
	out := make(map[string]auth.Scheme, len(m))
	for id := range m {
		out[id] = schemeAdapter{id: id}
	}
	return out
}

type schemeAdapter struct{ id string }

func (s schemeAdapter) SchemeID() string { return s.id }

type signingContext struct {
	scheme   smithyhttp.AuthScheme
	identity auth.Identity
	opt      auth.Option
}

// SigningMiddleware implements §4.4 step 7: it runs after
// modify_before_signing (a caller-supplied Interceptor, invoked here) and
// signs the transport request using the scheme AuthMiddleware resolved.
// Signing never reorders headers that were already set, only adds new
// ones, so precomputed signatures from an upstream proxy stay valid.
type SigningMiddleware struct {
	Interceptors Interceptors
}

func (SigningMiddleware) Name() string { return "Sign" }

func (m SigningMiddleware) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, error,
) {
	sc, ok := ctx.Value(resolvedIdentityKey{}).(signingContext)
	if !ok {
		return middleware.FinalizeOutput{}, fmt.Errorf("client: signing middleware ran before auth resolution")
	}

	req, err := m.Interceptors.ModifyBeforeSigning(ctx, in.Request)
	if err != nil {
		return middleware.FinalizeOutput{}, err
	}

	httpReq, ok := req.(*smithyhttp.Request)
	if !ok {
		return middleware.FinalizeOutput{}, fmt.Errorf("client: signing middleware: unexpected request type %T", req)
	}

	if err := sc.scheme.Signer().SignRequest(ctx, httpReq, sc.identity, sc.opt.SignerProperties); err != nil {
		return middleware.FinalizeOutput{}, &relay.AuthFailureError{Message: "signing request", Err: err}
	}

	in.Request = httpReq
	return next.HandleFinalize(ctx, in)
}

// TransmitInterceptorMiddleware runs the modify_before_transmit /
// read_before_transmit hooks immediately before the transport send — the
// last Finalize-step middleware before the Deserialize step takes over.
// read_after_transmit runs in DeserializeInterceptorMiddleware.
type TransmitInterceptorMiddleware struct {
	Interceptors Interceptors
}

func (TransmitInterceptorMiddleware) Name() string { return "InvokeInterceptors" }

func (m TransmitInterceptorMiddleware) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, error,
) {
	req, err := m.Interceptors.ModifyBeforeTransmit(ctx, in.Request)
	if err != nil {
		return middleware.FinalizeOutput{}, err
	}
	if err := m.Interceptors.ReadBeforeTransmit(ctx, req); err != nil {
		return middleware.FinalizeOutput{}, err
	}
	in.Request = req
	return next.HandleFinalize(ctx, in)
}

// DeserializeInterceptorMiddleware runs read_after_transmit immediately
// after the transport send and modify_before_deserialization before the
// protocol's own Deserialize middleware parses the body. The last step 10
// hook, read_after_deserialization, runs in the Initialize-step hook that
// NewOperationStack installs, once the deserialized result is available.
//
// Because the protocol deserializer is the one that actually calls next
// to obtain the raw transport response (it needs the bytes to parse), it
// must sit between this middleware and the transport: a generated
// client's Serialize/Deserialize middleware installs itself with
// stack.Deserialize.Insert(deserializer, "InvokeDeserializeInterceptors",
// middleware.Before) so this middleware ends up innermost, directly
// wrapping the transport send.
type DeserializeInterceptorMiddleware struct {
	Interceptors Interceptors
}

func (DeserializeInterceptorMiddleware) Name() string { return "InvokeDeserializeInterceptors" }

func (m DeserializeInterceptorMiddleware) HandleDeserialize(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (
	middleware.DeserializeOutput, error,
) {
	out, err := next.HandleDeserialize(ctx, in)
	if err != nil {
		return out, err
	}
	if err := m.Interceptors.ReadAfterTransmit(ctx, out.RawResponse); err != nil {
		return middleware.DeserializeOutput{}, err
	}
	resp, err := m.Interceptors.ModifyBeforeDeserialization(ctx, out.RawResponse)
	if err != nil {
		return middleware.DeserializeOutput{}, err
	}
	out.RawResponse = resp
	return out, nil
}
