package client

import (
	"context"
	"fmt"

	"github.com/relaywire/relay/endpoint"
	"github.com/relaywire/relay/middleware"
)

// NewOperationStack returns an empty middleware.Stack with the ambient,
// protocol-independent steps of §4.4 already installed: endpoint
// resolution in Build, and retry → auth-scheme-selection/identity-resolution
// → signing → transmit-interceptors in Finalize, outermost to innermost in
// that order so a retried attempt re-signs with a fresh token.
//
// A generated client still adds its own protocol-specific Serialize
// middleware (writes the request body/headers from the typed input) and
// Deserialize middleware (reads the typed output/error from the
// response) to the returned Stack; this function only wires the parts
// that don't vary by operation.
func NewOperationStack(opts Options, interceptors Interceptors, endpointParams func(input interface{}) endpoint.Params) (*middleware.Stack, error) {
	stack := middleware.NewStack()

	if err := stack.Initialize.Add(middleware.InitializeMiddlewareFunc(func(ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler) (
		middleware.InitializeOutput, error,
	) {
		if err := interceptors.ReadBeforeExecution(ctx, in.Parameters); err != nil {
			return middleware.InitializeOutput{}, err
		}
		params, err := interceptors.ModifyBeforeSerialization(ctx, in.Parameters)
		if err != nil {
			return middleware.InitializeOutput{}, err
		}
		if err := interceptors.ReadBeforeSerialization(ctx, params); err != nil {
			return middleware.InitializeOutput{}, err
		}
		in.Parameters = params
		out, err := next.HandleInitialize(ctx, in)
		if err != nil {
			return out, err
		}
		if err := interceptors.ReadAfterDeserialization(ctx, out.Result); err != nil {
			return middleware.InitializeOutput{}, err
		}
		return out, nil
	}), middleware.After); err != nil {
		return nil, fmt.Errorf("client: installing initialize interceptors: %w", err)
	}

	if err := stack.Build.Add(EndpointMiddleware{Resolver: opts.EndpointResolver, Params: endpointParams}, middleware.After); err != nil {
		return nil, fmt.Errorf("client: installing endpoint resolution: %w", err)
	}

	if err := stack.Finalize.Add(AuthMiddleware{
		SchemeResolver: opts.AuthSchemeResolver,
		Schemes:        opts.AuthSchemes,
		Identities:     opts.IdentityResolvers,
	}, middleware.After); err != nil {
		return nil, fmt.Errorf("client: installing auth resolution: %w", err)
	}
	if err := stack.Finalize.Add(SigningMiddleware{Interceptors: interceptors}, middleware.After); err != nil {
		return nil, fmt.Errorf("client: installing signing: %w", err)
	}
	if err := stack.Finalize.Add(TransmitInterceptorMiddleware{Interceptors: interceptors}, middleware.After); err != nil {
		return nil, fmt.Errorf("client: installing transmit interceptors: %w", err)
	}
	if err := stack.Finalize.Insert(RetryMiddleware{
		Engine:         opts.Retry,
		AttemptTimeout: opts.APICallAttemptTimeout,
		Scope:          func(ctx context.Context) string { return middleware.GetServiceName(ctx) + "." + middleware.GetOperationName(ctx) },
	}, "ResolveAuthSchemes", middleware.Before); err != nil {
		return nil, fmt.Errorf("client: installing retry: %w", err)
	}

	if err := stack.Deserialize.Add(DeserializeInterceptorMiddleware{Interceptors: interceptors}, middleware.After); err != nil {
		return nil, fmt.Errorf("client: installing deserialize interceptors: %w", err)
	}

	return stack, nil
}
