// Package client implements the client pipeline (spec §4.4): a generic,
// reusable entry point that runs one operation call through endpoint
// resolution, auth scheme selection, identity resolution, the
// Initialize/Serialize/Build/Finalize/Deserialize middleware stack, and
// the retry loop.
//
// Generated smithy-go clients normally inline this sequence once per
// service package; this runtime hoists it into a single Invoke so the
// sequence (and its invariants — every step runs, hooks may replace but
// never skip) lives in one place instead of being copy-pasted by a
// generator.
package client

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/auth"
	"github.com/relaywire/relay/endpoint"
	"github.com/relaywire/relay/middleware"
	smithyrand "github.com/relaywire/relay/rand"
	"github.com/relaywire/relay/retry"
	smithyhttp "github.com/relaywire/relay/transport/http"
)

// Options configures the client pipeline. One Options value is normally
// shared by every operation on a service client.
type Options struct {
	EndpointResolver   endpoint.Resolver
	AuthSchemeResolver auth.SchemeResolver
	AuthSchemes        map[string]smithyhttp.AuthScheme
	IdentityResolvers  auth.IdentityResolverOptions

	Retry      *retry.Engine
	HTTPClient smithyhttp.ClientDo

	// APICallTimeout bounds the whole call, including retries.
	// APICallAttemptTimeout bounds a single network round trip.
	// Zero means unbounded, matching context.Context conventions.
	APICallTimeout        time.Duration
	APICallAttemptTimeout time.Duration
}

// Operation describes one call: the operation/service identity threaded
// into Context (§3) and the prebuilt middleware Stack a generated client
// assembled for this operation's schema.
type Operation struct {
	ServiceName   string
	OperationName string
	Stack         *middleware.Stack
}

// Invoke runs one API call end-to-end per §4.4. input is handed to the
// Initialize step; the return value is whatever the Deserialize step's
// terminal handler produced (the value is handed through unchanged on
// retries).
//
// Every invocation is wrapped in *relay.OperationError so the most
// specific typed error stays reachable via errors.As while the caller
// also learns which operation failed.
func Invoke(ctx context.Context, opts Options, op Operation, input interface{}) (interface{}, error) {
	if opts.APICallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.APICallTimeout)
		defer cancel()
	}

	ctx = middleware.WithServiceName(ctx, op.ServiceName)
	ctx = middleware.WithOperationName(ctx, op.OperationName)

	transport := smithyhttp.NewClientHandler(opts.HTTPClient)
	out, err := op.Stack.HandleMiddleware(ctx, input, transport)
	if err != nil {
		return nil, &relay.OperationError{ServiceName: op.ServiceName, OperationName: op.OperationName, Err: err}
	}
	return out, nil
}

// NewIdempotencyToken returns a random idempotency token suitable for
// injection into a member carrying the idempotencyToken trait, generated
// the way a client pipeline's idempotency-token interceptor does: a v4
// UUID seeded from crypto/rand.
func NewIdempotencyToken() (string, error) {
	id, err := smithyrand.NewUUID(rand.Reader).GetUUID()
	if err != nil {
		return "", fmt.Errorf("client: generating idempotency token: %w", err)
	}
	return id, nil
}
