package relay

import "context"

// ctxKey is a comparable key type for values stored in a Context via
// WithValue/Value. Using a distinct Go type per key (rather than the
// generic Go context.Context key pattern of unexported string constants)
// keeps different packages' keys from colliding even if the underlying
// string happens to match.
type ctxKey string

// Context carries request-scoped state through a single operation call:
// the metadata a generated client or server threads between interceptor
// steps (operation name, input/output, idempotency token, retry attempt
// count, logger, and anything a middleware stashes for a later step).
//
// Context wraps a context.Context rather than replacing it, so interceptor
// code can still use context cancellation/deadlines and pass the value
// through to code that only knows about context.Context.
type Context struct {
	context.Context
}

// WrapContext adapts a context.Context into a Context.
func WrapContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}

// WithValue returns a copy of ctx with key bound to val. Panics if key is
// not comparable, matching the behavior of context.WithValue and
// middleware.Metadata.
func WithValue(ctx *Context, key, val any) *Context {
	return &Context{Context: context.WithValue(ctx.Context, key, val)}
}

type (
	operationNameKey struct{}
	serviceNameKey    struct{}
	attemptKey        struct{}
	idempotencyKey    struct{}
)

// WithOperationName returns a Context with the given operation name bound,
// retrievable with OperationName.
func WithOperationName(ctx *Context, name string) *Context {
	return WithValue(ctx, operationNameKey{}, name)
}

// OperationName returns the operation name bound to the context, or "" if
// none has been set.
func OperationName(ctx *Context) string {
	v, _ := ctx.Value(operationNameKey{}).(string)
	return v
}

// WithServiceName returns a Context with the given service name bound.
func WithServiceName(ctx *Context, name string) *Context {
	return WithValue(ctx, serviceNameKey{}, name)
}

// ServiceName returns the service name bound to the context, or "" if none
// has been set.
func ServiceName(ctx *Context) string {
	v, _ := ctx.Value(serviceNameKey{}).(string)
	return v
}

// WithAttempt returns a Context with the given RETRY_ATTEMPT counter bound.
// Attempt 0 is the initial try; each retry increments it.
func WithAttempt(ctx *Context, attempt int) *Context {
	return WithValue(ctx, attemptKey{}, attempt)
}

// Attempt returns the current retry attempt counter, 0 if unset.
func Attempt(ctx *Context) int {
	v, _ := ctx.Value(attemptKey{}).(int)
	return v
}

// WithIdempotencyToken returns a Context with an idempotency token value
// bound, for an interceptor to inject into a request member carrying the
// idempotencyToken trait.
func WithIdempotencyToken(ctx *Context, token string) *Context {
	return WithValue(ctx, idempotencyKey{}, token)
}

// IdempotencyToken returns the idempotency token bound to the context, and
// whether one was set.
func IdempotencyToken(ctx *Context) (string, bool) {
	v, ok := ctx.Value(idempotencyKey{}).(string)
	return v, ok
}
