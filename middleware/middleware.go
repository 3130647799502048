package middleware

import "context"

// Handler provides the interface for performing the logic to obtain an output,
// or error for the given input.
type Handler interface {
	// Handle performs logic to obtain an output for the given input. Handler
	// should be decorated with middleware to perform input specific behavior.
	Handle(ctx context.Context, input interface{}) (output interface{}, err error)
}

// Middleware provides the interface to call handlers in a chain.
type Middleware interface {
	// Performs the middleware's handling of the input, returning the output,
	// or error. The middleware can invoke the next Handler if handling should
	// continue.
	HandleMiddleware(ctx context.Context, input interface{}, next Handler) (
		output interface{}, err error,
	)
}

// MiddlewareHandler wraps a middleware in order to to call the next handler in
// the chain.
type MiddlewareHandler struct {
	// The next handler to be called.
	Next Handler

	// The current middleware decorating the handler.
	With Middleware
}

// Handle implements the Handler interface to handle a operation invocation.
func (m MiddlewareHandler) Handle(ctx context.Context, input interface{}) (
	output interface{}, err error,
) {
	return m.With.HandleMiddleware(ctx, input, m.Next)
}

// HandlerFunc provides a wrapper around a function to be used as a handler.
type HandlerFunc func(ctx context.Context, input interface{}) (output interface{}, err error)

// Handle invokes the underlying function, returning the result.
func (fn HandlerFunc) Handle(ctx context.Context, input interface{}) (output interface{}, err error) {
	return fn(ctx, input)
}

// identifiableMiddleware is implemented by Middleware that can report a
// name for diagnostic purposes. Every step and client-pipeline middleware
// in this module exposes Name() string (see step_initialize.go,
// client/pipeline.go); this matches that convention rather than a
// separate ID() method.
type identifiableMiddleware interface {
	Name() string
}

// decoratedHandler wraps MiddlewareHandler, additionally recording the
// decorating middleware's name in ctx when the middleware exposes one.
type decoratedHandler struct {
	MiddlewareHandler
}

func (d decoratedHandler) Handle(ctx context.Context, input interface{}) (
	output interface{}, err error,
) {
	if ider, ok := d.With.(identifiableMiddleware); ok {
		ctx = appendMiddlewareID(ctx, ider.Name())
	}
	return d.MiddlewareHandler.Handle(ctx, input)
}

type middlewareIDsKey struct{}

func appendMiddlewareID(ctx context.Context, id string) context.Context {
	ids, _ := ctx.Value(middlewareIDsKey{}).([]string)
	ids = append(append([]string{}, ids...), id)
	return context.WithValue(ctx, middlewareIDsKey{}, ids)
}

// GetMiddlewareIDs returns the IDs of the identifiableMiddleware that have
// run in the handler chain leading to ctx, in invocation order.
func GetMiddlewareIDs(ctx context.Context) []string {
	ids, _ := ctx.Value(middlewareIDsKey{}).([]string)
	return ids
}

// DecorateHandler decorates a handler with a middleware. Wrapping the handler
// with the middleware.
func DecorateHandler(h Handler, with ...Middleware) Handler {
	for i := len(with) - 1; i >= 0; i-- {
		h = decoratedHandler{MiddlewareHandler{
			Next: h,
			With: with[i],
		}}
	}

	return h
}

// Middlewares provides a collection of middleware that can be invoked as a
// stack on a handler.
type Middlewares []Middleware

// HandleMiddleware invokes the middleware, decorating the handler.
func (ms Middlewares) HandleMiddleware(ctx context.Context, input interface{}, next Handler) (
	output interface{}, err error,
) {
	next = DecorateHandler(next, ms...)
	return next.Handle(ctx, input)
}
