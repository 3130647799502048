package server

import (
	"context"

	"github.com/relaywire/relay"
)

// RequestContext is the request-scoped state a generated operation handler
// receives, analogous to the client pipeline's relay.Context but scoped to
// one inbound call rather than one outbound call.
type RequestContext struct {
	*relay.Context
	Request *Request
}

// Handler invokes one operation synchronously. Generated server code
// implements this by type-asserting input to its concrete structure,
// calling user business logic, and returning the modeled output (or a
// modeled error, which must also satisfy relay.Serializable so the
// protocol can encode it back to the wire).
type Handler interface {
	Invoke(ctx *RequestContext, input relay.Deserializable) (relay.Serializable, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *RequestContext, input relay.Deserializable) (relay.Serializable, error)

// Invoke calls f.
func (f HandlerFunc) Invoke(ctx *RequestContext, input relay.Deserializable) (relay.Serializable, error) {
	return f(ctx, input)
}

// AsyncHandler is the future-returning counterpart to Handler for
// operations whose business logic suspends on I/O the orchestrator should
// not block a worker goroutine waiting on directly; the orchestrator
// selects on the returned channel instead.
type AsyncHandler interface {
	InvokeAsync(ctx *RequestContext, input relay.Deserializable) <-chan Result
}

// Result is the outcome of an AsyncHandler's future.
type Result struct {
	Output relay.Serializable
	Err    error
}

// AsyncHandlerFunc adapts a function returning a Result channel to AsyncHandler.
type AsyncHandlerFunc func(ctx *RequestContext, input relay.Deserializable) <-chan Result

// InvokeAsync calls f.
func (f AsyncHandlerFunc) InvokeAsync(ctx *RequestContext, input relay.Deserializable) <-chan Result {
	return f(ctx, input)
}

// invoke runs entry's handler, normalizing both Handler and AsyncHandler
// into a single blocking call from the orchestrator's point of view; an
// AsyncHandler only blocks the worker goroutine that owns this job, never
// the whole orchestrator, since each job already runs on its own worker.
func invoke(ctx context.Context, rc *RequestContext, entry *OperationEntry, input relay.Deserializable) (relay.Serializable, error) {
	switch h := entry.Handler.(type) {
	case AsyncHandler:
		select {
		case res := <-h.InvokeAsync(rc, input):
			return res.Output, res.Err
		case <-ctx.Done():
			return nil, &relay.CancelledError{Err: ctx.Err()}
		}
	default:
		return entry.Handler.Invoke(rc, input)
	}
}
