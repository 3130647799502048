package client

import (
	"context"
	"errors"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/middleware"
	"github.com/relaywire/relay/retry"
)

// RetryMiddleware implements §4.4 step 11 and §4.6: on a retryable
// failure from the wrapped handler it re-enters at the top of the
// Finalize step (re-running signing, since a fresh attempt may need a
// fresh signature/timestamp) with a refreshed retry token, honoring the
// engine's backoff delay and the context's deadline. RETRY_ATTEMPT (see
// relay.WithAttempt) increases monotonically starting at 1 across
// attempts within one call.
//
// This middleware sits outermost in the Finalize step, wrapping auth
// resolution, signing, the transport send and the Deserialize chain as
// next.
type RetryMiddleware struct {
	Engine *retry.Engine
	Scope  func(ctx context.Context) string

	// AttemptTimeout bounds a single attempt's network round trip,
	// independent of the overall per-call context deadline.
	AttemptTimeout time.Duration
}

func (RetryMiddleware) Name() string { return "Retry" }

func (m RetryMiddleware) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, error,
) {
	scope := m.Scope(ctx)

	tok, _, err := m.Engine.AcquireInitialToken(ctx, scope)
	if err != nil {
		return middleware.FinalizeOutput{}, err
	}

	for {
		attemptCtx := context.WithValue(ctx, attemptKey{}, tok.Attempt())

		out, attemptErr := m.doAttempt(attemptCtx, in, next)
		if attemptErr == nil {
			m.Engine.RecordSuccess(tok)
			return out, nil
		}

		var cancelled *relay.CancelledError
		if errors.As(attemptErr, &cancelled) || ctx.Err() != nil {
			return middleware.FinalizeOutput{}, attemptErr
		}

		suggested := suggestedDelay(attemptErr)
		nextTok, delay, refreshErr := m.Engine.RefreshRetryToken(ctx, tok, attemptErr, suggested)
		if refreshErr != nil {
			// not retryable, or budget exhausted: surface the original
			// failure, since it's more specific than the refresh error.
			return middleware.FinalizeOutput{}, attemptErr
		}
		tok = nextTok

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return middleware.FinalizeOutput{}, &relay.CancelledError{Err: ctx.Err()}
		case <-timer.C:
		}
	}
}

func (m RetryMiddleware) doAttempt(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, error,
) {
	if m.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.AttemptTimeout)
		defer cancel()
	}
	return next.HandleFinalize(ctx, in)
}

type attemptKey struct{}

// Attempt returns the current RETRY_ATTEMPT counter bound by RetryMiddleware,
// 1 for the first attempt.
func Attempt(ctx context.Context) int {
	v, _ := ctx.Value(attemptKey{}).(int)
	return v
}

func suggestedDelay(err error) time.Duration {
	var te *relay.TransportError
	for e := err; e != nil; {
		if t, ok := e.(*relay.TransportError); ok {
			te = t
			break
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	if te == nil || te.Retry.RetryAfter <= 0 {
		return 0
	}
	return time.Duration(te.Retry.RetryAfter * float64(time.Second))
}
