// Package retry implements the token-based retry accounting engine
// described by the client pipeline: a bounded capacity pool is drawn down
// on each retryable failure and refilled on success, so a run of throttles
// or transient errors can't retry forever even when each individual
// attempt looks retryable in isolation.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/relaywire/relay"
)

// Costs for drawing down a scope's retry capacity. These mirror the
// standard three-tier accounting described in §4.6: a retry costs more
// than the initial attempt, and a throttle costs more than a plain
// transient error, so throttled scopes exhaust their budget faster.
const (
	DefaultInitialCapacity = 500
	costRetry              = 5
	costThrottle           = 10
	successRefill          = 1
)

// Token is the opaque handle produced by the retry engine, carrying the
// accumulated attempt state for one call. It is never shared across
// scopes and must not be reused after RecordSuccess/its final refresh.
type Token struct {
	scope      string
	attempt    int
	cost       int
	retryCount int
}

// Attempt returns the 1-based attempt number this token represents.
func (t Token) Attempt() int { return t.attempt }

// Scope returns the service+operation scope this token was acquired for.
func (t Token) Scope() string { return t.scope }

// bucket tracks one scope's available retry capacity.
type bucket struct {
	mu        sync.Mutex
	capacity  int
	available int
}

func newBucket(capacity int) *bucket {
	return &bucket{capacity: capacity, available: capacity}
}

func (b *bucket) withdraw(cost int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.available < cost {
		return false
	}
	b.available -= cost
	return true
}

func (b *bucket) deposit(amount int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.available += amount
	if b.available > b.capacity {
		b.available = b.capacity
	}
}

// Strategy decides, given a failure, whether and how long to wait before a
// retry is attempted. ShouldRetry returning retryable=false means "do not
// retry".
type Strategy interface {
	// ShouldRetry reports whether the given error is retry-eligible at
	// all, and whether it is a throttle (which draws the higher bucket cost).
	ShouldRetry(err error) (retryable bool, throttle bool)

	// Backoff computes the delay for the given attempt count, honoring a
	// server-suggested delay (RetryInfo.RetryAfter) when present.
	Backoff(attempt int, suggested time.Duration) time.Duration
}

// StandardStrategy is the default Strategy: it consults RetryInfo carried
// on TransportError (see relay.RetryInfo) and computes a capped
// exponential backoff with full jitter.
type StandardStrategy struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewStandardStrategy returns a StandardStrategy with AWS SDK-conventional
// defaults (100ms floor, 20s ceiling).
func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{MinDelay: 100 * time.Millisecond, MaxDelay: 20 * time.Second}
}

// ShouldRetry reports retry eligibility by unwrapping to a RetryInfo
// carrier (*relay.TransportError); any other error is reported as not
// retryable.
func (s *StandardStrategy) ShouldRetry(err error) (bool, bool) {
	if err == nil {
		return false, false
	}
	var te *relay.TransportError
	if asTransportError(err, &te) {
		return te.Retry.IsRetryable, te.Retry.IsThrottle
	}
	return false, false
}

func asTransportError(err error, target **relay.TransportError) bool {
	for err != nil {
		if te, ok := err.(*relay.TransportError); ok {
			*target = te
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

// Backoff computes delay = min(MaxDelay, MinDelay*2^(attempt-1)), picks a
// uniform random point in [0, delay] for jitter, then floors it at
// suggested if the peer proposed a longer wait via RetryInfo.RetryAfter.
func (s *StandardStrategy) Backoff(attempt int, suggested time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	capped := s.MinDelay << uint(attempt-1)
	if capped <= 0 || capped > s.MaxDelay {
		capped = s.MaxDelay
	}
	jittered := time.Duration(rand.Int63n(int64(capped) + 1))
	if suggested > jittered {
		return suggested
	}
	return jittered
}

// Engine is the token-based retry accounting engine. One Engine instance
// is shared process-wide; it keeps a capacity bucket per scope
// (service+operation), created lazily.
type Engine struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	strategy Strategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithCapacity overrides the per-scope initial/maximum capacity.
func WithCapacity(capacity int) Option {
	return func(e *Engine) { e.capacity = capacity }
}

// WithStrategy overrides the retry-eligibility/backoff strategy.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// New returns a ready-to-use Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		buckets:  make(map[string]*bucket),
		capacity: DefaultInitialCapacity,
		strategy: NewStandardStrategy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) bucketFor(scope string) *bucket {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.buckets[scope]
	if !ok {
		b = newBucket(e.capacity)
		e.buckets[scope] = b
	}
	return b
}

// AcquireInitialToken returns the token for attempt 1 of a call in the
// given scope. The initial attempt never draws down capacity; it only
// requires that some capacity exists (scope isn't already fully drained
// from prior failed retries never refunded).
func (e *Engine) AcquireInitialToken(_ context.Context, scope string) (Token, time.Duration, error) {
	b := e.bucketFor(scope)
	b.mu.Lock()
	starved := b.available <= 0
	b.mu.Unlock()
	if starved {
		return Token{}, 0, &relay.TokenAcquisitionFailedError{Scope: scope}
	}
	return Token{scope: scope, attempt: 1}, 0, nil
}

// RefreshRetryToken draws down the scope's bucket for a retry of the given
// failure and returns a token for the next attempt with its backoff delay.
// Throttles draw more capacity than plain transient errors, so a string of
// throttles exhausts the budget faster (§4.6). TokenAcquisitionFailedError
// is returned, uncapturable for further retry, when the draw fails.
func (e *Engine) RefreshRetryToken(_ context.Context, tok Token, failure error, suggestedDelay time.Duration) (Token, time.Duration, error) {
	retryable, throttle := e.strategy.ShouldRetry(failure)
	if !retryable {
		return tok, 0, fmt.Errorf("relay: not retryable: %w", failure)
	}

	cost := costRetry
	if throttle {
		cost = costThrottle
	}

	b := e.bucketFor(tok.scope)
	if !b.withdraw(cost) {
		return tok, 0, &relay.TokenAcquisitionFailedError{Scope: tok.scope}
	}

	next := Token{
		scope:      tok.scope,
		attempt:    tok.attempt + 1,
		cost:       tok.cost + cost,
		retryCount: tok.retryCount + 1,
	}
	delay := e.strategy.Backoff(next.attempt, suggestedDelay)
	return next, delay, nil
}

// RecordSuccess refunds the scope's bucket for the capacity a token's
// retries drew down, and is idempotent: calling it more than once for the
// same token (or a token that never retried) only ever refunds once,
// since the refund amount is read from (and then pinned to zero on) the
// token's own bookkeeping field by the caller discarding the token after
// use — generated clients call this exactly once per completed call.
func (e *Engine) RecordSuccess(tok Token) {
	if tok.cost == 0 {
		return
	}
	b := e.bucketFor(tok.scope)
	b.deposit(successRefill + tok.cost/costRetry)
}
