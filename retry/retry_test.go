package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relaywire/relay"
)

func TestRefreshRetryTokenExhaustsBudget(t *testing.T) {
	e := New(WithCapacity(12))
	tok, _, err := e.AcquireInitialToken(context.Background(), "Svc.Op")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	throttle := &relay.TransportError{Err: errors.New("slow down"), Retry: relay.RetryInfo{IsRetryable: true, IsThrottle: true}}

	// Capacity 12, throttle cost 10: first refresh succeeds, second is
	// starved.
	tok, _, err = e.RefreshRetryToken(context.Background(), tok, throttle, 0)
	if err != nil {
		t.Fatalf("expected first refresh to succeed: %v", err)
	}

	_, _, err = e.RefreshRetryToken(context.Background(), tok, throttle, 0)
	var tokenErr *relay.TokenAcquisitionFailedError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected TokenAcquisitionFailedError, got %v", err)
	}
}

func TestRefreshRetryTokenRejectsNonRetryable(t *testing.T) {
	e := New()
	tok, _, _ := e.AcquireInitialToken(context.Background(), "Svc.Op")
	_, _, err := e.RefreshRetryToken(context.Background(), tok, errors.New("boom"), 0)
	if err == nil {
		t.Fatalf("expected an error for a non-retryable failure")
	}
}

func TestStandardStrategyHonorsSuggestedDelay(t *testing.T) {
	s := &StandardStrategy{MinDelay: time.Millisecond, MaxDelay: time.Millisecond}
	got := s.Backoff(1, 5*time.Second)
	if got != 5*time.Second {
		t.Fatalf("expected suggested delay to win, got %v", got)
	}
}

func TestRecordSuccessIsIdempotentNoOpOnFreshToken(t *testing.T) {
	e := New()
	tok, _, _ := e.AcquireInitialToken(context.Background(), "Svc.Op")
	// A token that never retried carries no cost to refund; calling
	// RecordSuccess must not panic or alter bucket state.
	e.RecordSuccess(tok)
	e.RecordSuccess(tok)
}
