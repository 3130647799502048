package waiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relaywire/relay"
)

func TestWaiterSucceedsWithinDeadline(t *testing.T) {
	statuses := []string{"BUILDING", "BUILDING", "BUILDING", "DONE"}
	var calls int

	w := &Waiter{
		MinDelay: time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
		Acceptors: []Acceptor{
			PathAcceptor(Success, "status", "DONE"),
			PathAcceptor(Failure, "status", "FAILED"),
		},
	}

	err := w.Wait(context.Background(), time.Second, func(ctx context.Context) (interface{}, interface{}, error) {
		out := map[string]interface{}{"status": statuses[calls]}
		calls++
		return nil, out, nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 4 {
		t.Fatalf("expected 4 poll attempts, got %d", calls)
	}
}

func TestWaiterTimesOut(t *testing.T) {
	w := &Waiter{
		MinDelay: time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
		Acceptors: []Acceptor{
			PathAcceptor(Success, "status", "DONE"),
		},
	}

	err := w.Wait(context.Background(), 10*time.Millisecond, func(ctx context.Context) (interface{}, interface{}, error) {
		return nil, map[string]interface{}{"status": "BUILDING"}, nil
	})

	var wfe *relay.WaiterFailureError
	if !errors.As(err, &wfe) {
		t.Fatalf("expected WaiterFailureError, got %v", err)
	}
	if !wfe.TimedOut {
		t.Fatalf("expected TimedOut=true")
	}
}

func TestWaiterFailureTrumpsSuccessSameAttempt(t *testing.T) {
	w := &Waiter{
		MinDelay: time.Millisecond,
		MaxDelay: time.Millisecond,
		Acceptors: []Acceptor{
			// Listed first, but must still lose to the failure acceptor
			// below when both match the same attempt.
			PathAcceptor(Success, "status", "DONE"),
			PathAcceptor(Failure, "status", "DONE"),
		},
	}

	err := w.Wait(context.Background(), time.Second, func(ctx context.Context) (interface{}, interface{}, error) {
		return nil, map[string]interface{}{"status": "DONE"}, nil
	})

	var wfe *relay.WaiterFailureError
	if !errors.As(err, &wfe) {
		t.Fatalf("expected WaiterFailureError, got %v", err)
	}
	if wfe.TimedOut {
		t.Fatalf("expected a terminal failure, not a timeout")
	}
}
