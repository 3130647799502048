package waiter

import (
	"context"
	"fmt"
	"time"

	"github.com/jmespath/go-jmespath"

	"github.com/relaywire/relay"
)

// AcceptorState is the terminal or transitional state an Acceptor assigns
// to one polling attempt.
type AcceptorState int

// Enumerates AcceptorState.
const (
	// AcceptorSuccess ends the wait successfully.
	AcceptorSuccess AcceptorState = iota
	// AcceptorFailure ends the wait with a WaiterFailureError. A matched
	// failure acceptor always wins over a matched success acceptor
	// evaluated on the same attempt.
	AcceptorFailure
	// AcceptorRetry explicitly continues polling. Functionally identical
	// to no acceptor matching, but lets a model document the case.
	AcceptorRetry
)

// Acceptor is a single predicate over one poll attempt's (input, output,
// error). Match reports whether the acceptor applies to the attempt; when
// it returns an error the wait is aborted immediately.
type Acceptor struct {
	State State
	Match func(input, output interface{}, err error) (bool, error)
}

// State is an alias retained for readability at call sites
// (waiter.Acceptor{State: waiter.Success, ...}).
type State = AcceptorState

// Exported state aliases matching the acceptor vocabulary used by generated
// waiter configuration.
const (
	Success = AcceptorSuccess
	Failure = AcceptorFailure
	Retry   = AcceptorRetry
)

// PathAcceptor builds an Acceptor that projects a JMESPath-like expression
// out of the operation output and compares it against an expected value.
// A projection error (e.g. the path doesn't exist) is treated as "no
// match", not a hard failure, matching the source waiter matcher's
// behavior of tolerating outputs that don't yet have the field.
func PathAcceptor(state State, path string, expected interface{}) Acceptor {
	return Acceptor{
		State: state,
		Match: func(_, output interface{}, err error) (bool, error) {
			if err != nil || output == nil {
				return false, nil
			}
			result, perr := jmespath.Search(path, output)
			if perr != nil || result == nil {
				return false, nil
			}
			return result == expected, nil
		},
	}
}

// PathAllAcceptor matches when every element of the projected list equals
// expected (and the list is non-empty).
func PathAllAcceptor(state State, path string, expected interface{}) Acceptor {
	return Acceptor{
		State: state,
		Match: func(_, output interface{}, err error) (bool, error) {
			if err != nil || output == nil {
				return false, nil
			}
			result, perr := jmespath.Search(path, output)
			if perr != nil {
				return false, nil
			}
			list, ok := result.([]interface{})
			if !ok || len(list) == 0 {
				return false, nil
			}
			for _, v := range list {
				if v != expected {
					return false, nil
				}
			}
			return true, nil
		},
	}
}

// PathAnyAcceptor matches when any element of the projected list equals
// expected.
func PathAnyAcceptor(state State, path string, expected interface{}) Acceptor {
	return Acceptor{
		State: state,
		Match: func(_, output interface{}, err error) (bool, error) {
			if err != nil || output == nil {
				return false, nil
			}
			result, perr := jmespath.Search(path, output)
			if perr != nil {
				return false, nil
			}
			list, ok := result.([]interface{})
			if !ok {
				return false, nil
			}
			for _, v := range list {
				if v == expected {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

// ErrorAcceptor matches when the poll attempt failed with a modeled error
// whose shape id equals errorCode. A successful attempt never matches.
func ErrorAcceptor(state State, errorCode string) Acceptor {
	return Acceptor{
		State: state,
		Match: func(_, _ interface{}, err error) (bool, error) {
			if err == nil {
				return false, nil
			}
			type coder interface{ ErrorCode() string }
			if c, ok := err.(coder); ok {
				return c.ErrorCode() == errorCode, nil
			}
			return false, nil
		},
	}
}

// SuccessAcceptor matches any attempt that did not fail. It's the
// conventional catch-all accept used when a waiter has no explicit
// success predicate beyond "the call didn't error".
func SuccessAcceptor(state State) Acceptor {
	return Acceptor{
		State: state,
		Match: func(_, _ interface{}, err error) (bool, error) {
			return err == nil, nil
		},
	}
}

// PollFunc performs one poll attempt, returning the input/output pair fed
// to the waiter's acceptors.
type PollFunc func(ctx context.Context) (input, output interface{}, err error)

// Waiter is a poll-until-acceptor engine: it calls PollFunc repeatedly,
// evaluating Acceptors against each attempt, until one matches a terminal
// state or the deadline elapses.
type Waiter struct {
	Acceptors []Acceptor
	MinDelay  time.Duration
	MaxDelay  time.Duration

	// Logger is carried on the Waiter; Wait does not write to it.
	Logger relay.Properties
}

// Wait polls until an acceptor reaches a terminal state or maxWaitTime
// elapses, returning a *relay.WaiterFailureError on any terminal failure
// (including timeout).
func (w *Waiter) Wait(ctx context.Context, maxWaitTime time.Duration, poll PollFunc) error {
	remaining := maxWaitTime
	var attempt int64
	var lastErr error

	for {
		attempt++

		input, output, err := poll(ctx)
		lastErr = err

		matchedState, matchedAny, matchErr := w.evaluate(input, output, err)
		if matchErr != nil {
			return matchErr
		}

		if matchedAny {
			switch matchedState {
			case AcceptorSuccess:
				return nil
			case AcceptorFailure:
				return &relay.WaiterFailureError{Cause: err}
			// AcceptorRetry and default (no acceptor matched) fall through to
			// another attempt.
			default:
			}
		}

		delay, done, derr := ComputeDelay(attempt, w.MinDelay, w.MaxDelay, remaining)
		if derr != nil {
			return derr
		}
		if done && delay <= 0 {
			return &relay.WaiterFailureError{TimedOut: true, Cause: fmt.Errorf("waiter deadline exhausted after %d attempts: %w", attempt, lastErrOrNil(lastErr))}
		}
		remaining -= delay

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return &relay.WaiterFailureError{TimedOut: true, Cause: ctx.Err()}
		}
	}
}

func lastErrOrNil(err error) error {
	if err == nil {
		return fmt.Errorf("no matching acceptor")
	}
	return err
}

// evaluate runs every acceptor against one attempt. A matched failure
// acceptor always wins over a matched success acceptor from the same
// attempt, per the "terminal failure trumps success" rule.
func (w *Waiter) evaluate(input, output interface{}, err error) (AcceptorState, bool, error) {
	var sawSuccess, sawRetry bool

	for _, a := range w.Acceptors {
		matched, aerr := a.Match(input, output, err)
		if aerr != nil {
			return 0, false, aerr
		}
		if !matched {
			continue
		}
		switch a.State {
		case AcceptorFailure:
			return AcceptorFailure, true, nil
		case AcceptorSuccess:
			sawSuccess = true
		case AcceptorRetry:
			sawRetry = true
		}
	}

	if sawSuccess {
		return AcceptorSuccess, true, nil
	}
	if sawRetry {
		return AcceptorRetry, true, nil
	}
	return 0, false, nil
}
