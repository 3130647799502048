package middleware

import (
	"context"
	"reflect"
	"testing"
)

// mockIder is a minimal ider for exercising orderedIDs directly, without
// going through any step's named-middleware wrapping.
type mockIder string

func (m mockIder) ID() string { return string(m) }

// mockInitializeMiddleware is a named, no-op InitializeMiddleware used to
// exercise InitializeStep's ordering without a real handler behind it.
type mockInitializeMiddleware string

func (m mockInitializeMiddleware) Name() string { return string(m) }

func (m mockInitializeMiddleware) HandleInitialize(ctx context.Context, in InitializeInput, next InitializeHandler) (
	InitializeOutput, error,
) {
	return next.HandleInitialize(ctx, in)
}

func noError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}

func expectID(t *testing.T, v interface{ Name() string }, id string) {
	t.Helper()
	if v == nil {
		t.Fatalf("expect middleware named %v, got nil", id)
	}
	if e, a := id, v.Name(); e != a {
		t.Errorf("expect %v name, got %v", e, a)
	}
}

func expectIDList(t *testing.T, expect, actual []string) {
	t.Helper()
	if !reflect.DeepEqual(expect, actual) {
		t.Errorf("expect %v order, got %v", expect, actual)
	}
}
