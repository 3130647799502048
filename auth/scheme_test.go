package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relaywire/relay"
)

type staticIdentity struct{ name string }

func (staticIdentity) Expiration() time.Time { return time.Time{} }

type resolverFunc func(context.Context, relay.Properties) (Identity, error)

func (f resolverFunc) GetIdentity(ctx context.Context, p relay.Properties) (Identity, error) {
	return f(ctx, p)
}

func notFound(name string) IdentityResolver {
	return resolverFunc(func(context.Context, relay.Properties) (Identity, error) {
		return nil, &relay.IdentityNotFoundError{Resolver: name}
	})
}

func found(id Identity) IdentityResolver {
	return resolverFunc(func(context.Context, relay.Properties) (Identity, error) {
		return id, nil
	})
}

func TestChainFallsThroughToNextResolver(t *testing.T) {
	chain := Chain{notFound("env"), found(staticIdentity{name: "system"})}

	id, err := chain.GetIdentity(context.Background(), relay.Properties{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.(staticIdentity).name != "system" {
		t.Fatalf("expected system identity, got %v", id)
	}
}

func TestChainExhaustedReturnsIdentityNotFound(t *testing.T) {
	chain := Chain{notFound("env"), notFound("system")}

	_, err := chain.GetIdentity(context.Background(), relay.Properties{})
	var nf *relay.IdentityNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected IdentityNotFoundError, got %v", err)
	}
}

func TestChainAbortsOnNonNotFoundError(t *testing.T) {
	boom := errors.New("credentials file corrupt")
	chain := Chain{
		resolverFunc(func(context.Context, relay.Properties) (Identity, error) {
			return nil, boom
		}),
		found(staticIdentity{name: "should-not-run"}),
	}

	_, err := chain.GetIdentity(context.Background(), relay.Properties{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the underlying error to surface, got %v", err)
	}
}
