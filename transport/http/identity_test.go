package http

import (
	"context"
	"testing"
	"github.com/relaywire/relay"
	"github.com/relaywire/relay/auth"
)

func TestIdentity(t *testing.T) {
	var expected auth.Identity = &auth.AnonymousIdentity{}

	resolver := auth.AnonymousIdentityResolver{}
	actual, _ := resolver.GetIdentity(context.TODO(), relay.Properties{})
	if expected != actual {
		t.Errorf("Anonymous identity resolver does not produce correct identity")
	}
}