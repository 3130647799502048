package hmacauth

import (
	"context"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/auth"
)

// CredentialsProvider resolves Credentials for the HMAC auth scheme.
type CredentialsProvider interface {
	RetrieveCredentials(ctx context.Context) (Credentials, error)
}

// CredentialsProviderFunc adapts a function to a CredentialsProvider.
type CredentialsProviderFunc func(ctx context.Context) (Credentials, error)

// RetrieveCredentials calls fn.
func (fn CredentialsProviderFunc) RetrieveCredentials(ctx context.Context) (Credentials, error) {
	return fn(ctx)
}

// StaticCredentialsProvider returns a fixed set of Credentials.
type StaticCredentialsProvider struct {
	Credentials Credentials
}

// RetrieveCredentials returns the configured Credentials.
func (p StaticCredentialsProvider) RetrieveCredentials(context.Context) (Credentials, error) {
	return p.Credentials, nil
}

// IdentityResolver adapts a CredentialsProvider to auth.IdentityResolver.
type IdentityResolver struct {
	Provider CredentialsProvider
}

var _ auth.IdentityResolver = (*IdentityResolver)(nil)

// GetIdentity implements auth.IdentityResolver.
func (r *IdentityResolver) GetIdentity(ctx context.Context, _ relay.Properties) (auth.Identity, error) {
	return r.Provider.RetrieveCredentials(ctx)
}
