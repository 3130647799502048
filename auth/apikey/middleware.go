package apikey

import (
	"context"
	"fmt"

	"github.com/relaywire/relay/auth"
	"github.com/relaywire/relay/middleware"
	smithyhttp "github.com/relaywire/relay/transport/http"
)

// Signer provides an interface for implementations to decorate a request
// message with an api key. The signer is responsible for validating the
// message type is compatible with the signer, and for reading the
// in-force auth.HttpAuthDefinition from ctx (auth.CURRENT_AUTH_CONFIG).
type Signer interface {
	SignWithApiKey(ctx context.Context, apiKey string, message auth.Message) (auth.Message, error)
}

// AuthenticationMiddleware provides the Finalize middleware step for signing
// a request message with an api key.
type AuthenticationMiddleware struct {
	signer         Signer
	apiKeyProvider ApiKeyProvider
	authDefinition auth.HttpAuthDefinition
}

// AddAuthenticationMiddleware helper adds the AuthenticationMiddleware to the
// middleware Stack in the Finalize step with the options provided.
func AddAuthenticationMiddleware(s *middleware.Stack, signer Signer, apiKeyProvider ApiKeyProvider, authDefinition auth.HttpAuthDefinition) error {
	return s.Finalize.Add(
		NewAuthenticationMiddleware(signer, apiKeyProvider, authDefinition),
		middleware.After,
	)
}

// NewAuthenticationMiddleware returns an initialized AuthenticationMiddleware.
func NewAuthenticationMiddleware(signer Signer, apiKeyProvider ApiKeyProvider, authDefinition auth.HttpAuthDefinition) *AuthenticationMiddleware {
	return &AuthenticationMiddleware{
		signer:         signer,
		apiKeyProvider: apiKeyProvider,
		authDefinition: authDefinition,
	}
}

const authenticationMiddlewareName = "ApiKeyAuthentication"

// Name implements the FinalizeMiddleware interface.
func (m *AuthenticationMiddleware) Name() string {
	return authenticationMiddlewareName
}

// HandleFinalize implements the FinalizeMiddleware interface in order to
// update the request with api key authentication.
func (m *AuthenticationMiddleware) HandleFinalize(
	ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler,
) (
	out middleware.FinalizeOutput, err error,
) {
	if m.apiKeyProvider == nil || ctx.Value(auth.CURRENT_AUTH_CONFIG) != nil {
		return next.HandleFinalize(ctx, in)
	}

	apiKey, err := m.apiKeyProvider.RetrieveApiKey(ctx)
	if err != nil || len(apiKey) == 0 {
		return next.HandleFinalize(ctx, in)
	}

	ctx = context.WithValue(ctx, auth.CURRENT_AUTH_CONFIG, m.authDefinition)

	signedMessage, err := m.signer.SignWithApiKey(ctx, apiKey, in.Request)
	if err != nil {
		return out, fmt.Errorf("sign request with api key: %w", err)
	}

	in.Request = signedMessage
	return next.HandleFinalize(ctx, in)
}

// SignHTTPSMessage provides an api key authentication implementation that
// signs the message with the provided api key. It requires the message be
// carried over HTTPS, since the api key is otherwise sent in the clear.
type SignHTTPSMessage struct{}

// NewSignMessage returns an initialized signer for HTTP messages.
func NewSignMessage() *SignHTTPSMessage {
	return &SignHTTPSMessage{}
}

// SignWithApiKey returns a copy of the HTTP request with the api key
// added via either Header or Query parameter as defined by the
// auth.HttpAuthDefinition in ctx.
func (SignHTTPSMessage) SignWithApiKey(ctx context.Context, apiKey string, message auth.Message) (auth.Message, error) {
	req, ok := message.(*smithyhttp.Request)
	if !ok {
		return nil, fmt.Errorf("expect smithy-go HTTP Request, got %T", message)
	}

	authDefinition, _ := ctx.Value(auth.CURRENT_AUTH_CONFIG).(auth.HttpAuthDefinition)
	if authDefinition.In != "header" && authDefinition.In != "query" {
		return nil, fmt.Errorf("invalid HTTP auth definition")
	}

	if req.URL.Scheme != "https" {
		return nil, fmt.Errorf("apikey auth requires HTTPS")
	}

	reqClone := req.Clone()
	switch authDefinition.In {
	case "header":
		value := apiKey
		if authDefinition.Scheme != "" {
			value = authDefinition.Scheme + " " + apiKey
		}
		reqClone.Header.Set(authDefinition.Name, value)
	case "query":
		values := reqClone.URL.Query()
		values.Set(authDefinition.Name, apiKey)
		reqClone.URL.RawQuery = values.Encode()
	}

	return reqClone, nil
}
