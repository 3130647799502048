package traits

// HTTPHeader represents relay.api#httpHeader.
type HTTPHeader struct {
	Name string
}

// TraitID identifies the trait.
func (*HTTPHeader) TraitID() string { return "relay.api#httpHeader" }

// HTTPLabel represents relay.api#httpLabel.
type HTTPLabel struct{}

// TraitID identifies the trait.
func (*HTTPLabel) TraitID() string { return "relay.api#httpLabel" }

// HTTPPayload represents relay.api#httpPayload.
type HTTPPayload struct{}

// TraitID identifies the trait.
func (*HTTPPayload) TraitID() string { return "relay.api#httpPayload" }

// HTTPPrefixHeaders represents relay.api#httpPrefixHeaders.
type HTTPPrefixHeaders struct {
	Prefix string
}

// TraitID identifies the trait.
func (*HTTPPrefixHeaders) TraitID() string { return "relay.api#httpPrefixHeaders" }

// HTTPQuery represents relay.api#httpQuery.
type HTTPQuery struct {
	Name string
}

// TraitID identifies the trait.
func (*HTTPQuery) TraitID() string { return "relay.api#httpQuery" }

// HTTPQueryParams represents relay.api#httpQueryParams.
type HTTPQueryParams struct{}

// TraitID identifies the trait.
func (*HTTPQueryParams) TraitID() string { return "relay.api#httpQueryParams" }

// HTTPResponseCode represents relay.api#httpResponseCode.
type HTTPResponseCode struct{}

// TraitID identifies the trait.
func (*HTTPResponseCode) TraitID() string { return "relay.api#httpResponseCode" }
