// Package traits defines representations of Smithy IDL traits that appear in
// code-generated schemas.
package traits

// Sensitive represents relay.api#sensitive.
type Sensitive struct{}

// TraitID identifies the trait.
func (*Sensitive) TraitID() string { return "relay.api#sensitive" }

// EventHeader represents relay.api#eventHeader.
type EventHeader struct{}

// TraitID identifies the trait.
func (*EventHeader) TraitID() string { return "relay.api#eventHeader" }

// EventPayload represents relay.api#eventPayload.
type EventPayload struct{}

// TraitID identifies the trait.
func (*EventPayload) TraitID() string { return "relay.api#eventPayload" }

// Streaming represents relay.api#streaming.
type Streaming struct{}

// TraitID identifies the trait.
func (*Streaming) TraitID() string { return "relay.api#streaming" }

// HostLabel represents relay.api#hostLabel.
type HostLabel struct{}

// TraitID identifies the trait.
func (*HostLabel) TraitID() string { return "relay.api#hostLabel" }

// ContextParam represents relay.rules#contextParam.
type ContextParam struct{}

// TraitID identifies the trait.
func (*ContextParam) TraitID() string { return "relay.rules#contextParam" }

// AWSQueryError represents aws.protocols#awsQueryError.
type AWSQueryError struct {
	ErrorCode  string
	StatusCode int
}

// TraitID identifies the trait.
func (*AWSQueryError) TraitID() string { return "aws.protocols#awsQueryError" }
