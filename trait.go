package relay

// Trait represents a trait applied to a shape in a Smithy model. Traits
// related to (de)serialization are included in code-generated Schemas for the
// client.
type Trait interface {
	TraitID() string
}

// RedactedText is the fixed token a text-rendering serializer substitutes
// for the payload of any schema or member carrying the sensitive trait.
const RedactedText = "*REDACTED*"
