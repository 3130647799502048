// Package eventstream implements the binary framing used for event-stream
// event frames (§3, §4.2, §6): each frame carries protocol headers
// (message-type, event-type, content-type) plus an opaque payload produced
// by the operation's inner codec (CBOR or JSON). Framing here follows the
// AWS event-stream wire format: a length-prefixed prelude, a header block,
// the payload, and a trailing CRC.
package eventstream

import "fmt"

// HeaderValueType enumerates the wire type tag of one header value.
type HeaderValueType uint8

// Header value type tags, per the AWS event-stream header encoding.
const (
	HeaderTypeBool HeaderValueType = iota
	HeaderTypeByte
	HeaderTypeInt16
	HeaderTypeInt32
	HeaderTypeInt64
	HeaderTypeByteArray
	HeaderTypeString
	HeaderTypeTimestamp
	HeaderTypeUUID
)

// HeaderValue is one typed header value.
type HeaderValue struct {
	Type  HeaderValueType
	Value interface{}
}

// StringValue returns v as a HeaderValue of type string.
func StringValue(v string) HeaderValue { return HeaderValue{Type: HeaderTypeString, Value: v} }

// Headers is an unordered event-frame header set, keyed by name; Encode
// writes the headers in map iteration order. Reserved
// header names (with a leading colon) carry protocol metadata; the three
// this package understands directly are :message-type, :event-type and
// :content-type.
type Headers map[string]HeaderValue

// Well-known reserved header names.
const (
	HeaderMessageType = ":message-type"
	HeaderEventType   = ":event-type"
	HeaderContentType = ":content-type"
	HeaderExceptionType = ":exception-type"
)

// MessageType values for the :message-type header.
const (
	MessageTypeEvent     = "event"
	MessageTypeException = "exception"
	MessageTypeError     = "error"
)

// Frame is one opaque unit of an event-stream sequence: a header set and a
// payload produced by the inner codec for one modeled event union member.
type Frame struct {
	Headers Headers
	Payload []byte
}

// EventType returns the shape name carried in the :event-type header, and
// whether it was present.
func (f Frame) EventType() (string, bool) {
	v, ok := f.Headers[HeaderEventType]
	if !ok {
		return "", false
	}
	s, ok := v.Value.(string)
	return s, ok
}

// Unwrap exposes the frame's raw payload for the caller to hand to the
// inner codec's deserializer, keyed by its content type.
func (f Frame) Unwrap() (contentType string, payload []byte) {
	if v, ok := f.Headers[HeaderContentType]; ok {
		if s, ok := v.Value.(string); ok {
			contentType = s
		}
	}
	return contentType, f.Payload
}

// NewEventFrame builds a Frame for a named event union member with the
// given content type and encoded payload.
func NewEventFrame(eventType, contentType string, payload []byte) Frame {
	return Frame{
		Headers: Headers{
			HeaderMessageType: StringValue(MessageTypeEvent),
			HeaderEventType:   StringValue(eventType),
			HeaderContentType: StringValue(contentType),
		},
		Payload: payload,
	}
}

// NewExceptionFrame builds a Frame representing a modeled event-stream
// exception terminating the stream.
func NewExceptionFrame(exceptionType, contentType string, payload []byte) Frame {
	return Frame{
		Headers: Headers{
			HeaderMessageType:   StringValue(MessageTypeException),
			HeaderExceptionType: StringValue(exceptionType),
			HeaderContentType:   StringValue(contentType),
		},
		Payload: payload,
	}
}

func (f Frame) String() string {
	et, _ := f.EventType()
	return fmt.Sprintf("eventstream.Frame{event=%s, len(payload)=%d}", et, len(f.Payload))
}
