package server

import (
	"strings"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/codec/cbor"
	"github.com/relaywire/relay/transport"
)

// RpcV2CBOR implements Protocol for the rpc-v2-cbor protocol (spec §4.5):
// URI shape /service/<Service>/operation/<Operation>, required
// "smithy-protocol: rpc-v2-cbor" request header, and an "application/cbor"
// body when non-empty.
type RpcV2CBOR struct {
	codec cbor.Codec
}

var _ Protocol = (*RpcV2CBOR)(nil)

// ID identifies the protocol.
func (RpcV2CBOR) ID() string { return "rpc-v2-cbor" }

// ResolveOperation parses the /service/<Service>/operation/<Operation> URI
// shape and matches it against candidates by (possibly namespace-qualified)
// service name.
func (p RpcV2CBOR) ResolveOperation(req *Request, candidates []*Service) (*Service, string, error) {
	if req.Method != "POST" {
		return nil, "", &relay.GenericAPIError{
			Code:    "MalformedHttpException",
			Message: "rpc-v2-cbor requires POST",
			Fault:   relay.FaultClient,
		}
	}
	if !strings.EqualFold(req.Fields.Get("smithy-protocol").Get(), "rpc-v2-cbor") {
		return nil, "", &relay.GenericAPIError{
			Code:    "MalformedHttpException",
			Message: `missing or mismatched "smithy-protocol: rpc-v2-cbor" header`,
			Fault:   relay.FaultClient,
		}
	}
	if len(req.Body) > 0 {
		if ct := req.Fields.Get("content-type").Get(); ct != "" && ct != "application/cbor" {
			return nil, "", &relay.GenericAPIError{
				Code:    "MalformedHttpException",
				Message: "body content-type must be application/cbor, got " + ct,
				Fault:   relay.FaultClient,
			}
		}
	}

	serviceName, opName, ok := parseRpcV2Path(req.Path)
	if !ok {
		return nil, "", &relay.GenericAPIError{
			Code:    "UnknownOperationException",
			Message: "malformed rpc-v2-cbor request path: " + req.Path,
			Fault:   relay.FaultClient,
		}
	}

	for _, svc := range candidates {
		name := svc.Schema.ID.Name
		qualified := svc.Schema.ID.Namespace + "." + name
		if strings.EqualFold(serviceName, name) || strings.EqualFold(serviceName, qualified) {
			return svc, opName, nil
		}
	}
	return nil, "", &relay.GenericAPIError{
		Code:    "UnknownOperationException",
		Message: "no service matches " + serviceName,
		Fault:   relay.FaultClient,
	}
}

// parseRpcV2Path splits "/service/<Service>/operation/<Operation>" (an
// optional route prefix may precede it; only the trailing four segments
// matter).
func parseRpcV2Path(path string) (service, operation string, ok bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 4 {
		return "", "", false
	}
	segs = segs[len(segs)-4:]
	if segs[0] != "service" || segs[2] != "operation" {
		return "", "", false
	}
	return segs[1], segs[3], true
}

// DeserializeInput constructs a blank input instance via entry.New and
// decodes body into it using the CBOR shape deserializer.
func (p RpcV2CBOR) DeserializeInput(entry *OperationEntry, body []byte) (relay.Deserializable, error) {
	in := entry.New()
	d := p.codec.Deserializer(body)
	if err := in.Deserialize(d); err != nil {
		return nil, &relay.DeserializationError{Err: err}
	}
	return in, nil
}

// SerializeOutput encodes out using the CBOR shape serializer.
func (p RpcV2CBOR) SerializeOutput(out relay.Serializable) ([]byte, error) {
	s := p.codec.Serializer()
	out.Serialize(s)
	return s.Bytes(), nil
}

// SerializeError renders err as an rpc-v2-cbor error body: a map carrying
// the shape id discriminator under "__type" and the message under
// "message", the same two fields every Smithy error protocol needs
// regardless of codec. Errors that don't implement relay.APIError (a
// FrameworkInternalError, say) are rendered under the generic
// "InternalServerError" code.
func (p RpcV2CBOR) SerializeError(err error) []byte {
	code, message := "InternalServerError", err.Error()
	if apiErr, ok := err.(relay.APIError); ok {
		code, message = apiErr.ErrorCode(), apiErr.ErrorMessage()
	}
	return cbor.Encode(cbor.Map{
		"__type":  cbor.String(code),
		"message": cbor.String(message),
	})
}

// ResponseFields returns the protocol-identifying headers every response
// echoes back, per spec.md's "protocol header smithy-protocol is echoed on
// the response".
func (p RpcV2CBOR) ResponseFields() transport.Fields {
	var f transport.Fields
	f.Set(transport.NewField("smithy-protocol").WithValue("rpc-v2-cbor"))
	f.Set(transport.NewField("content-type").WithValue("application/cbor"))
	return f
}
