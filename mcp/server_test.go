package mcp

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/server"
	"github.com/relaywire/relay/traits"
)

type echoInput struct {
	Message string
}

func (e *echoInput) Deserialize(d relay.ShapeDeserializer) error {
	return relay.ReadStruct(d, echoSchema, func(ms *relay.Schema) error {
		return d.ReadString(ms, &e.Message)
	})
}

func (e *echoInput) Serialize(s relay.ShapeSerializer) {
	s.WriteStruct(echoSchema, echoMembers{e})
}

type echoMembers struct{ e *echoInput }

func (m echoMembers) Serialize(s relay.ShapeSerializer) {
	s.WriteString(echoSchema.Members()[0], m.e.Message)
}

var echoSchema = relay.NewSchema(
	relay.ShapeID{Namespace: "example", Name: "EchoInput"},
	relay.ShapeTypeStructure,
	nil,
	relay.NewMember("message", relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "String"}, relay.ShapeTypeString, nil), &traits.Required{}),
)

func newEchoBridge() *Bridge {
	ops := map[string]*server.OperationEntry{
		"Echo": {
			Schema: echoSchema,
			New:    func() relay.Deserializable { return &echoInput{} },
			Handler: server.HandlerFunc(func(rc *server.RequestContext, input relay.Deserializable) (relay.Serializable, error) {
				in := input.(*echoInput)
				return &echoInput{Message: "echo: " + in.Message}, nil
			}),
		},
	}
	return NewBridge("echo-bridge", "0.1.0", ops)
}

func TestBridge_Initialize(t *testing.T) {
	b := newEchoBridge()
	resp := b.handle(JSONRPCRequest{JSONRPC: "2.0", ID: float64(1), Method: "initialize"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(InitializeResult)
	if !ok {
		t.Fatalf("result type = %T, want InitializeResult", resp.Result)
	}
	if result.ServerInfo.Name != "echo-bridge" {
		t.Errorf("server name = %q, want echo-bridge", result.ServerInfo.Name)
	}
}

func TestBridge_ToolsList(t *testing.T) {
	b := newEchoBridge()
	resp := b.handle(JSONRPCRequest{JSONRPC: "2.0", ID: float64(1), Method: "tools/list"})
	result := resp.Result.(ToolsListResult)
	if len(result.Tools) != 1 || result.Tools[0].Name != "Echo" {
		t.Fatalf("tools = %+v, want one tool named Echo", result.Tools)
	}
	props, ok := result.Tools[0].InputSchema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("input schema missing properties: %+v", result.Tools[0].InputSchema)
	}
	if _, ok := props["message"]; !ok {
		t.Errorf("expected a message property, got %+v", props)
	}
}

func TestBridge_Notification_NoResponse(t *testing.T) {
	b := newEchoBridge()
	if resp := b.handle(JSONRPCRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Errorf("expected nil response for a notification, got %+v", resp)
	}
}

func TestBridge_UnknownMethod(t *testing.T) {
	b := newEchoBridge()
	resp := b.handle(JSONRPCRequest{JSONRPC: "2.0", ID: float64(1), Method: "bogus"})
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("expected method-not-found error, got %+v", resp.Error)
	}
}

func TestBridge_StrictValidation_RejectsMissingRequired(t *testing.T) {
	ops := map[string]*server.OperationEntry{
		"Echo": {
			Schema: echoSchema,
			New:    func() relay.Deserializable { return &echoInput{} },
			Handler: server.HandlerFunc(func(rc *server.RequestContext, input relay.Deserializable) (relay.Serializable, error) {
				in := input.(*echoInput)
				return &echoInput{Message: "echo: " + in.Message}, nil
			}),
		},
	}
	b := NewBridge("echo-bridge", "0.1.0", ops, WithStrictValidation())

	resp := b.handle(JSONRPCRequest{
		JSONRPC: "2.0", ID: float64(1), Method: "tools/call",
		Params: json.RawMessage(`{"name":"Echo","arguments":{}}`),
	})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid-params error for a call missing the required message field, got %+v", resp)
	}
}

func TestBridge_StrictValidation_AcceptsConformingArguments(t *testing.T) {
	b := newEchoBridge()
	b2 := NewBridge(b.Name, b.Version, b.tools, WithStrictValidation())

	resp := b2.handle(JSONRPCRequest{
		JSONRPC: "2.0", ID: float64(1), Method: "tools/call",
		Params: json.RawMessage(`{"name":"Echo","arguments":{"message":"hi"}}`),
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error for conforming arguments: %+v", resp.Error)
	}
}

func TestBridge_Serve_ToolsCallRoundTrip(t *testing.T) {
	b := newEchoBridge()
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"Echo","arguments":{"message":"hi"}}}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := b.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var resp JSONRPCResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}
