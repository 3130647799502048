package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/relaywire/relay"
	relayjson "github.com/relaywire/relay/codec/json"
	"github.com/relaywire/relay/server"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Bridge runs the JSON-RPC 2.0 stdio loop of spec §4.7 over a set of
// registered operations, presenting each as an MCP tool. Tool call
// arguments and results cross the bridge as JSON, independent of
// whatever wire protocol the operations' own server pipeline uses.
type Bridge struct {
	Name    string
	Version string

	codec      relayjson.Codec
	tools      map[string]*server.OperationEntry
	ordered    []Tool
	validators map[string]*jsonschema.Schema
}

// BridgeOption configures optional Bridge behavior at construction time.
type BridgeOption func(*Bridge) error

// WithStrictValidation compiles every tool's derived inputSchema with
// santhosh-tekuri/jsonschema and rejects a tools/call whose arguments
// don't conform before they ever reach shape deserialization. Off by
// default: a model-supplied schema that fails to compile (e.g. an
// unsupported combination this bridge's translation never produces)
// would otherwise make NewBridge itself fallible for every caller.
func WithStrictValidation() BridgeOption {
	return func(b *Bridge) error {
		b.validators = make(map[string]*jsonschema.Schema, len(b.ordered))
		for _, tool := range b.ordered {
			compiled, err := compileToolSchema(tool.Name, tool.InputSchema)
			if err != nil {
				return err
			}
			b.validators[tool.Name] = compiled
		}
		return nil
	}
}

// NewBridge derives one MCP tool per entry in ops and returns a Bridge
// ready to Serve. Operations are exposed under the name they're keyed
// by in ops. NewBridge panics if an option fails (WithStrictValidation
// fails only if a derived schema doesn't compile, which is a programmer
// error in the schema registry this bridge was built against, not a
// runtime condition a caller can recover from).
func NewBridge(name, version string, ops map[string]*server.OperationEntry, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		Name:    name,
		Version: version,
		tools:   make(map[string]*server.OperationEntry, len(ops)),
	}
	for opName, entry := range ops {
		b.tools[opName] = entry
		b.ordered = append(b.ordered, Tool{
			Name:        opName,
			InputSchema: toolInputSchema(entry.Schema),
		})
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			panic(fmt.Sprintf("mcp: NewBridge option failed: %v", err))
		}
	}
	return b
}

// Serve reads one JSON-RPC request per line from r and writes one
// JSON-RPC response per line to w, until r is exhausted. Each line is
// handled synchronously and in order, matching the single-client stdio
// transport spec §4.7 describes.
func (b *Bridge) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			if err := enc.Encode(b.errorResponse(nil, codeParseError, "parse error")); err != nil {
				return err
			}
			continue
		}

		resp := b.handle(req)
		if resp == nil {
			continue // notification: no response expected
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// handle dispatches one request to the matching method, returning nil
// for a notification (a request carrying no id).
func (b *Bridge) handle(req JSONRPCRequest) *JSONRPCResponse {
	if req.ID == nil {
		return nil
	}
	switch req.Method {
	case "initialize":
		return b.handleInitialize(req.ID)
	case "tools/list":
		return b.handleToolsList(req.ID)
	case "tools/call":
		return b.handleToolsCall(req.ID, req.Params)
	default:
		return b.errorResponse(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
}

func (b *Bridge) handleInitialize(id any) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: Capabilities{
				Tools: &ToolsCapability{ListChanged: false},
			},
			ServerInfo: ServerInfo{Name: b.Name, Version: b.Version},
		},
	}
}

func (b *Bridge) handleToolsList(id any) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  ToolsListResult{Tools: b.ordered},
	}
}

func (b *Bridge) handleToolsCall(id any, params json.RawMessage) *JSONRPCResponse {
	var call ToolCallParams
	if err := json.Unmarshal(params, &call); err != nil {
		return b.errorResponse(id, codeInvalidParams, "invalid params")
	}

	entry, ok := b.tools[call.Name]
	if !ok {
		return b.errorResponse(id, codeInvalidParams, "unknown tool: "+call.Name)
	}

	if err := b.validateArguments(call.Name, call.Arguments); err != nil {
		return b.errorResponse(id, codeInvalidParams, "invalid arguments: "+err.Error())
	}

	argBytes, err := json.Marshal(call.Arguments)
	if err != nil {
		return b.errorResponse(id, codeInternalError, "internal error")
	}

	input := entry.New()
	if err := input.Deserialize(b.codec.Deserializer(argBytes)); err != nil {
		return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: toolError(err)}
	}

	rc := &server.RequestContext{Context: relay.WrapContext(context.Background())}
	out, err := entry.Handler.Invoke(rc, input)
	if err != nil {
		return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: toolError(err)}
	}

	ser := b.codec.Serializer()
	out.Serialize(ser)

	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: ToolCallResult{
			Content: []ContentItem{{Type: "text", Text: string(ser.Bytes())}},
		},
	}
}

func toolError(err error) ToolCallResult {
	return ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: err.Error()}},
		IsError: true,
	}
}

func (b *Bridge) errorResponse(id any, code int, message string) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	}
}
