package mcp

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compileToolSchema compiles a tool's derived inputSchema (see
// toolInputSchema) with santhosh-tekuri/jsonschema so WithStrictValidation
// can reject a tools/call whose arguments don't conform, instead of
// letting a malformed call fail deep inside shape deserialization with a
// less actionable error.
func compileToolSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, schema); err != nil {
		return nil, fmt.Errorf("mcp: adding schema resource for tool %s: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("mcp: compiling schema for tool %s: %w", name, err)
	}
	return compiled, nil
}

// validateArguments reports the jsonschema validation failure, if any, of
// arguments against the tool's compiled inputSchema. A tool with no
// compiled validator (strict mode disabled) always passes.
func (b *Bridge) validateArguments(toolName string, arguments map[string]any) error {
	v, ok := b.validators[toolName]
	if !ok {
		return nil
	}
	return v.Validate(arguments)
}
