package mcp

import (
	"github.com/relaywire/relay"
	"github.com/relaywire/relay/traits"
)

// toolInputSchema translates a structure schema into the JSON Schema
// object an MCP tool's "inputSchema" carries, per spec §4.7: structures
// become "object", lists "array", scalars their JSON Schema primitive,
// and documents the permissive {type: object, additionalProperties:
// true}. Recursive shapes are flattened into a single "$defs" section
// keyed by shape name, with a shape already on the expansion stack
// emitted as a "$ref" instead of being expanded again.
func toolInputSchema(input *relay.Schema) map[string]any {
	d := &definitions{defs: map[string]any{}, stack: map[relay.ShapeID]bool{}, referenced: map[string]bool{}}
	d.defineNamed(input)

	name := input.ID.Name
	root := map[string]any{}
	for k, v := range d.defs[name].(map[string]any) {
		root[k] = v
	}
	if !d.referenced[name] {
		delete(d.defs, name)
	}
	if len(d.defs) > 0 {
		root["$defs"] = d.defs
	}
	return root
}

// definitions accumulates the "$defs" section while translating a
// schema graph, and tracks which shape ids are mid-expansion so cycles
// terminate as "$ref"s rather than recursing forever. referenced records
// every name a "$ref" was actually emitted for, so the top-level shape
// (inlined directly by toolInputSchema) is only duplicated into $defs
// when it's self-referential.
type definitions struct {
	defs       map[string]any
	stack      map[relay.ShapeID]bool
	referenced map[string]bool
}

// defineNamed handles structure/union shapes, which are the only shapes
// that can recur: a named shape already being expanded, or already
// fully defined, is referenced by name instead of expanded again, and
// every named shape's full definition is recorded in defs exactly once.
func (d *definitions) defineNamed(s *relay.Schema) map[string]any {
	id := s.ID
	name := id.Name
	if d.stack[id] {
		d.referenced[name] = true
		return map[string]any{"$ref": "#/$defs/" + name}
	}
	if _, ok := d.defs[name]; ok {
		d.referenced[name] = true
		return map[string]any{"$ref": "#/$defs/" + name}
	}

	d.stack[id] = true
	def := d.translate(s)
	delete(d.stack, id)
	d.defs[name] = def

	return map[string]any{"$ref": "#/$defs/" + name}
}

// translate produces the JSON Schema object for s's own shape, without
// the $ref indirection defineNamed wraps around structures/unions.
func (d *definitions) translate(s *relay.Schema) map[string]any {
	switch s.Type {
	case relay.ShapeTypeStructure, relay.ShapeTypeUnion:
		props := map[string]any{}
		var required []string
		for _, m := range s.Members() {
			props[m.ID.Member] = d.memberSchema(m)
			if _, ok := relay.SchemaTrait[*traits.Required](m); ok {
				required = append(required, m.ID.Member)
			}
		}
		obj := map[string]any{"type": "object", "properties": props}
		if len(required) > 0 {
			obj["required"] = required
		}
		return obj
	case relay.ShapeTypeList, relay.ShapeTypeSet:
		item, ok := s.Member("member")
		if !ok {
			return map[string]any{"type": "array"}
		}
		return map[string]any{"type": "array", "items": d.memberSchema(item)}
	case relay.ShapeTypeMap:
		value, ok := s.Member("value")
		if !ok {
			return map[string]any{"type": "object"}
		}
		return map[string]any{"type": "object", "additionalProperties": d.memberSchema(value)}
	case relay.ShapeTypeDocument:
		return map[string]any{"type": "object", "additionalProperties": true}
	default:
		return scalarSchema(s.Type)
	}
}

// memberSchema resolves one member's schema: structure/union targets go
// through defineNamed, list/map/document targets are translated inline,
// and scalars resolve inline.
func (d *definitions) memberSchema(m *relay.Schema) map[string]any {
	switch m.Type {
	case relay.ShapeTypeStructure, relay.ShapeTypeUnion:
		return d.defineNamed(m)
	case relay.ShapeTypeList, relay.ShapeTypeSet, relay.ShapeTypeMap, relay.ShapeTypeDocument:
		return d.translate(m)
	default:
		return scalarSchema(m.Type)
	}
}

func scalarSchema(t relay.ShapeType) map[string]any {
	switch t {
	case relay.ShapeTypeBoolean:
		return map[string]any{"type": "boolean"}
	case relay.ShapeTypeString, relay.ShapeTypeEnum:
		return map[string]any{"type": "string"}
	case relay.ShapeTypeTimestamp:
		return map[string]any{"type": "string", "format": "date-time"}
	case relay.ShapeTypeByte, relay.ShapeTypeShort, relay.ShapeTypeInteger, relay.ShapeTypeLong,
		relay.ShapeTypeIntEnum, relay.ShapeTypeBigInteger:
		return map[string]any{"type": "integer"}
	case relay.ShapeTypeFloat, relay.ShapeTypeDouble, relay.ShapeTypeBigDecimal:
		return map[string]any{"type": "number"}
	case relay.ShapeTypeBlob:
		return map[string]any{"type": "string", "contentEncoding": "base64"}
	default:
		return map[string]any{}
	}
}
