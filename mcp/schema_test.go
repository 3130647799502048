package mcp

import (
	"testing"

	"github.com/relaywire/relay"
)

func strMember(name string) *relay.Schema {
	return relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "String"}, relay.ShapeTypeString, nil)
}

func TestToolInputSchema_Flat(t *testing.T) {
	input := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "GetBeerInput"}, relay.ShapeTypeStructure, nil,
		relay.NewMember("id", strMember("id")),
	)

	schema := toolInputSchema(input)
	if schema["type"] != "object" {
		t.Fatalf("type = %v, want object", schema["type"])
	}
	if _, ok := schema["$defs"]; ok {
		t.Errorf("expected no $defs for a flat structure, got %+v", schema["$defs"])
	}
	props := schema["properties"].(map[string]any)
	idSchema := props["id"].(map[string]any)
	if idSchema["type"] != "string" {
		t.Errorf("id schema = %+v, want string", idSchema)
	}
}

func TestToolInputSchema_List(t *testing.T) {
	list := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "Tags"}, relay.ShapeTypeList, nil,
		relay.NewMember("member", strMember("member")),
	)
	input := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "TagInput"}, relay.ShapeTypeStructure, nil,
		relay.NewMember("tags", list),
	)

	schema := toolInputSchema(input)
	props := schema["properties"].(map[string]any)
	tagsSchema := props["tags"].(map[string]any)
	if tagsSchema["type"] != "array" {
		t.Fatalf("tags schema = %+v, want array", tagsSchema)
	}
	items := tagsSchema["items"].(map[string]any)
	if items["type"] != "string" {
		t.Errorf("items schema = %+v, want string", items)
	}
}

func TestToolInputSchema_SharedNestedStructureIsRefd(t *testing.T) {
	address := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "Address"}, relay.ShapeTypeStructure, nil,
		relay.NewMember("city", strMember("city")),
	)
	input := relay.NewSchema(relay.ShapeID{Namespace: "example", Name: "BeerServiceInput"}, relay.ShapeTypeStructure, nil,
		relay.NewMember("home", address),
		relay.NewMember("work", address),
	)

	schema := toolInputSchema(input)

	defs, ok := schema["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("expected $defs for a structure with a shared nested shape, schema = %+v", schema)
	}
	addressDef, ok := defs["Address"].(map[string]any)
	if !ok {
		t.Fatalf("expected an Address entry in $defs, got %+v", defs)
	}
	if addressDef["type"] != "object" {
		t.Errorf("Address def = %+v, want an object schema", addressDef)
	}

	props := schema["properties"].(map[string]any)
	home := props["home"].(map[string]any)
	work := props["work"].(map[string]any)
	if home["$ref"] != "#/$defs/Address" || work["$ref"] != "#/$defs/Address" {
		t.Errorf("home/work = %+v / %+v, want both $ref #/$defs/Address", home, work)
	}
}
