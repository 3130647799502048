package relay

import (
	"fmt"
	"strings"
)

// ShapeType is a type of Smithy shape.
// See https://smithy.io/2.0/spec/idl.html#defining-shapes.
type ShapeType int

// Enumerates ShapeType per the Smithy IDL.
const (
	ShapeTypeBlob ShapeType = iota
	ShapeTypeBoolean
	ShapeTypeString
	ShapeTypeTimestamp
	ShapeTypeByte
	ShapeTypeShort
	ShapeTypeInteger
	ShapeTypeLong
	ShapeTypeFloat
	ShapeTypeDocument
	ShapeTypeDouble
	ShapeTypeBigDecimal
	ShapeTypeBigInteger
	ShapeTypeEnum
	ShapeTypeIntEnum
	ShapeTypeList
	ShapeTypeSet
	ShapeTypeMap
	ShapeTypeStructure
	ShapeTypeUnion
	ShapeTypeMember
	ShapeTypeService
	ShapeTypeResource
	ShapeTypeOperation
)

// ShapeID fields of a Smithy shape ID.
type ShapeID struct {
	Namespace, Name, Member string
}

// String returns the IDL microformat for the shape ID.
func (s ShapeID) String() string {
	if s.Member == "" {
		return fmt.Sprintf("%s#%s", s.Namespace, s.Name)
	}
	return fmt.Sprintf("%s#%s$%s", s.Namespace, s.Name, s.Member)
}

// ParseShapeID parses the IDL microformat (namespace#name$member) into a
// ShapeID. The member segment is optional.
func ParseShapeID(s string) ShapeID {
	ns, n, _ := strings.Cut(s, "#")
	n, m, _ := strings.Cut(n, "$")
	return ShapeID{ns, n, m}
}

// Schema encodes information about a shape from a Smithy model.
//
// Generated clients use schemas at runtime to dynamically (de)serialize
// requests/responses. Member order is significant — it's the declaration
// order from the model, and a struct serializer visits members in that
// order — so members are held as a slice rather than a map. Lookup by
// member name is still O(1) via an index built alongside the slice.
type Schema struct {
	ID     ShapeID
	Type   ShapeType
	Traits map[string]Trait

	members []*Schema
	index   map[string]int

	// deferred makes this schema a forward reference to a shape that isn't
	// fully built yet. Resolve fills it in. Recursive structures need this:
	// a member's target is the enclosing structure, which can't exist until
	// its own member list (including that member) does.
	deferred *Schema
}

// NewSchema builds a named schema of the given shape type with the given
// traits and ordered members.
func NewSchema(id ShapeID, typ ShapeType, traits []Trait, members ...*Schema) *Schema {
	s := &Schema{
		ID:     id,
		Type:   typ,
		Traits: traitMap(traits),
	}
	s.setMembers(members)
	return s
}

// NewDeferredSchema returns a placeholder that must be fixed up with Resolve
// before use, to support recursive shape definitions.
func NewDeferredSchema() *Schema {
	return &Schema{}
}

// Resolve fixes a deferred schema (see NewDeferredSchema) to its real
// target. Calling Resolve twice, or using an unresolved deferred schema,
// panics.
func (s *Schema) Resolve(target *Schema) {
	if s.deferred != nil {
		panic("relay: schema already resolved")
	}
	s.deferred = target
}

func (s *Schema) self() *Schema {
	if s.deferred != nil {
		return s.deferred.self()
	}
	return s
}

func (s *Schema) setMembers(members []*Schema) {
	s.members = members
	if len(members) == 0 {
		return
	}
	s.index = make(map[string]int, len(members))
	for i, m := range members {
		s.index[m.ID.Member] = i
	}
}

// Members returns the ordered member schemas of a structure, union, list,
// set, map, or operation shape.
func (s *Schema) Members() []*Schema {
	return s.self().members
}

// Member returns the member schema with the given name, and whether it
// exists. Lookup is O(1).
func (s *Schema) Member(name string) (*Schema, bool) {
	self := s.self()
	i, ok := self.index[name]
	if !ok {
		return nil, false
	}
	return self.members[i], true
}

// MemberIndex returns the stable ordinal position of the named member, or -1
// if there is no such member. Generated code dispatches on this integer
// instead of the member name on the serialize/deserialize hot path.
func (s *Schema) MemberIndex(name string) int {
	self := s.self()
	i, ok := self.index[name]
	if !ok {
		return -1
	}
	return i
}

// NewMember creates a member schema from a target schema, overriding traits.
//
// Traits provided for the member override any traits on the target when
// there's a collision.
func NewMember(name string, target *Schema, traits ...Trait) *Schema {
	m := &Schema{
		ID:     ShapeID{Member: name},
		Type:   target.Type,
		Traits: mergeTraits(target.Traits, traits),
	}
	if target.deferred != nil && len(target.members) == 0 {
		m.deferred = target
	} else {
		m.members = target.members
		m.index = target.index
	}
	return m
}

func traitMap(traits []Trait) map[string]Trait {
	if len(traits) == 0 {
		return nil
	}
	m := make(map[string]Trait, len(traits))
	for _, t := range traits {
		m[t.TraitID()] = t
	}
	return m
}

func mergeTraits(base map[string]Trait, overrides []Trait) map[string]Trait {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	m := make(map[string]Trait, len(base)+len(overrides))
	for k, v := range base {
		m[k] = v
	}
	for _, t := range overrides {
		m[t.TraitID()] = t
	}
	return m
}

// SchemaTrait returns the named trait on the schema if it exists.
func SchemaTrait[T Trait](s *Schema) (T, bool) {
	var trait T

	self := s.self()
	opaque, ok := self.Traits[trait.TraitID()]
	if !ok {
		return trait, false
	}

	tt, ok := opaque.(T)
	return tt, ok
}

// HasTrait reports whether the schema carries a trait with the given ID,
// without needing the concrete Go type.
func (s *Schema) HasTrait(id string) bool {
	_, ok := s.self().Traits[id]
	return ok
}
