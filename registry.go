package relay

import "fmt"

// SchemaRegistry holds every schema known to one generated service package,
// keyed by shape id. It supports the two-phase build a model loader needs
// for recursive shapes: Register each shape as it's decoded, then Freeze
// once every deferred member target has a real schema behind it.
//
// A SchemaRegistry is not safe for concurrent registration; it is safe for
// concurrent reads once Freeze has returned without error, matching the
// "immutable after freeze" sharing policy generated clients rely on.
type SchemaRegistry struct {
	byID   map[ShapeID]*Schema
	frozen bool
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{byID: make(map[ShapeID]*Schema)}
}

// Register adds a schema to the registry. Registering the same shape id
// twice is idempotent as long as the two Schema values describe the same
// shape (same Type and same trait ID set); registering a diverging
// definition under an id already present is a programmer error and panics,
// per the registry's fatal-on-divergence contract.
func (r *SchemaRegistry) Register(s *Schema) {
	if r.frozen {
		panic("relay: cannot register into a frozen schema registry")
	}
	existing, ok := r.byID[s.ID]
	if !ok {
		r.byID[s.ID] = s
		return
	}
	if !sameShape(existing, s) {
		panic(fmt.Sprintf("relay: conflicting registration for shape %s", s.ID))
	}
}

func sameShape(a, b *Schema) bool {
	if a.Type != b.Type {
		return false
	}
	if len(a.Traits) != len(b.Traits) {
		return false
	}
	for k := range a.Traits {
		if _, ok := b.Traits[k]; !ok {
			return false
		}
	}
	return true
}

// Lookup returns the schema registered under id, and whether it was found.
func (r *SchemaRegistry) Lookup(id ShapeID) (*Schema, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Freeze finalizes the registry: every deferred schema reachable from a
// registered shape must resolve to a concrete schema, or Freeze returns an
// error (the registry's "unresolved deferred target after freeze" fatal
// condition, surfaced as an error here rather than a panic since it
// reflects a bad model rather than a Go-level programmer mistake).
func (r *SchemaRegistry) Freeze() error {
	for id, s := range r.byID {
		if err := checkResolved(s, make(map[*Schema]bool)); err != nil {
			return fmt.Errorf("relay: schema %s: %w", id, err)
		}
	}
	r.frozen = true
	return nil
}

func checkResolved(s *Schema, seen map[*Schema]bool) error {
	if seen[s] {
		return nil
	}
	seen[s] = true

	if s.deferred == nil && s.members == nil && len(s.index) == 0 {
		// a bare deferred placeholder that was never resolved
		if s.ID == (ShapeID{}) && s.Type == 0 && s.Traits == nil {
			return fmt.Errorf("unresolved deferred schema")
		}
	}
	for _, m := range s.Members() {
		if m.deferred != nil {
			if err := checkResolved(m.deferred, seen); err != nil {
				return err
			}
			continue
		}
		if err := checkResolved(m, seen); err != nil {
			return err
		}
	}
	return nil
}
