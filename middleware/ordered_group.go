package middleware

import "fmt"

// RelativePosition provides specifying the relative position of a middleware
// in an ordered group.
type RelativePosition int

// Relative position for middleware in steps.
const (
	After RelativePosition = iota
	Before
)

type ider interface {
	ID() string
}

// orderedIDs provides an ordered collection of items with relative ordering
// by name.
type orderedIDs struct {
	order relativeOrder
	items map[string]ider

	unamedCounter int
}

func newOrderedIDs() *orderedIDs {
	return &orderedIDs{
		items: map[string]ider{},
	}
}

// Add injects the item to the relative position of the item group. Returns an
// error if the item already exists. If id names an existing slot reserved by
// AddSlot/InsertSlot, the slot is filled in place instead of erroring.
func (g *orderedIDs) Add(m ider, pos RelativePosition) error {
	if len(m.ID()) == 0 {
		return fmt.Errorf("empty ID, ID must not be empty")
	}

	if filled, err := g.fillSlot(m); filled {
		return err
	}

	if err := g.order.Add(m.ID(), pos); err != nil {
		return err
	}

	g.items[m.ID()] = m
	return nil
}

// Insert injects the item relative to an existing item id.  Return error if
// the original item does not exist, or the item being added already exists,
// unless id names an existing slot, in which case the slot is filled.
func (g *orderedIDs) Insert(m ider, relativeTo string, pos RelativePosition) error {
	if len(m.ID()) == 0 {
		return fmt.Errorf("insert ID must not be empty")
	}
	if len(relativeTo) == 0 {
		return fmt.Errorf("relative to ID must not be empty")
	}

	if filled, err := g.fillSlot(m); filled {
		return err
	}

	if err := g.order.Insert(m.ID(), relativeTo, pos); err != nil {
		return err
	}

	g.items[m.ID()] = m
	return nil
}

// fillSlot fills an existing, unoccupied order entry (reserved by AddSlot or
// InsertSlot) with m, if one exists by that id. Returns filled=true when it
// handled the add; an id that is already occupied or is not a slot returns
// filled=false. err is always nil.
func (g *orderedIDs) fillSlot(m ider) (filled bool, err error) {
	if _, occupied := g.items[m.ID()]; occupied {
		return false, nil
	}
	if _, isSlot := g.order.has(m.ID()); !isSlot {
		return false, nil
	}
	g.items[m.ID()] = m
	return true, nil
}

// AddSlot reserves a named position in the order without an item to fill it.
// A later Add or Insert using the same id fills the reservation in place
// rather than appending a new order entry.
func (g *orderedIDs) AddSlot(id string, pos RelativePosition) error {
	if len(id) == 0 {
		return fmt.Errorf("empty ID, ID must not be empty")
	}
	return g.order.Add(id, pos)
}

// InsertSlot reserves a named position relative to an existing id or slot.
func (g *orderedIDs) InsertSlot(id, relativeTo string, pos RelativePosition) error {
	if len(id) == 0 {
		return fmt.Errorf("insert ID must not be empty")
	}
	if len(relativeTo) == 0 {
		return fmt.Errorf("relative to ID must not be empty")
	}
	return g.order.Insert(id, relativeTo, pos)
}

// Get returns the ider identified by id. If ider is not present, returns false
func (g *orderedIDs) Get(id string) (ider, bool) {
	v, ok := g.items[id]
	return v, ok
}

// Swap removes the item by id, replacing it with the new item. Returns error
// if the original item doesn't exist.
func (g *orderedIDs) Swap(id string, m ider) (ider, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("swap from ID must not be empty")
	}
	if len(m.ID()) == 0 {
		return nil, fmt.Errorf("swap to ID must not be empty")
	}

	if err := g.order.Swap(id, m.ID()); err != nil {
		return nil, err
	}

	removed := g.items[id]

	delete(g.items, id)
	g.items[m.ID()] = m

	return removed, nil
}

// Remove removes the item by id. Returns error if the item
// doesn't exist.
func (g *orderedIDs) Remove(id string) error {
	if len(id) == 0 {
		return fmt.Errorf("remove ID must not be empty")
	}

	if err := g.order.Remove(id); err != nil {
		return err
	}

	delete(g.items, id)
	return nil
}

func (g *orderedIDs) List() []string {
	items := g.order.List()
	order := make([]string, len(items))
	copy(order, items)

	return order
}

// Clear removes all entries.
func (g *orderedIDs) Clear() {
	g.order.Clear()
	g.items = map[string]ider{}
}

// GetOrder returns the item in the order it should be invoked in. Reserved
// slots (AddSlot/InsertSlot) that were never filled are skipped.
func (g *orderedIDs) GetOrder() []interface{} {
	order := g.order.List()
	ordered := make([]interface{}, 0, len(order))
	for i := 0; i < len(order); i++ {
		if item, ok := g.items[order[i]]; ok {
			ordered = append(ordered, item)
		}
	}

	return ordered
}

// relativeOrder provides ordering of item
type relativeOrder struct {
	order []string
}

// Add inserts a item into the order relative to the position provided.
func (s *relativeOrder) Add(id string, pos RelativePosition) error {
	if _, ok := s.has(id); ok {
		return fmt.Errorf("already exists, %v", id)
	}

	switch pos {
	case Before:
		return s.insert(0, id, Before)

	case After:
		s.order = append(s.order, id)

	default:
		return fmt.Errorf("invalid position, %v", int(pos))
	}

	return nil
}

// Insert injects a item before or after the relative item. Returns
// an error if the relative item does not exist.
func (s *relativeOrder) Insert(id, relativeTo string, pos RelativePosition) error {
	if _, ok := s.has(id); ok {
		return fmt.Errorf("already exists, %v", id)
	}

	i, ok := s.has(relativeTo)
	if !ok {
		return fmt.Errorf("not found, %v", relativeTo)
	}

	return s.insert(i, id, pos)
}

// Swap will replace the item id with the to item. Returns an
// error if the original item id does not exist. Allows swapping out a
// item for another item with the same id.
func (s *relativeOrder) Swap(id, to string) error {
	i, ok := s.has(id)
	if !ok {
		return fmt.Errorf("not found, %v", id)
	}

	if _, ok = s.has(to); ok && id != to {
		return fmt.Errorf("already exists, %v", to)
	}

	s.order[i] = to
	return nil
}

func (s *relativeOrder) Remove(id string) error {
	i, ok := s.has(id)
	if !ok {
		return fmt.Errorf("not found, %v", id)
	}

	s.order = append(s.order[:i], s.order[i+1:]...)
	return nil
}

func (s *relativeOrder) List() []string {
	return s.order
}

func (s *relativeOrder) Clear() {
	s.order = s.order[0:0]
}

func (s *relativeOrder) insert(i int, id string, pos RelativePosition) error {
	switch pos {
	case Before:
		s.order = append(s.order, "")
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = id

	case After:
		if i == len(s.order)-1 {
			s.order = append(s.order, id)
		} else {
			s.order = append(s.order[:i+1], append([]string{id}, s.order[i+1:]...)...)
		}

	default:
		return fmt.Errorf("invalid position, %v", int(pos))
	}

	return nil
}

func (s *relativeOrder) has(id string) (i int, found bool) {
	for i := 0; i < len(s.order); i++ {
		if s.order[i] == id {
			return i, true
		}
	}
	return 0, false
}

// namedMiddleware is satisfied by each step's Middleware type (e.g.
// InitializeMiddleware), all of which expose Name() rather than ID(): a
// step's Add/Insert/Swap take this narrower interface so callers never
// need to think about the orderedIDs bookkeeping.
type namedMiddleware interface {
	Name() string
}

// orderedGroup stores a step's middleware alongside their relative
// ordering, keyed by Name(). Unnamed middleware (Name() == "") are
// assigned a unique, stable synthetic name so they can still be ordered
// and removed like any other entry.
type orderedGroup struct {
	ids orderedIDs
}

// namedIDer adapts a namedMiddleware to the ider interface orderedIDs
// operates on.
type namedIDer struct {
	name string
	namedMiddleware
}

func (n namedIDer) ID() string { return n.name }

func (g *orderedGroup) resolveName(m namedMiddleware) string {
	if name := m.Name(); name != "" {
		return name
	}
	g.ids.unamedCounter++
	return fmt.Sprintf("unnamed middleware %d", g.ids.unamedCounter)
}

// Add injects m at the given relative position.
func (g *orderedGroup) Add(m namedMiddleware, pos RelativePosition) error {
	if g.ids.items == nil {
		g.ids.items = map[string]ider{}
	}
	return g.ids.Add(namedIDer{name: g.resolveName(m), namedMiddleware: m}, pos)
}

// Insert injects m relative to the middleware named relativeTo.
func (g *orderedGroup) Insert(m namedMiddleware, relativeTo string, pos RelativePosition) error {
	if g.ids.items == nil {
		g.ids.items = map[string]ider{}
	}
	return g.ids.Insert(namedIDer{name: g.resolveName(m), namedMiddleware: m}, relativeTo, pos)
}

// Swap replaces the middleware named id with m, returning the replaced
// middleware.
func (g *orderedGroup) Swap(id string, m namedMiddleware) (namedMiddleware, error) {
	if g.ids.items == nil {
		g.ids.items = map[string]ider{}
	}
	old, err := g.ids.Swap(id, namedIDer{name: m.Name(), namedMiddleware: m})
	if err != nil {
		return nil, err
	}
	return old.(namedIDer).namedMiddleware, nil
}

// Get returns the middleware named id, if present.
func (g *orderedGroup) Get(id string) (namedMiddleware, bool) {
	v, ok := g.ids.Get(id)
	if !ok {
		return nil, false
	}
	return v.(namedIDer).namedMiddleware, true
}

// Remove removes the middleware named id, returning the removed middleware.
func (g *orderedGroup) Remove(id string) (namedMiddleware, error) {
	removed, ok := g.ids.Get(id)
	if !ok {
		return nil, fmt.Errorf("not found, %v", id)
	}
	if err := g.ids.Remove(id); err != nil {
		return nil, err
	}
	return removed.(namedIDer).namedMiddleware, nil
}

// List returns the names of the group's middleware in invocation order.
func (g *orderedGroup) List() []string {
	return g.ids.List()
}

// Clear removes all entries from the group.
func (g *orderedGroup) Clear() {
	g.ids.Clear()
}

// GetOrder returns the group's middleware in invocation order, each
// unwrapped back to its original namedMiddleware value.
func (g *orderedGroup) GetOrder() []interface{} {
	wrapped := g.ids.GetOrder()
	out := make([]interface{}, len(wrapped))
	for i, w := range wrapped {
		out[i] = w.(namedIDer).namedMiddleware
	}
	return out
}
