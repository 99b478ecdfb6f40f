// Package registry provides the ordered entity collection every selection
// engine in grove builds on: tickets keyed by id, with a maintained
// id<->index mapping and scoped disposers for automatic cleanup.
package registry

import (
	"iter"
	"slices"

	"github.com/google/uuid"
)

// Ticket is the unit of registration: a stable id, an opaque payload, a
// disabled flag, and (for hierarchical engines) the id of its parent. The
// registry owns the ticket's identity lifecycle; engines layered on top
// derive state from it but never mutate it.
type Ticket struct {
	ID       string
	Value    any
	Disabled bool
	Parent   string
}

// Registry is an insertion-ordered collection of tickets. Ordinal indexes
// reflect the position among currently registered tickets at read time, so
// unregistering shifts subsequent ordinals.
type Registry struct {
	order      []string
	items      map[string]*Ticket
	index      map[string]int
	indexDirty bool
}

func New() *Registry {
	return &Registry{
		items: make(map[string]*Ticket),
		index: make(map[string]int),
	}
}

// Register inserts the ticket and returns the stored record plus a disposer
// that unregisters it. An empty id gets a generated one. Registering an id
// that already exists mutates nothing: the existing ticket and a no-op
// disposer are returned.
func (r *Registry) Register(t Ticket) (*Ticket, func()) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if existing, ok := r.items[t.ID]; ok {
		return existing, func() {}
	}
	stored := &Ticket{ID: t.ID, Value: t.Value, Disabled: t.Disabled, Parent: t.Parent}
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.indexDirty = true
	id := stored.ID
	return stored, func() { r.Unregister(id) }
}

// Onboard registers a batch of tickets in order.
func (r *Registry) Onboard(tickets []Ticket) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		stored, _ := r.Register(t)
		out = append(out, stored)
	}
	return out
}

// Unregister removes the ticket. Unknown ids are a no-op.
func (r *Registry) Unregister(id string) {
	if _, ok := r.items[id]; !ok {
		return
	}
	delete(r.items, id)
	if pos := slices.Index(r.order, id); pos >= 0 {
		r.order = slices.Delete(r.order, pos, pos+1)
	}
	r.indexDirty = true
}

// Offboard removes a batch of tickets.
func (r *Registry) Offboard(ids []string) {
	for _, id := range ids {
		r.Unregister(id)
	}
}

func (r *Registry) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

func (r *Registry) Get(id string) (*Ticket, bool) {
	t, ok := r.items[id]
	return t, ok
}

func (r *Registry) Size() int { return len(r.order) }

// IDs returns the registered ids in insertion order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Lookup resolves an ordinal index to an id.
func (r *Registry) Lookup(index int) (string, bool) {
	if index < 0 || index >= len(r.order) {
		return "", false
	}
	return r.order[index], true
}

// IndexOf returns the ordinal index of id, or -1 when absent. The reverse
// map is rebuilt lazily after order-affecting mutations.
func (r *Registry) IndexOf(id string) int {
	if r.indexDirty {
		r.index = make(map[string]int, len(r.order))
		for i, existing := range r.order {
			r.index[existing] = i
		}
		r.indexDirty = false
	}
	if pos, ok := r.index[id]; ok {
		return pos
	}
	return -1
}

// Values yields tickets in current order. The sequence is restartable: each
// range starts from the beginning of the current order.
func (r *Registry) Values() iter.Seq[*Ticket] {
	return func(yield func(*Ticket) bool) {
		for _, id := range r.order {
			if t, ok := r.items[id]; ok {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Reset removes every ticket.
func (r *Registry) Reset() {
	r.order = r.order[:0]
	clear(r.items)
	clear(r.index)
	r.indexDirty = false
}
