// Package selection layers a selected-id set over a registry: disabled and
// unregistered ids are excluded, single mode keeps at most one id selected,
// and mandatory mode keeps the set non-empty while selectable tickets exist.
package selection

import (
	"slices"

	"github.com/grove-ui/grove/core/registry"
)

// Options configure a selection at construction time.
type Options struct {
	// Single keeps at most one id selected; selecting a new id atomically
	// replaces the previous one.
	Single bool
	// Mandatory re-selects the first selectable ticket whenever a mutation
	// would otherwise empty the set.
	Mandatory bool
}

// Selection tracks which registered ids are selected, in selection recency
// order. All mutations are silent no-ops for unknown or disabled targets.
type Selection struct {
	reg      *registry.Registry
	opts     Options
	selected map[string]struct{}
	order    []string // recency: oldest first
}

func New(reg *registry.Registry, opts Options) *Selection {
	return &Selection{
		reg:      reg,
		opts:     opts,
		selected: make(map[string]struct{}),
	}
}

// NewSingle returns a single-mode selection over reg.
func NewSingle(reg *registry.Registry, mandatory bool) *Selection {
	return New(reg, Options{Single: true, Mandatory: mandatory})
}

// NewGroup returns a multi-mode selection over reg.
func NewGroup(reg *registry.Registry, mandatory bool) *Selection {
	return New(reg, Options{Mandatory: mandatory})
}

func (s *Selection) Registry() *registry.Registry { return s.reg }

// Register adds the ticket to the underlying registry and, in mandatory
// mode, seeds the selection if it is still empty.
func (s *Selection) Register(t registry.Ticket) (*registry.Ticket, func()) {
	stored, dispose := s.reg.Register(t)
	s.Mandate()
	id := stored.ID
	return stored, func() {
		dispose()
		s.drop(id)
	}
}

// Unregister removes the ticket from the registry and from the selection.
func (s *Selection) Unregister(id string) {
	s.reg.Unregister(id)
	s.drop(id)
}

func (s *Selection) drop(id string) {
	if _, ok := s.selected[id]; !ok {
		return
	}
	delete(s.selected, id)
	if pos := slices.Index(s.order, id); pos >= 0 {
		s.order = slices.Delete(s.order, pos, pos+1)
	}
	s.Mandate()
}

func (s *Selection) selectable(id string) bool {
	t, ok := s.reg.Get(id)
	return ok && !t.Disabled
}

// Select adds the given ids. Unknown, disabled, and already-selected ids
// are skipped; re-selecting does not bump recency.
func (s *Selection) Select(ids ...string) {
	for _, id := range ids {
		if !s.selectable(id) {
			continue
		}
		if _, ok := s.selected[id]; ok {
			continue
		}
		if s.opts.Single && len(s.order) > 0 {
			clear(s.selected)
			s.order = s.order[:0]
		}
		s.selected[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Unselect removes the given ids, then restores the mandatory invariant.
func (s *Selection) Unselect(ids ...string) {
	changed := false
	for _, id := range ids {
		if _, ok := s.selected[id]; !ok {
			continue
		}
		delete(s.selected, id)
		if pos := slices.Index(s.order, id); pos >= 0 {
			s.order = slices.Delete(s.order, pos, pos+1)
		}
		changed = true
	}
	if changed {
		s.Mandate()
	}
}

// Toggle flips each id between selected and unselected.
func (s *Selection) Toggle(ids ...string) {
	for _, id := range ids {
		if _, ok := s.selected[id]; ok {
			s.Unselect(id)
		} else {
			s.Select(id)
		}
	}
}

// SelectAll selects every non-disabled registered ticket, in registry
// order. Single-mode selections end up with the last selectable id.
func (s *Selection) SelectAll() {
	for t := range s.reg.Values() {
		if !t.Disabled {
			s.Select(t.ID)
		}
	}
}

// ToggleAll clears the selection when everything selectable is selected,
// otherwise selects everything selectable.
func (s *Selection) ToggleAll() {
	if s.IsAllSelected() {
		s.UnselectAll()
	} else {
		s.SelectAll()
	}
}

// UnselectAll clears the selection; in mandatory mode exactly one id
// remains selected while a selectable ticket exists.
func (s *Selection) UnselectAll() {
	if len(s.order) == 0 {
		return
	}
	clear(s.selected)
	s.order = s.order[:0]
	s.Mandate()
}

// Mandate enforces the mandatory invariant: when configured mandatory and
// the set is empty, the first selectable ticket by index is selected.
func (s *Selection) Mandate() {
	if !s.opts.Mandatory || len(s.order) > 0 {
		return
	}
	for t := range s.reg.Values() {
		if !t.Disabled {
			s.selected[t.ID] = struct{}{}
			s.order = append(s.order, t.ID)
			return
		}
	}
}

func (s *Selection) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns selected ids in recency order, oldest first.
func (s *Selection) SelectedIDs() []string {
	return slices.Clone(s.order)
}

// SelectedIndexes derives the registry ordinals of the selected ids, in
// registry order.
func (s *Selection) SelectedIndexes() []int {
	out := make([]int, 0, len(s.order))
	for i, n := 0, s.reg.Size(); i < n; i++ {
		id, _ := s.reg.Lookup(i)
		if _, ok := s.selected[id]; ok {
			out = append(out, i)
		}
	}
	return out
}

// SelectedValues returns the payloads of the selected tickets in recency
// order.
func (s *Selection) SelectedValues() []any {
	out := make([]any, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.reg.Get(id); ok {
			out = append(out, t.Value)
		}
	}
	return out
}

func (s *Selection) Size() int { return len(s.order) }

func (s *Selection) IsNoneSelected() bool { return len(s.order) == 0 }

// IsAllSelected reports whether every non-disabled registered ticket is
// selected. Empty registries report false.
func (s *Selection) IsAllSelected() bool {
	any := false
	for t := range s.reg.Values() {
		if t.Disabled {
			continue
		}
		any = true
		if _, ok := s.selected[t.ID]; !ok {
			return false
		}
	}
	return any
}

// Reset clears the selection without touching the registry.
func (s *Selection) Reset() {
	clear(s.selected)
	s.order = s.order[:0]
}
