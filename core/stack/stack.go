// Package stack orders overlays (dialogs, menus, sheets) by selection
// recency. Z-indexes are a pure function of the currently-active set, so
// activation order, not ticket identity, decides stacking: re-activating a
// previously closed overlay puts it back on top with a fresh z-index.
package stack

import (
	"github.com/grove-ui/grove/core/registry"
	"github.com/grove-ui/grove/core/selection"
)

// Defaults match the usual web stacking context conventions.
const (
	DefaultBaseZIndex = 2000
	DefaultIncrement  = 10
)

// Entry describes one overlay. OnDismiss runs when the entry is dismissed;
// Blocking entries ignore dismissal entirely (modal behavior).
type Entry struct {
	ID        string
	Value     any
	OnDismiss func()
	Blocking  bool
}

// Options configure the z-index arithmetic.
type Options struct {
	BaseZIndex int
	Increment  int
}

// Stack is a group selection whose selected set is the active overlays.
type Stack struct {
	sel       *selection.Selection
	entries   map[string]Entry
	base      int
	increment int
}

func New(opts Options) *Stack {
	if opts.BaseZIndex == 0 {
		opts.BaseZIndex = DefaultBaseZIndex
	}
	if opts.Increment == 0 {
		opts.Increment = DefaultIncrement
	}
	return &Stack{
		sel:       selection.NewGroup(registry.New(), false),
		entries:   make(map[string]Entry),
		base:      opts.BaseZIndex,
		increment: opts.Increment,
	}
}

// Register adds an overlay and returns its id plus a disposer. An empty
// Entry.ID gets a generated one.
func (s *Stack) Register(e Entry) (string, func()) {
	stored, dispose := s.sel.Register(registry.Ticket{ID: e.ID, Value: e.Value})
	e.ID = stored.ID
	if _, ok := s.entries[stored.ID]; !ok {
		s.entries[stored.ID] = e
	}
	id := stored.ID
	return id, func() {
		dispose()
		delete(s.entries, id)
	}
}

func (s *Stack) Unregister(id string) {
	s.sel.Unregister(id)
	delete(s.entries, id)
}

// Select activates an overlay, placing it on top. Unselect deactivates it;
// the z-indexes of the overlays above it shift down.
func (s *Stack) Select(id string)   { s.sel.Select(id) }
func (s *Stack) Unselect(id string) { s.sel.Unselect(id) }
func (s *Stack) Toggle(id string)   { s.sel.Toggle(id) }

func (s *Stack) IsActive(id string) bool { return s.sel.IsSelected(id) }

// ActiveIDs returns active overlay ids from bottom to top.
func (s *Stack) ActiveIDs() []string { return s.sel.SelectedIDs() }

// ZIndex derives the overlay's z-index from its position among the active
// set. Inactive and unknown ids report ok=false.
func (s *Stack) ZIndex(id string) (int, bool) {
	for pos, active := range s.sel.SelectedIDs() {
		if active == id {
			return s.base + s.increment*pos, true
		}
	}
	return 0, false
}

// Top returns the most recently activated overlay.
func (s *Stack) Top() (string, bool) {
	ids := s.sel.SelectedIDs()
	if len(ids) == 0 {
		return "", false
	}
	return ids[len(ids)-1], true
}

// IsTop reports whether id is the globally topmost active overlay.
func (s *Stack) IsTop(id string) bool {
	top, ok := s.Top()
	return ok && top == id
}

// Dismiss fires the OnDismiss callback of the given overlay, or of the
// topmost one when no id is given. Blocking overlays swallow the dismissal.
// It reports whether a callback ran; deactivation is the callback owner's
// decision, the stack never deactivates on its own.
func (s *Stack) Dismiss(ids ...string) bool {
	var id string
	if len(ids) > 0 {
		id = ids[0]
	} else {
		top, ok := s.Top()
		if !ok {
			return false
		}
		id = top
	}
	entry, ok := s.entries[id]
	if !ok || !s.IsActive(id) || entry.Blocking {
		return false
	}
	if entry.OnDismiss != nil {
		entry.OnDismiss()
	}
	return true
}

func (s *Stack) Size() int { return s.sel.Registry().Size() }

// Reset deactivates every overlay without unregistering anything.
func (s *Stack) Reset() { s.sel.Reset() }
