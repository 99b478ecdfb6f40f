// Package nested is the hierarchical selection engine: a registry plus
// parent/child adjacency maps, a per-node tri-state, and a pluggable
// adapter that decides how selecting one node affects the rest of the tree
// and what the public selected-value list is.
package nested

import (
	"log/slog"

	"github.com/grove-ui/grove/core/registry"
)

// Options configure an engine at construction time.
type Options struct {
	// Adapter defines propagation and output projection. Defaults to the
	// classic bidirectional tri-state adapter.
	Adapter Adapter
	// Mandatory refuses to unselect the last node the adapter reports as
	// selected.
	Mandatory bool
	// Logger receives structural warnings (unknown parent at registration).
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine tracks a forest of tickets and their tri-state selection. All
// derived values (states, roots, selected ids) are computed from the
// registry, the adjacency maps, and the state map; nothing is patched
// incrementally.
type Engine struct {
	reg       *registry.Registry
	tree      *Tree
	states    map[string]State
	adapter   Adapter
	mandatory bool
	log       *slog.Logger
}

func New(reg *registry.Registry, opts Options) *Engine {
	if opts.Adapter == nil {
		opts.Adapter = Classic()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		reg:       reg,
		tree:      newTree(),
		states:    make(map[string]State),
		adapter:   opts.Adapter,
		mandatory: opts.Mandatory,
		log:       opts.Logger,
	}
}

func (e *Engine) Registry() *registry.Registry { return e.reg }

func (e *Engine) ctx() Context {
	return Context{
		Tree:  e.tree,
		Roots: e.Roots,
		Disabled: func(id string) bool {
			t, ok := e.reg.Get(id)
			return !ok || t.Disabled
		},
	}
}

// Register adds a node. A declared parent must already be registered;
// otherwise a warning is logged and the node becomes a root. The returned
// disposer unregisters the node, orphaning its children.
func (e *Engine) Register(t registry.Ticket) (*registry.Ticket, func()) {
	if t.Parent != "" && !e.reg.Has(t.Parent) {
		e.log.Warn("unknown parent, registering node as root", "id", t.ID, "parent", t.Parent)
		t.Parent = ""
	}
	if e.reg.Has(t.ID) {
		existing, _ := e.reg.Get(t.ID)
		return existing, func() {}
	}
	stored, _ := e.reg.Register(t)
	e.tree.link(stored.ID, stored.Parent)
	if stored.Parent != "" {
		// the new off child may invalidate stored ancestor summaries
		e.rebalance()
	}
	id := stored.ID
	return stored, func() { e.Unregister(id) }
}

// Onboard registers a batch of nodes in order, so parents can precede
// their children within one call.
func (e *Engine) Onboard(tickets []registry.Ticket) []*registry.Ticket {
	out := make([]*registry.Ticket, 0, len(tickets))
	for _, t := range tickets {
		stored, _ := e.Register(t)
		out = append(out, stored)
	}
	return out
}

// Unregister removes the node and orphans its children: their parent
// reference is cleared and they become roots. Unknown ids are a no-op.
func (e *Engine) Unregister(id string) {
	if !e.reg.Has(id) {
		return
	}
	e.tree.orphan(id)
	e.tree.unlink(id)
	e.reg.Unregister(id)
	delete(e.states, id)
	e.rebalance()
}

// UnregisterSubtree removes the node and every descendant.
func (e *Engine) UnregisterSubtree(id string) {
	if !e.reg.Has(id) {
		return
	}
	for _, desc := range e.tree.Descendants(id) {
		e.tree.unlink(desc)
		e.reg.Unregister(desc)
		delete(e.states, desc)
	}
	e.tree.unlink(id)
	e.reg.Unregister(id)
	delete(e.states, id)
	e.rebalance()
}

// Offboard removes a batch of nodes, cascading into subtrees when asked.
func (e *Engine) Offboard(ids []string, cascade bool) {
	for _, id := range ids {
		if cascade {
			e.UnregisterSubtree(id)
		} else {
			e.Unregister(id)
		}
	}
}

// rebalance lets summary-deriving adapters recompute internal-node states
// after a structural mutation.
func (e *Engine) rebalance() {
	if r, ok := e.adapter.(Rebalancer); ok {
		e.states = r.Rebalance(e.states, e.ctx())
	}
}

func (e *Engine) setValue(id string, on bool) {
	t, ok := e.reg.Get(id)
	if !ok || t.Disabled {
		return
	}
	next := e.adapter.Propagate(e.states, id, on, e.ctx())
	if !on && e.mandatory &&
		len(e.adapter.Project(next, e.ctx())) == 0 &&
		len(e.adapter.Project(e.states, e.ctx())) > 0 {
		return
	}
	e.states = next
}

// Select turns the given nodes on, Unselect turns them off, Toggle flips
// them. What "on" means for the rest of the tree is the adapter's call.
func (e *Engine) Select(ids ...string) {
	for _, id := range ids {
		e.setValue(id, true)
	}
}

func (e *Engine) Unselect(ids ...string) {
	for _, id := range ids {
		e.setValue(id, false)
	}
}

func (e *Engine) Toggle(ids ...string) {
	for _, id := range ids {
		e.setValue(id, e.states[id] != On)
	}
}

// leaves returns the selectable leaves (non-disabled, no children) in
// registry order. Bulk operations act on exactly this set.
func (e *Engine) leaves() []string {
	var out []string
	for t := range e.reg.Values() {
		if !t.Disabled && !e.tree.HasChildren(t.ID) {
			out = append(out, t.ID)
		}
	}
	return out
}

// SelectAll selects every selectable leaf.
func (e *Engine) SelectAll() {
	for _, id := range e.leaves() {
		e.setValue(id, true)
	}
}

// UnselectAll unselects every selectable leaf. With Mandatory set the last
// reported selection survives.
func (e *Engine) UnselectAll() {
	for _, id := range e.leaves() {
		e.setValue(id, false)
	}
}

// ToggleAll unselects every leaf when all are selected, otherwise selects
// them all.
func (e *Engine) ToggleAll() {
	if e.IsAllSelected() {
		e.UnselectAll()
	} else {
		e.SelectAll()
	}
}

// State returns the node's tri-state value. Unknown ids read as off.
func (e *Engine) State(id string) State { return e.states[id] }

func (e *Engine) IsSelected(id string) bool { return e.states[id] == On }

// SelectedIDs is the adapter's projection of the current tri-state map.
func (e *Engine) SelectedIDs() []string {
	return e.adapter.Project(e.states, e.ctx())
}

// SelectedValues returns the payloads behind SelectedIDs.
func (e *Engine) SelectedValues() []any {
	ids := e.SelectedIDs()
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		if t, ok := e.reg.Get(id); ok {
			out = append(out, t.Value)
		}
	}
	return out
}

// Roots returns the root ids in registry order.
func (e *Engine) Roots() []string {
	var out []string
	for t := range e.reg.Values() {
		if e.tree.IsRoot(t.ID) {
			out = append(out, t.ID)
		}
	}
	return out
}

func (e *Engine) IsLeaf(id string) bool {
	return e.reg.Has(id) && !e.tree.HasChildren(id)
}

func (e *Engine) IsRoot(id string) bool {
	return e.reg.Has(id) && e.tree.IsRoot(id)
}

// Path returns root..id; Ancestors returns the parent chain nearest first;
// Descendants returns the subtree below id in preorder.
func (e *Engine) Path(id string) []string {
	if !e.reg.Has(id) {
		return nil
	}
	return e.tree.Path(id)
}

// Children returns the ordered child ids of id.
func (e *Engine) Children(id string) []string {
	if !e.reg.Has(id) {
		return nil
	}
	return e.tree.Children(id)
}

func (e *Engine) Ancestors(id string) []string {
	if !e.reg.Has(id) {
		return nil
	}
	return e.tree.Ancestors(id)
}

func (e *Engine) Descendants(id string) []string {
	if !e.reg.Has(id) {
		return nil
	}
	return e.tree.Descendants(id)
}

func (e *Engine) IsNoneSelected() bool { return len(e.SelectedIDs()) == 0 }

// IsAllSelected reports whether every selectable leaf is on.
func (e *Engine) IsAllSelected() bool {
	leaves := e.leaves()
	if len(leaves) == 0 {
		return false
	}
	for _, id := range leaves {
		if e.states[id] != On {
			return false
		}
	}
	return true
}

// IsIndeterminate reports whether any node is partially selected.
func (e *Engine) IsIndeterminate() bool {
	for _, s := range e.states {
		if s == Indeterminate {
			return true
		}
	}
	return false
}

// Reset clears the tri-state map. Registered nodes and structure survive.
func (e *Engine) Reset() { clear(e.states) }
