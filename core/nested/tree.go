package nested

import "slices"

// Tree models the hierarchy as two adjacency maps keyed by id. Nodes never
// hold references to each other, so the structure stays serializable and
// cycle-free. A node's parent is fixed at registration time.
type Tree struct {
	parents  map[string]string
	children map[string][]string
}

func newTree() *Tree {
	return &Tree{
		parents:  make(map[string]string),
		children: make(map[string][]string),
	}
}

func (t *Tree) link(id, parent string) {
	if parent == "" {
		return
	}
	t.parents[id] = parent
	t.children[parent] = append(t.children[parent], id)
}

// unlink detaches id from its parent. Its own children keep their links.
func (t *Tree) unlink(id string) {
	parent, ok := t.parents[id]
	if !ok {
		return
	}
	delete(t.parents, id)
	siblings := t.children[parent]
	if pos := slices.Index(siblings, id); pos >= 0 {
		t.children[parent] = slices.Delete(siblings, pos, pos+1)
	}
	if len(t.children[parent]) == 0 {
		delete(t.children, parent)
	}
}

// orphan clears the parent reference of every child of id, turning them
// into roots, then removes id's own child list.
func (t *Tree) orphan(id string) {
	for _, child := range t.children[id] {
		delete(t.parents, child)
	}
	delete(t.children, id)
}

func (t *Tree) Parent(id string) (string, bool) {
	parent, ok := t.parents[id]
	return parent, ok
}

// Children returns the ordered child list of id.
func (t *Tree) Children(id string) []string {
	return slices.Clone(t.children[id])
}

func (t *Tree) HasChildren(id string) bool { return len(t.children[id]) > 0 }

func (t *Tree) IsRoot(id string) bool {
	_, ok := t.parents[id]
	return !ok
}

// Ancestors walks the parent chain from id's parent to the root, nearest
// first. O(depth).
func (t *Tree) Ancestors(id string) []string {
	var out []string
	cur := id
	for {
		parent, ok := t.parents[cur]
		if !ok {
			return out
		}
		out = append(out, parent)
		cur = parent
	}
}

// Path returns the ids from the root down to id, inclusive.
func (t *Tree) Path(id string) []string {
	ancestors := t.Ancestors(id)
	out := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		out = append(out, ancestors[i])
	}
	return append(out, id)
}

// Descendants returns every node below id in depth-first preorder,
// excluding id itself. O(subtree size).
func (t *Tree) Descendants(id string) []string {
	var out []string
	var walk func(string)
	walk = func(cur string) {
		for _, child := range t.children[cur] {
			out = append(out, child)
			walk(child)
		}
	}
	walk(id)
	return out
}

func (t *Tree) reset() {
	clear(t.parents)
	clear(t.children)
}
