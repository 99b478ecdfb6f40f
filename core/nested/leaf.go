package nested

import "maps"

// Leaf returns the leaf-only adapter: only nodes without children accept
// direct selection; selecting a branch node is a no-op.
func Leaf() Adapter { return leafAdapter{} }

type leafAdapter struct{}

func (leafAdapter) Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State {
	if ctx.Tree.HasChildren(id) {
		return maps.Clone(states)
	}
	return Independent().Propagate(states, id, on, ctx)
}

func (leafAdapter) Project(states map[string]State, ctx Context) []string {
	return preorder(ctx, func(id string) bool {
		return states[id] == On && !ctx.Tree.HasChildren(id)
	})
}

// SingleLeaf returns the leaf adapter restricted to one selected leaf.
func SingleLeaf() Adapter { return singleLeafAdapter{} }

type singleLeafAdapter struct{}

func (singleLeafAdapter) Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State {
	if ctx.Tree.HasChildren(id) {
		return maps.Clone(states)
	}
	return SingleIndependent().Propagate(states, id, on, ctx)
}

func (singleLeafAdapter) Project(states map[string]State, ctx Context) []string {
	return Leaf().Project(states, ctx)
}
