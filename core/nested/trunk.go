package nested

// Trunk returns the summarizing adapter: propagation matches classic, but
// the output reports only the highest ancestor whose whole selectable
// subtree is on. A partially-selected subtree contributes its deepest
// fully-on nodes instead, so no output id is ever an ancestor of another.
// Disjoint fully-selected subtrees are reported independently even when
// they share an unselected ancestor.
func Trunk() Adapter { return trunkAdapter{} }

type trunkAdapter struct{}

func (trunkAdapter) Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State {
	return Classic().Propagate(states, id, on, ctx)
}

func (trunkAdapter) Project(states map[string]State, ctx Context) []string {
	var out []string
	var walk func(string)
	walk = func(id string) {
		switch states[id] {
		case On:
			// fully-on subtree: emit the trunk, never its descendants
			out = append(out, id)
		case Indeterminate:
			for _, child := range ctx.Tree.Children(id) {
				walk(child)
			}
		}
	}
	for _, root := range ctx.Roots() {
		walk(root)
	}
	return out
}

func (trunkAdapter) Rebalance(states map[string]State, ctx Context) map[string]State {
	return rebalanceSummaries(states, ctx)
}
