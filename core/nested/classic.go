package nested

import "maps"

// Classic returns the bidirectional tri-state adapter: selecting a node
// selects its whole subtree, and every ancestor is recomputed as on (all
// selectable children on), indeterminate (some on), or off (none on).
func Classic() Adapter { return classicAdapter{} }

type classicAdapter struct{}

func (classicAdapter) Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State {
	next := maps.Clone(states)
	setSubtree(next, id, on, ctx)
	summarizeAncestors(next, id, ctx)
	return next
}

func (classicAdapter) Project(states map[string]State, ctx Context) []string {
	return preorder(ctx, func(id string) bool { return states[id] == On })
}

func (classicAdapter) Rebalance(states map[string]State, ctx Context) map[string]State {
	return rebalanceSummaries(states, ctx)
}

// setSubtree applies the desired value to id and all descendants, skipping
// disabled nodes and everything below them.
func setSubtree(states map[string]State, id string, on bool, ctx Context) {
	if ctx.Disabled(id) {
		return
	}
	if on {
		states[id] = On
	} else {
		delete(states, id)
	}
	for _, child := range ctx.Tree.Children(id) {
		setSubtree(states, child, on, ctx)
	}
}

// summarizeAncestors recomputes the state of every ancestor of id, nearest
// first, from its children's states.
func summarizeAncestors(states map[string]State, id string, ctx Context) {
	for _, ancestor := range ctx.Tree.Ancestors(id) {
		applySummary(states, ancestor, ctx)
	}
}

func applySummary(states map[string]State, id string, ctx Context) {
	switch summarize(states, id, ctx) {
	case Off:
		delete(states, id)
	case On:
		states[id] = On
	case Indeterminate:
		states[id] = Indeterminate
	}
}

// summarize derives a parent's state from its non-disabled children: on
// when all are on, indeterminate when some are on or partially on, off
// otherwise.
func summarize(states map[string]State, id string, ctx Context) State {
	total, on, partial := 0, 0, 0
	for _, child := range ctx.Tree.Children(id) {
		if ctx.Disabled(child) {
			continue
		}
		total++
		switch states[child] {
		case On:
			on++
		case Indeterminate:
			partial++
		}
	}
	switch {
	case total == 0:
		return states[id] // no selectable children: keep the stored state
	case on == total:
		return On
	case on > 0 || partial > 0:
		return Indeterminate
	default:
		return Off
	}
}

// rebalanceSummaries recomputes every internal node bottom-up. Used after
// structural mutations, where stored summaries may refer to nodes that no
// longer exist.
func rebalanceSummaries(states map[string]State, ctx Context) map[string]State {
	next := maps.Clone(states)
	var walk func(string)
	walk = func(id string) {
		for _, child := range ctx.Tree.Children(id) {
			walk(child)
		}
		if ctx.Tree.HasChildren(id) {
			applySummary(next, id, ctx)
		}
	}
	for _, root := range ctx.Roots() {
		walk(root)
	}
	return next
}
