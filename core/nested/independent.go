package nested

import "maps"

// Independent returns the no-propagation adapter: each node's state is set
// directly and neighbors are untouched.
func Independent() Adapter { return independentAdapter{} }

type independentAdapter struct{}

func (independentAdapter) Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State {
	next := maps.Clone(states)
	if ctx.Disabled(id) {
		return next
	}
	if on {
		next[id] = On
	} else {
		delete(next, id)
	}
	return next
}

func (independentAdapter) Project(states map[string]State, ctx Context) []string {
	return preorder(ctx, func(id string) bool { return states[id] == On })
}

// SingleIndependent returns the independent adapter restricted to one
// selection: selecting a node clears all others first.
func SingleIndependent() Adapter { return singleIndependentAdapter{} }

type singleIndependentAdapter struct{}

func (singleIndependentAdapter) Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State {
	if ctx.Disabled(id) {
		return maps.Clone(states)
	}
	if on {
		return map[string]State{id: On}
	}
	next := maps.Clone(states)
	delete(next, id)
	return next
}

func (singleIndependentAdapter) Project(states map[string]State, ctx Context) []string {
	return preorder(ctx, func(id string) bool { return states[id] == On })
}
