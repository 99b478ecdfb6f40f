package nested

// State is the tri-state selection value of a node.
type State uint8

const (
	Off State = iota
	On
	Indeterminate
)

func (s State) String() string {
	switch s {
	case On:
		return "on"
	case Indeterminate:
		return "indeterminate"
	default:
		return "off"
	}
}

// Context gives adapters read access to the structure they propagate over.
// Roots yields root ids in registry order so projections are deterministic.
type Context struct {
	Tree     *Tree
	Roots    func() []string
	Disabled func(id string) bool
}

// Adapter is a pure propagation strategy. Propagate returns the complete
// new tri-state map after setting id to on/off; it must not mutate the
// input map. Project turns the internal tri-state map into the public
// selected-id list.
type Adapter interface {
	Propagate(states map[string]State, id string, on bool, ctx Context) map[string]State
	Project(states map[string]State, ctx Context) []string
}

// Rebalancer is implemented by adapters whose internal-node states are
// derived from their children. The engine calls it after structural
// mutations (unregistration, re-rooting) so summaries stay consistent.
type Rebalancer interface {
	Rebalance(states map[string]State, ctx Context) map[string]State
}

// AdapterFor resolves an adapter by name. The empty name means classic.
func AdapterFor(name string) (Adapter, bool) {
	switch name {
	case "", "classic":
		return Classic(), true
	case "independent":
		return Independent(), true
	case "single-independent":
		return SingleIndependent(), true
	case "leaf":
		return Leaf(), true
	case "single-leaf":
		return SingleLeaf(), true
	case "trunk":
		return Trunk(), true
	default:
		return nil, false
	}
}

// preorder walks the forest from the roots and collects ids for which keep
// returns true.
func preorder(ctx Context, keep func(id string) bool) []string {
	var out []string
	var walk func(string)
	walk = func(id string) {
		if keep(id) {
			out = append(out, id)
		}
		for _, child := range ctx.Tree.Children(id) {
			walk(child)
		}
	}
	for _, root := range ctx.Roots() {
		walk(root)
	}
	return out
}
