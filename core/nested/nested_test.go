package nested

import (
	"bytes"
	"log/slog"
	"slices"
	"testing"

	"github.com/grove-ui/grove/core/registry"
)

func build(t *testing.T, opts Options, tickets ...registry.Ticket) *Engine {
	t.Helper()
	e := New(registry.New(), opts)
	e.Onboard(tickets)
	return e
}

// r -> c1, c2
func smallTree(t *testing.T, opts Options) *Engine {
	t.Helper()
	return build(t, opts,
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "c1", Parent: "r"},
		registry.Ticket{ID: "c2", Parent: "r"},
	)
}

func TestClassicChildSelectionSummarizesAncestors(t *testing.T) {
	e := smallTree(t, Options{})
	e.Select("c1")
	if got := e.State("c1"); got != On {
		t.Fatalf("c1 state = %s, want on", got)
	}
	if got := e.State("c2"); got != Off {
		t.Fatalf("c2 state = %s, want off", got)
	}
	if got := e.State("r"); got != Indeterminate {
		t.Fatalf("r state = %s, want indeterminate", got)
	}
	e.Select("c2")
	if got := e.State("r"); got != On {
		t.Fatalf("r state after both children = %s, want on", got)
	}
}

func TestClassicRootSelectsEveryDescendant(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "a", Parent: "r"},
		registry.Ticket{ID: "a1", Parent: "a"},
		registry.Ticket{ID: "a2", Parent: "a"},
		registry.Ticket{ID: "b", Parent: "r"},
	)
	e.Select("r")
	for _, id := range []string{"r", "a", "a1", "a2", "b"} {
		if got := e.State(id); got != On {
			t.Fatalf("%s state = %s, want on", id, got)
		}
	}
	e.Unselect("a1")
	if got := e.State("a"); got != Indeterminate {
		t.Fatalf("a state = %s, want indeterminate", got)
	}
	if got := e.State("r"); got != Indeterminate {
		t.Fatalf("r state = %s, want indeterminate", got)
	}
}

func TestClassicSkipsDisabledSubtrees(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "ok", Parent: "r"},
		registry.Ticket{ID: "dead", Parent: "r", Disabled: true},
		registry.Ticket{ID: "under-dead", Parent: "dead"},
	)
	e.Select("r")
	if got := e.State("dead"); got != Off {
		t.Fatalf("disabled node must stay off, got %s", got)
	}
	if got := e.State("under-dead"); got != Off {
		t.Fatalf("nodes below a disabled node must stay off, got %s", got)
	}
	// r is on: all non-disabled children are on
	if got := e.State("r"); got != On {
		t.Fatalf("r state = %s, want on", got)
	}
}

func TestLeafAdapterIgnoresBranchSelection(t *testing.T) {
	e := build(t, Options{Adapter: Leaf()},
		registry.Ticket{ID: "folder"},
		registry.Ticket{ID: "f1", Parent: "folder"},
		registry.Ticket{ID: "f2", Parent: "folder"},
	)
	e.Select("folder")
	if got := e.State("folder"); got != Off {
		t.Fatalf("branch selection must be a no-op, got %s", got)
	}
	e.Select("f1", "f2")
	if e.State("f1") != On || e.State("f2") != On {
		t.Fatalf("leaf selection failed: f1=%s f2=%s", e.State("f1"), e.State("f2"))
	}
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"f1", "f2"}) {
		t.Fatalf("leaf projection = %v", got)
	}
}

func TestSingleLeafKeepsOneSelection(t *testing.T) {
	e := build(t, Options{Adapter: SingleLeaf()},
		registry.Ticket{ID: "folder"},
		registry.Ticket{ID: "f1", Parent: "folder"},
		registry.Ticket{ID: "f2", Parent: "folder"},
	)
	e.Select("f1")
	e.Select("f2")
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"f2"}) {
		t.Fatalf("single-leaf projection = %v", got)
	}
}

func TestIndependentDoesNotPropagate(t *testing.T) {
	e := smallTree(t, Options{Adapter: Independent()})
	e.Select("r")
	if e.State("c1") != Off || e.State("c2") != Off {
		t.Fatalf("independent must not touch children")
	}
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"r"}) {
		t.Fatalf("projection = %v", got)
	}
}

func TestSingleIndependentClearsOthers(t *testing.T) {
	e := smallTree(t, Options{Adapter: SingleIndependent()})
	e.Select("c1")
	e.Select("r")
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"r"}) {
		t.Fatalf("projection = %v", got)
	}
}

func TestTrunkReportsMinimalCoveringSet(t *testing.T) {
	e := build(t, Options{Adapter: Trunk()},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "a", Parent: "r"},
		registry.Ticket{ID: "a1", Parent: "a"},
		registry.Ticket{ID: "a2", Parent: "a"},
		registry.Ticket{ID: "b", Parent: "r"},
		registry.Ticket{ID: "b1", Parent: "b"},
		registry.Ticket{ID: "c", Parent: "r"},
	)
	e.Select("a")
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("fully-on subtree should report its trunk, got %v", got)
	}
	e.Select("b1")
	// b has exactly one child, so b is fully on too; c keeps r partial
	got := e.SelectedIDs()
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("disjoint trunks should be reported independently, got %v", got)
	}
	for _, id := range got {
		for _, other := range got {
			if id != other && slices.Contains(e.Descendants(id), other) {
				t.Fatalf("output %v contains an ancestor/descendant pair", got)
			}
		}
	}
	e.Select("r")
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"r"}) {
		t.Fatalf("fully-on forest should collapse to the root, got %v", got)
	}
}

func TestTrunkPartialSubtreeReportsDeepestFullNodes(t *testing.T) {
	e := build(t, Options{Adapter: Trunk()},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "a", Parent: "r"},
		registry.Ticket{ID: "a1", Parent: "a"},
		registry.Ticket{ID: "a2", Parent: "a"},
	)
	e.Select("a1")
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"a1"}) {
		t.Fatalf("partial subtree should report the on leaf, got %v", got)
	}
}

func TestMandatoryKeepsLastSelection(t *testing.T) {
	e := build(t, Options{Mandatory: true},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "c1", Parent: "r"},
		registry.Ticket{ID: "c2", Parent: "r"},
	)
	e.Select("c1", "c2")
	e.Unselect("c1")
	e.Unselect("c2")
	if got := e.SelectedIDs(); !slices.Equal(got, []string{"c2"}) {
		t.Fatalf("mandatory must keep the last selection, got %v", got)
	}
	e.UnselectAll()
	if len(e.SelectedIDs()) != 1 {
		t.Fatalf("mandatory unselectAll must leave one, got %v", e.SelectedIDs())
	}
}

func TestBulkOperationsTargetSelectableLeaves(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "c1", Parent: "r"},
		registry.Ticket{ID: "c2", Parent: "r", Disabled: true},
		registry.Ticket{ID: "c3", Parent: "r"},
	)
	e.SelectAll()
	if e.State("c1") != On || e.State("c3") != On {
		t.Fatalf("selectAll should select selectable leaves")
	}
	if e.State("c2") != Off {
		t.Fatalf("selectAll must skip disabled leaves")
	}
	if !e.IsAllSelected() {
		t.Fatalf("all selectable leaves are on")
	}
	e.ToggleAll()
	if !e.IsNoneSelected() {
		t.Fatalf("toggleAll from all-selected should clear, got %v", e.SelectedIDs())
	}
	e.ToggleAll()
	if !e.IsAllSelected() {
		t.Fatalf("toggleAll from empty should select all")
	}
}

func TestUnknownParentBecomesRootAndWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := New(registry.New(), Options{Logger: logger})
	e.Register(registry.Ticket{ID: "stray", Parent: "ghost"})
	if !e.IsRoot("stray") {
		t.Fatalf("node with unknown parent should become a root")
	}
	if !bytes.Contains(buf.Bytes(), []byte("unknown parent")) {
		t.Fatalf("expected a structural warning, log: %s", buf.String())
	}
}

func TestUnregisterOrphansChildren(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "a", Parent: "r"},
		registry.Ticket{ID: "a1", Parent: "a"},
		registry.Ticket{ID: "a2", Parent: "a"},
	)
	e.Unregister("a")
	if e.Registry().Has("a") {
		t.Fatalf("node should be gone")
	}
	if !e.IsRoot("a1") || !e.IsRoot("a2") {
		t.Fatalf("children should become roots")
	}
	if got := e.Roots(); !slices.Equal(got, []string{"r", "a1", "a2"}) {
		t.Fatalf("roots = %v", got)
	}
	if slices.Contains(e.Descendants("r"), "a1") {
		t.Fatalf("orphaned child must leave its old parent chain")
	}
}

func TestUnregisterSubtreeCascades(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "a", Parent: "r"},
		registry.Ticket{ID: "a1", Parent: "a"},
		registry.Ticket{ID: "b", Parent: "r"},
	)
	e.UnregisterSubtree("a")
	for _, id := range []string{"a", "a1"} {
		if e.Registry().Has(id) {
			t.Fatalf("%s should be removed by cascade", id)
		}
	}
	if !e.Registry().Has("b") {
		t.Fatalf("sibling must survive the cascade")
	}
}

func TestRegisterUnderSelectedParentRebalances(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "c1", Parent: "r"},
	)
	e.Select("r")
	if got := e.State("r"); got != On {
		t.Fatalf("precondition failed: r = %s", got)
	}
	e.Register(registry.Ticket{ID: "c2", Parent: "r"})
	if got := e.State("c2"); got != Off {
		t.Fatalf("new child must start off, got %s", got)
	}
	if got := e.State("r"); got != Indeterminate {
		t.Fatalf("parent with an off child must summarize to indeterminate, got %s", got)
	}
	e.Select("c2")
	if got := e.State("r"); got != On {
		t.Fatalf("parent should return to on once the new child is selected, got %s", got)
	}
}

func TestUnregisterRebalancesAncestors(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "c1", Parent: "r"},
		registry.Ticket{ID: "c2", Parent: "r"},
	)
	e.Select("c1")
	if got := e.State("r"); got != Indeterminate {
		t.Fatalf("precondition failed: r = %s", got)
	}
	e.Unregister("c2")
	if got := e.State("r"); got != On {
		t.Fatalf("after losing its off child, r should summarize to on, got %s", got)
	}
}

func TestOffboardCascadeFlag(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r"},
		registry.Ticket{ID: "a", Parent: "r"},
		registry.Ticket{ID: "a1", Parent: "a"},
	)
	e.Offboard([]string{"a"}, true)
	if e.Registry().Has("a1") {
		t.Fatalf("cascade offboard should remove descendants")
	}
}

func TestAdapterFor(t *testing.T) {
	for _, name := range []string{"", "classic", "independent", "single-independent", "leaf", "single-leaf", "trunk"} {
		if _, ok := AdapterFor(name); !ok {
			t.Fatalf("adapter %q should resolve", name)
		}
	}
	if _, ok := AdapterFor("bogus"); ok {
		t.Fatalf("unknown adapter name should not resolve")
	}
}

func TestSelectedValuesFollowProjection(t *testing.T) {
	e := build(t, Options{},
		registry.Ticket{ID: "r", Value: "root"},
		registry.Ticket{ID: "c1", Parent: "r", Value: "one"},
		registry.Ticket{ID: "c2", Parent: "r", Value: "two"},
	)
	e.Select("c1")
	vals := e.SelectedValues()
	if len(vals) != 1 || vals[0] != "one" {
		t.Fatalf("values = %v", vals)
	}
}
