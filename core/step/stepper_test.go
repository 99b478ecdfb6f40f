package step

import (
	"testing"

	"github.com/grove-ui/grove/core/registry"
)

func seed(t *testing.T, tickets ...registry.Ticket) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, ticket := range tickets {
		r.Register(ticket)
	}
	return r
}

func current(t *testing.T, st *Stepper) int {
	t.Helper()
	idx, ok := st.Current()
	if !ok {
		t.Fatalf("expected a current step")
	}
	return idx
}

func TestFirstLastSkipDisabled(t *testing.T) {
	st := New(seed(t,
		registry.Ticket{ID: "a", Disabled: true},
		registry.Ticket{ID: "b"},
		registry.Ticket{ID: "c"},
		registry.Ticket{ID: "d", Disabled: true},
	), false)
	st.First()
	if got := current(t, st); got != 1 {
		t.Fatalf("first should skip leading disabled, got %d", got)
	}
	st.Last()
	if got := current(t, st); got != 2 {
		t.Fatalf("last should skip trailing disabled, got %d", got)
	}
}

func TestNextSkipsDisabledAndClamps(t *testing.T) {
	st := New(seed(t,
		registry.Ticket{ID: "a"},
		registry.Ticket{ID: "b", Disabled: true},
		registry.Ticket{ID: "c"},
	), false)
	st.First()
	st.Next()
	if got := current(t, st); got != 2 {
		t.Fatalf("next should hop over disabled, got %d", got)
	}
	st.Next()
	if got := current(t, st); got != 2 {
		t.Fatalf("next at the boundary should clamp, got %d", got)
	}
	st.Prev()
	if got := current(t, st); got != 0 {
		t.Fatalf("prev should hop back over disabled, got %d", got)
	}
	st.Prev()
	if got := current(t, st); got != 0 {
		t.Fatalf("prev at the boundary should clamp, got %d", got)
	}
}

func TestStepHugeCountTerminates(t *testing.T) {
	st := New(seed(t,
		registry.Ticket{ID: "a"},
		registry.Ticket{ID: "b"},
		registry.Ticket{ID: "c", Disabled: true},
		registry.Ticket{ID: "d"},
	), false)
	st.First()
	st.Step(1 << 30)
	if got := current(t, st); got != 3 {
		t.Fatalf("oversized forward step should land on last valid, got %d", got)
	}
	st.Step(-(1 << 30))
	if got := current(t, st); got != 0 {
		t.Fatalf("oversized backward step should land on first valid, got %d", got)
	}
}

func TestCircularWrapsAndSkipsDisabled(t *testing.T) {
	st := New(seed(t,
		registry.Ticket{ID: "a"},
		registry.Ticket{ID: "b", Disabled: true},
		registry.Ticket{ID: "c"},
	), true)
	st.Last()
	st.Next()
	if got := current(t, st); got != 0 {
		t.Fatalf("circular next past the end should wrap to first valid, got %d", got)
	}
	st.Prev()
	if got := current(t, st); got != 2 {
		t.Fatalf("circular prev before the start should wrap to last valid, got %d", got)
	}
	st.Step(5)
	// 2 valid items, 5 hops forward from position 1 lands on position 0
	if got := current(t, st); got != 0 {
		t.Fatalf("circular step should use modular arithmetic, got %d", got)
	}
}

func TestAllDisabledIsNoop(t *testing.T) {
	st := New(seed(t,
		registry.Ticket{ID: "a", Disabled: true},
		registry.Ticket{ID: "b", Disabled: true},
	), true)
	st.First()
	st.Next()
	st.Step(100)
	if _, ok := st.Current(); ok {
		t.Fatalf("all-disabled registry must keep the stepper empty")
	}
}

func TestGotoRejectsDisabledAndOutOfRange(t *testing.T) {
	st := New(seed(t,
		registry.Ticket{ID: "a"},
		registry.Ticket{ID: "b", Disabled: true},
	), false)
	st.Goto(0)
	if got := current(t, st); got != 0 {
		t.Fatalf("goto valid ordinal failed, got %d", got)
	}
	st.Goto(1)
	if got := current(t, st); got != 0 {
		t.Fatalf("goto disabled ordinal must be a no-op, got %d", got)
	}
	st.Goto(9)
	if got := current(t, st); got != 0 {
		t.Fatalf("goto out of range must be a no-op, got %d", got)
	}
}

func TestStepFromEmptySelection(t *testing.T) {
	st := New(seed(t, registry.Ticket{ID: "a"}, registry.Ticket{ID: "b"}), false)
	st.Next()
	if got := current(t, st); got != 0 {
		t.Fatalf("forward step from none should land on first, got %d", got)
	}
	st2 := New(seed(t, registry.Ticket{ID: "a"}, registry.Ticket{ID: "b"}), false)
	st2.Prev()
	if got := current(t, st2); got != 1 {
		t.Fatalf("backward step from none should land on last, got %d", got)
	}
}
