// Package step adds ordinal navigation over a single-mode selection:
// first/last/next/prev/step(n)/goto, skipping disabled tickets, with
// optional wrap-around. Every move is bounded by the registry length.
package step

import (
	"github.com/grove-ui/grove/core/registry"
	"github.com/grove-ui/grove/core/selection"
)

// Stepper navigates a registry by ordinal position. It owns a single-mode
// selection; the selected ticket is the current step.
type Stepper struct {
	sel      *selection.Selection
	circular bool
}

// New returns a stepper over reg. Circular mode wraps at the boundaries;
// the default clamps.
func New(reg *registry.Registry, circular bool) *Stepper {
	return &Stepper{sel: selection.NewSingle(reg, false), circular: circular}
}

// Selection exposes the underlying single-mode selection for rendering
// collaborators.
func (st *Stepper) Selection() *selection.Selection { return st.sel }

func (st *Stepper) Registry() *registry.Registry { return st.sel.Registry() }

// Current returns the registry ordinal of the current step, or ok=false
// when nothing is selected.
func (st *Stepper) Current() (int, bool) {
	ids := st.sel.SelectedIDs()
	if len(ids) == 0 {
		return 0, false
	}
	idx := st.Registry().IndexOf(ids[0])
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// CurrentID returns the id of the current step.
func (st *Stepper) CurrentID() (string, bool) {
	ids := st.sel.SelectedIDs()
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// valid returns the ordinals of non-disabled tickets, in registry order.
func (st *Stepper) valid() []int {
	reg := st.Registry()
	out := make([]int, 0, reg.Size())
	i := 0
	for t := range reg.Values() {
		if !t.Disabled {
			out = append(out, i)
		}
		i++
	}
	return out
}

func (st *Stepper) selectOrdinal(index int) {
	if id, ok := st.Registry().Lookup(index); ok {
		st.sel.Select(id)
	}
}

// First selects the first non-disabled ticket.
func (st *Stepper) First() {
	if valid := st.valid(); len(valid) > 0 {
		st.selectOrdinal(valid[0])
	}
}

// Last selects the last non-disabled ticket.
func (st *Stepper) Last() {
	if valid := st.valid(); len(valid) > 0 {
		st.selectOrdinal(valid[len(valid)-1])
	}
}

// Next moves forward one valid position. Prev moves backward.
func (st *Stepper) Next() { st.Step(1) }
func (st *Stepper) Prev() { st.Step(-1) }

// Step moves n valid positions (negative n moves backward). Non-circular
// steppers clamp at the boundary, so an oversized n lands on the boundary
// item rather than looping. With no current step, a forward move starts
// from before the first item and a backward move from past the last.
func (st *Stepper) Step(n int) {
	if n == 0 {
		return
	}
	valid := st.valid()
	if len(valid) == 0 {
		return
	}
	pos := -1
	if cur, ok := st.Current(); ok {
		for i, ordinal := range valid {
			if ordinal == cur {
				pos = i
				break
			}
		}
	}
	if pos < 0 {
		if n > 0 {
			pos = -1
		} else {
			pos = len(valid)
		}
	}
	target := pos + n
	if st.circular {
		target = ((target % len(valid)) + len(valid)) % len(valid)
	} else if target < 0 {
		target = 0
	} else if target >= len(valid) {
		target = len(valid) - 1
	}
	st.selectOrdinal(valid[target])
}

// Goto jumps to the given registry ordinal. Out-of-range and disabled
// targets are a no-op.
func (st *Stepper) Goto(index int) {
	id, ok := st.Registry().Lookup(index)
	if !ok {
		return
	}
	if t, ok := st.Registry().Get(id); !ok || t.Disabled {
		return
	}
	st.sel.Select(id)
}
