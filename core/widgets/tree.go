package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/grove-ui/grove/core/nested"
)

var (
	treeTextStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	treeCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	treeDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	treePartialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

// TreeRow is one visible line of a checkbox tree.
type TreeRow struct {
	ID       string
	Label    string
	Depth    int
	State    nested.State
	Disabled bool
	Leaf     bool
}

// Tree renders a nested engine as an indented checkbox tree and owns the
// cursor over its visible rows.
type Tree struct {
	engine *nested.Engine
	cursor int
}

func NewTree(engine *nested.Engine) *Tree {
	return &Tree{engine: engine}
}

func (w *Tree) Engine() *nested.Engine { return w.engine }

// Rows flattens the forest in depth-first preorder.
func (w *Tree) Rows() []TreeRow {
	var out []TreeRow
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		ticket, ok := w.engine.Registry().Get(id)
		if !ok {
			return
		}
		label := id
		if s, ok := ticket.Value.(string); ok && s != "" {
			label = s
		}
		out = append(out, TreeRow{
			ID:       id,
			Label:    label,
			Depth:    depth,
			State:    w.engine.State(id),
			Disabled: ticket.Disabled,
			Leaf:     w.engine.IsLeaf(id),
		})
		for _, child := range w.engine.Children(id) {
			walk(child, depth+1)
		}
	}
	for _, root := range w.engine.Roots() {
		walk(root, 0)
	}
	return out
}

func (w *Tree) clampCursor(rows int) {
	if w.cursor >= rows {
		w.cursor = rows - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
}

func (w *Tree) CursorUp() {
	if w.cursor > 0 {
		w.cursor--
	}
}

func (w *Tree) CursorDown() {
	w.cursor++
	w.clampCursor(len(w.Rows()))
}

func (w *Tree) Cursor() int { return w.cursor }

// CurrentID returns the id under the cursor.
func (w *Tree) CurrentID() (string, bool) {
	rows := w.Rows()
	if len(rows) == 0 {
		return "", false
	}
	w.clampCursor(len(rows))
	return rows[w.cursor].ID, true
}

// ToggleAtCursor toggles the node under the cursor through the engine.
func (w *Tree) ToggleAtCursor() {
	if id, ok := w.CurrentID(); ok {
		w.engine.Toggle(id)
	}
}

// HandleKey drives the tree from key names. Returns false for keys it does
// not own so the host model can route them elsewhere.
func (w *Tree) HandleKey(keyName string) bool {
	switch keyName {
	case "k", "up":
		w.CursorUp()
	case "j", "down":
		w.CursorDown()
	case " ", "space", "enter":
		w.ToggleAtCursor()
	case "a":
		w.engine.ToggleAll()
	default:
		return false
	}
	return true
}

func stateGlyph(s nested.State) string {
	switch s {
	case nested.On:
		return "[x]"
	case nested.Indeterminate:
		return "[~]"
	default:
		return "[ ]"
	}
}

// View renders the tree. The cursor row carries a pointer prefix, disabled
// rows are dimmed, indeterminate checkboxes use the partial accent.
func (w *Tree) View(width int) string {
	rows := w.Rows()
	w.clampCursor(len(rows))
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		prefix := "  "
		if i == w.cursor {
			prefix = "▶ "
		}
		line := fmt.Sprintf("%s%s%s %s", prefix, strings.Repeat("  ", row.Depth), stateGlyph(row.State), row.Label)
		style := treeTextStyle
		switch {
		case row.Disabled:
			style = treeDisabledStyle
		case i == w.cursor:
			style = treeCursorStyle
		case row.State == nested.Indeterminate:
			style = treePartialStyle
		}
		if width > 0 {
			line = truncateTo(line, width)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func truncateTo(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
