// Package widgets renders grove engines with lipgloss: checkbox trees,
// tab bars, wizard steps, query finders, and an ANSI-aware layer
// compositor for overlay stacks.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/grove-ui/grove/core/stack"
)

// Layer is one overlay to composite. Centered when X and Y are negative.
type Layer struct {
	Content string
	X, Y    int
}

// Composite draws each layer in order over the base canvas, bottom first.
func Composite(base string, width, height int, layers ...Layer) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	out := fitCanvas(base, width, height)
	for _, layer := range layers {
		lines := splitToLines(layer.Content, 0)
		w := maxLineWidth(lines)
		h := len(lines)
		if w <= 0 || h <= 0 {
			continue
		}
		x, y := layer.X, layer.Y
		if x < 0 {
			x = max(0, (width-w)/2)
		}
		if y < 0 {
			y = max(0, (height-h)/2)
		}
		out = drawAt(out, layer.Content, x, y, width, height)
	}
	return out
}

// RenderPopup centers a single bordered card over the base canvas.
func RenderPopup(base, popup string, width, height int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(popup)
	return Composite(base, width, height, Layer{Content: card, X: -1, Y: -1})
}

// RenderStack composites every active overlay of st in z order. Each layer
// is rendered by the callback, wrapped in a bordered card, and offset a
// step down-right from the one below so the stacking order stays visible.
func RenderStack(base string, width, height int, st *stack.Stack, render func(id string) string) string {
	active := st.ActiveIDs()
	layers := make([]Layer, 0, len(active))
	for pos, id := range active {
		content := render(id)
		if content == "" {
			continue
		}
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Render(content)
		lines := splitToLines(card, 0)
		x := max(0, (width-maxLineWidth(lines))/2) + pos*2
		y := max(0, (height-len(lines))/2) + pos
		layers = append(layers, Layer{Content: card, X: x, Y: y})
	}
	return Composite(base, width, height, layers...)
}

// drawAt writes overlay into base at column x, row y, preserving the ANSI
// styling of the untouched regions.
func drawAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := splitToLines(overlay, 0)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		leftWidth := ansi.StringWidth(left)
		if leftWidth < x {
			left += strings.Repeat(" ", x-leftWidth)
		}

		overlayLine := padRightANSI(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = dropColumns(target, pos)
			rightWidth := ansi.StringWidth(right)
			if gap := width - pos - rightWidth; gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}
		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
