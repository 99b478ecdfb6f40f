package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel wraps widget content in a titled border. The border color tracks
// the selected/focused accents used across grove widgets.
type Panel struct {
	Title    string
	Content  string
	Selected bool
	Focused  bool
}

func (p Panel) Render(width, height int) string {
	if width <= 0 {
		return ""
	}
	border := lipgloss.Color("#6c7086")
	if p.Selected {
		border = lipgloss.Color("#89b4fa")
	}
	if p.Focused {
		border = lipgloss.Color("#a6e3a1")
	}
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	title := p.Title
	if title != "" && ansi.StringWidth(title) > inner {
		title = ansi.Truncate(title, inner, "…")
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2)
	if height > 2 {
		style = style.Height(height - 2)
	}
	content := p.Content
	if title != "" {
		content = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")).Render(title) + "\n" + content
	}
	return style.Render(content)
}
