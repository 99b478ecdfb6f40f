package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grove-ui/grove/core/step"
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa")).Bold(true).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Padding(0, 1)
	tabDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")).Padding(0, 1)
)

// TabBar renders a stepper as a horizontal tab row. Labels come from the
// ticket payload when it is a string, falling back to the id.
type TabBar struct {
	stepper *step.Stepper
}

func NewTabBar(stepper *step.Stepper) *TabBar {
	return &TabBar{stepper: stepper}
}

func (t *TabBar) Stepper() *step.Stepper { return t.stepper }

// HandleKey moves the active tab. Returns false for keys it does not own.
func (t *TabBar) HandleKey(keyName string) bool {
	switch keyName {
	case "left", "h", "shift+tab":
		t.stepper.Prev()
	case "right", "l", "tab":
		t.stepper.Next()
	case "home":
		t.stepper.First()
	case "end":
		t.stepper.Last()
	default:
		return false
	}
	return true
}

func (t *TabBar) View(width int) string {
	current, hasCurrent := t.stepper.Current()
	parts := make([]string, 0, t.stepper.Registry().Size())
	i := 0
	for ticket := range t.stepper.Registry().Values() {
		label := ticket.ID
		if s, ok := ticket.Value.(string); ok && s != "" {
			label = s
		}
		style := tabInactiveStyle
		switch {
		case ticket.Disabled:
			style = tabDisabledStyle
		case hasCurrent && i == current:
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(label))
		i++
	}
	row := strings.Join(parts, " ")
	if width > 0 {
		row = truncateTo(row, width)
	}
	return row
}
