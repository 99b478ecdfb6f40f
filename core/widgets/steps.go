package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grove-ui/grove/core/step"
)

var (
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	stepCurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

// Steps renders a stepper as a wizard progress line: done steps get a
// check, the current step a filled dot, pending steps an empty dot.
type Steps struct {
	stepper *step.Stepper
}

func NewSteps(stepper *step.Stepper) *Steps {
	return &Steps{stepper: stepper}
}

func (s *Steps) Stepper() *step.Stepper { return s.stepper }

func (s *Steps) HandleKey(keyName string) bool {
	switch keyName {
	case "left", "h":
		s.stepper.Prev()
	case "right", "l", "enter":
		s.stepper.Next()
	default:
		return false
	}
	return true
}

func (s *Steps) View(width int) string {
	current, hasCurrent := s.stepper.Current()
	parts := make([]string, 0, s.stepper.Registry().Size())
	i := 0
	for ticket := range s.stepper.Registry().Values() {
		label := ticket.ID
		if v, ok := ticket.Value.(string); ok && v != "" {
			label = v
		}
		var part string
		switch {
		case hasCurrent && i < current:
			part = stepDoneStyle.Render("✓ " + label)
		case hasCurrent && i == current:
			part = stepCurrentStyle.Render("● " + label)
		default:
			part = stepPendingStyle.Render("○ " + label)
		}
		parts = append(parts, part)
		i++
	}
	row := strings.Join(parts, stepPendingStyle.Render(" ── "))
	if width > 0 {
		row = truncateTo(row, width)
	}
	return row
}
