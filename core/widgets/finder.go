package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"

	"github.com/grove-ui/grove/core/registry"
)

// FinderAction reports what a key press did to the finder.
type FinderAction int

const (
	FinderActionNone FinderAction = iota
	FinderActionMoved
	FinderActionPicked
	FinderActionCancelled
)

// FinderResult is the outcome of HandleKey.
type FinderResult struct {
	Action FinderAction
	ID     string
}

// FinderMatch is one ranked result row.
type FinderMatch struct {
	ID       string
	Label    string
	Distance int
}

// Finder is a query-ranked list over a registry's tickets. A match must
// contain the query as a subsequence; matches are ordered by edit distance
// to the query, ties broken by registry order.
type Finder struct {
	reg     *registry.Registry
	query   string
	cursor  int
	matches []FinderMatch
}

func NewFinder(reg *registry.Registry) *Finder {
	f := &Finder{reg: reg}
	f.rebuild()
	return f
}

func (f *Finder) Query() string          { return f.query }
func (f *Finder) Cursor() int            { return f.cursor }
func (f *Finder) Matches() []FinderMatch { return f.matches }

// SetQuery replaces the query and re-ranks.
func (f *Finder) SetQuery(q string) {
	f.query = q
	f.rebuild()
}

// Refresh re-ranks against the current registry contents. Call after the
// registry changes underneath the finder.
func (f *Finder) Refresh() { f.rebuild() }

func (f *Finder) rebuild() {
	query := strings.ToLower(strings.TrimSpace(f.query))
	f.matches = f.matches[:0]
	for t := range f.reg.Values() {
		if t.Disabled {
			continue
		}
		label := t.ID
		if s, ok := t.Value.(string); ok && s != "" {
			label = s
		}
		lower := strings.ToLower(label)
		if !subsequenceMatch(lower, query) {
			continue
		}
		f.matches = append(f.matches, FinderMatch{
			ID:       t.ID,
			Label:    label,
			Distance: levenshtein.ComputeDistance(lower, query),
		})
	}
	// stable by construction: registry order in, ascending distance out
	for i := 1; i < len(f.matches); i++ {
		for j := i; j > 0 && f.matches[j].Distance < f.matches[j-1].Distance; j-- {
			f.matches[j], f.matches[j-1] = f.matches[j-1], f.matches[j]
		}
	}
	if f.cursor >= len(f.matches) {
		f.cursor = len(f.matches) - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

func subsequenceMatch(label, query string) bool {
	if query == "" {
		return true
	}
	pos := 0
	for i := 0; i < len(label) && pos < len(query); i++ {
		if label[i] == query[pos] {
			pos++
		}
	}
	return pos == len(query)
}

// Current returns the match under the cursor.
func (f *Finder) Current() (FinderMatch, bool) {
	if len(f.matches) == 0 {
		return FinderMatch{}, false
	}
	return f.matches[f.cursor], true
}

// HandleKey drives the finder from key names: cursor movement, enter to
// pick, esc to cancel, backspace and printable keys edit the query.
func (f *Finder) HandleKey(keyName string) FinderResult {
	switch keyName {
	case "up", "ctrl+p":
		if f.cursor > 0 {
			f.cursor--
			return FinderResult{Action: FinderActionMoved}
		}
	case "down", "ctrl+n":
		if f.cursor < len(f.matches)-1 {
			f.cursor++
			return FinderResult{Action: FinderActionMoved}
		}
	case "enter":
		if match, ok := f.Current(); ok {
			return FinderResult{Action: FinderActionPicked, ID: match.ID}
		}
	case "esc":
		return FinderResult{Action: FinderActionCancelled}
	case "backspace":
		if len(f.query) > 0 {
			_, size := utf8.DecodeLastRuneInString(f.query)
			f.SetQuery(f.query[:len(f.query)-size])
		}
	default:
		if len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127 {
			f.SetQuery(f.query + keyName)
		}
	}
	return FinderResult{Action: FinderActionNone}
}

var (
	finderCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	finderTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	finderQueryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

func (f *Finder) View(width int) string {
	lines := []string{finderQueryStyle.Render("/ " + f.query)}
	for i, match := range f.matches {
		prefix := "  "
		style := finderTextStyle
		if i == f.cursor {
			prefix = "▶ "
			style = finderCursorStyle
		}
		line := prefix + match.Label
		if width > 0 {
			line = truncateTo(line, width)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
