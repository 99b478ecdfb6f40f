package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grove-ui/grove/core/nested"
	"github.com/grove-ui/grove/core/registry"
	"github.com/grove-ui/grove/core/stack"
	"github.com/grove-ui/grove/core/step"
	"github.com/grove-ui/grove/core/widgets"
	"github.com/grove-ui/grove/internal/config"
	"github.com/grove-ui/grove/internal/logger"
	"github.com/grove-ui/grove/internal/prefs"
	"github.com/grove-ui/grove/internal/store"
)

const treeComponent = "demo-tree"

type keyMap struct {
	Help    key.Binding
	Quit    key.Binding
	Find    key.Binding
	Dismiss key.Binding
}

var keys = keyMap{
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Find:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}

// app demonstrates every grove engine in one model: a checkbox tree, a tab
// bar, a wizard, a finder, and an overlay stack for the help and quit
// dialogs.
type app struct {
	ctx       context.Context
	cfg       config.Config
	log       *slog.Logger
	snapshots *store.SnapshotStore

	tree     *widgets.Tree
	tabs     *widgets.TabBar
	wizard   *widgets.Steps
	finder   *widgets.Finder
	overlays *stack.Stack

	helpID    string
	confirmID string
	finderID  string

	width   int
	height  int
	status  string
	leaving bool
}

func newApp(ctx context.Context, cfg config.Config, adapter nested.Adapter, snapshots *store.SnapshotStore) *app {
	log := logger.ForComponent("demo")

	engine := nested.New(registry.New(), nested.Options{
		Adapter:   adapter,
		Mandatory: cfg.Nested.Mandatory,
		Logger:    log,
	})
	engine.Onboard([]registry.Ticket{
		{ID: "produce", Value: "Produce"},
		{ID: "apples", Value: "Apples", Parent: "produce"},
		{ID: "pears", Value: "Pears", Parent: "produce"},
		{ID: "greens", Value: "Greens", Parent: "produce"},
		{ID: "kale", Value: "Kale", Parent: "greens"},
		{ID: "chard", Value: "Chard", Parent: "greens"},
		{ID: "pantry", Value: "Pantry"},
		{ID: "rice", Value: "Rice", Parent: "pantry"},
		{ID: "flour", Value: "Flour", Parent: "pantry", Disabled: true},
	})

	tabReg := registry.New()
	tabReg.Onboard([]registry.Ticket{
		{ID: "tree", Value: "Tree"},
		{ID: "wizard", Value: "Wizard"},
	})
	tabs := step.New(tabReg, true)
	tabs.First()

	wizardReg := registry.New()
	wizardReg.Onboard([]registry.Ticket{
		{ID: "pick", Value: "Pick"},
		{ID: "review", Value: "Review"},
		{ID: "confirm", Value: "Confirm"},
	})
	wizard := step.New(wizardReg, false)
	wizard.First()

	overlays := stack.New(stack.Options{
		BaseZIndex: cfg.Stack.BaseZIndex,
		Increment:  cfg.Stack.Increment,
	})

	a := &app{
		ctx:       ctx,
		cfg:       cfg,
		log:       log,
		snapshots: snapshots,
		tree:      widgets.NewTree(engine),
		tabs:      widgets.NewTabBar(tabs),
		wizard:    widgets.NewSteps(wizard),
		finder:    widgets.NewFinder(engine.Registry()),
		overlays:  overlays,
	}

	a.helpID, _ = overlays.Register(stack.Entry{
		ID:        "help",
		OnDismiss: func() { overlays.Unselect("help") },
	})
	a.confirmID, _ = overlays.Register(stack.Entry{
		ID:       "confirm-quit",
		Blocking: true, // must be answered, scrim clicks and esc do nothing
	})
	a.finderID, _ = overlays.Register(stack.Entry{
		ID:        "finder",
		OnDismiss: func() { overlays.Unselect("finder") },
	})

	if err := snapshots.Restore(ctx, treeComponent, engine); err != nil {
		log.Warn("snapshot restore failed", "error", err)
	}
	return a
}

func (a *app) Init() tea.Cmd { return nil }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := msg.String()

	if a.overlays.IsTop(a.confirmID) && a.overlays.IsActive(a.confirmID) {
		switch name {
		case "y", "enter":
			return a, a.quit()
		case "n", "esc":
			a.overlays.Unselect(a.confirmID)
		}
		return a, nil
	}

	if a.overlays.IsActive(a.finderID) && a.overlays.IsTop(a.finderID) {
		res := a.finder.HandleKey(name)
		switch res.Action {
		case widgets.FinderActionPicked:
			a.tree.Engine().Toggle(res.ID)
			a.status = "Toggled " + res.ID
			a.overlays.Unselect(a.finderID)
		case widgets.FinderActionCancelled:
			a.overlays.Unselect(a.finderID)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.overlays.Select(a.confirmID)
		return a, nil
	case key.Matches(msg, keys.Help):
		a.overlays.Toggle(a.helpID)
		return a, nil
	case key.Matches(msg, keys.Find):
		a.finder.SetQuery("")
		a.finder.Refresh()
		a.overlays.Select(a.finderID)
		return a, nil
	case key.Matches(msg, keys.Dismiss):
		a.overlays.Dismiss()
		return a, nil
	}

	if a.tabs.HandleKey(name) {
		return a, nil
	}
	if id, _ := a.tabs.Stepper().CurrentID(); id == "wizard" {
		a.wizard.HandleKey(name)
		return a, nil
	}
	a.tree.HandleKey(name)
	return a, nil
}

func (a *app) quit() tea.Cmd {
	a.leaving = true
	ids := a.tree.Engine().SelectedIDs()
	if err := a.snapshots.Save(a.ctx, treeComponent, ids); err != nil {
		a.log.Warn("snapshot save failed", "error", err)
	}
	if err := prefs.SaveSelections(map[string][]string{treeComponent: ids}); err != nil {
		a.log.Warn("prefs save failed", "error", err)
	}
	return tea.Quit
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))

func (a *app) View() string {
	if a.leaving || a.width == 0 || a.height == 0 {
		return ""
	}

	var body string
	if id, _ := a.tabs.Stepper().CurrentID(); id == "wizard" {
		body = widgets.Panel{
			Title:    "Wizard",
			Content:  a.wizard.View(a.width - 6),
			Selected: true,
		}.Render(a.width-2, a.height-6)
	} else {
		selected := strings.Join(a.tree.Engine().SelectedIDs(), ", ")
		body = widgets.Panel{
			Title:    "Groceries",
			Content:  a.tree.View(a.width-6) + "\n\n" + statusStyle.Render("selected: "+selected),
			Selected: true,
		}.Render(a.width-2, a.height-6)
	}

	base := strings.Join([]string{
		a.tabs.View(a.width),
		body,
		statusStyle.Render(fmt.Sprintf("%s  ·  ? help  / find  q quit", a.status)),
	}, "\n")

	return widgets.RenderStack(base, a.width, a.height, a.overlays, a.renderOverlay)
}

func (a *app) renderOverlay(id string) string {
	switch id {
	case a.helpID:
		return strings.Join([]string{
			"j/k     move cursor",
			"space   toggle node",
			"a       toggle all",
			"tab     switch view",
			"/       find a node",
			"esc     close top overlay",
			"q       quit",
		}, "\n")
	case a.confirmID:
		return "Quit grove? (y/n)"
	case a.finderID:
		return a.finder.View(40)
	default:
		return ""
	}
}
