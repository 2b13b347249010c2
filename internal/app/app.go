package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/logger"
	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/screens/home"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Controller *study.Controller
	// Hints is nil when no LLM provider is configured.
	Hints  *hints.Service
	Logger *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *study.Controller
	router *router.Router
	log    *logger.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return AppModel{
		ctrl:   opts.Controller,
		router: router.New(home.New(opts.Controller, opts.Hints)),
		log:    log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case router.PushScreenMsg:
		m.log.Debug("push screen", "screen", msg.Screen.Title())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	g := m.ctrl.Stats().Global
	header := layout.RenderHeader(title, g.TotalItems, g.Percent, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := newAppModel(opts)
	m.log.Info("starting tui", "words", len(opts.Controller.Vocabulary()), "hints", opts.Hints != nil)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		m.log.Error("tui exited", "error", err)
		return err
	}
	return nil
}
