package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/screens/importfile"
	"github.com/abhisek/lexis/internal/screens/lessons"
	"github.com/abhisek/lexis/internal/screens/stats"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/components"
	"github.com/abhisek/lexis/internal/ui/layout"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	ctrl *study.Controller
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. hintSvc may be nil when no LLM provider is
// configured.
func New(ctrl *study.Controller, hintSvc *hints.Service) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Practice", Shortcut: "p", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lessons.New(ctrl, hintSvc)}
			}
		}},
		{Label: "Import word list", Shortcut: "i", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: importfile.New(ctrl)}
			}
		}},
		{Label: "Statistics", Shortcut: "s", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(ctrl)}
			}
		}},
		{Label: "Quit", Shortcut: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		ctrl: ctrl,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)
	cw := contentWidth(width)
	g := h.ctrl.Stats().Global

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBox(g.TotalItems, g.TotalAnswers, g.KnownAnswers, g.Percent, cw))
	sections = append(sections, renderMenu(h.menu, cw))
	if g.TotalItems == 0 {
		sections = append(sections, renderNote("Import a word list to get started.", cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "p/i/s", Description: "Jump"},
		{Key: "q", Description: "Quit"},
	}
}
