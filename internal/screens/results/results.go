// Package results shows the tally of a finished practice session.
package results

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/layout"
	"github.com/abhisek/lexis/internal/ui/theme"
)

// maxMissedRows caps the missed list on screen.
const maxMissedRows = 10

// ResultsScreen displays the session summary.
type ResultsScreen struct {
	ctrl        *study.Controller
	summary     *session.SessionSummary
	newPractice func() screen.Screen
	notice      string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. newPractice builds the screen shown when the
// learner restarts or retries.
func New(ctrl *study.Controller, summary *session.SessionSummary, newPractice func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{ctrl: ctrl, summary: summary, newPractice: newPractice}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "r", Description: "Restart"}}
	if s.summary != nil && len(s.summary.Missed) > 0 {
		hints = append(hints, layout.KeyHint{Key: "m", Description: "Retry missed"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Lessons"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r":
		return s, s.next(s.ctrl.Restart())
	case "m":
		return s, s.next(s.ctrl.RetryMissed())
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// next swaps in a fresh practice screen when the session started, or pops
// back to lesson selection when nothing is selected.
func (s *ResultsScreen) next(err error) tea.Cmd {
	switch {
	case errors.Is(err, session.ErrNothingMissed):
		s.notice = "Nothing missed. Well done!"
		return nil
	case errors.Is(err, session.ErrEmptyDeck), errors.Is(err, session.ErrNoSelection):
		// Back to the lesson picker below us to choose again.
		return func() tea.Msg { return router.PopScreenMsg{} }
	case err != nil:
		s.notice = err.Error()
		return nil
	}
	practice := s.newPractice()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: practice}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	heading := "Session complete!"
	if sum.Retry {
		heading = "Retry complete!"
	}
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%s    %s    %s",
		theme.Known.Render(fmt.Sprintf("%d known", sum.Known)),
		theme.Unknown.Render(fmt.Sprintf("%d unknown", sum.Unknown)),
		theme.Body.Render(fmt.Sprintf("%.0f%% of %d cards", sum.Accuracy*100, sum.DeckSize)),
	)
	b.WriteString(center(stats))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(sum.Missed) > 0 {
		b.WriteString(center(theme.Subtitle.Render("Missed")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")

		rows := min(len(sum.Missed), maxMissedRows, max(height-10, 1))
		for _, it := range sum.Missed[:rows] {
			line := fmt.Sprintf("%-20s %s", it.Headword, it.Translation)
			b.WriteString(center(theme.Body.Render(line)))
			b.WriteString("\n")
		}
		if rest := len(sum.Missed) - rows; rest > 0 {
			b.WriteString(center(theme.Hint.Render(fmt.Sprintf("… and %d more", rest))))
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Notice.Render(s.notice)))
	}
	return b.String()
}
