// Package lessons is the lesson picker shown before a practice session.
package lessons

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/screens/practice"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/layout"
	"github.com/abhisek/lexis/internal/ui/theme"
)

// LessonScreen lets the learner choose which lessons to practice.
type LessonScreen struct {
	ctrl   *study.Controller
	hints  *hints.Service
	cursor int
	scroll int
	notice string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen.
func New(ctrl *study.Controller, hintSvc *hints.Service) *LessonScreen {
	return &LessonScreen{ctrl: ctrl, hints: hintSvc}
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return "Lessons"
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "a", Description: "All"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	lessons := s.ctrl.Lessons()
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(lessons)-1 {
			s.cursor++
		}
	case "space", " ":
		if s.cursor < len(lessons) {
			s.ctrl.ToggleLesson(lessons[s.cursor])
			s.notice = ""
		}
	case "a":
		if len(s.ctrl.Selection()) == len(lessons) {
			s.ctrl.ClearSelection()
		} else {
			s.ctrl.SelectAll()
		}
		s.notice = ""
	case "enter":
		return s, s.start()
	}
	return s, nil
}

func (s *LessonScreen) start() tea.Cmd {
	err := s.ctrl.StartSession()
	switch {
	case errors.Is(err, session.ErrNoSelection):
		s.notice = "Select at least one lesson."
		return nil
	case errors.Is(err, session.ErrEmptyDeck):
		s.notice = "The selected lessons contain no words."
		return nil
	case err != nil:
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	next := practice.New(s.ctrl, s.hints)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *LessonScreen) View(width, height int) string {
	lessons := s.ctrl.Lessons()
	if len(lessons) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No vocabulary yet. Import a word list first."))
	}

	counts := s.ctrl.LessonCounts()
	selection := s.ctrl.Selection()
	report := s.ctrl.Stats()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Choose lessons"))
	b.WriteString("\n")

	selectedWords := 0
	for _, l := range selection.Sorted() {
		selectedWords += counts[l]
	}
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d lessons, %d words selected", len(selection), selectedWords)))
	b.WriteString("\n\n")

	listHeight := max(height-6, 1)
	s.adjustScroll(listHeight)

	var rows []string
	for i := s.scroll; i < len(lessons) && i < s.scroll+listHeight; i++ {
		l := lessons[i]
		ls, _ := report.Lesson(l)
		rows = append(rows, renderRow(l, counts[l], selection.Has(l), i == s.cursor, mastery.ResolveDisplayState(ls)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Notice.Render(s.notice)))
	}
	return b.String()
}

func (s *LessonScreen) adjustScroll(height int) {
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.cursor >= s.scroll+height {
		s.scroll = s.cursor - height + 1
	}
}

func renderRow(lesson, count int, selected, cursor bool, state mastery.LessonState) string {
	box := "[ ]"
	if selected {
		box = "[x]"
	}
	pointer := "  "
	if cursor {
		pointer = "▸ "
	}

	label := fmt.Sprintf("%s%s Lesson %-4d %4d words", pointer, box, lesson, count)
	style := theme.Unselected
	if cursor {
		style = theme.Selected
	}

	stateStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch state {
	case mastery.LessonMastered:
		stateStyle = stateStyle.Foreground(theme.Success)
	case mastery.LessonLearning:
		stateStyle = stateStyle.Foreground(theme.Accent)
	}
	return style.Render(label) + "  " + stateStyle.Render(fmt.Sprintf("%-9s", state))
}
