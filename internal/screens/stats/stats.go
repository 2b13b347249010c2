// Package stats shows per-lesson progress.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/components"
	"github.com/abhisek/lexis/internal/ui/layout"
	"github.com/abhisek/lexis/internal/ui/theme"
)

// StatsScreen lists every lesson with its practice counts.
type StatsScreen struct {
	ctrl   *study.Controller
	cursor int
	scroll int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen.
func New(ctrl *study.Controller) *StatsScreen {
	return &StatsScreen{ctrl: ctrl}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		n := len(s.ctrl.Lessons())
		switch kmsg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < n-1 {
				s.cursor++
			}
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	rep := s.ctrl.Stats()
	if len(rep.Lessons) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No vocabulary yet. Import a word list first."))
	}

	g := rep.Global
	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"%d words · %d answers · %d known · %d%%",
		g.TotalItems, g.TotalAnswers, g.KnownAnswers, g.Percent)))
	b.WriteString("\n\n")

	barWidth := max(width-58, 10)
	header := fmt.Sprintf("  %-10s %6s %9s %6s %8s  %s", "Lesson", "Words", "Practiced", "Known", "Unknown", "Progress")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(header))
	b.WriteString("\n")

	listHeight := max(height-4, 1)
	s.adjustScroll(listHeight)

	var rows []string
	for i := s.scroll; i < len(rep.Lessons) && i < s.scroll+listHeight; i++ {
		rows = append(rows, renderRow(rep.Lessons[i], i == s.cursor, barWidth))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (s *StatsScreen) adjustScroll(height int) {
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.cursor >= s.scroll+height {
		s.scroll = s.cursor - height + 1
	}
}

func renderRow(ls mastery.LessonStats, selected bool, barWidth int) string {
	cursor := "  "
	style := theme.Unselected
	if selected {
		cursor = "▸ "
		style = theme.Selected
	}

	counts := fmt.Sprintf("%s%-10s %6d %9d %6d %8d",
		cursor, fmt.Sprintf("Lesson %d", ls.Lesson), ls.Total, ls.Practiced, ls.Known, ls.Unknown)

	pct := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%3d%% of practiced", ls.PercentKnown))
	if ls.Practiced == 0 {
		pct = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   not practiced")
	}
	if mastery.ResolveDisplayState(ls) == mastery.LessonMastered {
		pct = theme.Known.Render("  mastered")
	}

	bar := components.NewProgressBar("", float64(ls.Progress)/100, true, barWidth).View()
	return style.Render(counts) + "  " + bar + "  " + pct
}
