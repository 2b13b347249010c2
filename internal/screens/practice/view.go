package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/components"
	"github.com/abhisek/lexis/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	card, ok := s.ctrl.Card()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No session in progress."))
	}

	cardWidth := min(max(width-10, 30), 64)
	progress := s.ctrl.Progress()

	var sections []string
	sections = append(sections, theme.Subtitle.Render(
		fmt.Sprintf("Card %d of %d · Lesson %d", card.Position, card.Total, card.Lesson)))
	sections = append(sections, components.NewProgressBar("", progress.Fraction(), false, cardWidth).View())
	sections = append(sections, renderCard(card, cardWidth))

	if card.Flipped {
		if h := s.renderHint(cardWidth); h != "" {
			sections = append(sections, h)
		}
	} else {
		sections = append(sections, theme.Hint.Render("Press space to reveal"))
	}
	if s.notice != "" {
		sections = append(sections, theme.Notice.Render(s.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, interleave(sections)...))
}

func renderCard(card study.CardView, width int) string {
	lines := []string{theme.Headword.Render(card.Headword)}
	style := theme.Card
	if card.Flipped {
		style = theme.CardFlipped
		if card.Forms != "" {
			lines = append(lines, theme.Forms.Render(card.Forms))
		}
		lines = append(lines, "", theme.Translation.Render(card.Translation))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (s *PracticeScreen) renderHint(width int) string {
	switch {
	case s.hintLoading:
		return theme.Hint.Render("Thinking of a memory aid…")
	case s.hintErr != nil:
		return theme.Unknown.Render("No memory aid available right now.")
	case s.hint != nil:
		text := s.hint.Mnemonic
		if s.hint.Note != "" {
			text += "\n" + theme.Forms.Render("cf. "+s.hint.Note)
		}
		return lipgloss.NewStyle().
			Width(width).
			Foreground(theme.Secondary).
			Align(lipgloss.Center).
			Render(text)
	}
	return ""
}

// interleave puts a blank line between sections.
func interleave(sections []string) []string {
	out := make([]string, 0, len(sections)*2)
	for i, sec := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, sec)
	}
	return out
}
