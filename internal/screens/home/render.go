package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/ui/components"
	"github.com/abhisek/lexis/internal/ui/theme"
)

const titleFull = `╦  ╔═╗═╗ ╦╦╔═╗
║  ║╣ ╔╩╦╝║╚═╗
╩═╝╚═╝╩ ╚═╩╚═╝`

const titleCompact = "L · E · X · I · S"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 56 {
		w = 56
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBox renders the collection-wide counts in a bordered box.
func renderStatsBox(words, answers, known, percent, cw int) string {
	num := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := fmt.Sprintf("%s %s   %s %s   %s %s   %s",
		num.Render(fmt.Sprint(words)), dim.Render("words"),
		num.Render(fmt.Sprint(answers)), dim.Render("answers"),
		num.Render(fmt.Sprint(known)), dim.Render("known"),
		theme.Known.Render(fmt.Sprintf("%d%%", percent)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(line)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}

func renderNote(text string, cw int) string {
	return theme.Hint.
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderFrame centers content in the available area.
func renderFrame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
