// Package layout draws the chrome around every screen: a header bar with the
// vocabulary totals, a footer of key hints and the too-small notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactHeightThreshold = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the window with a resize request.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Lexis needs a %d×%d terminal.\n\nThis one is %d×%d.", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(text))
}

// bar is the bordered strip used for header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// inner is the usable text width inside a bar.
func inner(width int) int { return max(width-4, 0) }

// RenderHeader shows the app name, the screen title centred and the number
// of words with the share of answers marked known. The totals are dropped
// first, then the title, when the bar is too narrow.
func RenderHeader(title string, words, percent int, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Lexis")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	totals := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%d words", words)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%d%% known", percent))

	w := inner(width)
	switch {
	case lipgloss.Width(name)+lipgloss.Width(center)+lipgloss.Width(totals)+2 <= w:
	case lipgloss.Width(name)+lipgloss.Width(center)+1 <= w:
		totals = ""
	default:
		center, totals = "", ""
	}
	return bar(width).Render(spread(w, name, center, totals))
}

// spread places left at the start, center in the middle and right at the
// end of a line w cells wide, keeping at least one space between parts.
func spread(w int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((w-cw)/2-lw, 1)
	gapR := max(w-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

// RenderFooter lists hints left to right. When they do not fit, the hints
// just before the last are dropped so the first and the last (Quit) stay.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}

	line := "  " + strings.Join(parts, "   ")
	for len(parts) > 2 && lipgloss.Width(line) > inner(width) {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
		line = "  " + strings.Join(parts, "   ")
	}
	return bar(width).Render(line)
}

// RenderFrame stacks header, content and footer, padding the content to fill
// the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return strings.Join([]string{header, body, footer}, "\n")
}
