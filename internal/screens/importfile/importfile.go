// Package importfile is the screen that loads a word list from disk.
package importfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/importer"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/components"
	"github.com/abhisek/lexis/internal/ui/layout"
	"github.com/abhisek/lexis/internal/ui/theme"
)

// importDoneMsg carries the outcome of an import started from this screen.
type importDoneMsg struct {
	Path   string
	Report *study.ImportReport
	Err    error
}

// ImportScreen asks for a file path and imports it.
type ImportScreen struct {
	ctrl    *study.Controller
	input   components.TextInput
	busy    bool
	report  *study.ImportReport
	path    string
	err     error
	showAll bool
}

var _ screen.Screen = (*ImportScreen)(nil)
var _ screen.KeyHintProvider = (*ImportScreen)(nil)

// New creates an ImportScreen.
func New(ctrl *study.Controller) *ImportScreen {
	return &ImportScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("path/to/words.csv", 60),
	}
}

func (s *ImportScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ImportScreen) Title() string {
	return "Import"
}

func (s *ImportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Import"},
		{Key: "Esc", Description: "Back"},
	}
	if s.report != nil && len(s.report.Warnings) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Warnings"})
	}
	return hints
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		s.busy = false
		s.path = msg.Path
		s.report = msg.Report
		s.err = msg.Err
		s.showAll = false
		s.input.Submit(msg.Err == nil)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.busy || s.input.Value() == "" {
				return s, nil
			}
			s.busy = true
			return s, s.runImport(s.input.Value())
		case "tab":
			s.showAll = !s.showAll
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// runImport reads the file and hands its text to the controller.
func (s *ImportScreen) runImport(path string) tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		resolved := expandHome(path)
		data, err := os.ReadFile(resolved)
		if err != nil {
			return importDoneMsg{Path: resolved, Err: err}
		}
		report, err := ctrl.Import(context.Background(), string(data))
		return importDoneMsg{Path: resolved, Report: report, Err: err}
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (s *ImportScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Import a word list"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		"One word per line: headword;forms;translation;lesson"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		"Importing replaces the current vocabulary and clears all results."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.statusLine()))

	if s.report != nil && len(s.report.Warnings) > 0 {
		b.WriteString("\n\n")
		b.WriteString(s.renderWarnings(width, height-12))
	}
	return b.String()
}

func (s *ImportScreen) statusLine() string {
	switch {
	case s.busy:
		return theme.Hint.Render("Importing…")
	case s.err != nil:
		return theme.Unknown.Render(errorText(s.err))
	case s.report != nil:
		text := fmt.Sprintf("Imported %d words in %d lessons", s.report.Imported, len(s.report.Lessons))
		if n := len(s.report.Warnings); n > 0 {
			text += fmt.Sprintf(", %d rows skipped", n)
		}
		return theme.Known.Render(text)
	}
	return ""
}

func errorText(err error) string {
	switch {
	case errors.Is(err, importer.ErrNoValidRows):
		return "No valid rows found. The vocabulary was not changed."
	case errors.Is(err, os.ErrNotExist):
		return "File not found."
	}
	return "Import failed: " + err.Error()
}

// renderWarnings lists skipped rows, the first few unless expanded.
func (s *ImportScreen) renderWarnings(width, maxLines int) string {
	const collapsed = 3
	limit := collapsed
	if s.showAll {
		limit = max(maxLines, collapsed)
	}

	warnings := s.report.Warnings
	var lines []string
	for i, w := range warnings {
		if i >= limit {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("  … %d more", len(warnings)-limit)))
			break
		}
		lines = append(lines, theme.Notice.Render("  "+w.String()))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
