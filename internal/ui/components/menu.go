package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Shortcut, when set, is a single key that
// selects and runs the item without navigating to it.
type MenuItem struct {
	Label    string
	Shortcut string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Navigation wraps at both ends and skips
// disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.move(-1)
		return m, nil
	case "down", "j", "tab":
		m.move(1)
		return m, nil
	case "enter":
		return m, m.run(m.Selected)
	}

	for i, item := range m.Items {
		if item.Shortcut != "" && item.Shortcut == key {
			if item.Disabled {
				return m, nil
			}
			m.Selected = i
			return m, m.run(i)
		}
	}
	return m, nil
}

// move steps the selection by dir, wrapping, until it lands on an enabled
// item. The selection is unchanged when every item is disabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	i := m.Selected
	for range n {
		i = (i + dir + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		marker := "  "
		switch {
		case item.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			marker = "▸ "
		}

		key := "   "
		if item.Shortcut != "" {
			key = "[" + item.Shortcut + "]"
		}
		b.WriteString(style.Render(marker + key + " " + item.Label))
		b.WriteByte('\n')
	}
	return b.String()
}
