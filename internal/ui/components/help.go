package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/linkscan/internal/ui/style"
)

type helpEntry struct {
	key  string
	desc string
}

var helpEntries = []helpEntry{
	{"↑/k  ↓/j", "move cursor"},
	{"pgup/pgdn", "page up / down"},
	{"1", "show symlink loops"},
	{"2", "show hardlink groups"},
	{"n", "sort by path"},
	{"s", "sort by size"},
	{"c", "sort by link count / loop depth"},
	{"E", "export report to JSON"},
	{"r", "rescan"},
	{"?", "toggle this help"},
	{"q", "quit"},
}

// RenderHelp renders the help modal centered over the screen.
func RenderHelp(theme style.Theme, layout style.Layout) string {
	title := theme.ModalTitle.Render("Keyboard shortcuts")

	keyWidth := 0
	for _, e := range helpEntries {
		if w := lipgloss.Width(e.key); w > keyWidth {
			keyWidth = w
		}
	}

	var rows []string
	for _, e := range helpEntries {
		k := theme.HelpKey.Width(keyWidth + 2).Render(e.key)
		rows = append(rows, k+theme.HelpDesc.Render(e.desc))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
	modal := theme.ModalStyle.Render(body)

	return lipgloss.Place(layout.Width, layout.Height,
		lipgloss.Center, lipgloss.Center, modal)
}
