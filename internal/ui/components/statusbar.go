package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/linkscan/internal/model"
	"github.com/sadopc/linkscan/internal/ui/style"
	"github.com/sadopc/linkscan/internal/util"
)

// RenderHeader renders the top header line with the scanned root.
func RenderHeader(theme style.Theme, layout style.Layout, root string, stats model.Stats) string {
	left := theme.HeaderStyle.Render(" linkscan ")
	path := lipgloss.NewStyle().
		Foreground(theme.TextSecondary).
		Background(theme.BgMedium).
		Render(" " + root + " ")

	right := lipgloss.NewStyle().
		Foreground(theme.TextMuted).
		Background(theme.BgMedium).
		Render(fmt.Sprintf(" %s files · %s dirs · %s ",
			util.FormatCount(stats.FilesScanned),
			util.FormatCount(stats.DirsScanned),
			util.FormatDuration(stats.Duration)))

	used := lipgloss.Width(left) + lipgloss.Width(path) + lipgloss.Width(right)
	gap := layout.ContentWidth() - used
	if gap < 0 {
		gap = 0
	}
	filler := theme.HeaderStyle.Render(strings.Repeat(" ", gap))

	return left + path + filler + right
}

// RenderTabBar renders the view-mode tabs.
func RenderTabBar(theme style.Theme, layout style.Layout, mode, cycles, groups int) string {
	var tabs []string

	cycleLabel := fmt.Sprintf("1 loops (%d)", cycles)
	groupLabel := fmt.Sprintf("2 hardlinks (%d)", groups)

	if mode == ModeCycles {
		tabs = append(tabs, theme.TabActiveStyle.Render(cycleLabel))
		tabs = append(tabs, theme.TabInactiveStyle.Render(groupLabel))
	} else {
		tabs = append(tabs, theme.TabInactiveStyle.Render(cycleLabel))
		tabs = append(tabs, theme.TabActiveStyle.Render(groupLabel))
	}

	return style.FullWidth(strings.Join(tabs, " "), layout.ContentWidth())
}

// RenderStatusBar renders the bottom status bar with position and key hints.
func RenderStatusBar(theme style.Theme, layout style.Layout, cursor, total int, message string) string {
	var left string
	if message != "" {
		left = " " + message
	} else if total > 0 {
		left = fmt.Sprintf(" %d/%d", cursor+1, total)
	} else {
		left = " -"
	}

	hints := " 1/2 view · n/s/c sort · E export · r rescan · ? help · q quit "

	used := lipgloss.Width(left) + lipgloss.Width(hints)
	gap := layout.ContentWidth() - used
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + hints
	return theme.StatusBarStyle.Width(layout.ContentWidth()).Render(bar)
}
