package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sadopc/linkscan/internal/model"
	"github.com/sadopc/linkscan/internal/ui/style"
	"github.com/sadopc/linkscan/internal/util"
)

// List view modes.
const (
	ModeCycles = iota
	ModeGroups
)

// FindingList renders the scrollable list of findings: symlink loops or
// hardlink groups, depending on Mode.
type FindingList struct {
	Theme  style.Theme
	Layout style.Layout
	Cycles []model.Cycle
	Groups []model.LinkGroup
	Mode   int
	Cursor int
	Offset int
}

// Len returns the number of rows in the active mode.
func (fl *FindingList) Len() int {
	if fl.Mode == ModeGroups {
		return len(fl.Groups)
	}
	return len(fl.Cycles)
}

// Render renders the finding list.
func (fl *FindingList) Render() string {
	width := fl.Layout.ContentWidth()
	contentHeight := fl.Layout.ContentHeight()

	if fl.Len() == 0 {
		var msg string
		if fl.Mode == ModeGroups {
			msg = "  no hardlink groups found"
		} else {
			msg = "  no symlink loops found"
		}
		empty := lipgloss.NewStyle().Foreground(fl.Theme.Success).Render(msg)
		lines := []string{style.FullWidth(empty, width)}
		for len(lines) < contentHeight {
			lines = append(lines, strings.Repeat(" ", width))
		}
		return strings.Join(lines, "\n")
	}

	start := fl.Offset
	end := start + contentHeight
	if end > fl.Len() {
		end = fl.Len()
	}

	var lines []string
	for i := start; i < end; i++ {
		var line string
		if fl.Mode == ModeGroups {
			line = fl.renderGroupRow(fl.Groups[i], i == fl.Cursor, width)
		} else {
			line = fl.renderCycleRow(fl.Cycles[i], i == fl.Cursor, width)
		}
		lines = append(lines, line)
	}

	for len(lines) < contentHeight {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func (fl *FindingList) renderCycleRow(c model.Cycle, selected bool, totalWidth int) string {
	barWidth := fl.Layout.BarWidth()
	pathWidth := fl.Layout.PathWidth()

	depthStr := fmt.Sprintf("d%d", c.Depth)
	bar := fl.Theme.BarGradient(barWidth, float64(c.Depth)/float64(max(fl.maxCycleDepth(), 1)))

	text := fl.Theme.LinkText.Render(c.Link) +
		lipgloss.NewStyle().Foreground(fl.Theme.TextMuted).Render(" -> ") +
		fl.Theme.PathText.Render(c.Ancestor)
	text = ansi.Truncate(text, pathWidth, "...")

	row := fmt.Sprintf("%s%s [%s] %s %s",
		fl.indicator(selected),
		fl.Theme.CountText.Render(depthStr),
		bar,
		text,
		fl.Theme.SizeText.Width(10).Render("loop"),
	)
	return fl.finishRow(row, selected, totalWidth)
}

func (fl *FindingList) renderGroupRow(g model.LinkGroup, selected bool, totalWidth int) string {
	barWidth := fl.Layout.BarWidth()
	pathWidth := fl.Layout.PathWidth()

	countStr := fmt.Sprintf("%dx", len(g.Paths))
	bar := fl.Theme.BarGradient(barWidth, float64(len(g.Paths))/float64(max(fl.maxGroupLinks(), 1)))

	text := ""
	if len(g.Paths) > 0 {
		text = fl.Theme.PathText.Render(g.Paths[0])
		if len(g.Paths) > 1 {
			text += lipgloss.NewStyle().
				Foreground(fl.Theme.TextMuted).
				Render(fmt.Sprintf(" +%d links", len(g.Paths)-1))
		}
	}
	if g.Nlink > uint64(len(g.Paths)) {
		text += fl.Theme.ErrorText.Render(" !")
	}
	text = ansi.Truncate(text, pathWidth, "...")

	row := fmt.Sprintf("%s%s [%s] %s %s",
		fl.indicator(selected),
		fl.Theme.CountText.Render(countStr),
		bar,
		text,
		fl.Theme.SizeText.Width(10).Render(util.FormatSize(g.Size)),
	)
	return fl.finishRow(row, selected, totalWidth)
}

func (fl *FindingList) indicator(selected bool) string {
	if selected {
		return fl.Theme.CursorIndicator.Render(" >")
	}
	return "  "
}

func (fl *FindingList) finishRow(row string, selected bool, totalWidth int) string {
	row = style.FullWidth(row, totalWidth)
	if selected {
		return fl.Theme.SelectedRow.Width(totalWidth).Render(row)
	}
	return row
}

func (fl *FindingList) maxCycleDepth() int {
	m := 0
	for _, c := range fl.Cycles {
		if c.Depth > m {
			m = c.Depth
		}
	}
	return m
}

func (fl *FindingList) maxGroupLinks() int {
	m := 0
	for _, g := range fl.Groups {
		if len(g.Paths) > m {
			m = len(g.Paths)
		}
	}
	return m
}

// EnsureVisible adjusts offset to keep cursor visible.
func (fl *FindingList) EnsureVisible() {
	contentHeight := fl.Layout.ContentHeight()
	if fl.Cursor < fl.Offset {
		fl.Offset = fl.Cursor
	}
	if fl.Cursor >= fl.Offset+contentHeight {
		fl.Offset = fl.Cursor - contentHeight + 1
	}
	if fl.Offset < 0 {
		fl.Offset = 0
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
