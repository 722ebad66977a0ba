package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/linkscan/internal/ui/style"
	"github.com/sadopc/linkscan/internal/util"
	"github.com/sadopc/linkscan/internal/walker"
)

// RenderScanProgress renders the scanning screen shown while the walker runs.
func RenderScanProgress(theme style.Theme, layout style.Layout, path string, p walker.Progress, frame int) string {
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[frame%len(spinnerFrames)]

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary).
		Render(fmt.Sprintf("%s Scanning %s", spinner, path))

	stats := []string{
		fmt.Sprintf("%s dirs", util.FormatCount(p.DirsScanned)),
		fmt.Sprintf("%s files", util.FormatCount(p.FilesScanned)),
		fmt.Sprintf("%s symlinks", util.FormatCount(p.SymlinksSeen)),
	}
	statsLine := lipgloss.NewStyle().
		Foreground(theme.TextSecondary).
		Render(strings.Join(stats, "  ·  "))

	cyclesLine := ""
	if p.CyclesFound > 0 {
		cyclesLine = theme.ErrorText.Render(
			fmt.Sprintf("%d loop(s) found", p.CyclesFound))
	} else {
		cyclesLine = lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			Render("no loops yet")
	}

	speedLine := lipgloss.NewStyle().
		Foreground(theme.TextMuted).
		Render(fmt.Sprintf("%.0f items/s  ·  %s elapsed",
			p.ItemsPerSecond(),
			util.FormatDuration(p.Duration)))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		statsLine,
		cyclesLine,
		"",
		speedLine,
	)

	return lipgloss.Place(layout.Width, layout.Height,
		lipgloss.Center, lipgloss.Center, content)
}
