package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar of the given width with a done/total counter.
func ProgressBar(done, total, width int) string {
	if width < 5 {
		width = 5
	}
	filled := 0
	if total > 0 {
		filled = int(float64(done) / float64(total) * float64(width))
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarGap, width-filled)
	return fmt.Sprintf("[%s] %d/%d", current.Success.Render(bar), done, total)
}

// Footer is the "Completed: n / total" summary line.
func Footer(completed, total int) string {
	return fmt.Sprintf("Completed: %d / %d", completed, total)
}

// Panel frames lines with the active theme's border.
func Panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
