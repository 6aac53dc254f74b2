package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"pymover/internal/journal"
	"pymover/internal/mover"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func (a *App) printSummary(res *mover.Result) {
	fmt.Println(successStyle.Render(fmt.Sprintf(
		"Done. %d of %d files rewritten.", res.FilesRewritten, res.FilesScanned)))

	if res.FilesSkipped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf(
			"%d files skipped due to syntax errors.", res.FilesSkipped)))
	}
	for _, failure := range res.Failures {
		fmt.Println(errorStyle.Render(fmt.Sprintf(
			"failed: %s: %v", failure.Path, failure.Err)))
	}
}

func renderOperation(op journal.Operation) string {
	line := fmt.Sprintf("%s  %-15s %s -> %s  (%d/%d rewritten)",
		op.Timestamp.Format("2006-01-02 15:04:05"),
		op.Kind, op.OldModule, op.NewModule,
		op.FilesRewritten, op.FilesScanned)
	if op.FailureCount > 0 || op.FilesSkipped > 0 {
		return warnStyle.Render(line)
	}
	return statusStyle.Render(line)
}
