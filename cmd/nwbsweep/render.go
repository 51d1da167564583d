package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
)

// Status markers, one presentation class per summary bucket.
const (
	markCompleted = "✓"
	markRunning   = "…"
	markFailed    = "✗"
)

type statusStyles struct {
	completed lipgloss.Style
	running   lipgloss.Style
	failed    lipgloss.Style
	header    lipgloss.Style
}

func newStatusStyles(colored bool) statusStyles {
	if !colored {
		s := lipgloss.NewStyle()
		return statusStyles{completed: s, running: s, failed: s, header: s}
	}
	return statusStyles{
		completed: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		running:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		header:    lipgloss.NewStyle().Bold(true),
	}
}

func (s statusStyles) forClass(c models.StatusClass) lipgloss.Style {
	switch c {
	case models.ClassCompleted:
		return s.completed
	case models.ClassRunning:
		return s.running
	default:
		return s.failed
	}
}

func marker(c models.StatusClass) string {
	switch c {
	case models.ClassCompleted:
		return markCompleted
	case models.ClassRunning:
		return markRunning
	default:
		return markFailed
	}
}

// renderOutcome writes the full report: header, aligned per-task table, and
// the summary block. It is a pure function of its inputs; the same outcome
// renders to byte-identical output.
func renderOutcome(w io.Writer, outcome *models.SweepOutcome, settings *models.ReportSettings, colored bool) {
	styles := newStatusStyles(colored)

	fmt.Fprintf(w, "Job:   %s\n", outcome.JobID)
	fmt.Fprintf(w, "Label: %s\n\n", outcome.Label)

	headers := make([]string, 0, len(settings.Columns)+4)
	headers = append(headers, "Task")
	for _, col := range settings.Columns {
		headers = append(headers, col.Label)
	}
	headers = append(headers, "Status", "Elapsed", "Error")

	cells := make([][]string, 0, len(outcome.Tasks))
	for i := range outcome.Tasks {
		task := &outcome.Tasks[i]
		row := make([]string, 0, len(headers))
		row = append(row, fmt.Sprintf("%d", task.Index))
		row = append(row, task.Fields...)
		row = append(row, fmt.Sprintf("%s %s", marker(task.Class()), task.State))
		row = append(row, task.Elapsed)
		row = append(row, task.Excerpt)
		cells = append(cells, row)
	}

	widths := columnWidths(headers, cells)

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(padRight(h, widths[i]))
		b.WriteString("  ")
	}
	fmt.Fprintln(w, styles.header.Render(strings.TrimRight(b.String(), " ")))

	for i, row := range cells {
		style := styles.forClass(outcome.Tasks[i].Class())
		var line strings.Builder
		for j, cell := range row {
			line.WriteString(padRight(cell, widths[j]))
			line.WriteString("  ")
		}
		fmt.Fprintln(w, style.Render(strings.TrimRight(line.String(), " ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintln(w, summaryLine(outcome))
	if len(outcome.Digest.RunningIndices) > 0 {
		fmt.Fprintf(w, "Running or pending: %s\n", joinIndices(outcome.Digest.RunningIndices))
	}
	if len(outcome.Digest.FailedIndices) > 0 {
		fmt.Fprintf(w, "Failed: %s\n", joinIndices(outcome.Digest.FailedIndices))
	}
}

// summaryLine is the one-line sweep summary, also stored in the registry.
func summaryLine(outcome *models.SweepOutcome) string {
	return fmt.Sprintf("%d/%d completed", outcome.Digest.Completed, outcome.Digest.Total)
}

func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ", ")
}

func columnWidths(headers []string, cells [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
