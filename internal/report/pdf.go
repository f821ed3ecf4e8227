// Package report renders the task list as a printable PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"focusboard/internal/core/model"

	"github.com/go-pdf/fpdf"
)

const ungroupedTitle = "Ungrouped"

// TaskReport writes a PDF listing tasks per group followed by a summary.
func TaskReport(w io.Writer, groups []model.TaskGroup, tasks []model.Task, stats model.TaskStats) error {
	return writeReport(w, groups, tasks, stats, time.Now())
}

func writeReport(w io.Writer, groups []model.TaskGroup, tasks []model.Task, stats model.TaskStats, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task Report", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Task Report: %s", now.Format("2006-01-02")))
	pdf.Ln(12)

	for _, section := range groupSections(groups, tasks) {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, tr(section.title))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 12)
		if len(section.tasks) == 0 {
			pdf.Cell(0, 8, "  - No tasks.")
			pdf.Ln(8)
		}
		for _, task := range section.tasks {
			status := "[ ]"
			if task.Completed {
				status = "[x]"
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("  %s %s", status, task.Text)), "", "", false)
		}
		pdf.Ln(4)
	}

	// Summary
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Tasks: %d  Completed: %d  Completion rate: %d%%",
		stats.Total, stats.Completed, stats.CompletionRate))
	pdf.Ln(10)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render task report: %w", err)
	}
	return nil
}

type section struct {
	title string
	tasks []model.Task
}

// groupSections orders sections like the groups and appends ungrouped tasks,
// including those whose group no longer exists. Empty named groups are kept.
func groupSections(groups []model.TaskGroup, tasks []model.Task) []section {
	index := make(map[string]int, len(groups))
	sections := make([]section, 0, len(groups)+1)
	for _, group := range groups {
		index[group.ID] = len(sections)
		sections = append(sections, section{title: group.Name})
	}

	var ungrouped []model.Task
	for _, task := range tasks {
		if task.GroupID != nil {
			if i, ok := index[*task.GroupID]; ok {
				sections[i].tasks = append(sections[i].tasks, task)
				continue
			}
		}
		ungrouped = append(ungrouped, task)
	}
	if len(ungrouped) > 0 {
		sections = append(sections, section{title: ungroupedTitle, tasks: ungrouped})
	}
	return sections
}
