package report

import (
	"bytes"
	"testing"
	"time"

	"focusboard/internal/core/model"
)

func strPtr(s string) *string { return &s }

func TestTaskReportWritesPDF(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Text: "write report", Completed: true, GroupID: strPtr("work")},
		{ID: "2", Text: "café run", GroupID: strPtr("personal")},
		{ID: "3", Text: "loose end"},
	}
	var buf bytes.Buffer
	err := writeReport(&buf, model.DefaultTaskGroups(), tasks, model.ComputeTaskStats(tasks),
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestTaskReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := TaskReport(&buf, nil, nil, model.TaskStats{}); err != nil {
		t.Fatalf("TaskReport failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output")
	}
}

func TestGroupSections(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Text: "a", GroupID: strPtr("study")},
		{ID: "b", Text: "b", GroupID: strPtr("deleted")},
		{ID: "c", Text: "c"},
		{ID: "d", Text: "d", GroupID: strPtr("work")},
	}
	sections := groupSections(model.DefaultTaskGroups(), tasks)
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	if sections[0].title != "Work" || len(sections[0].tasks) != 1 {
		t.Fatalf("unexpected work section %+v", sections[0])
	}
	if len(sections[1].tasks) != 0 {
		t.Fatalf("expected empty personal section, got %+v", sections[1])
	}
	if sections[2].title != "Study" || sections[2].tasks[0].ID != "a" {
		t.Fatalf("unexpected study section %+v", sections[2])
	}
	last := sections[3]
	if last.title != ungroupedTitle || len(last.tasks) != 2 || last.tasks[0].ID != "b" {
		t.Fatalf("unexpected ungrouped section %+v", last)
	}
}

func TestGroupSectionsOmitsEmptyUngrouped(t *testing.T) {
	sections := groupSections(model.DefaultTaskGroups(), nil)
	if len(sections) != 3 {
		t.Fatalf("expected only named groups, got %d", len(sections))
	}
}
