package model

import "time"

// AllGroups is the pseudo group id selecting every task.
const AllGroups = "all"

// Task is a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	GroupID   *string   `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskGroup is a named, coloured bucket of tasks.
type TaskGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TaskStats summarises completion over a set of tasks.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"`
}

// GroupColors lists the colours a group may use; anything else falls back to the first.
var GroupColors = []string{"blue", "red", "yellow", "green", "purple"}

// DefaultTaskGroups returns the groups seeded into a fresh store.
func DefaultTaskGroups() []TaskGroup {
	return []TaskGroup{
		{ID: "work", Name: "Work", Color: "blue"},
		{ID: "personal", Name: "Personal", Color: "green"},
		{ID: "study", Name: "Study", Color: "purple"},
	}
}

// NormalizeColor maps unknown colours to the default.
func NormalizeColor(color string) string {
	for _, known := range GroupColors {
		if color == known {
			return color
		}
	}
	return GroupColors[0]
}

// ComputeTaskStats counts completed tasks and the rounded completion percentage.
func ComputeTaskStats(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = (stats.Completed*200 + stats.Total) / (stats.Total * 2)
	}
	return stats
}
