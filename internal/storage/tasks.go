package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"focusboard/internal/core/model"

	"github.com/google/uuid"
)

const taskColumns = "id, text, completed, group_id, created_at"

func scanTask(row interface{ Scan(...interface{}) error }) (model.Task, error) {
	var task model.Task
	var groupID sql.NullString
	if err := row.Scan(&task.ID, &task.Text, &task.Completed, &groupID, &task.CreatedAt); err != nil {
		return task, err
	}
	if groupID.Valid {
		id := groupID.String
		task.GroupID = &id
	}
	return task, nil
}

// AddTask stores a new open task. A blank group or "all" leaves it ungrouped.
func (d *Database) AddTask(ctx context.Context, text string, groupID string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, wrapTaskErr("add", "", ErrEmptyText)
	}

	task := model.Task{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if groupID != "" && groupID != model.AllGroups {
		exists, err := d.groupExists(ctx, groupID)
		if err != nil {
			return model.Task{}, wrapTaskErr("add", "", err)
		}
		if !exists {
			return model.Task{}, wrapGroupErr("add task to", groupID, ErrNotFound)
		}
		task.GroupID = &groupID
	}

	_, err := d.DB.ExecContext(ctx,
		"INSERT INTO tasks (id, text, completed, group_id, created_at) VALUES (?, ?, 0, ?, ?)",
		task.ID, task.Text, nullableString(groupID, task.GroupID != nil), task.CreatedAt)
	if err != nil {
		return model.Task{}, wrapTaskErr("add", task.ID, err)
	}
	return task, nil
}

// GetTask returns a single task.
func (d *Database) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := d.DB.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, wrapTaskErr("get", id, ErrNotFound)
	}
	return task, wrapTaskErr("get", id, err)
}

// ListTasks returns tasks newest first, restricted to group unless it is "all".
func (d *Database) ListTasks(ctx context.Context, group string) ([]model.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks"
	var args []interface{}
	if group != "" && group != model.AllGroups {
		query += " WHERE group_id = ?"
		args = append(args, group)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapTaskErr("list", "", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, wrapTaskErr("list", "", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, wrapTaskErr("list", "", rows.Err())
}

// ToggleTask flips the completed flag.
func (d *Database) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	res, err := d.DB.ExecContext(ctx, "UPDATE tasks SET completed = 1 - completed WHERE id = ?", id)
	if err := checkAffected("toggle", id, res, err); err != nil {
		return model.Task{}, err
	}
	return d.GetTask(ctx, id)
}

// EditTask replaces the text of a task. Blank text is rejected.
func (d *Database) EditTask(ctx context.Context, id string, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, wrapTaskErr("edit", id, ErrEmptyText)
	}
	res, err := d.DB.ExecContext(ctx, "UPDATE tasks SET text = ? WHERE id = ?", text, id)
	if err := checkAffected("edit", id, res, err); err != nil {
		return model.Task{}, err
	}
	return d.GetTask(ctx, id)
}

// DeleteTask removes a task.
func (d *Database) DeleteTask(ctx context.Context, id string) error {
	res, err := d.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	return checkAffected("delete", id, res, err)
}

// ClearCompleted removes every completed task and reports how many went.
func (d *Database) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := d.DB.ExecContext(ctx, "DELETE FROM tasks WHERE completed = 1")
	if err != nil {
		return 0, wrapTaskErr("clear completed", "", err)
	}
	removed, err := res.RowsAffected()
	return removed, wrapTaskErr("clear completed", "", err)
}

// TaskStats summarises the tasks visible under group.
func (d *Database) TaskStats(ctx context.Context, group string) (model.TaskStats, error) {
	tasks, err := d.ListTasks(ctx, group)
	if err != nil {
		return model.TaskStats{}, err
	}
	return model.ComputeTaskStats(tasks), nil
}

func checkAffected(op string, id string, res sql.Result, err error) error {
	if err != nil {
		return wrapTaskErr(op, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapTaskErr(op, id, err)
	}
	if affected == 0 {
		return wrapTaskErr(op, id, ErrNotFound)
	}
	return nil
}

// nullableString converts an optional string to sql.NullString.
func nullableString(v string, valid bool) sql.NullString {
	return sql.NullString{String: v, Valid: valid}
}
