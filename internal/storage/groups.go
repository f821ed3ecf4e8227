package storage

import (
	"context"
	"strings"

	"focusboard/internal/core/model"

	"github.com/google/uuid"
)

// ListGroups returns groups in creation order.
func (d *Database) ListGroups(ctx context.Context) ([]model.TaskGroup, error) {
	rows, err := d.DB.QueryContext(ctx, "SELECT id, name, color FROM task_groups ORDER BY position ASC, rowid ASC")
	if err != nil {
		return nil, wrapGroupErr("list", "", err)
	}
	defer rows.Close()

	groups := []model.TaskGroup{}
	for rows.Next() {
		var group model.TaskGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.Color); err != nil {
			return nil, wrapGroupErr("list", "", err)
		}
		groups = append(groups, group)
	}
	return groups, wrapGroupErr("list", "", rows.Err())
}

// AddGroup creates a group and makes it the current one.
func (d *Database) AddGroup(ctx context.Context, name string, color string) (model.TaskGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TaskGroup{}, wrapGroupErr("add", "", ErrEmptyText)
	}
	group := model.TaskGroup{
		ID:    uuid.New().String(),
		Name:  name,
		Color: model.NormalizeColor(color),
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.TaskGroup{}, wrapGroupErr("add", "", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO task_groups (id, name, color, position) VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM task_groups))",
		group.ID, group.Name, group.Color); err != nil {
		return model.TaskGroup{}, wrapGroupErr("add", group.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		KeyCurrentGroup, group.ID); err != nil {
		return model.TaskGroup{}, wrapGroupErr("select", group.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return model.TaskGroup{}, wrapGroupErr("add", group.ID, err)
	}
	return group, nil
}

// CurrentGroup returns the selected group id, "all" when unset.
func (d *Database) CurrentGroup(ctx context.Context) (string, error) {
	value, ok, err := d.GetSetting(ctx, KeyCurrentGroup)
	if err != nil {
		return model.AllGroups, err
	}
	if !ok || value == "" {
		return model.AllGroups, nil
	}
	return value, nil
}

// SetCurrentGroup selects a group, or "all".
func (d *Database) SetCurrentGroup(ctx context.Context, id string) error {
	if id == "" {
		id = model.AllGroups
	}
	if id != model.AllGroups {
		exists, err := d.groupExists(ctx, id)
		if err != nil {
			return wrapGroupErr("select", id, err)
		}
		if !exists {
			return wrapGroupErr("select", id, ErrNotFound)
		}
	}
	return d.SetSetting(ctx, KeyCurrentGroup, id)
}

func (d *Database) groupExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := d.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM task_groups WHERE id = ?)", id).Scan(&exists)
	return exists, err
}
