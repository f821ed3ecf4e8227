// Package storage persists timer settings, tasks, groups and player state in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"focusboard/internal/core/model"

	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the SQLite connection.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open connects to the database file, creating the schema when needed.
func Open(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer keeps sqlite from reporting SQLITE_BUSY under concurrent handlers
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &Database{DB: conn, dbFile: path}
	if err := db.createTables(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := db.seedGroups(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the connection.
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS task_groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			group_id TEXT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(group_id) REFERENCES task_groups(id) ON DELETE SET NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_group ON tasks(group_id);`,
	}

	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// seedGroups inserts the default groups into an empty store.
func (d *Database) seedGroups(ctx context.Context) error {
	var count int
	if err := d.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM task_groups").Scan(&count); err != nil {
		return wrapGroupErr("seed", "", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapGroupErr("seed", "", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, group := range model.DefaultTaskGroups() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO task_groups (id, name, color, position) VALUES (?, ?, ?, ?)",
			group.ID, group.Name, group.Color, i); err != nil {
			return wrapGroupErr("seed", group.ID, err)
		}
	}
	return wrapGroupErr("seed", "", tx.Commit())
}
