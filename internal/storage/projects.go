// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrDatabaseError   = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

// SchemaVersion tracks the database schema for migrations.
const SchemaVersion = 1

const schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Projects table: one row per project, card forest as a JSON document
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    card_count INTEGER NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    data TEXT NOT NULL,        -- JSON-encoded card forest
    created_at INTEGER NOT NULL, -- Unix timestamp
    updated_at INTEGER NOT NULL  -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_projects_position ON projects(position);
CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects(updated_at);
`

// =============================================================================
// PROJECT STORE
// =============================================================================

// ProjectStore persists projects in SQLite.
type ProjectStore struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the default database location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".cardstack", "projects.db"), nil
}

// Open opens (creating if needed) the project database at the given path.
func Open(path string) (*ProjectStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(
		"INSERT INTO metadata (key, value) VALUES ('schema_version', ?) ON CONFLICT(key) DO NOTHING",
		fmt.Sprint(SchemaVersion),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to record schema version: %w", err)
	}

	return &ProjectStore{db: db, path: path}, nil
}

// Close closes the database.
func (s *ProjectStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *ProjectStore) Path() string {
	return s.path
}

// =============================================================================
// CRUD
// =============================================================================

// Save upserts a project. New projects are appended at the end of the
// picker order; existing ones keep their position.
func (s *ProjectStore) Save(ctx context.Context, p *model.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", p.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, card_count, position, data, created_at, updated_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM projects), ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			card_count = excluded.card_count,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Len(), string(data), p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrDatabaseError, p.ID, err)
	}
	return nil
}

// Load fetches and validates a project by id.
func (s *ProjectStore) Load(ctx context.Context, id string) (*model.Project, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM projects WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrDatabaseError, id, err)
	}

	var p model.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", id, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("stored project %s: %w", id, err)
	}
	return &p, nil
}

// List returns project metadata in picker order.
func (s *ProjectStore) List(ctx context.Context) ([]model.ProjectMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, card_count, created_at, updated_at
		FROM projects
		ORDER BY position, updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var metas []model.ProjectMeta
	for rows.Next() {
		var m model.ProjectMeta
		var created, updated int64
		if err := rows.Scan(&m.ID, &m.Name, &m.CardCount, &created, &updated); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDatabaseError, err)
		}
		m.CreatedAt = time.Unix(created, 0)
		m.UpdatedAt = time.Unix(updated, 0)
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// Delete removes a project.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrDatabaseError, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// Rename updates a project's display name without touching its tree.
func (s *ProjectStore) Rename(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, updated_at = ? WHERE id = ?",
		name, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrDatabaseError, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// Reorder rewrites picker positions to match the given id order. Ids not
// listed keep their relative order after the listed ones.
func (s *ProjectStore) Reorder(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: reorder: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			"UPDATE projects SET position = ? WHERE id = ?", i, id); err != nil {
			return fmt.Errorf("%w: reorder %s: %v", ErrDatabaseError, id, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE projects SET position = position + ?
		WHERE id NOT IN (SELECT value FROM json_each(?))`,
		len(ids), idsJSON(ids)); err != nil {
		return fmt.Errorf("%w: reorder tail: %v", ErrDatabaseError, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: reorder commit: %v", ErrDatabaseError, err)
	}
	return nil
}

func idsJSON(ids []string) string {
	b, _ := json.Marshal(ids)
	return string(b)
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// ExportJSON writes a project as a standalone JSON file, for backup or
// sharing outside the database.
func (s *ProjectStore) ExportJSON(ctx context.Context, id, path string) error {
	p, err := s.Load(ctx, id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", id, err)
	}

	// RELIABILITY: atomic write so an interrupted export never leaves a
	// truncated backup file
	return util.AtomicWriteFile(path, data, 0644)
}

// ImportJSON reads a previously exported project file and saves it. The
// imported tree is validated before it touches the database.
func (s *ProjectStore) ImportJSON(ctx context.Context, path string) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("imported project %s: %w", path, err)
	}

	if err := s.Save(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
