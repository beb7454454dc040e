// Package sqlite provides SQLite-based storage for projects, content
// groups, and embeddings, plus the retrieval engine built on top of them.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing with
	// "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist. Ownership
// edges are declared with ON DELETE CASCADE even though the pipeline never
// deletes projects, so a future delete can cascade.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			name TEXT PRIMARY KEY,
			root_url TEXT NOT NULL,
			created_at TEXT NOT NULL,
			embedding_model TEXT NOT NULL DEFAULT '',
			embedding_dimension INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS content_groups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_name TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			UNIQUE(project_name, name)
		);

		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content_group_id INTEGER NOT NULL REFERENCES content_groups(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			code_blocks TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS document_embeddings (
			slug TEXT PRIMARY KEY,
			project_name TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			source_urls TEXT NOT NULL DEFAULT '[]',
			embedding BLOB,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS section_embeddings (
			section_id TEXT PRIMARY KEY,
			document_slug TEXT NOT NULL REFERENCES document_embeddings(slug) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0,
			keywords TEXT NOT NULL DEFAULT '[]',
			embedding BLOB,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_content_groups_project ON content_groups(project_name);
		CREATE INDEX IF NOT EXISTS idx_pages_group ON pages(content_group_id);
		CREATE INDEX IF NOT EXISTS idx_document_embeddings_project ON document_embeddings(project_name);
		CREATE INDEX IF NOT EXISTS idx_section_embeddings_slug ON section_embeddings(document_slug);
	`

	_, err := db.db.Exec(schema)
	return err
}

// isMissingSchemaErr reports whether err indicates a legacy database without
// the queried table or column. These degrade soft: the feature is
// unavailable, not broken.
func isMissingSchemaErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column")
}

// encodeVector serializes an embedding as a JSON float array for BLOB
// storage.
func encodeVector(v []float64) ([]byte, error) {
	if v == nil {
		v = []float64{}
	}
	return json.Marshal(v)
}

// decodeVector deserializes an embedding stored by encodeVector. Empty
// blobs decode to nil.
func decodeVector(data []byte) ([]float64, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode embedding: %w", err)
	}
	return v, nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStrings(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var v []string
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("failed to decode string list: %w", err)
	}
	return v, nil
}
