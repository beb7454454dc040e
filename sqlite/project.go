package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.ProjectStore = (*ProjectService)(nil)

// ProjectService implements docdex.ProjectStore using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

// CreateProject inserts a project, updating the stored record when the name
// already exists.
func (s *ProjectService) CreateProject(ctx context.Context, project docdex.Project) error {
	if err := docdex.ValidateProjectName(project.Name); err != nil {
		return err
	}
	if err := docdex.ValidateURL(project.RootURL); err != nil {
		return err
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, root_url, created_at, embedding_model, embedding_dimension)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			root_url = excluded.root_url,
			embedding_model = excluded.embedding_model,
			embedding_dimension = excluded.embedding_dimension
	`, project.Name, project.RootURL, project.CreatedAt.Format(time.RFC3339),
		project.EmbeddingModel, project.EmbeddingDimension)

	return err
}

// Project retrieves a project by name. A missing project returns nil, not an
// error.
func (s *ProjectService) Project(ctx context.Context, name string) (*docdex.Project, error) {
	var project docdex.Project
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT name, root_url, created_at, embedding_model, embedding_dimension
		FROM projects
		WHERE name = ?
	`, name).Scan(&project.Name, &project.RootURL, &createdAt,
		&project.EmbeddingModel, &project.EmbeddingDimension)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	project.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &project, nil
}

// Projects retrieves all stored projects, newest first.
func (s *ProjectService) Projects(ctx context.Context) ([]docdex.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, root_url, created_at, embedding_model, embedding_dimension
		FROM projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []docdex.Project
	for rows.Next() {
		var project docdex.Project
		var createdAt string

		if err := rows.Scan(&project.Name, &project.RootURL, &createdAt,
			&project.EmbeddingModel, &project.EmbeddingDimension); err != nil {
			return nil, err
		}

		project.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		projects = append(projects, project)
	}

	return projects, rows.Err()
}
