package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.GroupStore = (*GroupService)(nil)

// GroupService implements docdex.GroupStore using SQLite.
type GroupService struct {
	db *DB
}

// NewGroupService creates a new GroupService.
func NewGroupService(db *DB) *GroupService {
	return &GroupService{db: db}
}

// StoreContentGroup writes a group and its pages inside one transaction.
// Storing a group whose (project, name) already exists replaces it and its
// pages, so re-generating a project is idempotent at the group level.
func (s *GroupService) StoreContentGroup(ctx context.Context, project string, group docdex.ContentGroup) error {
	if project == "" {
		return docdex.Errorf(docdex.EINVALID, "project name is required")
	}
	if group.Name == "" {
		return docdex.Errorf(docdex.EINVALID, "group name is required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replace semantics: drop the previous version of this group. Pages
	// cascade via the foreign key.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM content_groups WHERE project_name = ? AND name = ?
	`, project, group.Name); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO content_groups (project_name, name, description, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, project, group.Name, group.Description, group.Summary, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	groupID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, page := range group.Pages {
		codeBlocks, err := json.Marshal(page.CodeBlocks)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (content_group_id, url, title, content, code_blocks)
			VALUES (?, ?, ?, ?, ?)
		`, groupID, page.URL, page.Title, page.Content, string(codeBlocks)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ContentGroups retrieves all groups for a project in creation order. A
// missing project yields an empty slice.
func (s *GroupService) ContentGroups(ctx context.Context, project string) ([]docdex.ContentGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, summary
		FROM content_groups
		WHERE project_name = ?
		ORDER BY id
	`, project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		id    int64
		group docdex.ContentGroup
	}
	var groups []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.group.Name, &r.group.Description, &r.group.Summary); err != nil {
			return nil, err
		}
		groups = append(groups, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]docdex.ContentGroup, 0, len(groups))
	for _, r := range groups {
		pages, err := s.pagesForGroup(ctx, r.id)
		if err != nil {
			return nil, err
		}
		r.group.Pages = pages
		out = append(out, r.group)
	}
	return out, nil
}

// ContentGroupByName retrieves one group by name, or nil when the project or
// group does not exist.
func (s *GroupService) ContentGroupByName(ctx context.Context, project, name string) (*docdex.ContentGroup, error) {
	var id int64
	var group docdex.ContentGroup

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, summary
		FROM content_groups
		WHERE project_name = ? AND name = ?
	`, project, name).Scan(&id, &group.Name, &group.Description, &group.Summary)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	group.Pages, err = s.pagesForGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) pagesForGroup(ctx context.Context, groupID int64) ([]docdex.PageContent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, content, code_blocks
		FROM pages
		WHERE content_group_id = ?
		ORDER BY id
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []docdex.PageContent
	for rows.Next() {
		var page docdex.PageContent
		var codeBlocks string
		if err := rows.Scan(&page.URL, &page.Title, &page.Content, &codeBlocks); err != nil {
			return nil, err
		}
		if codeBlocks != "" {
			if err := json.Unmarshal([]byte(codeBlocks), &page.CodeBlocks); err != nil {
				return nil, err
			}
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}
