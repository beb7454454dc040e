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
var _ docdex.EmbeddingStore = (*EmbeddingService)(nil)

// EmbeddingService implements docdex.EmbeddingStore using SQLite. Reads
// against a legacy database without the embedding tables degrade soft by
// returning empty results.
type EmbeddingService struct {
	db *DB
}

// NewEmbeddingService creates a new EmbeddingService.
func NewEmbeddingService(db *DB) *EmbeddingService {
	return &EmbeddingService{db: db}
}

// StoreDocument upserts a document summary and its embedding. The vector
// length must agree with the project's declared embedding dimension; a
// project without a declared dimension adopts the vector's.
func (s *EmbeddingService) StoreDocument(ctx context.Context, doc docdex.DocumentSummary, embedding []float64) error {
	if doc.Slug == "" {
		return docdex.Errorf(docdex.EINVALID, "document slug is required")
	}

	if err := s.checkDimension(ctx, doc.Project, len(embedding)); err != nil {
		return err
	}

	keywords, err := encodeStrings(doc.Keywords)
	if err != nil {
		return err
	}
	sourceURLs, err := encodeStrings(doc.SourceURLs)
	if err != nil {
		return err
	}
	vector, err := encodeVector(embedding)
	if err != nil {
		return err
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO document_embeddings
			(slug, project_name, title, summary, category, keywords, source_urls, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.Slug, doc.Project, doc.Title, doc.Summary, doc.Category,
		keywords, sourceURLs, vector, createdAt.Format(time.RFC3339))
	return err
}

// checkDimension enforces the embedding-dimension invariant against the
// project record. A zero stored dimension is corrected from the vector.
func (s *EmbeddingService) checkDimension(ctx context.Context, project string, got int) error {
	var declared int
	err := s.db.QueryRowContext(ctx,
		`SELECT embedding_dimension FROM projects WHERE name = ?`, project,
	).Scan(&declared)
	if errors.Is(err, sql.ErrNoRows) {
		return docdex.Errorf(docdex.ENOTFOUND, "project %q not found", project)
	}
	if err != nil {
		return err
	}

	if declared == 0 && got > 0 {
		_, err := s.db.ExecContext(ctx,
			`UPDATE projects SET embedding_dimension = ? WHERE name = ?`, got, project)
		return err
	}
	if got > 0 && got != declared {
		return docdex.Errorf(docdex.EINVALID,
			"embedding dimension mismatch: project %q declares %d, got %d", project, declared, got)
	}
	return nil
}

// StoreSections replaces a document's sections and their embeddings in one
// transaction.
func (s *EmbeddingService) StoreSections(ctx context.Context, slug string, sections []docdex.DocumentSection) error {
	if slug == "" {
		return docdex.Errorf(docdex.EINVALID, "document slug is required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM section_embeddings WHERE document_slug = ?`, slug); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, section := range sections {
		keywords, err := encodeStrings(section.Keywords)
		if err != nil {
			return err
		}
		vector, err := encodeVector(section.Embedding)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO section_embeddings
				(section_id, document_slug, title, content, position, keywords, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, section.SectionID, slug, section.Title, section.Content,
			section.Order, keywords, vector, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Documents retrieves stored document summaries and their embeddings,
// optionally filtered by project and category. A legacy database yields
// empty results.
func (s *EmbeddingService) Documents(ctx context.Context, project, category string) ([]docdex.DocumentSummary, [][]float64, error) {
	query := `
		SELECT slug, project_name, title, summary, category, keywords, source_urls, embedding, created_at
		FROM document_embeddings
		WHERE 1=1`
	var args []any
	if project != "" {
		query += " AND project_name = ?"
		args = append(args, project)
	}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isMissingSchemaErr(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer rows.Close()

	var docs []docdex.DocumentSummary
	var vectors [][]float64
	for rows.Next() {
		doc, vector, err := scanDocument(rows)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
		vectors = append(vectors, vector)
	}
	return docs, vectors, rows.Err()
}

// DocumentBySlug retrieves one document, or nil when the slug is unknown or
// the database predates embeddings.
func (s *EmbeddingService) DocumentBySlug(ctx context.Context, slug string) (*docdex.DocumentSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT slug, project_name, title, summary, category, keywords, source_urls, embedding, created_at
		FROM document_embeddings
		WHERE slug = ?
	`, slug)

	doc, _, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if isMissingSchemaErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// SectionsBySlug retrieves a document's sections in order. A legacy database
// yields an empty slice.
func (s *EmbeddingService) SectionsBySlug(ctx context.Context, slug string) ([]docdex.DocumentSection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section_id, title, content, position, keywords, embedding
		FROM section_embeddings
		WHERE document_slug = ?
		ORDER BY position
	`, slug)
	if err != nil {
		if isMissingSchemaErr(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var sections []docdex.DocumentSection
	for rows.Next() {
		var section docdex.DocumentSection
		var keywords string
		var vector []byte
		if err := rows.Scan(&section.SectionID, &section.Title, &section.Content,
			&section.Order, &keywords, &vector); err != nil {
			return nil, err
		}
		if section.Keywords, err = decodeStrings(keywords); err != nil {
			return nil, err
		}
		if section.Embedding, err = decodeVector(vector); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanDocument.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (docdex.DocumentSummary, []float64, error) {
	var doc docdex.DocumentSummary
	var keywords, sourceURLs, createdAt string
	var vector []byte

	if err := row.Scan(&doc.Slug, &doc.Project, &doc.Title, &doc.Summary, &doc.Category,
		&keywords, &sourceURLs, &vector, &createdAt); err != nil {
		return docdex.DocumentSummary{}, nil, err
	}

	var err error
	if doc.Keywords, err = decodeStrings(keywords); err != nil {
		return docdex.DocumentSummary{}, nil, err
	}
	if doc.SourceURLs, err = decodeStrings(sourceURLs); err != nil {
		return docdex.DocumentSummary{}, nil, err
	}
	if doc.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return docdex.DocumentSummary{}, nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	embedding, err := decodeVector(vector)
	if err != nil {
		return docdex.DocumentSummary{}, nil, err
	}
	return doc, embedding, nil
}
