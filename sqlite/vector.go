package sqlite

import (
	"context"
	"sort"

	"github.com/fwojciec/docdex"
)

// ScoredDocument is a document paired with its similarity to a query vector.
type ScoredDocument struct {
	Document docdex.DocumentSummary
	Score    float64
}

// VectorIndex answers nearest-document queries. The implementation is
// selected once by a capability probe at startup: the native SQL vector
// extension when the driver exposes it, otherwise an in-process linear scan.
type VectorIndex interface {
	TopDocuments(ctx context.Context, query []float64, project, category string, threshold float64, limit int) ([]ScoredDocument, error)
}

// ProbeVectorIndex selects the best available VectorIndex for db. The probe
// runs once; callers cache the result for the process lifetime.
func ProbeVectorIndex(ctx context.Context, db *DB, store *EmbeddingService) VectorIndex {
	var version string
	if err := db.QueryRowContext(ctx, `SELECT vec_version()`).Scan(&version); err == nil && version != "" {
		return &nativeIndex{db: db, store: store}
	}
	return &linearIndex{store: store}
}

// nativeIndex ranks documents with the sqlite vector extension's cosine
// distance, avoiding decoding every stored vector into the application.
type nativeIndex struct {
	db    *DB
	store *EmbeddingService
}

var _ VectorIndex = (*nativeIndex)(nil)

func (n *nativeIndex) TopDocuments(ctx context.Context, query []float64, project, category string, threshold float64, limit int) ([]ScoredDocument, error) {
	vector, err := encodeVector(query)
	if err != nil {
		return nil, err
	}

	sql := `
		SELECT slug, project_name, title, summary, category, keywords, source_urls, embedding, created_at,
			1.0 - vec_distance_cosine(embedding, ?) AS score
		FROM document_embeddings
		WHERE embedding IS NOT NULL`
	args := []any{string(vector)}
	if project != "" {
		sql += " AND project_name = ?"
		args = append(args, project)
	}
	if category != "" {
		sql += " AND category = ?"
		args = append(args, category)
	}
	sql += " ORDER BY score DESC LIMIT ?"
	args = append(args, limit)

	rows, err := n.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScoredDocument
	for rows.Next() {
		var doc docdex.DocumentSummary
		var keywords, sourceURLs, createdAt string
		var embedding []byte
		var score float64
		if err := rows.Scan(&doc.Slug, &doc.Project, &doc.Title, &doc.Summary, &doc.Category,
			&keywords, &sourceURLs, &embedding, &createdAt, &score); err != nil {
			return nil, err
		}
		if score < threshold {
			continue
		}
		if doc.Keywords, err = decodeStrings(keywords); err != nil {
			return nil, err
		}
		if doc.SourceURLs, err = decodeStrings(sourceURLs); err != nil {
			return nil, err
		}
		out = append(out, ScoredDocument{Document: doc, Score: score})
	}
	return out, rows.Err()
}

// linearIndex scans every stored vector and scores it in the application.
// Document counts here are modest (one per content group), so the scan is
// acceptable.
type linearIndex struct {
	store *EmbeddingService
}

var _ VectorIndex = (*linearIndex)(nil)

func (l *linearIndex) TopDocuments(ctx context.Context, query []float64, project, category string, threshold float64, limit int) ([]ScoredDocument, error) {
	docs, vectors, err := l.store.Documents(ctx, project, category)
	if err != nil {
		return nil, err
	}

	normalized := docdex.NormalizeVector(query)
	var out []ScoredDocument
	for i, doc := range docs {
		if len(vectors[i]) == 0 {
			continue
		}
		score := docdex.CosineSimilarity(normalized, docdex.NormalizeVector(vectors[i]))
		if score < threshold {
			continue
		}
		out = append(out, ScoredDocument{Document: doc, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
