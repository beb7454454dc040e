package sqlite

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/docdex"
)

const (
	// SimilarityThreshold is intentionally low, favoring recall over
	// precision.
	SimilarityThreshold = 0.1

	// KeywordFallbackScore is the fixed relevance assigned to keyword
	// search hits, where no similarity metric is computed.
	KeywordFallbackScore = 0.5

	defaultSearchLimit = 5
	maxSearchLimit     = 20

	sectionMatchLimit = 3
	snippetLen        = 150

	slugSuggestionLimit = 5
)

// Compile-time interface verification.
var _ docdex.SearchService = (*SearchService)(nil)

// SearchService implements docdex.SearchService: semantic search over stored
// embeddings with graceful degradation to keyword search. A database written
// without the embedding path still serves retrieval through document
// summaries derived from its content groups.
type SearchService struct {
	db         *DB
	embeddings *EmbeddingService
	embedder   docdex.Embedder // nil disables semantic search
	index      VectorIndex
	logger     *slog.Logger
}

// NewSearchService creates a SearchService, probing the vector-index
// capability once.
func NewSearchService(ctx context.Context, db *DB, embedder docdex.Embedder, logger *slog.Logger) *SearchService {
	embeddings := NewEmbeddingService(db)
	return &SearchService{
		db:         db,
		embeddings: embeddings,
		embedder:   embedder,
		index:      ProbeVectorIndex(ctx, db, embeddings),
		logger:     logger,
	}
}

// Search ranks stored documents against a free-text query. With an embedder
// configured the query is embedded and scored by cosine similarity; any
// semantic failure or empty result degrades to keyword search.
func (s *SearchService) Search(ctx context.Context, query string, opts docdex.SearchOptions) ([]docdex.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "search query is required")
	}
	limit := clampLimit(opts.Limit)

	if s.embedder != nil {
		results, err := s.semanticSearch(ctx, query, opts, limit)
		if err != nil {
			s.logWarn("semantic search failed, falling back to keyword search", "error", err)
		} else if len(results) > 0 {
			return results, nil
		}
	}

	return s.keywordSearch(ctx, query, opts, limit)
}

func (s *SearchService) semanticSearch(ctx context.Context, query string, opts docdex.SearchOptions, limit int) ([]docdex.SearchResult, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	queryVec = docdex.NormalizeVector(queryVec)

	scored, err := s.index.TopDocuments(ctx, queryVec, opts.Project, opts.Category, SimilarityThreshold, limit)
	if err != nil {
		return nil, err
	}

	results := make([]docdex.SearchResult, 0, len(scored))
	for _, sd := range scored {
		sections, err := s.sectionMatches(ctx, sd.Document.Slug, queryVec)
		if err != nil {
			s.logWarn("section scoring failed", "slug", sd.Document.Slug, "error", err)
		}
		results = append(results, docdex.SearchResult{
			Document: sd.Document,
			Score:    sd.Score,
			Sections: sections,
		})
	}
	return results, nil
}

// sectionMatches scores a document's sections against the query vector and
// returns the best few as truncated snippets.
func (s *SearchService) sectionMatches(ctx context.Context, slug string, queryVec []float64) ([]docdex.SectionMatch, error) {
	sections, err := s.embeddings.SectionsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var matches []docdex.SectionMatch
	for _, section := range sections {
		if len(section.Embedding) == 0 {
			continue
		}
		score := docdex.CosineSimilarity(queryVec, docdex.NormalizeVector(section.Embedding))
		if score < SimilarityThreshold {
			continue
		}
		matches = append(matches, docdex.SectionMatch{
			SectionID: section.SectionID,
			Title:     section.Title,
			Snippet:   snippet(section.Content),
			Score:     score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > sectionMatchLimit {
		matches = matches[:sectionMatchLimit]
	}
	return matches, nil
}

// keywordSearch is the LIKE-based fallback: any whitespace-delimited term
// may match title or summary (OR semantics), while project and category
// filters always apply. When the embedding tables hold nothing, matching
// continues against content groups.
func (s *SearchService) keywordSearch(ctx context.Context, query string, opts docdex.SearchOptions, limit int) ([]docdex.SearchResult, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	results, err := s.embeddedKeywordSearch(ctx, terms, opts, limit)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results, nil
	}
	return s.groupKeywordSearch(ctx, terms, opts, limit)
}

func (s *SearchService) embeddedKeywordSearch(ctx context.Context, terms []string, opts docdex.SearchOptions, limit int) ([]docdex.SearchResult, error) {
	var sql strings.Builder
	var args []any
	sql.WriteString(`
		SELECT slug, project_name, title, summary, category, keywords, source_urls, embedding, created_at
		FROM document_embeddings
		WHERE (`)
	for i, term := range terms {
		if i > 0 {
			sql.WriteString(" OR ")
		}
		sql.WriteString("LOWER(title) LIKE ? OR LOWER(summary) LIKE ?")
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern)
	}
	sql.WriteString(")")
	if opts.Project != "" {
		sql.WriteString(" AND project_name = ?")
		args = append(args, opts.Project)
	}
	if opts.Category != "" {
		sql.WriteString(" AND category = ?")
		args = append(args, opts.Category)
	}
	sql.WriteString(" ORDER BY created_at DESC LIMIT ?")
	args = append(args, limit)

	rows, err := s.embeddings.db.QueryContext(ctx, sql.String(), args...)
	if err != nil {
		if isMissingSchemaErr(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var results []docdex.SearchResult
	for rows.Next() {
		doc, _, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, docdex.SearchResult{
			Document: doc,
			Score:    KeywordFallbackScore,
		})
	}
	return results, rows.Err()
}

func (s *SearchService) groupKeywordSearch(ctx context.Context, terms []string, opts docdex.SearchOptions, limit int) ([]docdex.SearchResult, error) {
	docs, err := s.groupDocuments(ctx, opts.Project, opts.Category)
	if err != nil {
		return nil, err
	}

	var results []docdex.SearchResult
	for _, doc := range docs {
		haystack := strings.ToLower(doc.Title + " " + doc.Summary)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				results = append(results, docdex.SearchResult{
					Document: doc,
					Score:    KeywordFallbackScore,
				})
				break
			}
		}
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// groupDocuments derives vector-less document summaries from stored content
// groups. Slug derivation mirrors the one used when documents are embedded,
// so the same group resolves to the same slug in either mode.
func (s *SearchService) groupDocuments(ctx context.Context, project, category string) ([]docdex.DocumentSummary, error) {
	query := `
		SELECT project_name, name, summary, created_at
		FROM content_groups`
	var args []any
	if project != "" {
		query += " WHERE project_name = ?"
		args = append(args, project)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []docdex.DocumentSummary
	for rows.Next() {
		var projectName, name, summary, createdAt string
		if err := rows.Scan(&projectName, &name, &summary, &createdAt); err != nil {
			return nil, err
		}
		doc := docdex.DocumentSummary{
			Slug:     docdex.Slugify(projectName + "-" + name),
			Project:  projectName,
			Title:    summaryTitle(summary, name),
			Summary:  summary,
			Category: docdex.InferCategory(name, nil),
		}
		doc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if category != "" && doc.Category != category {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *SearchService) groupDocumentBySlug(ctx context.Context, slug string) (*docdex.DocumentSummary, error) {
	docs, err := s.groupDocuments(ctx, "", "")
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Slug == slug {
			return &docs[i], nil
		}
	}
	return nil, nil
}

// summaryTitle extracts the leading markdown heading from a group summary,
// falling back to the group name.
func summaryTitle(summary, name string) string {
	first := strings.TrimSpace(strings.SplitN(strings.TrimSpace(summary), "\n", 2)[0])
	if strings.HasPrefix(first, "#") {
		if title := strings.TrimSpace(strings.TrimLeft(first, "# ")); title != "" {
			return title
		}
	}
	return name
}

// LoadDocument returns the full stored document. A missing slug yields
// ENOTFOUND with similarity-based slug suggestions in the message.
func (s *SearchService) LoadDocument(ctx context.Context, slug string, includeSections bool) (*docdex.LoadResult, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "document slug is required")
	}

	doc, err := s.embeddings.DocumentBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		if doc, err = s.groupDocumentBySlug(ctx, slug); err != nil {
			return nil, err
		}
	}
	if doc == nil {
		suggestions := s.suggestSlugs(ctx, slug)
		if len(suggestions) > 0 {
			return nil, docdex.Errorf(docdex.ENOTFOUND,
				"document %q not found; similar slugs: %s", slug, strings.Join(suggestions, ", "))
		}
		return nil, docdex.Errorf(docdex.ENOTFOUND, "document %q not found", slug)
	}

	result := &docdex.LoadResult{Document: *doc}
	if includeSections {
		sections, err := s.embeddings.SectionsBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if len(sections) == 0 {
			sections = docdex.ExtractSections(doc.Summary, doc.Keywords)
		}
		result.Sections = sections
	}
	return result, nil
}

func (s *SearchService) suggestSlugs(ctx context.Context, want string) []string {
	docs, _, err := s.embeddings.Documents(ctx, "", "")
	if err != nil {
		return nil
	}
	if groupDocs, err := s.groupDocuments(ctx, "", ""); err == nil {
		seen := make(map[string]bool, len(docs))
		for _, doc := range docs {
			seen[doc.Slug] = true
		}
		for _, doc := range groupDocs {
			if !seen[doc.Slug] {
				docs = append(docs, doc)
			}
		}
	}
	return docdex.SuggestSlugs(want, docs, slugSuggestionLimit)
}

// ListDocuments returns stored documents grouped by category, each category
// ordered by the requested sort key.
func (s *SearchService) ListDocuments(ctx context.Context, opts docdex.ListOptions) (map[string][]docdex.DocumentSummary, error) {
	docs, _, err := s.embeddings.Documents(ctx, opts.Project, opts.Category)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		if docs, err = s.groupDocuments(ctx, opts.Project, opts.Category); err != nil {
			return nil, err
		}
	}

	sortDocuments(docs, opts.SortBy)

	grouped := make(map[string][]docdex.DocumentSummary)
	for _, doc := range docs {
		category := doc.Category
		if category == "" {
			category = docdex.DefaultCategory
		}
		grouped[category] = append(grouped[category], doc)
	}
	return grouped, nil
}

func sortDocuments(docs []docdex.DocumentSummary, sortBy string) {
	switch sortBy {
	case "title":
		sort.SliceStable(docs, func(i, j int) bool {
			return strings.ToLower(docs[i].Title) < strings.ToLower(docs[j].Title)
		})
	case "category":
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Category < docs[j].Category
		})
	default: // date, newest first
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		})
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

func snippet(content string) string {
	content = strings.TrimSpace(content)
	if len(content) <= snippetLen {
		return content
	}
	cut := snippetLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}

func (s *SearchService) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
