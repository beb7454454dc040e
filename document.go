package docdex

import (
	"context"
	"strings"
	"time"
)

// DocumentSummary is a stored, retrievable document derived from one content
// group. Slug is the unique lookup key.
type DocumentSummary struct {
	Slug       string
	Project    string
	Title      string
	Summary    string
	Category   string
	Keywords   []string
	SourceURLs []string
	CreatedAt  time.Time
}

// SectionMatch is a section-level hit attached to a search result, with a
// snippet truncated to roughly preview length.
type SectionMatch struct {
	SectionID string
	Title     string
	Snippet   string
	Score     float64
}

// SearchResult is one ranked document returned by Search. Score is cosine
// similarity for semantic hits and a fixed 0.5 for keyword-fallback hits.
type SearchResult struct {
	Document DocumentSummary
	Score    float64
	Sections []SectionMatch
}

// SearchOptions filter and bound a search.
type SearchOptions struct {
	Project  string
	Category string
	Limit    int
}

// ListOptions filter and order a document listing.
type ListOptions struct {
	Project  string
	Category string
	SortBy   string // "title", "category", or "date"
}

// LoadResult is a full document returned by LoadDocument, with derived
// sections when requested.
type LoadResult struct {
	Document DocumentSummary
	Sections []DocumentSection
}

// SearchService answers the three retrieval query classes. Not-found and
// empty-result conditions are normal outcomes: they surface as empty slices
// or ENOTFOUND errors carrying suggestions, never as panics or raw SQL
// errors.
type SearchService interface {
	// Search ranks stored documents against free-text query. Semantic
	// search when embeddings are available, keyword fallback otherwise.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)

	// LoadDocument returns a full document by slug. A missing slug yields
	// ENOTFOUND with slug suggestions in the message.
	LoadDocument(ctx context.Context, slug string, includeSections bool) (*LoadResult, error)

	// ListDocuments returns documents grouped by category.
	ListDocuments(ctx context.Context, opts ListOptions) (map[string][]DocumentSummary, error)
}

// SuggestSlugs ranks stored slugs by similarity to a missing one: exact
// substring matches of slug or title first, then shared-prefix matches.
// Returns at most max suggestions.
func SuggestSlugs(want string, docs []DocumentSummary, max int) []string {
	if max <= 0 {
		return nil
	}
	type scored struct {
		slug  string
		score int
	}
	var candidates []scored
	wantLower := strings.ToLower(want)
	for _, d := range docs {
		slugLower := strings.ToLower(d.Slug)
		titleLower := strings.ToLower(d.Title)
		score := 0
		switch {
		case strings.Contains(slugLower, wantLower) || strings.Contains(wantLower, slugLower):
			score = 3
		case strings.Contains(titleLower, wantLower):
			score = 2
		case sharedPrefixLen(slugLower, wantLower) >= 3:
			score = 1
		}
		if score > 0 {
			candidates = append(candidates, scored{slug: d.Slug, score: score})
		}
	}
	// Stable by score; insertion order breaks ties.
	out := make([]string, 0, max)
	for tier := 3; tier >= 1 && len(out) < max; tier-- {
		for _, c := range candidates {
			if c.score == tier && len(out) < max {
				out = append(out, c.slug)
			}
		}
	}
	return out
}

func sharedPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
