package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of docdex.SearchService.
type SearchService struct {
	SearchFn        func(ctx context.Context, query string, opts docdex.SearchOptions) ([]docdex.SearchResult, error)
	LoadDocumentFn  func(ctx context.Context, slug string, includeSections bool) (*docdex.LoadResult, error)
	ListDocumentsFn func(ctx context.Context, opts docdex.ListOptions) (map[string][]docdex.DocumentSummary, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts docdex.SearchOptions) ([]docdex.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

func (s *SearchService) LoadDocument(ctx context.Context, slug string, includeSections bool) (*docdex.LoadResult, error) {
	return s.LoadDocumentFn(ctx, slug, includeSections)
}

func (s *SearchService) ListDocuments(ctx context.Context, opts docdex.ListOptions) (map[string][]docdex.DocumentSummary, error) {
	return s.ListDocumentsFn(ctx, opts)
}
