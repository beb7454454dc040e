// Package mock provides function-field test doubles for the domain
// interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docdex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ docdex.RenderFetcher = (*RenderFetcher)(nil)

// RenderFetcher is a mock implementation of docdex.RenderFetcher.
type RenderFetcher struct {
	FetchFn         func(ctx context.Context, url string) (string, error)
	FetchExpandedFn func(ctx context.Context, url string) (string, error)
}

func (f *RenderFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *RenderFetcher) FetchExpanded(ctx context.Context, url string) (string, error) {
	return f.FetchExpandedFn(ctx, url)
}
