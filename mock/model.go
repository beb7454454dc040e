package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Grouper = (*Grouper)(nil)

// Grouper is a mock implementation of docdex.Grouper.
type Grouper struct {
	GroupPagesFn func(ctx context.Context, pages []docdex.PageContent) ([]docdex.GroupAssignment, error)
}

func (g *Grouper) GroupPages(ctx context.Context, pages []docdex.PageContent) ([]docdex.GroupAssignment, error) {
	return g.GroupPagesFn(ctx, pages)
}

var _ docdex.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of docdex.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, name, description string, pages []docdex.PageContent) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, name, description string, pages []docdex.PageContent) (string, error) {
	return s.SummarizeFn(ctx, name, description, pages)
}

var _ docdex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docdex.Embedder.
type Embedder struct {
	EmbedFn      func(ctx context.Context, text string) ([]float64, error)
	EmbedBatchFn func(ctx context.Context, texts []string) ([][]float64, error)
	DimensionFn  func() int
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	return e.EmbedBatchFn(ctx, texts)
}

func (e *Embedder) Dimension() int {
	return e.DimensionFn()
}
