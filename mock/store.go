package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.GroupStore = (*GroupStore)(nil)

// GroupStore is a mock implementation of docdex.GroupStore.
type GroupStore struct {
	StoreContentGroupFn  func(ctx context.Context, project string, group docdex.ContentGroup) error
	ContentGroupsFn      func(ctx context.Context, project string) ([]docdex.ContentGroup, error)
	ContentGroupByNameFn func(ctx context.Context, project, name string) (*docdex.ContentGroup, error)
}

func (s *GroupStore) StoreContentGroup(ctx context.Context, project string, group docdex.ContentGroup) error {
	return s.StoreContentGroupFn(ctx, project, group)
}

func (s *GroupStore) ContentGroups(ctx context.Context, project string) ([]docdex.ContentGroup, error) {
	return s.ContentGroupsFn(ctx, project)
}

func (s *GroupStore) ContentGroupByName(ctx context.Context, project, name string) (*docdex.ContentGroup, error) {
	return s.ContentGroupByNameFn(ctx, project, name)
}

var _ docdex.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is a mock implementation of docdex.ProjectStore.
type ProjectStore struct {
	CreateProjectFn func(ctx context.Context, project docdex.Project) error
	ProjectFn       func(ctx context.Context, name string) (*docdex.Project, error)
	ProjectsFn      func(ctx context.Context) ([]docdex.Project, error)
}

func (s *ProjectStore) CreateProject(ctx context.Context, project docdex.Project) error {
	return s.CreateProjectFn(ctx, project)
}

func (s *ProjectStore) Project(ctx context.Context, name string) (*docdex.Project, error) {
	return s.ProjectFn(ctx, name)
}

func (s *ProjectStore) Projects(ctx context.Context) ([]docdex.Project, error) {
	return s.ProjectsFn(ctx)
}

var _ docdex.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore is a mock implementation of docdex.EmbeddingStore.
type EmbeddingStore struct {
	StoreDocumentFn  func(ctx context.Context, doc docdex.DocumentSummary, embedding []float64) error
	StoreSectionsFn  func(ctx context.Context, slug string, sections []docdex.DocumentSection) error
	DocumentsFn      func(ctx context.Context, project, category string) ([]docdex.DocumentSummary, [][]float64, error)
	DocumentBySlugFn func(ctx context.Context, slug string) (*docdex.DocumentSummary, error)
	SectionsBySlugFn func(ctx context.Context, slug string) ([]docdex.DocumentSection, error)
}

func (s *EmbeddingStore) StoreDocument(ctx context.Context, doc docdex.DocumentSummary, embedding []float64) error {
	return s.StoreDocumentFn(ctx, doc, embedding)
}

func (s *EmbeddingStore) StoreSections(ctx context.Context, slug string, sections []docdex.DocumentSection) error {
	return s.StoreSectionsFn(ctx, slug, sections)
}

func (s *EmbeddingStore) Documents(ctx context.Context, project, category string) ([]docdex.DocumentSummary, [][]float64, error) {
	return s.DocumentsFn(ctx, project, category)
}

func (s *EmbeddingStore) DocumentBySlug(ctx context.Context, slug string) (*docdex.DocumentSummary, error) {
	return s.DocumentBySlugFn(ctx, slug)
}

func (s *EmbeddingStore) SectionsBySlug(ctx context.Context, slug string) ([]docdex.DocumentSection, error) {
	return s.SectionsBySlugFn(ctx, slug)
}
