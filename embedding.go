package docdex

import "context"

// EmbeddingConfig identifies the embedding model and the dimension of the
// vectors it produces. The stored dimension is the contract every persisted
// vector must satisfy.
type EmbeddingConfig struct {
	Model     string
	Dimension int
	MaxChars  int
	BatchSize int
}

// DefaultEmbeddingConfig returns the standard embedding settings.
func DefaultEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		Model:     "gemini-embedding-001",
		Dimension: 768,
		MaxChars:  8000,
		BatchSize: 20,
	}
}

// Embedder turns text into fixed-length float vectors. Empty or
// whitespace-only input yields a zero vector of the configured dimension
// without invoking the model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Dimension() int
}

// EmbeddingStore persists document- and section-level embedding records.
// Absence of the embedding tables (a legacy database) degrades soft: reads
// return empty results and the capability reports unavailable.
type EmbeddingStore interface {
	// StoreDocument upserts a document summary and its embedding.
	StoreDocument(ctx context.Context, doc DocumentSummary, embedding []float64) error

	// StoreSections replaces a document's sections and their embeddings.
	StoreSections(ctx context.Context, slug string, sections []DocumentSection) error

	// Documents returns stored document summaries with their embeddings,
	// optionally filtered by project and category.
	Documents(ctx context.Context, project, category string) ([]DocumentSummary, [][]float64, error)

	// DocumentBySlug returns one document, or nil when the slug is
	// unknown.
	DocumentBySlug(ctx context.Context, slug string) (*DocumentSummary, error)

	// SectionsBySlug returns a document's sections in order.
	SectionsBySlug(ctx context.Context, slug string) ([]DocumentSection, error)
}
