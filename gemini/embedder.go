package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

// Ensure Embedder implements docdex.Embedder at compile time.
var _ docdex.Embedder = (*Embedder)(nil)

// Embedder generates text embeddings using Gemini. Input is truncated to the
// configured maximum length; empty or whitespace-only input yields a zero
// vector without invoking the model.
type Embedder struct {
	client *genai.Client
	config docdex.EmbeddingConfig
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, config docdex.EmbeddingConfig) *Embedder {
	if config.Model == "" {
		config = docdex.DefaultEmbeddingConfig()
	}
	return &Embedder{client: client, config: config}
}

// Dimension returns the configured embedding dimension.
func (e *Embedder) Dimension() int {
	return e.config.Dimension
}

// Embed generates an embedding for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts, batching model calls
// by the configured batch size. Blank items never reach the model.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))

	// Indices of texts that actually need a model call.
	var pending []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			vectors[i] = make([]float64, e.config.Dimension)
			continue
		}
		pending = append(pending, i)
	}

	batchSize := e.config.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		contents := make([]*genai.Content, len(batch))
		for j, idx := range batch {
			contents[j] = genai.NewContentFromText(truncate(texts[idx], e.config.MaxChars), genai.RoleUser)
		}

		result, err := e.client.Models.EmbedContent(ctx,
			e.config.Model,
			contents,
			&genai.EmbedContentConfig{
				TaskType: "RETRIEVAL_DOCUMENT",
			},
		)
		if err != nil {
			return nil, err
		}
		if len(result.Embeddings) != len(batch) {
			return nil, docdex.Errorf(docdex.EINTERNAL, "embedding count mismatch: got %d, want %d", len(result.Embeddings), len(batch))
		}

		for j, idx := range batch {
			values := result.Embeddings[j].Values
			vec := make([]float64, len(values))
			for k, v := range values {
				vec[k] = float64(v)
			}
			vectors[idx] = vec
		}
	}

	return vectors, nil
}
