package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingService(t *testing.T) {
	t.Parallel()

	t.Run("store and retrieve document", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		mustCreateProject(t, db, "acme")
		s := sqlite.NewEmbeddingService(db)
		ctx := context.Background()

		doc := docdex.DocumentSummary{
			Slug:       "acme-guides",
			Project:    "acme",
			Title:      "Guides",
			Summary:    "# Guides",
			Category:   "Guides",
			Keywords:   []string{"install", "configure"},
			SourceURLs: []string{"https://docs.acme.dev/guides/a"},
		}
		require.NoError(t, s.StoreDocument(ctx, doc, []float64{0.1, 0.2, 0.3}))

		got, err := s.DocumentBySlug(ctx, "acme-guides")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Guides", got.Title)
		assert.Equal(t, []string{"install", "configure"}, got.Keywords)

		docs, vectors, err := s.Documents(ctx, "acme", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		require.Len(t, vectors, 1)
		assert.Equal(t, []float64{0.1, 0.2, 0.3}, vectors[0])
	})

	t.Run("upsert by slug", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		mustCreateProject(t, db, "acme")
		s := sqlite.NewEmbeddingService(db)
		ctx := context.Background()

		doc := docdex.DocumentSummary{Slug: "acme-guides", Project: "acme", Title: "Old"}
		require.NoError(t, s.StoreDocument(ctx, doc, []float64{1, 0}))
		doc.Title = "New"
		require.NoError(t, s.StoreDocument(ctx, doc, []float64{0, 1}))

		docs, vectors, err := s.Documents(ctx, "acme", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "New", docs[0].Title)
		assert.Equal(t, []float64{0, 1}, vectors[0])
	})

	t.Run("dimension adopted then enforced", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		mustCreateProject(t, db, "acme")
		s := sqlite.NewEmbeddingService(db)
		ctx := context.Background()

		// First store declares the dimension.
		require.NoError(t, s.StoreDocument(ctx,
			docdex.DocumentSummary{Slug: "a", Project: "acme"}, []float64{1, 2, 3}))

		// A mismatched vector is rejected.
		err := s.StoreDocument(ctx,
			docdex.DocumentSummary{Slug: "b", Project: "acme"}, []float64{1, 2})
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))

		project, err := sqlite.NewProjectService(db).Project(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, 3, project.EmbeddingDimension)
	})

	t.Run("unknown project rejected", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		s := sqlite.NewEmbeddingService(db)
		err := s.StoreDocument(context.Background(),
			docdex.DocumentSummary{Slug: "a", Project: "ghost"}, []float64{1})
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("sections replace semantics", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		mustCreateProject(t, db, "acme")
		s := sqlite.NewEmbeddingService(db)
		ctx := context.Background()

		require.NoError(t, s.StoreDocument(ctx,
			docdex.DocumentSummary{Slug: "acme-guides", Project: "acme"}, []float64{1}))

		first := []docdex.DocumentSection{
			{SectionID: "s1", Title: "One", Content: "First.", Order: 0, Embedding: []float64{1}},
			{SectionID: "s2", Title: "Two", Content: "Second.", Order: 1, Embedding: []float64{1}},
		}
		require.NoError(t, s.StoreSections(ctx, "acme-guides", first))

		second := []docdex.DocumentSection{
			{SectionID: "s3", Title: "Three", Content: "Third.", Order: 0, Embedding: []float64{1}},
		}
		require.NoError(t, s.StoreSections(ctx, "acme-guides", second))

		got, err := s.SectionsBySlug(ctx, "acme-guides")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Three", got[0].Title)
	})

	t.Run("missing slug returns nil", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		got, err := sqlite.NewEmbeddingService(db).DocumentBySlug(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("legacy database degrades soft", func(t *testing.T) {
		t.Parallel()
		db := mustOpenDB(t)
		ctx := context.Background()

		// Simulate a database created before embeddings existed.
		_, err := db.ExecContext(ctx, "DROP TABLE section_embeddings")
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, "DROP TABLE document_embeddings")
		require.NoError(t, err)

		s := sqlite.NewEmbeddingService(db)
		docs, vectors, err := s.Documents(ctx, "acme", "")
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.Empty(t, vectors)

		sections, err := s.SectionsBySlug(ctx, "any")
		require.NoError(t, err)
		assert.Empty(t, sections)

		doc, err := s.DocumentBySlug(ctx, "any")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})
}
