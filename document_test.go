package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
)

func TestSuggestSlugs(t *testing.T) {
	t.Parallel()

	docs := []docdex.DocumentSummary{
		{Slug: "getting-started", Title: "Getting Started"},
		{Slug: "api-reference", Title: "API Reference"},
		{Slug: "api-authentication", Title: "Authentication"},
		{Slug: "deployment", Title: "Deploying to Production"},
	}

	t.Run("substring match ranks first", func(t *testing.T) {
		t.Parallel()
		got := docdex.SuggestSlugs("api", docs, 3)
		assert.Equal(t, []string{"api-reference", "api-authentication"}, got)
	})

	t.Run("title match", func(t *testing.T) {
		t.Parallel()
		got := docdex.SuggestSlugs("production", docs, 3)
		assert.Equal(t, []string{"deployment"}, got)
	})

	t.Run("respects max", func(t *testing.T) {
		t.Parallel()
		got := docdex.SuggestSlugs("a", docs, 1)
		assert.Len(t, got, 1)
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, docdex.SuggestSlugs("zzz", docs, 3))
	})
}
