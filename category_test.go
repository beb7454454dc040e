package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	t.Parallel()

	t.Run("group name wins", func(t *testing.T) {
		t.Parallel()
		got := docdex.InferCategory("getting-started", nil)
		assert.Equal(t, "Getting Started", got)
	})

	t.Run("api group", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "API Reference", docdex.InferCategory("api-endpoints", nil))
	})

	t.Run("most frequent url category wins", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{URL: "https://docs.acme.dev/tutorial/one"},
			{URL: "https://docs.acme.dev/tutorial/two"},
			{URL: "https://docs.acme.dev/deploy/prod"},
		}
		assert.Equal(t, "Tutorials", docdex.InferCategory("misc", pages))
	})

	t.Run("default when nothing matches", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{URL: "https://docs.acme.dev/about"},
		}
		assert.Equal(t, docdex.DefaultCategory, docdex.InferCategory("misc", pages))
	})
}
