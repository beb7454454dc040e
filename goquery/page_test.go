package goquery_test

import (
	"testing"

	"github.com/fwojciec/docdex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParsePage(t *testing.T) {
	t.Parallel()

	t.Run("title from h1 and chrome stripped", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Ignored Title</title></head><body>
		<nav>Navigation content</nav>
		<h1>Main Heading</h1>
		<p>Body text.</p>
		<footer>Footer content</footer>
		</body></html>`

		page, err := goquery.NewParser().ParsePage(html, "https://docs.acme.dev/page")
		require.NoError(t, err)
		assert.Equal(t, "Main Heading", page.Title)
		assert.Contains(t, page.Content, "Body text.")
		assert.NotContains(t, page.Content, "Navigation content")
		assert.NotContains(t, page.Content, "Footer content")
		assert.Equal(t, "https://docs.acme.dev/page", page.URL)
	})

	t.Run("title falls back to title element", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Doc Title</title></head><body><p>Text.</p></body></html>`
		page, err := goquery.NewParser().ParsePage(html, "u")
		require.NoError(t, err)
		assert.Equal(t, "Doc Title", page.Title)
	})

	t.Run("no title", func(t *testing.T) {
		t.Parallel()
		page, err := goquery.NewParser().ParsePage("<html><body><p>Text.</p></body></html>", "u")
		require.NoError(t, err)
		assert.Equal(t, "", page.Title)
	})

	t.Run("code blocks in order without nested duplicates", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><main>
		<pre><code>first block</code></pre>
		<p>Use <code>inline()</code> here.</p>
		<pre>   </pre>
		<pre>second block</pre>
		</main></body></html>`

		page, err := goquery.NewParser().ParsePage(html, "u")
		require.NoError(t, err)
		require.Len(t, page.CodeBlocks, 3)
		assert.Equal(t, "first block", page.CodeBlocks[0])
		assert.Equal(t, "inline()", page.CodeBlocks[1])
		assert.Equal(t, "second block", page.CodeBlocks[2])
	})

	t.Run("prose prefers main over body", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
		<div>Outside text</div>
		<main><p>First paragraph.</p><p>Second paragraph.</p></main>
		</body></html>`

		page, err := goquery.NewParser().ParsePage(html, "u")
		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\nSecond paragraph.", page.Content)
		assert.NotContains(t, page.Content, "Outside text")
	})

	t.Run("article when no main", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
		<div>Outside</div>
		<article><p>Article text.</p></article>
		</body></html>`

		page, err := goquery.NewParser().ParsePage(html, "u")
		require.NoError(t, err)
		assert.Equal(t, "Article text.", page.Content)
	})
}
