package gemini_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONArray(t *testing.T) {
	t.Parallel()

	t.Run("bare array", func(t *testing.T) {
		t.Parallel()
		var groups []docdex.GroupAssignment
		err := gemini.ParseJSONArray(`[{"name":"auth","page_indices":[0,2],"description":"Auth docs"}]`, &groups)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "auth", groups[0].Name)
		assert.Equal(t, []int{0, 2}, groups[0].PageIndices)
	})

	t.Run("array wrapped in prose and fences", func(t *testing.T) {
		t.Parallel()
		text := "Here are the groups:\n```json\n[{\"name\":\"api\",\"page_indices\":[1]}]\n```\nLet me know!"
		var groups []docdex.GroupAssignment
		err := gemini.ParseJSONArray(text, &groups)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "api", groups[0].Name)
	})

	t.Run("no array", func(t *testing.T) {
		t.Parallel()
		var groups []docdex.GroupAssignment
		err := gemini.ParseJSONArray("I could not group these pages.", &groups)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("malformed array", func(t *testing.T) {
		t.Parallel()
		var groups []docdex.GroupAssignment
		err := gemini.ParseJSONArray(`[{"name": }]`, &groups)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}

func TestEnsureHeading(t *testing.T) {
	t.Parallel()

	t.Run("keeps existing heading", func(t *testing.T) {
		t.Parallel()
		got := gemini.EnsureHeading("auth", "# Authentication\n\nDetails.")
		assert.Equal(t, "# Authentication\n\nDetails.", got)
	})

	t.Run("synthesizes heading from slug", func(t *testing.T) {
		t.Parallel()
		got := gemini.EnsureHeading("getting-started", "Install the package first.")
		assert.Equal(t, "# Getting Started\n\nInstall the package first.", got)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "# Api Reference", gemini.EnsureHeading("api_reference", ""))
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "# Documentation\n\nBody.", gemini.EnsureHeading("", "Body."))
	})
}

func TestBuildFallbackSummary(t *testing.T) {
	t.Parallel()

	pages := []docdex.PageContent{
		{URL: "https://docs.acme.dev/a", Title: "Page A", Content: "Alpha content.", CodeBlocks: []string{"print('a')"}},
		{URL: "https://docs.acme.dev/b", Content: "Beta content."},
	}
	got := gemini.BuildFallbackSummary("general", "General docs.", pages)

	assert.True(t, len(got) > 0)
	assert.Contains(t, got, "# General")
	assert.Contains(t, got, "## Page A")
	// Untitled pages fall back to their URL.
	assert.Contains(t, got, "## https://docs.acme.dev/b")
	assert.Contains(t, got, "print('a')")
}

func TestBuildGroupingPrompt(t *testing.T) {
	t.Parallel()

	pages := []docdex.PageContent{
		{URL: "https://docs.acme.dev/a", Title: "Page A", Content: "Alpha."},
		{URL: "https://docs.acme.dev/b", Title: "Page B", Content: "Beta.", CodeBlocks: []string{"x = 1"}},
	}
	prompt := gemini.BuildGroupingPrompt(pages)

	assert.Contains(t, prompt, "Page 0:")
	assert.Contains(t, prompt, "Page 1:")
	assert.Contains(t, prompt, "https://docs.acme.dev/a")
	assert.Contains(t, prompt, "Code sample: x = 1")
}
