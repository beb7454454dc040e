package process_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackGrouping(t *testing.T) {
	t.Parallel()

	t.Run("groups by first path segment", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{URL: "https://docs.acme.dev/guides/install"},
			{URL: "https://docs.acme.dev/guides/usage"},
			{URL: "https://docs.acme.dev/reference/cli"},
			{URL: "https://docs.acme.dev/"},
		}
		groups := process.FallbackGrouping(pages)
		require.Len(t, groups, 3)
		assert.Equal(t, "guides", groups[0].Name)
		assert.Equal(t, []int{0, 1}, groups[0].PageIndices)
		assert.Equal(t, "reference", groups[1].Name)
		assert.Equal(t, []int{2}, groups[1].PageIndices)
		assert.Equal(t, "general", groups[2].Name)
		assert.Equal(t, []int{3}, groups[2].PageIndices)
	})

	t.Run("partition invariant", func(t *testing.T) {
		t.Parallel()
		pages := make([]docdex.PageContent, 9)
		for i := range pages {
			pages[i] = docdex.PageContent{URL: fmt.Sprintf("https://docs.acme.dev/s%d/page", i%3)}
		}
		groups := process.FallbackGrouping(pages)

		seen := make(map[int]int)
		for _, g := range groups {
			for _, idx := range g.PageIndices {
				seen[idx]++
			}
		}
		require.Len(t, seen, len(pages))
		for idx, count := range seen {
			assert.Equal(t, 1, count, "page %d assigned %d times", idx, count)
		}
	})

	t.Run("consolidates when over ten groups", func(t *testing.T) {
		t.Parallel()
		pages := make([]docdex.PageContent, 15)
		for i := range pages {
			pages[i] = docdex.PageContent{URL: fmt.Sprintf("https://docs.acme.dev/section%d/page", i)}
		}
		groups := process.FallbackGrouping(pages)
		require.Len(t, groups, 1)
		assert.Equal(t, "documentation", groups[0].Name)
		assert.Len(t, groups[0].PageIndices, 15)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, process.FallbackGrouping(nil))
	})
}
