package process_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateGroup(t *testing.T) {
	t.Parallel()

	t.Run("drops pages with duplicate content", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{URL: "a", Content: "Install the SDK and configure your key."},
			{URL: "b", Content: "install   the SDK and\nconfigure your key."},
			{URL: "c", Content: "A completely different page."},
		}
		got := process.DeduplicateGroup(pages)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].URL)
		assert.Equal(t, "c", got[1].URL)
	})

	t.Run("novel code block rescues duplicate content", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{URL: "a", Content: "Shared intro text."},
			{URL: "b", Content: "Shared intro text.", CodeBlocks: []string{"client.connect()"}},
		}
		got := process.DeduplicateGroup(pages)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"client.connect()"}, got[1].CodeBlocks)
	})

	t.Run("code blocks dedup against the group", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{URL: "a", Content: "First page.", CodeBlocks: []string{"x = 1", "y = 2"}},
			{URL: "b", Content: "Second page.", CodeBlocks: []string{"x  =  1", "z = 3"}},
		}
		got := process.DeduplicateGroup(pages)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"x = 1", "y = 2"}, got[0].CodeBlocks)
		assert.Equal(t, []string{"z = 3"}, got[1].CodeBlocks)
	})

	t.Run("caps code blocks per page", func(t *testing.T) {
		t.Parallel()
		var blocks []string
		for i := 0; i < 15; i++ {
			blocks = append(blocks, fmt.Sprintf("block%d()", i))
		}
		got := process.DeduplicateGroup([]docdex.PageContent{
			{URL: "a", Content: "Text.", CodeBlocks: blocks},
		})
		require.Len(t, got, 1)
		assert.Len(t, got[0].CodeBlocks, 10)
	})
}
