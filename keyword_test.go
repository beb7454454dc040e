package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	t.Run("finds identifier patterns", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{
				Title:   "HttpClient Guide",
				Content: "Use HttpClient to send requests. The snake_case option maxRetries controls retries. Send a GET request with the API.",
			},
		}
		keywords := docdex.ExtractKeywords(pages)
		assert.Contains(t, keywords, "httpclient")
		assert.Contains(t, keywords, "snake_case")
		assert.Contains(t, keywords, "maxretries")
		assert.Contains(t, keywords, "api")
	})

	t.Run("code identifiers outrank prose mentions", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{
				Content:    "The DataStore type appears once.",
				CodeBlocks: []string{"func connectDatabase() error { return nil }"},
			},
		}
		keywords := docdex.ExtractKeywords(pages)
		require.NotEmpty(t, keywords)
		assert.Equal(t, "connectdatabase", keywords[0])
	})

	t.Run("drops stopwords and short tokens", func(t *testing.T) {
		t.Parallel()
		pages := []docdex.PageContent{
			{Content: "THE AND FOR GET IT"},
		}
		keywords := docdex.ExtractKeywords(pages)
		assert.NotContains(t, keywords, "the")
		assert.NotContains(t, keywords, "and")
		assert.NotContains(t, keywords, "it")
	})

	t.Run("caps at fifty", func(t *testing.T) {
		t.Parallel()
		var content string
		for i := 0; i < 80; i++ {
			content += " someIdentifier" + string(rune('A'+i%26)) + string(rune('a'+i/26)) + "x"
		}
		pages := []docdex.PageContent{{Content: content}}
		keywords := docdex.ExtractKeywords(pages)
		assert.LessOrEqual(t, len(keywords), docdex.KeywordLimit)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, docdex.ExtractKeywords(nil))
	})
}
