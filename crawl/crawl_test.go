package crawl_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_CrawlPages(t *testing.T) {
	t.Parallel()

	t.Run("preserves link order and skips failures", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.Contains(url, "broken") {
					return "", errors.New("503")
				}
				return "<html>" + url + "</html>", nil
			},
		}
		parser := &mock.PageParser{
			ParsePageFn: func(html string, url string) (docdex.PageContent, error) {
				return docdex.PageContent{URL: url, Title: "t", Content: html}, nil
			},
		}

		c := &crawl.Crawler{
			Fetcher:     fetcher,
			Parser:      parser,
			RetryDelays: []time.Duration{0},
		}
		links := []docdex.DocumentationLink{
			{URL: "https://docs.acme.dev/a", Title: "A"},
			{URL: "https://docs.acme.dev/broken", Title: "B"},
			{URL: "https://docs.acme.dev/c", Title: "C"},
		}
		pages, err := c.CrawlPages(context.Background(), links)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "https://docs.acme.dev/a", pages[0].URL)
		assert.Equal(t, "https://docs.acme.dev/c", pages[1].URL)
	})

	t.Run("max retries bounds total attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				calls++
				return "", errors.New("503")
			}},
			Parser: &mock.PageParser{},
			Config: docdex.CrawlConfig{MaxRetries: 1},
		}
		pages, err := c.CrawlPages(context.Background(), []docdex.DocumentationLink{
			{URL: "https://docs.acme.dev/a", Title: "A"},
		})
		require.NoError(t, err)
		assert.Empty(t, pages)
		assert.Equal(t, 1, calls)
	})

	t.Run("falls back to link title", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			}},
			Parser: &mock.PageParser{ParsePageFn: func(html string, url string) (docdex.PageContent, error) {
				return docdex.PageContent{URL: url}, nil
			}},
			RetryDelays: []time.Duration{},
		}
		pages, err := c.CrawlPages(context.Background(), []docdex.DocumentationLink{
			{URL: "https://docs.acme.dev/a", Title: "From Sidebar"},
		})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "From Sidebar", pages[0].Title)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		var events []crawl.ProgressEvent
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("boom")
			}},
			Parser:      &mock.PageParser{},
			RetryDelays: []time.Duration{},
			Progress:    func(ev crawl.ProgressEvent) { events = append(events, ev) },
		}
		_, err := c.CrawlPages(context.Background(), []docdex.DocumentationLink{
			{URL: "https://docs.acme.dev/a", Title: "A"},
		})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Error(t, events[0].Err)
		assert.Equal(t, 1, events[0].Total)
	})
}
