package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLinks(n int) []docdex.DocumentationLink {
	links := make([]docdex.DocumentationLink, n)
	for i := range links {
		links[i] = docdex.DocumentationLink{
			URL:   fmt.Sprintf("https://docs.acme.dev/page-%d", i),
			Title: fmt.Sprintf("Page %d", i),
		}
	}
	return links
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("static tier wins when it finds enough links", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			}},
			Extractor: &mock.LinkExtractor{ExtractLinksFn: func(ctx context.Context, html, baseURL string) ([]docdex.DocumentationLink, error) {
				return fakeLinks(6), nil
			}},
			RetryDelays: []time.Duration{},
		}
		links, err := d.Discover(context.Background(), "https://docs.acme.dev/")
		require.NoError(t, err)
		assert.Len(t, links, 6)
	})

	t.Run("degrades to rendered extraction", func(t *testing.T) {
		t.Parallel()

		calls := 0
		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>static</html>", nil
			}},
			Renderer: &mock.RenderFetcher{FetchExpandedFn: func(ctx context.Context, url string) (string, error) {
				return "<html>rendered</html>", nil
			}},
			Extractor: &mock.LinkExtractor{ExtractLinksFn: func(ctx context.Context, html, baseURL string) ([]docdex.DocumentationLink, error) {
				calls++
				if html == "<html>rendered</html>" {
					return fakeLinks(7), nil
				}
				return nil, nil
			}},
			RetryDelays: []time.Duration{},
		}
		links, err := d.Discover(context.Background(), "https://docs.acme.dev/")
		require.NoError(t, err)
		assert.Len(t, links, 7)
		assert.Equal(t, 2, calls)
	})

	t.Run("degrades to model extraction", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			}},
			Extractor: &mock.LinkExtractor{ExtractLinksFn: func(ctx context.Context, html, baseURL string) ([]docdex.DocumentationLink, error) {
				return nil, nil
			}},
			Navigator: &mock.Navigator{ExtractLinksFn: func(ctx context.Context, navHTML, baseURL string) ([]docdex.DocumentationLink, error) {
				return fakeLinks(5), nil
			}},
			RetryDelays: []time.Duration{},
		}
		links, err := d.Discover(context.Background(), "https://docs.acme.dev/")
		require.NoError(t, err)
		assert.Len(t, links, 5)
	})

	t.Run("model failure degrades without raising", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body><p>No sidebar.</p></body></html>", nil
			}},
			Extractor: &mock.LinkExtractor{ExtractLinksFn: func(ctx context.Context, html, baseURL string) ([]docdex.DocumentationLink, error) {
				return nil, nil
			}},
			Navigator: &mock.Navigator{ExtractLinksFn: func(ctx context.Context, navHTML, baseURL string) ([]docdex.DocumentationLink, error) {
				return nil, errors.New("model unavailable")
			}},
			RetryDelays: []time.Duration{},
		}
		links, err := d.Discover(context.Background(), "https://docs.acme.dev/")
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("partial structural result beats nothing", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body><p>Sparse.</p></body></html>", nil
			}},
			Extractor: &mock.LinkExtractor{ExtractLinksFn: func(ctx context.Context, html, baseURL string) ([]docdex.DocumentationLink, error) {
				return fakeLinks(3), nil
			}},
			RetryDelays: []time.Duration{},
		}
		links, err := d.Discover(context.Background(), "https://docs.acme.dev/")
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("sitemap seeds links when all tiers fail", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("unreachable")
			}},
			Extractor: &mock.LinkExtractor{ExtractLinksFn: func(ctx context.Context, html, baseURL string) ([]docdex.DocumentationLink, error) {
				return nil, nil
			}},
			Sitemap: &mock.SitemapSource{SitemapURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{
					"https://docs.acme.dev/docs/getting-started",
					"https://docs.acme.dev/docs/api-basics",
				}, nil
			}},
			RetryDelays: []time.Duration{},
		}
		links, err := d.Discover(context.Background(), "https://docs.acme.dev/")
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "Getting Started", links[0].Title)
	})

	t.Run("invalid base URL rejected before any fetch", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetch should not be called")
				return "", nil
			}},
		}
		_, err := d.Discover(context.Background(), "not a url")
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}
