package docdex

import (
	"context"
	"time"
)

// PageContent is the reduced form of one fetched documentation page: prose
// with structural newlines plus an ordered list of code snippets. Immutable
// after creation except that processing may reorder or filter CodeBlocks.
type PageContent struct {
	URL        string
	Title      string
	Content    string
	CodeBlocks []string
}

// Fetcher retrieves raw HTML for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RenderFetcher retrieves HTML after script execution. FetchExpanded
// additionally clicks collapsed navigation tree nodes open before returning
// the document, for sidebars that paginate by user interaction.
type RenderFetcher interface {
	Fetcher
	FetchExpanded(ctx context.Context, url string) (string, error)
}

// PageParser reduces raw HTML to PageContent.
type PageParser interface {
	ParsePage(html string, url string) (PageContent, error)
}

// CrawlConfig controls fetch retry and politeness behavior.
type CrawlConfig struct {
	// MaxRetries is the number of fetch attempts per link.
	MaxRetries int

	// RateLimitDelay is the pause between successive fetches. It is not
	// applied after the last link.
	RateLimitDelay time.Duration
}

// DefaultCrawlConfig returns the standard politeness settings.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		MaxRetries:     3,
		RateLimitDelay: 500 * time.Millisecond,
	}
}
