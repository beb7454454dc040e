package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// ProgressEvent reports crawl progress to an optional callback.
type ProgressEvent struct {
	URL   string
	Index int
	Total int
	Err   error
}

// ProgressFunc receives progress events during a crawl.
type ProgressFunc func(ProgressEvent)

// Crawler fetches extracted links sequentially and reduces each page to
// prose and code. The crawl is politeness-oriented: one page at a time with
// a fixed delay between fetches. A failing page is logged and skipped, never
// aborting the batch.
type Crawler struct {
	Fetcher docdex.Fetcher
	Parser  docdex.PageParser
	Config  docdex.CrawlConfig
	Logger  *slog.Logger

	// RetryDelays overrides the default backoff schedule. Tests inject
	// zero delays here.
	RetryDelays []time.Duration

	// Progress, when set, receives one event per link.
	Progress ProgressFunc
}

// CrawlPages fetches every link in order and returns the successfully
// reduced pages. Link order is preserved; failed links are skipped in place.
func (c *Crawler) CrawlPages(ctx context.Context, links []docdex.DocumentationLink) ([]docdex.PageContent, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = retryDelaysFor(c.Config.MaxRetries)
	}
	pacer := NewPacer(c.Config.RateLimitDelay)

	pages := make([]docdex.PageContent, 0, len(links))
	for i, link := range links {
		if err := pacer.Wait(ctx); err != nil {
			return pages, err
		}

		html, err := FetchWithRetryDelays(ctx, link.URL, c.Fetcher.Fetch, c.Logger, delays)
		if err != nil {
			if ctx.Err() != nil {
				return pages, ctx.Err()
			}
			c.logWarn("skipping page after retries", "url", link.URL, "error", err)
			c.report(ProgressEvent{URL: link.URL, Index: i, Total: len(links), Err: err})
			continue
		}

		page, err := c.Parser.ParsePage(html, link.URL)
		if err != nil {
			c.logWarn("skipping unparsable page", "url", link.URL, "error", err)
			c.report(ProgressEvent{URL: link.URL, Index: i, Total: len(links), Err: err})
			continue
		}
		if page.Title == "" {
			page.Title = link.Title
		}

		pages = append(pages, page)
		c.report(ProgressEvent{URL: link.URL, Index: i, Total: len(links)})
	}
	return pages, nil
}

// retryDelaysFor builds the 2^attempt backoff schedule. MaxRetries counts
// total fetch attempts, so the schedule holds one fewer delay than that.
func retryDelaysFor(maxRetries int) []time.Duration {
	if maxRetries <= 1 {
		return nil
	}
	delays := make([]time.Duration, maxRetries-1)
	for i := range delays {
		delays[i] = time.Duration(1<<i) * time.Second
	}
	return delays
}

func (c *Crawler) logWarn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

func (c *Crawler) report(ev ProgressEvent) {
	if c.Progress != nil {
		c.Progress(ev)
	}
}
