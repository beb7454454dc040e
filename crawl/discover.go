package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/goquery"
)

// minUsefulLinks is how many links an extraction tier must produce before
// discovery stops degrading to the next tier.
const minUsefulLinks = 5

// Discoverer runs the tiered link discovery cascade: static fetch with
// structural extraction, rendered fetch with tree expansion, model-based
// extraction, and finally the manual heuristic. No tier's failure propagates
// past Discover; an empty result is the universal "could not extract"
// signal.
type Discoverer struct {
	Fetcher   docdex.Fetcher
	Renderer  docdex.RenderFetcher // optional
	Extractor docdex.LinkExtractor
	Navigator docdex.Navigator     // optional
	Sitemap   docdex.SitemapSource // optional
	Logger    *slog.Logger

	// RetryDelays overrides the default backoff schedule for the root
	// page fetch.
	RetryDelays []time.Duration
}

// Discover extracts documentation links for the site rooted at baseURL.
// Tiers are tried in order until one yields at least minUsefulLinks links;
// when none does, the largest partial result wins, and the sitemap
// supplement is consulted as the last resort.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]docdex.DocumentationLink, error) {
	if err := docdex.ValidateURL(baseURL); err != nil {
		return nil, err
	}

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var best []docdex.DocumentationLink
	keep := func(links []docdex.DocumentationLink) bool {
		if len(links) > len(best) {
			best = links
		}
		return len(links) >= minUsefulLinks
	}

	// Tier 1: static fetch + structural extraction.
	html, err := FetchWithRetryDelays(ctx, baseURL, d.Fetcher.Fetch, d.Logger, delays)
	if err != nil {
		d.logWarn("static fetch failed", "url", baseURL, "error", err)
	} else {
		links, err := d.Extractor.ExtractLinks(ctx, html, baseURL)
		if err != nil {
			d.logWarn("structural extraction failed", "url", baseURL, "error", err)
		} else if keep(links) {
			return best, nil
		}
	}

	// Tier 2: rendered fetch with tree expansion + structural extraction.
	if d.Renderer != nil {
		rendered, err := d.Renderer.FetchExpanded(ctx, baseURL)
		if err != nil {
			d.logWarn("rendering fallback failed", "url", baseURL, "error", err)
		} else {
			html = rendered
			links, err := d.Extractor.ExtractLinks(ctx, rendered, baseURL)
			if err != nil {
				d.logWarn("structural extraction of rendered page failed", "url", baseURL, "error", err)
			} else if keep(links) {
				return best, nil
			}
		}
	}
	if ctx.Err() != nil {
		return best, ctx.Err()
	}

	// Tier 3: model-based extraction over the best HTML we have.
	if d.Navigator != nil && html != "" {
		links, err := d.Navigator.ExtractLinks(ctx, html, baseURL)
		if err != nil {
			d.logWarn("model extraction failed", "url", baseURL, "error", err)
		} else if keep(links) {
			return best, nil
		}
	}

	// Tier 4: manual heuristic over nav/aside regions.
	if html != "" {
		links, err := goquery.ExtractManualLinks(html, baseURL)
		if err != nil {
			d.logWarn("manual extraction failed", "url", baseURL, "error", err)
		} else if keep(links) {
			return best, nil
		}
	}

	// Last resort: seed links from the sitemap.
	if len(best) == 0 && d.Sitemap != nil {
		links, err := d.sitemapLinks(ctx, baseURL)
		if err != nil {
			d.logWarn("sitemap discovery failed", "url", baseURL, "error", err)
		} else {
			keep(links)
		}
	}

	return best, nil
}

func (d *Discoverer) logWarn(msg string, args ...any) {
	if d.Logger != nil {
		d.Logger.Warn(msg, args...)
	}
}

// sitemapLinks converts sitemap URLs into links, deriving titles from the
// last path segment.
func (d *Discoverer) sitemapLinks(ctx context.Context, baseURL string) ([]docdex.DocumentationLink, error) {
	urls, err := d.Sitemap.SitemapURLs(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	var links []docdex.DocumentationLink
	for _, u := range urls {
		links = append(links, docdex.DocumentationLink{
			URL:   u,
			Title: titleFromURL(u),
		})
	}
	return docdex.DedupeLinks(links), nil
}

func titleFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return u.Host
	}
	last = strings.ReplaceAll(last, "-", " ")
	last = strings.ReplaceAll(last, "_", " ")
	words := strings.Fields(last)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
