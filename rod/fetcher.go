// Package rod provides the rendering fallback for sites whose navigation is
// populated by script or hidden behind collapsible tree nodes.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docdex.RenderFetcher at compile time.
var _ docdex.RenderFetcher = (*Fetcher)(nil)

// DefaultExpandPasses bounds the collapsible-tree expansion loop. Each pass
// re-queries for collapsed nodes revealed by the previous pass.
const DefaultExpandPasses = 5

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser

	// ExpandPasses overrides DefaultExpandPasses when positive.
	ExpandPasses int
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{browser: browser}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.newPage(ctx, url)
	if err != nil {
		return "", err
	}
	defer page.Close()

	return page.HTML()
}

// FetchExpanded navigates to the URL, iteratively clicks every collapsed
// navigation tree node until no new nodes expand or the pass cap is hit,
// then returns the fully expanded HTML. Individual click failures are
// tolerated; expansion is best effort.
func (f *Fetcher) FetchExpanded(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.newPage(ctx, url)
	if err != nil {
		return "", err
	}
	defer page.Close()

	passes := f.ExpandPasses
	if passes <= 0 {
		passes = DefaultExpandPasses
	}

	for pass := 0; pass < passes; pass++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		expanded, err := expandCollapsedNodes(page)
		if err != nil || expanded == 0 {
			break
		}
		// Give async subtree loads a moment to settle before re-querying.
		time.Sleep(200 * time.Millisecond)
	}

	return page.HTML()
}

func (f *Fetcher) newPage(ctx context.Context, url string) (*rod.Page, error) {
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		page.Close()
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		page.Close()
		return nil, err
	}
	return page, nil
}

// expandCollapsedNodes clicks every currently collapsed tree node once and
// returns how many clicks succeeded.
func expandCollapsedNodes(page *rod.Page) (int, error) {
	collapsed, err := page.Elements(`li[aria-expanded="false"]`)
	if err != nil {
		return 0, err
	}

	expanded := 0
	for _, item := range collapsed {
		target, err := item.Element(".tree-expander")
		if err != nil {
			// No dedicated expander control; click the item itself.
			target = item
		}
		if err := target.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		expanded++
	}
	return expanded, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
