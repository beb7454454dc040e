package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// Extractor extracts documentation links from root-page HTML using
// structural sidebar heuristics.
type Extractor struct {
	detector *Detector
}

var _ docdex.LinkExtractor = (*Extractor)(nil)

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{detector: NewDetector()}
}

// ExtractLinks locates the sidebar, classifies its dialect, and walks it.
// Candidate regions are tried in priority order; the first one yielding at
// least minSidebarLinks admissible links wins. An empty result with a nil
// error means no sidebar produced enough links and the caller should degrade
// to the next extraction tier.
func (e *Extractor) ExtractLinks(ctx context.Context, html string, baseURL string) ([]docdex.DocumentationLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	var best []docdex.DocumentationLink
	for _, candidate := range findSidebarCandidates(doc, e.detector) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		links := docdex.DedupeLinks(walkSidebar(candidate.sel, candidate.dialect, base))
		if len(links) >= minSidebarLinks {
			return links, nil
		}
		if len(links) > len(best) {
			best = links
		}
	}
	return best, nil
}

// ExtractManualLinks is the last-resort heuristic used when both structural
// extraction and the model-based extractor fail. It walks every nav/aside
// style element directly, pairing anchors with the nearest preceding heading.
func ExtractManualLinks(html string, baseURL string) ([]docdex.DocumentationLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []docdex.DocumentationLink
	doc.Find("nav, aside, [class*='nav'], [class*='menu'], [class*='sidebar']").Each(func(_ int, sel *goquery.Selection) {
		links = append(links, walkGeneric(sel, base)...)
	})
	return docdex.DedupeLinks(links), nil
}
