package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docdex.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(ctx context.Context, html string, baseURL string) ([]docdex.DocumentationLink, error)
}

func (e *LinkExtractor) ExtractLinks(ctx context.Context, html string, baseURL string) ([]docdex.DocumentationLink, error) {
	return e.ExtractLinksFn(ctx, html, baseURL)
}

var _ docdex.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of docdex.Navigator.
type Navigator struct {
	ExtractLinksFn func(ctx context.Context, navHTML string, baseURL string) ([]docdex.DocumentationLink, error)
}

func (n *Navigator) ExtractLinks(ctx context.Context, navHTML string, baseURL string) ([]docdex.DocumentationLink, error) {
	return n.ExtractLinksFn(ctx, navHTML, baseURL)
}

var _ docdex.SitemapSource = (*SitemapSource)(nil)

// SitemapSource is a mock implementation of docdex.SitemapSource.
type SitemapSource struct {
	SitemapURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapSource) SitemapURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.SitemapURLsFn(ctx, baseURL)
}
