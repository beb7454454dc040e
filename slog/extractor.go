package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingExtractor implements docdex.LinkExtractor.
var _ docdex.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with debug logging.
type LoggingExtractor struct {
	next   docdex.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docdex.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) ExtractLinks(ctx context.Context, html string, baseURL string) (links []docdex.DocumentationLink, err error) {
	defer func(begin time.Time) {
		e.logger.Info("link extraction",
			"url", baseURL,
			"links", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(ctx, html, baseURL)
}

// Ensure LoggingSitemapSource implements docdex.SitemapSource.
var _ docdex.SitemapSource = (*LoggingSitemapSource)(nil)

// LoggingSitemapSource wraps a SitemapSource with debug logging.
type LoggingSitemapSource struct {
	next   docdex.SitemapSource
	logger *slog.Logger
}

// NewLoggingSitemapSource creates a new LoggingSitemapSource.
func NewLoggingSitemapSource(next docdex.SitemapSource, logger *slog.Logger) *LoggingSitemapSource {
	return &LoggingSitemapSource{next: next, logger: logger}
}

// SitemapURLs delegates to the wrapped source and logs the operation.
func (s *LoggingSitemapSource) SitemapURLs(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SitemapURLs(ctx, baseURL)
}
