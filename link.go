package docdex

import (
	"context"
	"net/url"
	"strings"
)

// Dialect identifies a documentation-site-generator-specific sidebar
// convention. The set is closed; detection evaluates dialect predicates in a
// fixed priority order and adding support for a new generator means adding a
// new dialect plus its predicate, not touching the dispatcher.
type Dialect string

const (
	// DialectTreeTOC is a collapsible tree table of contents with explicit
	// group/expander roles, as produced by MS Learn style sites.
	DialectTreeTOC Dialect = "tree-toc"

	// DialectDocusaurus is the Docusaurus sidebar with category and link
	// item roles.
	DialectDocusaurus Dialect = "docusaurus"

	// DialectGeneric covers any sidebar without a recognized structure.
	// Categories are inferred from the nearest preceding heading.
	DialectGeneric Dialect = "generic"
)

// DocumentationLink is a single navigation entry extracted from a
// documentation site's sidebar. URL is always absolute. Ordering across a
// list of links is navigation order, depth-first through nested categories.
type DocumentationLink struct {
	URL      string
	Title    string
	Category string
}

// LinkExtractor extracts documentation links from root-page HTML using
// structural heuristics. An empty slice with a nil error means no sidebar
// could be found; callers degrade to the next extraction tier.
type LinkExtractor interface {
	ExtractLinks(ctx context.Context, html string, baseURL string) ([]DocumentationLink, error)
}

// Navigator extracts documentation links using an external model when
// structural extraction fails. Implementations cap the HTML they send and
// parse the response permissively.
type Navigator interface {
	ExtractLinks(ctx context.Context, navHTML string, baseURL string) ([]DocumentationLink, error)
}

// SitemapSource discovers page URLs from a site's sitemap.xml, used to seed
// links when every sidebar extraction tier fails. URLs are bounded to the
// base URL's domain and path prefix.
type SitemapSource interface {
	SitemapURLs(ctx context.Context, baseURL string) ([]string, error)
}

// linkDenylist rejects candidate URLs that point at social platforms, auth
// flows, search endpoints, and non-HTTP schemes. Matched as substrings of
// the resolved absolute URL.
var linkDenylist = []string{
	"twitter.com",
	"facebook.com",
	"linkedin.com",
	"github.com",
	"discord.com",
	"slack.com",
	"youtube.com",
	"/login",
	"/signup",
	"/register",
	"/auth",
	"/search",
	"?search=",
	"/download",
	"mailto:",
	"tel:",
	"javascript:",
}

// AdmitLink reports whether a candidate (href, title) pair resolved against
// base is an admissible documentation link, returning the resolved absolute
// URL when it is. Rejected candidates: empty href or title, pure anchors,
// external domains, and denylist matches.
func AdmitLink(base *url.URL, href, title string) (string, bool) {
	href = strings.TrimSpace(href)
	title = strings.TrimSpace(title)
	if href == "" || title == "" {
		return "", false
	}
	if strings.HasPrefix(href, "#") {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, deny := range linkDenylist {
		if strings.Contains(lower, deny) {
			return "", false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if resolved.Host != base.Host {
		return "", false
	}

	abs := resolved.String()
	lowerAbs := strings.ToLower(abs)
	for _, deny := range linkDenylist {
		if strings.Contains(lowerAbs, deny) {
			return "", false
		}
	}
	return abs, true
}

// DedupeLinks removes links sharing a URL, keeping the first occurrence and
// preserving order otherwise.
func DedupeLinks(links []DocumentationLink) []DocumentationLink {
	seen := make(map[string]struct{}, len(links))
	out := make([]DocumentationLink, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.URL]; ok {
			continue
		}
		seen[l.URL] = struct{}{}
		out = append(out, l)
	}
	return out
}
