// Package process partitions crawled pages into topical groups, generates
// their summaries, and derives the retrieval artifacts (keywords, sections,
// embeddings).
package process

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docdex"
)

// maxFallbackGroups bounds how many groups the deterministic fallback may
// produce. More groups than this would explode into unmanageably many small
// documents, so everything collapses into one.
const maxFallbackGroups = 10

// FallbackGrouping groups pages by the first non-empty path segment of their
// URL, used when the model grouping fails. Root-level pages land in
// "general". When the segment grouping yields more than maxFallbackGroups
// groups, all pages collapse into a single "documentation" group.
func FallbackGrouping(pages []docdex.PageContent) []docdex.GroupAssignment {
	if len(pages) == 0 {
		return nil
	}

	indices := make(map[string][]int)
	var order []string
	for i, p := range pages {
		name := firstPathSegment(p.URL)
		if _, ok := indices[name]; !ok {
			order = append(order, name)
		}
		indices[name] = append(indices[name], i)
	}

	if len(order) > maxFallbackGroups {
		all := make([]int, len(pages))
		for i := range pages {
			all[i] = i
		}
		return []docdex.GroupAssignment{{
			Name:        "documentation",
			PageIndices: all,
			Description: "All documentation pages",
		}}
	}

	groups := make([]docdex.GroupAssignment, 0, len(order))
	for _, name := range order {
		groups = append(groups, docdex.GroupAssignment{
			Name:        name,
			PageIndices: indices[name],
			Description: "Pages under /" + name,
		})
	}
	return groups
}

func firstPathSegment(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "general"
	}
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			return docdex.Slugify(segment)
		}
	}
	return "general"
}
