package docdex

import (
	"regexp"
	"sort"
	"strings"
)

// KeywordLimit bounds how many keywords a group carries.
const KeywordLimit = 50

// Weighted regex families for keyword extraction. Quoted phrases and
// code-derived identifiers count more than plain pattern matches.
var (
	camelCaseRe  = regexp.MustCompile(`\b[A-Z][a-z]+(?:[A-Z][a-z]+)+\b`)
	lowerCamelRe = regexp.MustCompile(`\b[a-z]+(?:[A-Z][a-z]+)+\b`)
	snakeCaseRe  = regexp.MustCompile(`\b[a-z]+(?:_[a-z]+)+\b`)
	upperCaseRe  = regexp.MustCompile(`\b[A-Z]+(?:_[A-Z]+)*\b`)
	httpVerbRe   = regexp.MustCompile(`\b(?:GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\b`)
	acronymRe    = regexp.MustCompile(`\b(?:API|REST|JSON|XML|HTTP|HTTPS|URL|URI|SDK|CLI|SQL|HTML|CSS|JWT|OAuth|CORS|CRUD|ORM|TLS|SSL|TCP|UDP|DNS|AWS|GCP)\b`)
	quotedRe     = regexp.MustCompile("[\"'`]([^\"'`]{3,40})[\"'`]")
	codeFuncRe   = regexp.MustCompile(`\b(?:func|function|def|class)\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

var keywordStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "use": {}, "get": {}, "set": {}, "has": {},
	"how": {}, "its": {}, "new": {}, "now": {}, "see": {}, "two": {},
	"way": {}, "who": {}, "with": {}, "this": {}, "that": {}, "from": {},
	"they": {}, "will": {}, "have": {}, "more": {}, "when": {}, "also": {},
	"your": {}, "what": {}, "then": {}, "than": {}, "them": {}, "these": {},
	"some": {}, "into": {}, "only": {}, "other": {}, "which": {}, "their": {},
	"about": {}, "would": {}, "there": {}, "should": {}, "example": {},
	"using": {}, "used": {}, "each": {}, "here": {}, "page": {}, "docs": {},
	"documentation": {},
}

// ExtractKeywords scans the title, content, and code blocks of every page
// with a fixed battery of token patterns and returns the top KeywordLimit
// keywords by weighted frequency. Quoted phrases count double and
// function/class names from code count triple.
func ExtractKeywords(pages []PageContent) []string {
	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0

	add := func(kw string, weight int) {
		kw = strings.TrimSpace(kw)
		if len(kw) < 3 {
			return
		}
		norm := strings.ToLower(kw)
		if _, stop := keywordStopwords[norm]; stop {
			return
		}
		if _, ok := counts[norm]; !ok {
			order[norm] = next
			next++
		}
		counts[norm] += weight
	}

	for _, p := range pages {
		text := p.Title + "\n" + p.Content
		for _, re := range []*regexp.Regexp{camelCaseRe, lowerCamelRe, snakeCaseRe, upperCaseRe, httpVerbRe, acronymRe} {
			for _, m := range re.FindAllString(text, -1) {
				add(m, 1)
			}
		}
		for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
			add(m[1], 2)
		}
		for _, code := range p.CodeBlocks {
			for _, m := range codeFuncRe.FindAllStringSubmatch(code, -1) {
				add(m[1], 3)
			}
		}
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return order[keywords[i]] < order[keywords[j]]
	})
	if len(keywords) > KeywordLimit {
		keywords = keywords[:KeywordLimit]
	}
	return keywords
}
