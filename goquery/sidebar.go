package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
	"golang.org/x/net/html"
)

// minSidebarLinks is the anchor count a candidate sidebar must contain
// before it is accepted. Smaller regions are usually breadcrumbs or footers.
const minSidebarLinks = 5

// sidebarKeywords are class/id tokens that mark a navigation region.
var sidebarKeywords = []string{
	"sidebar",
	"side-nav",
	"docs-nav",
	"menu",
	"toc",
	"navigation",
}

// sidebarCandidate is one region that may hold the site's table of contents.
type sidebarCandidate struct {
	sel     *goquery.Selection
	dialect docdex.Dialect
}

// findSidebarCandidates returns candidate sidebar regions in priority order:
// dialect-specific signatures first, then keyword-marked containers, then
// any nav/aside with enough anchors. Every candidate already contains at
// least minSidebarLinks anchors.
func findSidebarCandidates(doc *goquery.Document, detector *Detector) []sidebarCandidate {
	var candidates []sidebarCandidate
	seen := make(map[*html.Node]struct{})

	add := func(sel *goquery.Selection, dialect docdex.Dialect) {
		if sel.Length() == 0 || sel.Find("a[href]").Length() < minSidebarLinks {
			return
		}
		node := sel.Get(0)
		if _, ok := seen[node]; ok {
			return
		}
		seen[node] = struct{}{}
		candidates = append(candidates, sidebarCandidate{sel: sel, dialect: dialect})
	}

	// Tier 1: dialect-specific structural signatures.
	doc.Find("ul.tree.table-of-contents").Each(func(_ int, sel *goquery.Selection) {
		add(sel, docdex.DialectTreeTOC)
	})
	doc.Find(".theme-doc-sidebar-container").Each(func(_ int, sel *goquery.Selection) {
		add(sel, docdex.DialectDocusaurus)
	})

	// Tier 2: class/id keyword token match, banners excluded.
	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		tokens := attrTokens(sel)
		if !matchesSidebarKeyword(tokens) {
			return
		}
		add(sel, detector.Detect(sel))
	})

	// Tier 3: any nav/aside with enough anchors.
	doc.Find("nav, aside").Each(func(_ int, sel *goquery.Selection) {
		add(sel, detector.Detect(sel))
	})

	return candidates
}

// attrTokens returns the lowercased class and id tokens of an element.
func attrTokens(sel *goquery.Selection) []string {
	var tokens []string
	if class, ok := sel.Attr("class"); ok {
		tokens = append(tokens, strings.Fields(strings.ToLower(class))...)
	}
	if id, ok := sel.Attr("id"); ok {
		tokens = append(tokens, strings.ToLower(id))
	}
	return tokens
}

func matchesSidebarKeyword(tokens []string) bool {
	matched := false
	for _, tok := range tokens {
		if strings.Contains(tok, "banner") {
			return false
		}
		for _, kw := range sidebarKeywords {
			if tok == kw || strings.Contains(tok, kw) {
				matched = true
			}
		}
	}
	return matched
}
