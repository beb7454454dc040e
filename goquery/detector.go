// Package goquery implements structural HTML extraction: sidebar dialect
// detection, dialect-specific link walking, and page content reduction.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// Detector classifies a sidebar's internal structure into one of the known
// dialects. Predicates are evaluated in fixed priority order; the generic
// dialect is the catch-all.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the dialect of the given sidebar subtree.
func (d *Detector) Detect(sel *goquery.Selection) docdex.Dialect {
	if sel.Is("ul.tree.table-of-contents") || sel.Find("ul.tree-group").Length() > 0 ||
		sel.Find("li[aria-expanded]").Length() > 0 {
		return docdex.DialectTreeTOC
	}
	if sel.Is(".theme-doc-sidebar-container") || sel.Find("ul.menu__list").Length() > 0 ||
		sel.Find(".theme-doc-sidebar-item-link").Length() > 0 {
		return docdex.DialectDocusaurus
	}
	return docdex.DialectGeneric
}

// DetectDocument classifies a whole page, used for logging and for deciding
// whether the rendering fallback is worth attempting.
func (d *Detector) DetectDocument(html string) docdex.Dialect {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return docdex.DialectGeneric
	}
	return d.Detect(doc.Selection)
}
