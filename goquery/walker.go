package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// walkSidebar dispatches to the dialect-specific walker. All walkers are
// depth-first in document order and thread the nearest enclosing category
// down as an immutable parameter, so sibling subtrees never see each other's
// category state.
func walkSidebar(sel *goquery.Selection, dialect docdex.Dialect, base *url.URL) []docdex.DocumentationLink {
	switch dialect {
	case docdex.DialectTreeTOC:
		return walkTree(sel, base, "")
	case docdex.DialectDocusaurus:
		return walkDocusaurus(sel, base, "")
	default:
		return walkGeneric(sel, base)
	}
}

// walkTree extracts links from a collapsible tree table of contents. A list
// item containing a nested ul.tree-group is a category node whose name comes
// from its expander control; its descendants inherit that name unless a
// deeper group overrides it.
func walkTree(sel *goquery.Selection, base *url.URL, category string) []docdex.DocumentationLink {
	var links []docdex.DocumentationLink
	sel.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
		group := item.ChildrenFiltered("ul.tree-group")
		if group.Length() == 0 {
			group = item.Find("ul.tree-group").First()
		}
		if group.Length() > 0 {
			name := strings.TrimSpace(item.Find(".tree-expander").First().Text())
			if name == "" {
				name = category
			}
			links = append(links, walkTree(group, base, name)...)
			return
		}

		anchor := item.Find("a[href]").First()
		if anchor.Length() == 0 {
			return
		}
		href, _ := anchor.Attr("href")
		if abs, ok := docdex.AdmitLink(base, href, anchor.Text()); ok {
			links = append(links, docdex.DocumentationLink{
				URL:      abs,
				Title:    strings.TrimSpace(anchor.Text()),
				Category: category,
			})
		}
	})
	return links
}

// walkDocusaurus extracts links from a Docusaurus sidebar. Category items
// carry a sublist toggle whose text names the category for the nested list.
func walkDocusaurus(sel *goquery.Selection, base *url.URL, category string) []docdex.DocumentationLink {
	var links []docdex.DocumentationLink
	items := sel.ChildrenFiltered("li")
	if items.Length() == 0 {
		// Entry point may be the sidebar container rather than a list.
		list := sel.Find("ul.menu__list").First()
		if list.Length() == 0 {
			list = sel.Find("ul").First()
		}
		if list.Length() == 0 {
			return nil
		}
		return walkDocusaurus(list, base, category)
	}

	items.Each(func(_ int, item *goquery.Selection) {
		if item.HasClass("theme-doc-sidebar-item-category") || item.Find("a.menu__link--sublist, .menu__link--sublist").Length() > 0 {
			toggle := item.Find(".menu__link--sublist, .menu__list-item-collapsible a").First()
			name := strings.TrimSpace(toggle.Text())
			if name == "" {
				name = category
			}

			// A category toggle can itself be a page link.
			if href, ok := toggle.Attr("href"); ok {
				if abs, admit := docdex.AdmitLink(base, href, toggle.Text()); admit {
					links = append(links, docdex.DocumentationLink{
						URL:      abs,
						Title:    strings.TrimSpace(toggle.Text()),
						Category: category,
					})
				}
			}

			item.ChildrenFiltered("ul").Each(func(_ int, nested *goquery.Selection) {
				links = append(links, walkDocusaurus(nested, base, name)...)
			})
			return
		}

		anchor := item.Find("a[href]").First()
		if anchor.Length() == 0 {
			return
		}
		href, _ := anchor.Attr("href")
		if abs, ok := docdex.AdmitLink(base, href, anchor.Text()); ok {
			links = append(links, docdex.DocumentationLink{
				URL:      abs,
				Title:    strings.TrimSpace(anchor.Text()),
				Category: category,
			})
		}

		// Links and nested lists can coexist on one item.
		item.ChildrenFiltered("ul").Each(func(_ int, nested *goquery.Selection) {
			links = append(links, walkDocusaurus(nested, base, category)...)
		})
	})
	return links
}

// walkGeneric extracts links from an unrecognized sidebar. The category of
// each link is the text of the nearest preceding heading within the same
// parent container; a heading never leaks into sibling containers.
func walkGeneric(sel *goquery.Selection, base *url.URL) []docdex.DocumentationLink {
	return walkGenericChildren(sel, base, "")
}

func walkGenericChildren(sel *goquery.Selection, base *url.URL, inherited string) []docdex.DocumentationLink {
	var links []docdex.DocumentationLink
	category := inherited
	sel.Children().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case isHeading(name):
			category = strings.TrimSpace(node.Text())
		case name == "a":
			href, ok := node.Attr("href")
			if !ok {
				return
			}
			if abs, admit := docdex.AdmitLink(base, href, node.Text()); admit {
				links = append(links, docdex.DocumentationLink{
					URL:      abs,
					Title:    strings.TrimSpace(node.Text()),
					Category: category,
				})
			}
		default:
			links = append(links, walkGenericChildren(node, base, category)...)
		}
	})
	return links
}

func isHeading(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
