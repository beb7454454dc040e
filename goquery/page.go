package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
	"golang.org/x/net/html"
)

// Parser reduces raw page HTML to title, prose, and code blocks.
type Parser struct{}

var _ docdex.PageParser = (*Parser)(nil)

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParsePage extracts the page title, the prose content, and the ordered code
// blocks from html. Navigation chrome (nav, footer, aside, header) is
// removed before any text extraction. Prose comes from main, then article,
// then body, serialized with newline-separated text nodes to approximate
// paragraph structure.
func (p *Parser) ParsePage(rawHTML string, pageURL string) (docdex.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return docdex.PageContent{}, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find("nav, footer, aside, header").Remove()

	var codeBlocks []string
	doc.Find("pre, code").Each(func(_ int, sel *goquery.Selection) {
		// A code element inside a pre is already covered by the pre block.
		if goquery.NodeName(sel) == "code" && sel.ParentsFiltered("pre").Length() > 0 {
			return
		}
		text := sel.Text()
		if strings.TrimSpace(text) == "" {
			return
		}
		codeBlocks = append(codeBlocks, text)
	})

	container := doc.Find("main").First()
	if container.Length() == 0 {
		container = doc.Find("article").First()
	}
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}

	content := ""
	if container.Length() > 0 {
		content = textWithNewlines(container.Get(0))
	}

	return docdex.PageContent{
		URL:        pageURL,
		Title:      title,
		Content:    content,
		CodeBlocks: codeBlocks,
	}, nil
}

// textWithNewlines serializes a subtree's text nodes one per line, skipping
// script and style elements.
func textWithNewlines(root *html.Node) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				lines = append(lines, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(lines, "\n")
}
