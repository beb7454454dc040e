package mock

import "github.com/fwojciec/docdex"

var _ docdex.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of docdex.PageParser.
type PageParser struct {
	ParsePageFn func(html string, url string) (docdex.PageContent, error)
}

func (p *PageParser) ParsePage(html string, url string) (docdex.PageContent, error) {
	return p.ParsePageFn(html, url)
}
