package mock

import "github.com/fwojciec/sitescrape"

var (
	_ sitescrape.FieldExtractor   = (*FieldExtractor)(nil)
	_ sitescrape.ContentExtractor = (*ContentExtractor)(nil)
)

// FieldExtractor is a mock implementation of sitescrape.FieldExtractor.
type FieldExtractor struct {
	ExtractFn func(html string, mapping sitescrape.FieldMapping) sitescrape.Result
}

func (e *FieldExtractor) Extract(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
	return e.ExtractFn(html, mapping)
}

// ContentExtractor is a mock implementation of sitescrape.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (*sitescrape.Content, error)
}

func (e *ContentExtractor) ExtractContent(html string) (*sitescrape.Content, error) {
	return e.ExtractContentFn(html)
}
