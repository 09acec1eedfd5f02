// Package readability extracts main page content with go-readability. It
// backs up the trafilatura extractor on pages where that finds nothing.
package readability

import (
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/go-shiori/go-readability"
)

var _ sitescrape.ContentExtractor = (*Extractor)(nil)

// Extractor isolates the main content of a page using Mozilla's
// Readability algorithm.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the article title and body of a page.
func (e *Extractor) ExtractContent(rawHTML string) (*sitescrape.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, sitescrape.WrapError(sitescrape.EINTERNAL, err, "extract readable content")
	}

	return &sitescrape.Content{
		Title: article.Title,
		HTML:  article.Content,
	}, nil
}
