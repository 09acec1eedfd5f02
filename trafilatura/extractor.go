package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ sitescrape.ContentExtractor = (*Extractor)(nil)

// Extractor isolates the main content of a page using go-trafilatura.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates an Extractor with fallback extraction enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// ExtractContent returns the title and the boilerplate-free body of a page.
// A page without recognizable main content yields an empty HTML field
// rather than an error.
func (e *Extractor) ExtractContent(rawHTML string) (*sitescrape.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, sitescrape.WrapError(sitescrape.EINTERNAL, err, "extract main content")
	}

	content := &sitescrape.Content{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		content.HTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, sitescrape.WrapError(sitescrape.EINTERNAL, err, "render main content")
		}
	}
	return content, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
