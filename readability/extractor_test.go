package readability_test

import (
	"testing"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ sitescrape.ContentExtractor = (*readability.Extractor)(nil)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractContent("")

	require.Error(t, err)
	assert.Equal(t, sitescrape.EINVALID, sitescrape.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Acme Plumbing</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	content, err := ext.ExtractContent(html)

	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", content.Title)
}

func TestExtractor_KeepsArticle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>We repair boilers and water heaters for homes across the valley, seven days a week.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	content, err := ext.ExtractContent(html)

	require.NoError(t, err)
	assert.Contains(t, content.HTML, "repair boilers")
	assert.NotContains(t, content.HTML, "Home Nav Link")
	assert.NotContains(t, content.HTML, "Footer copyright text")
}
