package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ sitescrape.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from metadata", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Acme Plumbing - Home</title>
<meta property="og:title" content="Acme Plumbing">
</head>
<body>
<nav>Home | Services | Contact</nav>
<main>
<h1>Acme Plumbing</h1>
<p>Family owned plumbing and heating contractor serving the valley since 1982.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(html)

		require.NoError(t, err)
		assert.NotEmpty(t, content.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Services</title></head>
<body>
<nav><a href="/">Home</a><a href="/services">Services</a></nav>
<article>
<h1>Our Services</h1>
<p>We install, repair and maintain residential boilers and water heaters.</p>
<p>Emergency call outs are available every day of the year, including holidays.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(html)

		require.NoError(t, err)
		assert.Contains(t, content.HTML, "residential boilers")
		assert.Contains(t, content.HTML, "Emergency call outs")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/about">About</a></li>
</ul>
</nav>
<main>
<h1>About Us</h1>
<p>This paragraph contains the actual content we want to classify.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(html)

		require.NoError(t, err)
		assert.Contains(t, content.HTML, "actual content we want")
		assert.NotContains(t, content.HTML, "main-nav")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Article Title</h1>
<p>Article body with substantive content for readers.</p>
</article>
<footer>
<p>Copyright 2024 Example Corp</p>
</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(html)

		require.NoError(t, err)
		assert.Contains(t, content.HTML, "substantive content")
		assert.NotContains(t, content.HTML, "Copyright 2024 Example Corp")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractContent(" \n ")

		require.Error(t, err)
		assert.Equal(t, sitescrape.EINVALID, sitescrape.ErrorCode(err))
	})
}
