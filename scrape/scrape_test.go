package scrape_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/mock"
	"github.com/fwojciec/sitescrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titleMapping = sitescrape.FieldMapping{
	{Name: "title", Rule: sitescrape.FieldRule{Selector: "h1"}},
}

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url, waitSelector string) (string, error) {
			return html, nil
		},
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("passes fetched markup to the extractor", func(t *testing.T) {
		t.Parallel()

		var gotWait, gotHTML string
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url, waitSelector string) (string, error) {
					gotWait = waitSelector
					return "<h1>Widget</h1>", nil
				},
			},
			Fields: &mock.FieldExtractor{
				ExtractFn: func(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
					gotHTML = html
					return sitescrape.Result{"title": sitescrape.Text("Widget")}
				},
			},
		}

		result, err := s.Scrape(context.Background(), "https://example.com/p/1", titleMapping, ".ready")

		require.NoError(t, err)
		assert.Equal(t, "Widget", result.Get("title").String())
		assert.Equal(t, ".ready", gotWait)
		assert.Equal(t, "<h1>Widget</h1>", gotHTML)
	})

	t.Run("returns fetch error without extracting", func(t *testing.T) {
		t.Parallel()

		fetchErr := sitescrape.Errorf(sitescrape.ENETWORK, "HTTP 503 for https://example.com")
		extracted := false
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url, waitSelector string) (string, error) {
					return "", fetchErr
				},
			},
			Fields: &mock.FieldExtractor{
				ExtractFn: func(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
					extracted = true
					return nil
				},
			},
		}

		result, err := s.Scrape(context.Background(), "https://example.com", titleMapping, "")

		require.ErrorIs(t, err, fetchErr)
		assert.Nil(t, result)
		assert.False(t, extracted)
	})

	t.Run("rejects non-http URLs before fetching", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"ftp://example.com", "file:///etc/passwd", "example.com", "https://", "::bad"} {
			s := &scrape.Scraper{Fetcher: &mock.Fetcher{}, Fields: &mock.FieldExtractor{}}

			_, err := s.Scrape(context.Background(), u, titleMapping, "")

			require.Error(t, err, u)
			assert.Equal(t, sitescrape.EINVALID, sitescrape.ErrorCode(err), u)
		}
	})

	t.Run("records the extraction", func(t *testing.T) {
		t.Parallel()

		var recorded *sitescrape.Extraction
		s := &scrape.Scraper{
			Fetcher:  staticFetcher("<h1>Widget</h1>"),
			Strategy: sitescrape.StrategyBrowser,
			Fields: &mock.FieldExtractor{
				ExtractFn: func(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
					return sitescrape.Result{"title": sitescrape.Text("Widget")}
				},
			},
			Extractions: &mock.ExtractionService{
				CreateExtractionFn: func(ctx context.Context, e *sitescrape.Extraction) error {
					recorded = e
					return nil
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://example.com/p/1", titleMapping, "")

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, "https://example.com/p/1", recorded.URL)
		assert.Equal(t, sitescrape.StrategyBrowser, recorded.Strategy)
		assert.Equal(t, "<h1>Widget</h1>", recorded.HTML)
		assert.Equal(t, "Widget", recorded.Result.Get("title").String())
	})

	t.Run("defaults recorded strategy to static", func(t *testing.T) {
		t.Parallel()

		var recorded *sitescrape.Extraction
		s := &scrape.Scraper{
			Fetcher: staticFetcher("<h1>Widget</h1>"),
			Fields: &mock.FieldExtractor{
				ExtractFn: func(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
					return sitescrape.Result{}
				},
			},
			Extractions: &mock.ExtractionService{
				CreateExtractionFn: func(ctx context.Context, e *sitescrape.Extraction) error {
					recorded = e
					return nil
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://example.com", titleMapping, "")

		require.NoError(t, err)
		assert.Equal(t, sitescrape.StrategyStatic, recorded.Strategy)
	})

	t.Run("logs but tolerates recording failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s := &scrape.Scraper{
			Fetcher: staticFetcher("<h1>Widget</h1>"),
			Fields: &mock.FieldExtractor{
				ExtractFn: func(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
					return sitescrape.Result{"title": sitescrape.Text("Widget")}
				},
			},
			Extractions: &mock.ExtractionService{
				CreateExtractionFn: func(ctx context.Context, e *sitescrape.Extraction) error {
					return errors.New("disk full")
				},
			},
			Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		}

		result, err := s.Scrape(context.Background(), "https://example.com", titleMapping, "")

		require.NoError(t, err)
		assert.Equal(t, "Widget", result.Get("title").String())
		assert.Contains(t, buf.String(), "record extraction")
		assert.Contains(t, buf.String(), "disk full")
	})
}

func TestScraper_WebsiteContent(t *testing.T) {
	t.Parallel()

	t.Run("converts extracted content to markdown", func(t *testing.T) {
		t.Parallel()

		var gotWait = "unset"
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url, waitSelector string) (string, error) {
					gotWait = waitSelector
					return "<html><main><p>pipes</p></main></html>", nil
				},
			},
			Content: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{Title: "Acme", HTML: "<p>pipes</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					assert.Equal(t, "<p>pipes</p>", html)
					return "pipes", nil
				},
			},
		}

		md, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.NoError(t, err)
		assert.Equal(t, "pipes", md)
		assert.Empty(t, gotWait)
	})

	t.Run("truncates long content", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("<p>x</p>"),
			Content: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{HTML: html}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return strings.Repeat("é", scrape.MaxContentRunes+100), nil
				},
			},
		}

		md, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.NoError(t, err)
		assert.Equal(t, scrape.MaxContentRunes, len([]rune(md)))
	})

	t.Run("honors a custom limit", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("<p>x</p>"),
			Content: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{HTML: html}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return "abcdefgh", nil
				},
			},
			MaxContentRunes: 3,
		}

		md, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.NoError(t, err)
		assert.Equal(t, "abc", md)
	})

	t.Run("returns empty when no main content", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("<html></html>"),
			Content: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{}, nil
				},
			},
			Converter: &mock.Converter{},
		}

		md, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.NoError(t, err)
		assert.Empty(t, md)
	})

	t.Run("falls back when primary finds nothing", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("<article><p>pipes</p></article>"),
			Content: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{}, nil
				},
			},
			Fallback: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{HTML: "<p>pipes</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return "pipes", nil
				},
			},
		}

		md, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.NoError(t, err)
		assert.Equal(t, "pipes", md)
	})

	t.Run("skips fallback when primary succeeds", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("<p>x</p>"),
			Content: &mock.ContentExtractor{
				ExtractContentFn: func(html string) (*sitescrape.Content, error) {
					return &sitescrape.Content{HTML: "<p>primary</p>"}, nil
				},
			},
			Fallback: &mock.ContentExtractor{},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return html, nil
				},
			},
		}

		md, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.NoError(t, err)
		assert.Equal(t, "<p>primary</p>", md)
	})

	t.Run("returns fetch error", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url, waitSelector string) (string, error) {
					return "", sitescrape.Errorf(sitescrape.ETIMEOUT, "timed out")
				},
			},
		}

		_, err := s.WebsiteContent(context.Background(), "https://acme.example")

		require.Error(t, err)
		assert.Equal(t, sitescrape.ETIMEOUT, sitescrape.ErrorCode(err))
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", scrape.Truncate("héllo", 4))
	assert.Equal(t, "héllo", scrape.Truncate("héllo", 5))
	assert.Equal(t, "héllo", scrape.Truncate("héllo", 50))
	assert.Empty(t, scrape.Truncate("héllo", 0))
	assert.Empty(t, scrape.Truncate("héllo", -1))
}
