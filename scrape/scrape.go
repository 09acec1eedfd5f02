// Package scrape ties fetching, field interpretation and content extraction
// together for a single page.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/sitescrape"
)

// MaxContentRunes bounds the website content handed to a classifier.
const MaxContentRunes = 8000

// Scraper fetches a page and interprets it. Fetcher and Fields are required
// for Scrape; Content and Converter are required for WebsiteContent.
// Extractions and Logger are optional.
type Scraper struct {
	Fetcher     sitescrape.Fetcher
	Strategy    sitescrape.Strategy
	Fields      sitescrape.FieldExtractor
	Content     sitescrape.ContentExtractor
	Fallback    sitescrape.ContentExtractor
	Converter   sitescrape.Converter
	Extractions sitescrape.ExtractionService
	Logger      *slog.Logger

	// MaxContentRunes overrides the package default when positive.
	MaxContentRunes int
}

// Scrape fetches rawURL and extracts every field of mapping from it. A fetch
// failure is returned as is and no extraction takes place. When an
// ExtractionService is configured the result is recorded; a recording
// failure is logged and does not fail the scrape.
func (s *Scraper) Scrape(ctx context.Context, rawURL string, mapping sitescrape.FieldMapping, waitSelector string) (sitescrape.Result, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	html, err := s.Fetcher.Fetch(ctx, rawURL, waitSelector)
	if err != nil {
		return nil, err
	}

	result := s.Fields.Extract(html, mapping)

	if s.Extractions != nil {
		e := &sitescrape.Extraction{
			URL:      rawURL,
			Strategy: s.strategy(),
			Result:   result,
			HTML:     html,
		}
		if err := s.Extractions.CreateExtraction(ctx, e); err != nil {
			s.logger().Warn("record extraction", "url", rawURL, "err", err)
		}
	}

	return result, nil
}

// WebsiteContent fetches rawURL and returns its main content as Markdown,
// truncated to the configured rune limit. A page with no recognizable main
// content yields an empty string.
func (s *Scraper) WebsiteContent(ctx context.Context, rawURL string) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL, "")
	if err != nil {
		return "", err
	}

	content, err := s.Content.ExtractContent(html)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content.HTML) == "" && s.Fallback != nil {
		content, err = s.Fallback.ExtractContent(html)
		if err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(content.HTML) == "" {
		return "", nil
	}

	md, err := s.Converter.Convert(content.HTML)
	if err != nil {
		return "", err
	}

	limit := s.MaxContentRunes
	if limit <= 0 {
		limit = MaxContentRunes
	}
	return Truncate(md, limit), nil
}

func (s *Scraper) strategy() sitescrape.Strategy {
	if s.Strategy == "" {
		return sitescrape.StrategyStatic
	}
	return s.Strategy
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// Truncate returns s cut to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return sitescrape.WrapError(sitescrape.EINVALID, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return sitescrape.Errorf(sitescrape.EINVALID, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return sitescrape.Errorf(sitescrape.EINVALID, "URL %q has no host", rawURL)
	}
	return nil
}
