// Package goquery implements sitescrape.FieldExtractor on top of goquery
// and cascadia.
package goquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/sitescrape"
)

// Ensure Extractor implements sitescrape.FieldExtractor at compile time.
var _ sitescrape.FieldExtractor = (*Extractor)(nil)

// Extractor evaluates field mappings against HTML documents.
// Failures are isolated per field: a field whose selector cannot be
// evaluated is logged and reported as absent.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new Extractor. A nil logger discards field errors.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{logger: logger}
}

// Extract parses html once and evaluates every field of mapping in order.
func (e *Extractor) Extract(html string, mapping sitescrape.FieldMapping) sitescrape.Result {
	result := make(sitescrape.Result, len(mapping))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("parse document", "err", err)
		for _, f := range mapping {
			result[f.Name] = sitescrape.Absent()
		}
		return result
	}

	for _, f := range mapping {
		v, err := extractField(doc, f.Rule)
		if err != nil {
			e.logger.Warn("extract field",
				"field", f.Name,
				"selector", f.Rule.Selector,
				"err", err,
			)
			v = sitescrape.Absent()
		}
		result[f.Name] = v
	}

	return result
}

// extractField evaluates a single rule. Panics raised by the selector
// engine are converted to errors so they stay scoped to the field.
func extractField(doc *goquery.Document, rule sitescrape.FieldRule) (v sitescrape.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("selector panic: %v", r)
		}
	}()

	if strings.TrimSpace(rule.Selector) == "" {
		return sitescrape.Absent(), fmt.Errorf("empty selector")
	}

	// goquery's Find treats an invalid selector as matching nothing,
	// so compile it ourselves to tell the two apart.
	m, err := cascadia.Compile(rule.Selector)
	if err != nil {
		return sitescrape.Absent(), fmt.Errorf("invalid selector: %w", err)
	}
	matches := doc.FindMatcher(m)

	switch rule.Cardinality {
	case sitescrape.List:
		return extractList(matches, rule.Attribute), nil
	case sitescrape.Single, "":
		return extractSingle(matches.First(), rule.Attribute), nil
	default:
		return sitescrape.Absent(), fmt.Errorf("unknown cardinality %q", rule.Cardinality)
	}
}

// extractList collects a value from every match. With an attribute, matches
// lacking it are dropped rather than reported as absent.
func extractList(matches *goquery.Selection, attr string) sitescrape.Value {
	items := make([]string, 0, matches.Length())
	matches.Each(func(_ int, sel *goquery.Selection) {
		if attr == "" {
			items = append(items, strings.TrimSpace(sel.Text()))
			return
		}
		if val, ok := sel.Attr(attr); ok {
			items = append(items, val)
		}
	})
	return sitescrape.ListOf(items)
}

func extractSingle(match *goquery.Selection, attr string) sitescrape.Value {
	if match.Length() == 0 {
		return sitescrape.Absent()
	}
	if attr == "" {
		return sitescrape.Text(strings.TrimSpace(match.Text()))
	}
	if val, ok := match.Attr(attr); ok {
		return sitescrape.Text(val)
	}
	return sitescrape.Absent()
}
