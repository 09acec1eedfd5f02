// Package sitescrape provides a small website content extractor and a
// prompt builder for classifying clients into business domains.
//
// A page is fetched with one of two strategies (a static HTTP request or a
// headless browser) and a declarative field mapping is applied to the
// fetched markup, producing a flat result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, gemini/).
package sitescrape
