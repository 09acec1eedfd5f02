package sitescrape

import "context"

// Strategy selects how pages are fetched. It is chosen once, when the
// Fetcher is constructed, and applies to every subsequent fetch.
type Strategy string

// Strategy constants.
const (
	// StrategyStatic issues a plain HTTP GET. No JavaScript runs.
	StrategyStatic Strategy = "static"

	// StrategyBrowser navigates a headless browser and returns the
	// rendered document.
	StrategyBrowser Strategy = "browser"
)

// ParseStrategy converts a strategy name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStatic, StrategyBrowser:
		return Strategy(s), nil
	case "":
		return StrategyStatic, nil
	}
	return "", Errorf(EINVALID, "unknown strategy %q (want static or browser)", s)
}

// Fetcher retrieves markup from URLs.
type Fetcher interface {
	// Fetch retrieves the document at url and returns its markup.
	// If waitSelector is non-empty and the implementation renders pages,
	// Fetch blocks until an element matching it is present or the wait
	// timeout expires (ETIMEOUT). Transport failures return ENETWORK.
	Fetch(ctx context.Context, url, waitSelector string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
