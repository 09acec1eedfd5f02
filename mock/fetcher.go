package mock

import (
	"context"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitescrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url, waitSelector string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url, waitSelector string) (string, error) {
	return f.FetchFn(ctx, url, waitSelector)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
