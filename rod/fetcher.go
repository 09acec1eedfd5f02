package rod

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/sitescrape"
)

// DefaultFetchTimeout bounds navigation plus the wait for the load event.
// It does not cover the wait selector, which has its own DefaultWaitTimeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultWaitTimeout bounds the wait for a wait selector to appear.
const DefaultWaitTimeout = 10 * time.Second

// Ensure Fetcher implements sitescrape.Fetcher at compile time.
var _ sitescrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a headless browser.
//
// All fetches share one tab, so calls are serialized: a second Fetch blocks
// until the first returns.
type Fetcher struct {
	session      *Session
	fetchTimeout time.Duration
	waitTimeout  time.Duration
	waitSelector string
	mu           sync.Mutex
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for navigation and page load.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithWaitTimeout sets how long Fetch waits for the wait selector.
// Defaults to DefaultWaitTimeout (10s) if not specified.
func WithWaitTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.waitTimeout = d
	}
}

// WithWaitSelector sets the selector to wait for when Fetch is called
// without one.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// NewFetcher launches a browser session and returns a Fetcher that owns it.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		waitTimeout:  DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	session, err := NewSession()
	if err != nil {
		return nil, err
	}
	f.session = session

	return f, nil
}

// Fetch navigates to url and returns the rendered HTML. When waitSelector
// (or the default wait selector) is set, Fetch blocks until a matching
// element is present, failing with ETIMEOUT once the wait timeout elapses.
func (f *Fetcher) Fetch(ctx context.Context, url, waitSelector string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	page := f.session.Page()
	if page == nil {
		return "", sitescrape.Errorf(sitescrape.EINVALID, "fetcher closed")
	}

	loadCtx := ctx
	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}
	loading := page.Context(loadCtx)

	if err := loading.Navigate(url); err != nil {
		return "", fetchError(err, "navigating to %s", url)
	}
	if err := loading.WaitLoad(); err != nil {
		return "", fetchError(err, "loading %s", url)
	}

	page = page.Context(ctx)

	if waitSelector == "" {
		waitSelector = f.waitSelector
	}
	if waitSelector != "" {
		// The wait runs on its own budget, independent of the load deadline.
		waitCtx, cancel := context.WithTimeout(ctx, f.waitTimeout)
		defer cancel()

		if _, err := page.Context(waitCtx).Element(waitSelector); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return "", sitescrape.WrapError(sitescrape.ETIMEOUT, err,
					"timed out after %s waiting for %q on %s", f.waitTimeout, waitSelector, url)
			}
			return "", sitescrape.WrapError(sitescrape.EINTERNAL, err, "waiting for %q on %s", waitSelector, url)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(err, "reading %s", url)
	}

	return html, nil
}

// Close releases the browser session. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.session.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.session.LauncherPID()
}

// fetchError classifies a navigation failure: deadlines become ETIMEOUT,
// everything else ENETWORK.
func fetchError(err error, format string, args ...any) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return sitescrape.WrapError(sitescrape.ETIMEOUT, err, format, args...)
	}
	return sitescrape.WrapError(sitescrape.ENETWORK, err, format, args...)
}
