// Package rod implements sitescrape.Fetcher with headless Chrome driven by
// go-rod. Pages are rendered, so content produced by JavaScript is visible.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Session owns a headless Chrome process and a single tab that is reused
// for every navigation. Close must be called exactly once the session is no
// longer needed; further calls are no-ops.
//
// The launcher runs leakless, so the browser also dies if this process
// exits without calling Close.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	mu       sync.Mutex
	closed   atomic.Bool
}

// NewSession launches a headless browser with GPU acceleration, sandboxing
// and /dev/shm usage disabled, and opens a blank tab.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSession() (*Session, error) {
	lnchr := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Leakless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return nil, fmt.Errorf("opening tab: %w", err)
	}

	return &Session{
		browser:  browser,
		launcher: lnchr,
		page:     page,
	}, nil
}

// Page returns the session's tab, or nil once the session is closed.
func (s *Session) Page() *rod.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Close shuts down the browser and kills the launcher process.
// Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	s.page = nil
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}
