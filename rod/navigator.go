package rod

import (
	"context"
	"time"

	"github.com/fwojciec/pagekeep"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultLoadTimeout bounds navigation plus load wait for one page.
const DefaultLoadTimeout = 10 * time.Second

// Compile-time interface verification.
var (
	_ pagekeep.PageOpener = (*Navigator)(nil)
	_ pagekeep.Fetcher    = (*Navigator)(nil)
)

// Navigator opens URLs in fresh tabs.
// Navigator is safe for concurrent use by multiple goroutines.
type Navigator struct {
	browser *Browser
	timeout time.Duration
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithLoadTimeout sets the per-page navigation timeout.
func WithLoadTimeout(d time.Duration) NavigatorOption {
	return func(n *Navigator) {
		n.timeout = d
	}
}

// NewNavigator creates a Navigator over browser. Closing the Navigator
// closes the browser.
func NewNavigator(browser *Browser, opts ...NavigatorOption) *Navigator {
	n := &Navigator{browser: browser, timeout: DefaultLoadTimeout}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Open navigates a new tab to url and waits for it to load. The release
// function closes the tab.
func (n *Navigator) Open(ctx context.Context, url string) (pagekeep.Page, func(), error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	page, err := n.browser.Rod().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, err
	}
	release := func() { _ = page.Close() }

	loadCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	p := page.Context(loadCtx)
	if err := p.Navigate(url); err != nil {
		release()
		return nil, nil, err
	}
	if err := p.WaitLoad(); err != nil {
		release()
		return nil, nil, err
	}

	return NewPage(page), release, nil
}

// Fetch renders url in a fresh tab and returns the resulting DOM. The
// snapshot URL is the tab location after any redirects.
func (n *Navigator) Fetch(ctx context.Context, url string) (*pagekeep.Snapshot, error) {
	page, release, err := n.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer release()
	return page.Snapshot(ctx)
}

// Close releases browser resources.
func (n *Navigator) Close() error {
	return n.browser.Close()
}
