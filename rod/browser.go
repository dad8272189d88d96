// Package rod drives Chrome over the DevTools protocol: it watches tabs for
// completed page loads and opens pages for one-shot captures.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Browser owns a DevTools connection, either to a Chrome it launched or to
// one already running. Browser is safe for concurrent use.
type Browser struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	remoteURL string
	headless  bool
	mu        sync.Mutex
	closed    atomic.Bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithRemoteURL connects to a running Chrome instead of launching one.
// The URL may be a DevTools websocket URL or a host:port debugging address.
func WithRemoteURL(u string) BrowserOption {
	return func(b *Browser) {
		b.remoteURL = u
	}
}

// WithHeadless sets whether a launched Chrome runs headless. Defaults to true.
// Ignored when connecting to a remote browser.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// NewBrowser launches Chrome, or connects to the remote one if configured.
// Close must be called when the Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{headless: true}
	for _, opt := range opts {
		opt(b)
	}

	var err error
	if b.remoteURL != "" {
		err = b.connectRemote()
	} else {
		err = b.launchBrowser()
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Rod returns the underlying rod browser.
func (b *Browser) Rod() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.browser
}

// Close releases browser resources. A launched Chrome is shut down; a remote
// one is left running. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.launcher != nil {
		if b.browser != nil {
			err = b.browser.Close()
		}
		b.launcher.Kill()
		b.launcher = nil
	}
	b.browser = nil
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 when
// connected to a remote browser.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

// launchBrowser starts a new browser instance with stability flags.
func (b *Browser) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(b.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = lnchr
	return nil
}

func (b *Browser) connectRemote() error {
	u, err := launcher.ResolveURL(b.remoteURL)
	if err != nil {
		return fmt.Errorf("resolving remote browser %q: %w", b.remoteURL, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	return nil
}
