package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fwojciec/pagekeep"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"
)

// Watcher invokes a handler for every completed page load in any tab of a
// browser, including tabs opened after watching starts.
type Watcher struct {
	browser *Browser
	logger  *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger for attach and detach events.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher over browser.
func NewWatcher(browser *Browser, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		browser: browser,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch attaches to every page target and calls handle once per load event
// of each, on its own goroutine. Watch blocks until ctx is cancelled or the
// browser disconnects, then waits for running handlers to return.
func (w *Watcher) Watch(parent context.Context, handle pagekeep.PageHandler) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	browser := w.browser.Rod().Context(ctx)
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	tabs := make(map[proto.TargetTargetID]context.CancelFunc)

	attach := func(id proto.TargetTargetID) {
		mu.Lock()
		if _, ok := tabs[id]; ok {
			mu.Unlock()
			return
		}
		tabCtx, tabCancel := context.WithCancel(gctx)
		tabs[id] = tabCancel
		mu.Unlock()

		g.Go(func() error {
			defer tabCancel()
			page, err := browser.PageFromTarget(id)
			if err != nil {
				w.logger.Debug("attach failed", "target", id, "err", err)
				return nil
			}
			w.logger.Debug("tab attached", "target", id)
			w.watchTab(tabCtx, g, page, handle)
			return nil
		})
	}

	detach := func(id proto.TargetTargetID) {
		mu.Lock()
		defer mu.Unlock()
		if tabCancel, ok := tabs[id]; ok {
			tabCancel()
			delete(tabs, id)
			w.logger.Debug("tab detached", "target", id)
		}
	}

	wait := browser.EachEvent(
		func(e *proto.TargetTargetCreated) {
			if isPageTarget(e.TargetInfo) {
				attach(e.TargetInfo.TargetID)
			}
		},
		func(e *proto.TargetTargetDestroyed) {
			detach(e.TargetID)
		},
	)

	// Discovery reports every existing target as created, then new ones as
	// they appear.
	if err := (proto.TargetSetDiscoverTargets{Discover: true}).Call(browser); err != nil {
		cancel()
		_ = g.Wait()
		return pagekeep.Errorf(pagekeep.EUNAVAILABLE, "enabling target discovery: %v", err)
	}

	wait()
	cancel()
	_ = g.Wait()

	if err := parent.Err(); err != nil {
		return err
	}
	return pagekeep.Errorf(pagekeep.EUNAVAILABLE, "browser disconnected")
}

// watchTab dispatches load events of one tab until ctx is done.
func (w *Watcher) watchTab(ctx context.Context, g *errgroup.Group, page *rod.Page, handle pagekeep.PageHandler) {
	tab := page.Context(ctx)
	wait := tab.EachEvent(func(e *proto.PageLoadEventFired) {
		g.Go(func() error {
			handle(ctx, NewPage(page))
			return nil
		})
	})
	wait()
}

func isPageTarget(info *proto.TargetTargetInfo) bool {
	return info != nil && string(info.Type) == "page"
}

// String describes the watched browser for log lines.
func (w *Watcher) String() string {
	if pid := w.browser.LauncherPID(); pid != 0 {
		return fmt.Sprintf("launched chrome (pid %d)", pid)
	}
	return "remote chrome"
}
