package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fwojciec/pagekeep/browse"
	"github.com/fwojciec/pagekeep/capture"
	pkchi "github.com/fwojciec/pagekeep/chi"
	"golang.org/x/sync/errgroup"
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Settings(deps.Ctx)
	if err == nil && len(settings.WhitelistedDomains) == 0 {
		fmt.Fprintln(deps.Stderr, "warning: no whitelisted domains, nothing will be captured. Use 'pagekeep whitelist add <domain>'.")
	}

	checkServer(deps)

	var mu sync.Mutex
	report := func(res *capture.Result) {
		if res.Status == capture.StatusSkipped {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(deps.Stdout, formatResult(res))
	}

	g, ctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		return deps.Watcher.Watch(ctx, deps.Dispatcher.Handler(report))
	})

	if c.UI != "" {
		model := browse.NewModel(deps.Content)
		_ = model.Refresh(ctx)
		srv := pkchi.NewServer(model, pkchi.WithLogger(deps.Logger))
		if settings != nil {
			srv.ServerURL = settings.ServerURL
		}
		fmt.Fprintf(deps.Stdout, "Serving companion page on http://%s\n", c.UI)
		g.Go(func() error {
			return srv.ListenAndServe(ctx, c.UI)
		})
	}

	fmt.Fprintln(deps.Stdout, "Watching for page loads (Ctrl-C to stop)")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	return nil
}
