package main

import (
	"fmt"

	"github.com/fwojciec/pagekeep/browse"
	pkchi "github.com/fwojciec/pagekeep/chi"
)

// Run executes the ui command.
func (c *UICmd) Run(deps *Dependencies) error {
	checkServer(deps)

	model := browse.NewModel(deps.Content)
	// A failed first load is shown on the page; the user can refresh.
	_ = model.Refresh(deps.Ctx)

	srv := pkchi.NewServer(model, pkchi.WithLogger(deps.Logger))
	if settings, err := deps.Settings.Settings(deps.Ctx); err == nil {
		srv.ServerURL = settings.ServerURL
	}

	fmt.Fprintf(deps.Stdout, "Serving companion page on http://%s (Ctrl-C to stop)\n", c.Addr)
	if err := srv.ListenAndServe(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}
