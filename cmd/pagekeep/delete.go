package main

import (
	"fmt"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/browse"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if len(c.IDs) == 0 && !c.All {
		fmt.Fprintln(deps.Stderr, "error: pass content ids or --all")
		return pagekeep.Errorf(pagekeep.EINVALID, "no items selected")
	}
	if len(c.IDs) > 0 && c.All {
		fmt.Fprintln(deps.Stderr, "error: pass either content ids or --all, not both")
		return pagekeep.Errorf(pagekeep.EINVALID, "ids and --all are mutually exclusive")
	}
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagekeep.Errorf(pagekeep.EINVALID, "use --force to confirm deletion")
	}

	from, to, err := browse.ParseRange(c.From, c.To)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagekeep.ErrorMessage(err))
		return err
	}

	model := browse.NewModel(deps.Content)
	if err := model.Refresh(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.All {
		model.ApplyDateFilter(from, to)
		model.SelectAll()
	} else {
		for _, id := range c.IDs {
			model.Toggle(id, true)
		}
		if missing := missingIDs(c.IDs, model.Selected()); len(missing) > 0 {
			fmt.Fprintf(deps.Stderr, "error: content %q not found. Use 'pagekeep list' to see available items.\n", missing[0])
			return pagekeep.Errorf(pagekeep.ENOTFOUND, "content %q not found", missing[0])
		}
	}

	report, err := model.DeleteSelected(deps.Ctx)
	if report == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagekeep.ErrorMessage(err))
		return err
	}

	for _, id := range report.Deleted {
		fmt.Fprintf(deps.Stdout, "Deleted %s\n", id)
	}
	if report.RefreshErr != nil {
		fmt.Fprintf(deps.Stderr, "warning: could not reload content after delete: %s\n", errorText(report.RefreshErr))
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: deleting %s: %s\n", report.Failed, errorText(err))
		if len(report.Remaining) > 0 {
			fmt.Fprintf(deps.Stderr, "not attempted: %d items\n", len(report.Remaining))
		}
		return err
	}
	return nil
}

func missingIDs(want, have []string) []string {
	found := make(map[string]bool, len(have))
	for _, id := range have {
		found[id] = true
	}
	var missing []string
	for _, id := range want {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
