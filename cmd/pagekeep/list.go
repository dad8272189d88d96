package main

import (
	"fmt"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/browse"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	from, to, err := browse.ParseRange(c.From, c.To)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagekeep.ErrorMessage(err))
		return err
	}

	records, err := deps.Content.ListContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	var filtered []*pagekeep.ContentRecord
	for _, r := range records {
		if browse.InRange(r.Date, from, to) {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) == 0 {
		fmt.Fprintln(deps.Stdout, "No content found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, pagekeep.FormatRecords(filtered))
	fmt.Fprintf(deps.Stdout, "\n%d items\n", len(filtered))
	return nil
}
