package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pagekeep"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	results, err := deps.Content.Search(deps.Ctx, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, pagekeep.FormatSearchResults(results, c.Preview))
	return nil
}
