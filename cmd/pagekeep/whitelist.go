package main

import (
	"fmt"

	"github.com/fwojciec/pagekeep"
)

// Run executes the whitelist add command.
func (c *WhitelistAddCmd) Run(deps *Dependencies) error {
	settings, err := pagekeep.AddDomain(deps.Ctx, deps.Settings, c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Whitelisted %s (%d domains)\n", c.Domain, len(settings.WhitelistedDomains))
	return nil
}

// Run executes the whitelist remove command.
func (c *WhitelistRemoveCmd) Run(deps *Dependencies) error {
	if _, err := pagekeep.RemoveDomain(deps.Ctx, deps.Settings, c.Domain); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed %s\n", c.Domain)
	return nil
}

// Run executes the whitelist list command.
func (c *WhitelistListCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Settings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if len(settings.WhitelistedDomains) == 0 {
		fmt.Fprintln(deps.Stdout, "No whitelisted domains. Use 'pagekeep whitelist add' to add one.")
		return nil
	}
	for _, d := range settings.WhitelistedDomains {
		fmt.Fprintln(deps.Stdout, d)
	}
	return nil
}
