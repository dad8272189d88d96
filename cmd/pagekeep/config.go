package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/sqlite"
)

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Settings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s = %s\n", sqlite.KeyServerURL, settings.ServerURL)
	fmt.Fprintf(deps.Stdout, "%s = %s\n", sqlite.KeyWhitelistedDomains, strings.Join(settings.WhitelistedDomains, ", "))
	return nil
}

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	var upd pagekeep.SettingsUpdate
	switch c.Key {
	case sqlite.KeyServerURL:
		v := strings.TrimSpace(c.Value)
		upd.ServerURL = &v
	case sqlite.KeyWhitelistedDomains:
		domains := []string{}
		for _, d := range strings.Split(c.Value, ",") {
			if d = strings.TrimSpace(d); d != "" {
				domains = append(domains, d)
			}
		}
		upd.WhitelistedDomains = &domains
	default:
		fmt.Fprintf(deps.Stderr, "error: unknown setting %q\n", c.Key)
		return pagekeep.Errorf(pagekeep.EINVALID, "unknown setting %q", c.Key)
	}

	if _, err := deps.Settings.UpdateSettings(deps.Ctx, upd); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Set %s\n", c.Key)
	return nil
}
