package main

import "fmt"

// checkServer reports the content server state before a long-running
// command starts. An unreachable server only warns; captures and list calls
// surface their own errors once it is needed.
func checkServer(deps *Dependencies) {
	h, err := deps.Content.Health(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: content server unavailable: %s\n", errorText(err))
		return
	}
	fmt.Fprintf(deps.Stdout, "Content server is %s (%d items indexed)\n", h.Status, h.ItemsIndexed)
}
