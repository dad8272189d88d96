package main

import (
	"fmt"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/capture"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	res, err := deps.Dispatcher.CaptureURL(deps.Ctx, deps.Opener, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	switch res.Status {
	case capture.StatusSkipped:
		fmt.Fprintf(deps.Stderr, "error: %s is not whitelisted. Use 'pagekeep whitelist add %s' to allow it.\n", res.Hostname, res.Hostname)
		return pagekeep.Errorf(pagekeep.EINVALID, "%s is not whitelisted", res.Hostname)
	case capture.StatusFailed:
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(res.Err))
		return res.Err
	}

	if c.DryRun {
		doc := res.Document
		fmt.Fprintf(deps.Stdout, "Title: %s\nURL: %s\nDate: %s\n\n%s\n",
			doc.Title, doc.URL, doc.Date.UTC().Format(pagekeep.DateLayout), doc.Content)
		return nil
	}

	if c.Out != "" {
		fmt.Fprintf(deps.Stdout, "saved     %s\n", res.Ack.Message)
		return nil
	}

	fmt.Fprintln(deps.Stdout, formatResult(res))
	return nil
}

// formatResult renders a capture outcome as one line.
func formatResult(res *capture.Result) string {
	switch res.Status {
	case capture.StatusSubmitted:
		title := res.Document.Title
		if title == "" {
			title = res.URL
		}
		return fmt.Sprintf("captured  %s  %s", title, res.URL)
	case capture.StatusFailed:
		return fmt.Sprintf("failed    %s  %s", res.URL, errorText(res.Err))
	default:
		return fmt.Sprintf("%-9s %s", res.Status, res.URL)
	}
}

// errorText returns the message of application errors and the full text of
// anything else.
func errorText(err error) string {
	if pagekeep.ErrorCode(err) == pagekeep.EINTERNAL {
		return err.Error()
	}
	return pagekeep.ErrorMessage(err)
}
