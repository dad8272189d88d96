// Package capture orchestrates a single page capture: whitelist check,
// load wait, content extraction and submission to the content server.
package capture

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"

	"github.com/fwojciec/pagekeep"
	"github.com/google/uuid"
)

// Status is the outcome of a capture.
type Status int

const (
	// StatusSkipped means the page host is not whitelisted.
	StatusSkipped Status = iota
	// StatusSubmitted means the document was accepted by the content server.
	StatusSubmitted
	// StatusFailed means a step after the whitelist check failed.
	StatusFailed
	// StatusDuplicate means an identical capture was already submitted.
	StatusDuplicate
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSubmitted:
		return "submitted"
	case StatusFailed:
		return "failed"
	case StatusDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a capture.
type Result struct {
	ID       string
	URL      string
	Hostname string
	Status   Status
	Document *pagekeep.CapturedDocument
	Ack      *pagekeep.Ack
	Err      error
}

// ResultFunc is a callback receiving every finished capture.
type ResultFunc func(res *Result)

// Dispatcher runs the capture chain for a page.
type Dispatcher struct {
	Settings  pagekeep.SettingsService
	Extractor pagekeep.Extractor
	Content   pagekeep.ContentWriter

	// Seen enables duplicate suppression when set.
	Seen pagekeep.SeenFilter

	// DryRun extracts without submitting.
	DryRun bool

	Logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Capture runs the chain once for page. Failures after the whitelist check
// are logged and reported in the result; the only returned errors are
// context errors raised while waiting for the page.
func (d *Dispatcher) Capture(ctx context.Context, page pagekeep.Page) (*Result, error) {
	res := &Result{ID: uuid.NewString()}
	logger := d.logger().With("capture_id", res.ID)

	settings, err := d.Settings.Settings(ctx)
	if err != nil {
		logger.Warn("settings unavailable, using defaults", "err", err)
		settings = pagekeep.DefaultSettings()
	}

	loc, err := page.Location(ctx)
	if err != nil {
		return d.fail(ctx, logger, res, "read location", err)
	}
	res.URL = loc
	res.Hostname = hostname(loc)
	logger = logger.With("url", loc)

	if !settings.Whitelist().Match(res.Hostname) {
		logger.Debug("host not whitelisted", "host", res.Hostname)
		res.Status = StatusSkipped
		return res, nil
	}

	state, err := page.ReadyState(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Debug("ready state unavailable, waiting for load", "err", err)
	}
	if state != pagekeep.ReadyStateComplete {
		if err := page.WaitLoad(ctx); err != nil {
			return d.fail(ctx, logger, res, "wait for load", err)
		}
	}

	snap, err := page.Snapshot(ctx)
	if err != nil {
		return d.fail(ctx, logger, res, "snapshot", err)
	}
	if snap.URL == "" {
		snap.URL = loc
	}

	// The page may have moved since Location was read.
	if snap.URL != loc {
		res.URL = snap.URL
		res.Hostname = hostname(snap.URL)
		logger = logger.With("snapshot_url", snap.URL)
		if !settings.Whitelist().Match(res.Hostname) {
			logger.Info("page left whitelisted host before capture", "host", res.Hostname)
			res.Status = StatusSkipped
			return res, nil
		}
	}

	doc, err := d.Extractor.Extract(snap)
	if err != nil {
		return d.fail(ctx, logger, res, "extract", err)
	}
	res.Document = doc

	submitted := false
	if d.Seen != nil {
		done, ok := d.claim(doc)
		if !ok {
			logger.Info("duplicate capture skipped")
			res.Status = StatusDuplicate
			return res, nil
		}
		defer func() { done(submitted) }()
	}

	if d.DryRun {
		logger.Info("dry run, not submitted", "bytes", len(doc.Content))
		res.Status = StatusSubmitted
		return res, nil
	}

	ack, err := d.Content.StoreContent(ctx, doc)
	if err != nil {
		logger.Error("submit failed", "err", err)
		res.Status = StatusFailed
		res.Err = err
		return res, nil
	}
	submitted = true
	res.Ack = ack
	res.Status = StatusSubmitted
	logger.Info("captured", "title", doc.Title, "status", ack.Status)
	return res, nil
}

// claim reserves doc for submission. It fails when an identical capture was
// already submitted or is being submitted by a concurrent capture. The
// returned done must be called once submission finished; a successful one
// is recorded in the seen filter.
func (d *Dispatcher) claim(doc *pagekeep.CapturedDocument) (done func(submitted bool), ok bool) {
	key := doc.URL + "\x00" + doc.Content

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[key]; busy || d.Seen.Test(doc) {
		return nil, false
	}
	if d.inflight == nil {
		d.inflight = make(map[string]struct{})
	}
	d.inflight[key] = struct{}{}

	return func(submitted bool) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if submitted {
			d.Seen.Add(doc)
		}
		delete(d.inflight, key)
	}, true
}

// Handler returns a PageHandler that captures every page it receives and
// passes each result to fn, which may be nil.
func (d *Dispatcher) Handler(fn ResultFunc) pagekeep.PageHandler {
	return func(ctx context.Context, page pagekeep.Page) {
		res, err := d.Capture(ctx, page)
		if err != nil {
			return
		}
		if fn != nil {
			fn(res)
		}
	}
}

// CaptureURL opens rawURL with opener and captures it once.
func (d *Dispatcher) CaptureURL(ctx context.Context, opener pagekeep.PageOpener, rawURL string) (*Result, error) {
	page, release, err := opener.Open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer release()
	return d.Capture(ctx, page)
}

func (d *Dispatcher) fail(ctx context.Context, logger *slog.Logger, res *Result, step string, err error) (*Result, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	logger.Error("capture failed", "step", step, "err", err)
	res.Status = StatusFailed
	res.Err = err
	return res, nil
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// hostname returns the host of rawURL without port, or "" if
// rawURL cannot be parsed.
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
