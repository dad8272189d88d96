package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagekeep"
)

// Ensure LoggingFetcher implements pagekeep.Fetcher.
var _ pagekeep.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs each page load. A fetch that was
// redirected is logged at warn level with the location it landed on, since
// the whitelist is checked against that location and not the requested one.
type LoggingFetcher struct {
	next   pagekeep.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagekeep.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (snap *pagekeep.Snapshot, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		level := slog.LevelInfo
		switch {
		case err != nil:
			level = slog.LevelWarn
			attrs = append(attrs, "err", err)
		case snap.URL != url:
			level = slog.LevelWarn
			attrs = append(attrs, "redirected_to", snap.URL, "bytes", len(snap.HTML))
		default:
			attrs = append(attrs, "title", snap.Title, "bytes", len(snap.HTML))
		}
		f.logger.Log(ctx, level, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
