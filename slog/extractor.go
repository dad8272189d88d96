package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagekeep"
)

// Ensure LoggingExtractor implements pagekeep.Extractor.
var _ pagekeep.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   pagekeep.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagekeep.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the size of the input and output.
func (e *LoggingExtractor) Extract(snap *pagekeep.Snapshot) (doc *pagekeep.CapturedDocument, err error) {
	defer func(begin time.Time) {
		chars := 0
		if doc != nil {
			chars = len(doc.Content)
		}
		e.logger.Debug("extract",
			"url", snap.URL,
			"html_bytes", len(snap.HTML),
			"content_bytes", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(snap)
}
