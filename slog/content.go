package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagekeep"
)

// Ensure LoggingContentService implements pagekeep.ContentService.
var _ pagekeep.ContentService = (*LoggingContentService)(nil)

// LoggingContentService wraps a ContentService with request logging.
type LoggingContentService struct {
	next   pagekeep.ContentService
	logger *slog.Logger
}

// NewLoggingContentService creates a new LoggingContentService.
func NewLoggingContentService(next pagekeep.ContentService, logger *slog.Logger) *LoggingContentService {
	return &LoggingContentService{next: next, logger: logger}
}

// StoreContent logs the submitted URL and delegates to the wrapped service.
func (s *LoggingContentService) StoreContent(ctx context.Context, doc *pagekeep.CapturedDocument) (ack *pagekeep.Ack, err error) {
	defer func(begin time.Time) {
		status := ""
		if ack != nil {
			status = ack.Status
		}
		s.logger.Info("store content",
			"url", doc.URL,
			"bytes", len(doc.Content),
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StoreContent(ctx, doc)
}

// ListContent logs the number of records returned.
func (s *LoggingContentService) ListContent(ctx context.Context) (records []*pagekeep.ContentRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list content",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListContent(ctx)
}

// DeleteContent logs the deleted id.
func (s *LoggingContentService) DeleteContent(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete content",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteContent(ctx, id)
}

// Search logs the query and the number of results.
func (s *LoggingContentService) Search(ctx context.Context, query string) (results []*pagekeep.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search content",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

// Health logs the reported server state at debug level.
func (s *LoggingContentService) Health(ctx context.Context) (h *pagekeep.Health, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if h != nil {
			attrs = append(attrs, "status", h.Status, "items", h.ItemsIndexed)
		}
		s.logger.Debug("content server health", attrs...)
	}(time.Now())
	return s.next.Health(ctx)
}
