package mock

import (
	"context"

	"github.com/fwojciec/pagekeep"
)

var _ pagekeep.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of pagekeep.ContentService.
type ContentService struct {
	StoreContentFn  func(ctx context.Context, doc *pagekeep.CapturedDocument) (*pagekeep.Ack, error)
	ListContentFn   func(ctx context.Context) ([]*pagekeep.ContentRecord, error)
	DeleteContentFn func(ctx context.Context, id string) error
	SearchFn        func(ctx context.Context, query string) ([]*pagekeep.SearchResult, error)
	HealthFn        func(ctx context.Context) (*pagekeep.Health, error)
}

func (s *ContentService) StoreContent(ctx context.Context, doc *pagekeep.CapturedDocument) (*pagekeep.Ack, error) {
	return s.StoreContentFn(ctx, doc)
}

func (s *ContentService) ListContent(ctx context.Context) ([]*pagekeep.ContentRecord, error) {
	return s.ListContentFn(ctx)
}

func (s *ContentService) DeleteContent(ctx context.Context, id string) error {
	return s.DeleteContentFn(ctx, id)
}

func (s *ContentService) Search(ctx context.Context, query string) ([]*pagekeep.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

func (s *ContentService) Health(ctx context.Context) (*pagekeep.Health, error) {
	return s.HealthFn(ctx)
}
