package mock

import (
	"context"

	"github.com/fwojciec/pagekeep"
)

var _ pagekeep.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagekeep.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagekeep.Snapshot, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagekeep.Snapshot, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
