package mock

import (
	"context"

	"github.com/fwojciec/pagekeep"
)

// Compile-time interface verification.
var (
	_ pagekeep.Page       = (*Page)(nil)
	_ pagekeep.PageOpener = (*PageOpener)(nil)
)

// Page is a mock implementation of pagekeep.Page.
type Page struct {
	LocationFn   func(ctx context.Context) (string, error)
	ReadyStateFn func(ctx context.Context) (pagekeep.ReadyState, error)
	WaitLoadFn   func(ctx context.Context) error
	SnapshotFn   func(ctx context.Context) (*pagekeep.Snapshot, error)
}

func (p *Page) Location(ctx context.Context) (string, error) {
	return p.LocationFn(ctx)
}

func (p *Page) ReadyState(ctx context.Context) (pagekeep.ReadyState, error) {
	return p.ReadyStateFn(ctx)
}

func (p *Page) WaitLoad(ctx context.Context) error {
	return p.WaitLoadFn(ctx)
}

func (p *Page) Snapshot(ctx context.Context) (*pagekeep.Snapshot, error) {
	return p.SnapshotFn(ctx)
}

// PageOpener is a mock implementation of pagekeep.PageOpener.
type PageOpener struct {
	OpenFn  func(ctx context.Context, url string) (pagekeep.Page, func(), error)
	CloseFn func() error
}

func (o *PageOpener) Open(ctx context.Context, url string) (pagekeep.Page, func(), error) {
	return o.OpenFn(ctx, url)
}

func (o *PageOpener) Close() error {
	return o.CloseFn()
}
