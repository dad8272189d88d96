package rod

import (
	"context"

	"github.com/fwojciec/pagekeep"
	"github.com/go-rod/rod"
)

// Ensure Page implements pagekeep.Page at compile time.
var _ pagekeep.Page = (*Page)(nil)

// Page is a pagekeep.Page bound to a Chrome tab.
type Page struct {
	page *rod.Page
}

// NewPage wraps a rod page.
func NewPage(p *rod.Page) *Page {
	return &Page{page: p}
}

// Location returns the current URL of the tab.
func (p *Page) Location(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// ReadyState returns document.readyState of the tab.
func (p *Page) ReadyState(ctx context.Context) (pagekeep.ReadyState, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.readyState`)
	if err != nil {
		return "", err
	}
	return pagekeep.ReadyState(res.Value.Str()), nil
}

// WaitLoad blocks until the window load event has fired.
func (p *Page) WaitLoad(ctx context.Context) error {
	return p.page.Context(ctx).WaitLoad()
}

// Snapshot returns the live DOM serialized as HTML with the tab title.
func (p *Page) Snapshot(ctx context.Context) (*pagekeep.Snapshot, error) {
	page := p.page.Context(ctx)

	info, err := page.Info()
	if err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	return &pagekeep.Snapshot{
		URL:   info.URL,
		Title: info.Title,
		HTML:  html,
	}, nil
}
