package pagekeep

import "context"

// ReadyState mirrors document.readyState.
type ReadyState string

// ReadyState values.
const (
	ReadyStateLoading     ReadyState = "loading"
	ReadyStateInteractive ReadyState = "interactive"
	ReadyStateComplete    ReadyState = "complete"
)

// Page is a live page that may still be loading.
type Page interface {
	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)

	// ReadyState returns the document ready state.
	ReadyState(ctx context.Context) (ReadyState, error)

	// WaitLoad blocks until the page has finished loading.
	WaitLoad(ctx context.Context) error

	// Snapshot serializes the loaded page.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// PageHandler is invoked once per completed page load.
type PageHandler func(ctx context.Context, page Page)

// PageOpener opens a URL as a Page.
type PageOpener interface {
	// Open loads url and returns the page. The page remains valid until
	// the returned release function is called.
	Open(ctx context.Context, url string) (page Page, release func(), err error)

	// Close releases resources held by the opener.
	Close() error
}

// Fetcher loads pages without a live tab.
type Fetcher interface {
	// Fetch loads url and returns the document it resolved to. The
	// snapshot URL is the final location after redirects, which may be on
	// a different host than url.
	Fetch(ctx context.Context, url string) (*Snapshot, error)

	// Close releases resources.
	Close() error
}

// Ensure StaticPage implements Page at compile time.
var _ Page = (*StaticPage)(nil)

// StaticPage is a Page over an already loaded snapshot.
type StaticPage struct {
	Snap *Snapshot
}

// Location returns the snapshot URL.
func (p *StaticPage) Location(context.Context) (string, error) {
	return p.Snap.URL, nil
}

// ReadyState always reports complete.
func (p *StaticPage) ReadyState(context.Context) (ReadyState, error) {
	return ReadyStateComplete, nil
}

// WaitLoad returns immediately.
func (p *StaticPage) WaitLoad(ctx context.Context) error {
	return ctx.Err()
}

// Snapshot returns the snapshot.
func (p *StaticPage) Snapshot(context.Context) (*Snapshot, error) {
	return p.Snap, nil
}

// OpenFetched fetches url with f and returns it as an already loaded page
// located wherever the fetch ended up.
func OpenFetched(ctx context.Context, f Fetcher, url string) (Page, func(), error) {
	snap, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	return &StaticPage{Snap: snap}, func() {}, nil
}

// Ensure FetchOpener implements PageOpener at compile time.
var _ PageOpener = (*FetchOpener)(nil)

// FetchOpener adapts a Fetcher into a PageOpener.
type FetchOpener struct {
	Fetcher Fetcher
}

// Open delegates to OpenFetched.
func (o *FetchOpener) Open(ctx context.Context, url string) (Page, func(), error) {
	return OpenFetched(ctx, o.Fetcher, url)
}

// Close closes the underlying fetcher.
func (o *FetchOpener) Close() error {
	return o.Fetcher.Close()
}
