// Package http provides the HTTP side of pagekeep: a client for the content
// server and a static page fetcher for one-shot captures that don't require
// JavaScript rendering.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pagekeep"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultFetchTimeout bounds one static page fetch, redirects included.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPageBytes caps the size of a fetched document.
const DefaultMaxPageBytes = 8 << 20

// UserAgent identifies static fetches to the sites being captured.
const UserAgent = "pagekeep (static capture)"

// Compile-time interface verification.
var (
	_ pagekeep.Fetcher    = (*Fetcher)(nil)
	_ pagekeep.PageOpener = (*Fetcher)(nil)
)

// Fetcher loads pages over plain HTTP. It does not execute JavaScript, so
// the snapshot is the document as served.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for one fetch. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPageBytes sets the largest document Fetch accepts.
func WithMaxPageBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxPageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch loads rawURL, following redirects. The snapshot carries the URL of
// the response that was finally served, so callers check and record the
// page where it actually lives.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*pagekeep.Snapshot, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "invalid page URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, pagekeep.Errorf(pagekeep.EUNAVAILABLE, "fetching %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, pagekeep.Errorf(pagekeep.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, final)
	case resp.StatusCode != http.StatusOK:
		return nil, pagekeep.Errorf(pagekeep.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, final)
	}

	if ct := resp.Header.Get("Content-Type"); !isDocument(ct) {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "%s is %s, not a web page", final, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, pagekeep.Errorf(pagekeep.EUNAVAILABLE, "reading %s: %v", final, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "%s is larger than %d bytes", final, f.maxBytes)
	}

	doc := string(body)
	return &pagekeep.Snapshot{
		URL:   final,
		Title: documentTitle(doc),
		HTML:  doc,
	}, nil
}

// Open fetches url and returns it as an already loaded page.
func (f *Fetcher) Open(ctx context.Context, url string) (pagekeep.Page, func(), error) {
	return pagekeep.OpenFetched(ctx, f, url)
}

// Close is a no-op; idle connections are reused across fetches.
func (f *Fetcher) Close() error {
	return nil
}

// isDocument reports whether a Content-Type names something the extractors
// can read. A missing header is accepted.
func isDocument(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}

// documentTitle returns the text of the first <title> in the document head.
func documentTitle(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Body, atom.Svg:
				return ""
			case atom.Title:
				if z.Next() != html.TextToken {
					return ""
				}
				return pagekeep.NormalizeWhitespace(string(z.Text()))
			}
		}
	}
}
