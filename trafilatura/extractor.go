// Package trafilatura implements pagekeep.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagekeep.Extractor at compile time.
var _ pagekeep.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// When trafilatura finds no content the fallback extractor is used.
type Extractor struct {
	fallback pagekeep.Extractor
	now      pagekeep.Clock
}

// NewExtractor creates a new Extractor.
func NewExtractor(fallback pagekeep.Extractor) *Extractor {
	return &Extractor{fallback: fallback, now: time.Now}
}

// Extract processes the snapshot HTML and returns the main content.
func (e *Extractor) Extract(snap *pagekeep.Snapshot) (*pagekeep.CapturedDocument, error) {
	if strings.TrimSpace(snap.HTML) == "" {
		return e.fallback.Extract(snap)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(snap.URL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(snap.HTML), opts)
	if err != nil || result.ContentNode == nil {
		return e.fallback.Extract(snap)
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return e.fallback.Extract(snap)
	}

	content := goquery.ContentTextFromHTML(contentHTML)
	if content == "" {
		return e.fallback.Extract(snap)
	}

	title := snap.Title
	if title == "" {
		title = pagekeep.NormalizeWhitespace(result.Metadata.Title)
	}

	return &pagekeep.CapturedDocument{
		Title:   title,
		URL:     snap.URL,
		Content: content,
		Date:    e.now().UTC().Truncate(time.Millisecond),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
