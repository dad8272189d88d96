// Package readability implements pagekeep.Extractor with go-readability.
package readability

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagekeep.Extractor at compile time.
var _ pagekeep.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// When readability cannot parse an article the fallback extractor is used.
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

	pageURL, _ := url.Parse(snap.URL)
	article, err := readability.FromReader(strings.NewReader(snap.HTML), pageURL)
	if err != nil {
		return e.fallback.Extract(snap)
	}

	content := goquery.ContentTextFromHTML(article.Content)
	if content == "" {
		return e.fallback.Extract(snap)
	}

	title := snap.Title
	if title == "" {
		title = pagekeep.NormalizeWhitespace(article.Title)
	}

	return &pagekeep.CapturedDocument{
		Title:   title,
		URL:     snap.URL,
		Content: content,
		Date:    e.now().UTC().Truncate(time.Millisecond),
	}, nil
}
