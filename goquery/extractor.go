// Package goquery implements the rule-based main-content extractor.
package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagekeep"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagekeep.Extractor at compile time.
var _ pagekeep.Extractor = (*Extractor)(nil)

// Extractor reads the main content of a page using the fixed rule set in
// pagekeep.ExcludeSelectors and pagekeep.ContentRootSelectors.
//
// The parsed tree is never modified: excluded regions are skipped during
// traversal instead of being removed.
type Extractor struct {
	now pagekeep.Clock
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock used to stamp captured documents.
// Defaults to time.Now.
func WithClock(c pagekeep.Clock) Option {
	return func(e *Extractor) {
		e.now = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the captured document for snap. Pages without any
// recognizable content produce empty content, not an error.
func (e *Extractor) Extract(snap *pagekeep.Snapshot) (*pagekeep.CapturedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "failed to parse HTML: %v", err)
	}

	title := snap.Title
	if title == "" {
		title = pagekeep.NormalizeWhitespace(doc.Find("title").First().Text())
	}

	return &pagekeep.CapturedDocument{
		Title:   title,
		URL:     snap.URL,
		Content: ContentText(doc),
		Date:    e.now().UTC().Truncate(time.Millisecond),
	}, nil
}

// ContentTextFromHTML parses rawHTML and returns its content text.
func ContentTextFromHTML(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	return ContentText(doc)
}

// ContentText applies the extraction rules to a parsed document and returns
// the normalized content text.
func ContentText(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		body = doc.Selection
	}

	x := newExclusions(body)
	root := contentRoot(body, x)

	var blocks []string
	root.Find(pagekeep.ContentBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		if x.covers(n) {
			return
		}
		blocks = append(blocks, x.text(n))
	})
	if len(blocks) > 0 {
		return pagekeep.JoinBlocks(blocks)
	}

	var fallback strings.Builder
	for _, n := range root.Nodes {
		fallback.WriteString(x.text(n))
	}
	return pagekeep.NormalizeWhitespace(fallback.String())
}

// contentRoot returns the first non-excluded match of the content root
// selectors, or body when none match.
func contentRoot(body *goquery.Selection, x exclusions) *goquery.Selection {
	for _, selector := range pagekeep.ContentRootSelectors {
		match := body.Find(selector).FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return !x.covers(sel.Get(0))
		}).First()
		if match.Length() > 0 {
			return match
		}
	}
	return body
}

// exclusions is the set of elements matched by pagekeep.ExcludeSelectors.
type exclusions map[*html.Node]struct{}

func newExclusions(body *goquery.Selection) exclusions {
	x := make(exclusions)
	for _, selector := range pagekeep.ExcludeSelectors {
		body.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			x[sel.Get(0)] = struct{}{}
		})
	}
	return x
}

// covers reports whether n or one of its ancestors is excluded.
func (x exclusions) covers(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if _, ok := x[n]; ok {
			return true
		}
	}
	return false
}

// text concatenates the text nodes under n, skipping excluded subtrees
// and non-rendered elements.
func (x exclusions) text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if _, ok := x[n]; ok {
				return
			}
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
