package pagekeep

import (
	"strings"
	"time"
)

// Snapshot is an immutable view of a loaded page.
type Snapshot struct {
	// URL is the page location at capture time.
	URL string

	// Title is the document title as reported by the browser.
	// May be empty, in which case extractors read <title> from HTML.
	Title string

	// HTML is the serialized document.
	HTML string
}

// ExcludeSelectors lists the structural, navigational and promotional
// regions removed before content is read. Order is significant only for
// readability; the rules do not depend on one another.
var ExcludeSelectors = []string{
	"header", "footer", "nav", ".navigation", ".menu", ".navbar", ".nav-bar",
	".sidebar", ".side-bar", "#sidebar", "#menu", "#navigation", "#header", "#footer",
	`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`,
	".ad", ".ads", ".advertisement", ".social", ".sharing", ".share",
	".comments", ".comment-section", ".related-posts", ".recommended",
}

// ContentRootSelectors lists, in order of preference, the selectors tried
// when picking the main content root.
var ContentRootSelectors = []string{"main", "article", ".content", "#content"}

// ContentBlockSelector matches the elements whose text forms the content.
const ContentBlockSelector = "p, h1, h2, h3, h4, h5, h6"

// BlockSeparator joins the text of consecutive content blocks.
const BlockSeparator = "\n\n"

// Extractor turns a page snapshot into a captured document.
type Extractor interface {
	// Extract reads the main content of the snapshot. A page without
	// recognizable content yields a document with empty content rather
	// than an error.
	Extract(snap *Snapshot) (*CapturedDocument, error)
}

// Clock returns the current time. Extractors use it to stamp documents.
type Clock func() time.Time

// NormalizeWhitespace collapses every run of whitespace into a single space
// and trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinBlocks normalizes each block, drops empty ones and joins the rest
// with BlockSeparator.
func JoinBlocks(blocks []string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b = NormalizeWhitespace(b); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, BlockSeparator)
}
