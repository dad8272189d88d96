package pagekeep

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format of CapturedDocument.Date: ISO-8601 in UTC
// with millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// CapturedDocument is the readable content of one page, created once per
// qualifying page load and sent to the content server.
type CapturedDocument struct {
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// Validate returns an error if the document contains invalid fields.
// Empty content is valid.
func (d *CapturedDocument) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "captured document URL required")
	}
	if d.Date.IsZero() {
		return Errorf(EINVALID, "captured document date required")
	}
	return nil
}

// MarshalJSON encodes the date in DateLayout.
func (d CapturedDocument) MarshalJSON() ([]byte, error) {
	type alias CapturedDocument
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(d),
		Date:  d.Date.UTC().Format(DateLayout),
	})
}

// ContentRecord is the server-held summary of a captured document.
type ContentRecord struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Date           time.Time `json:"date"`
	ContentPreview string    `json:"content_preview"`

	// RawDate is the date exactly as the server sent it. Date is zero when
	// RawDate is not a recognizable timestamp.
	RawDate string `json:"-"`
}

// UnmarshalJSON accepts any date string the server stores. Dates that
// cannot be parsed leave Date zero instead of failing the record.
func (r *ContentRecord) UnmarshalJSON(data []byte) error {
	type alias ContentRecord
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.RawDate = aux.Date
	r.Date, _ = ParseDate(aux.Date)
	return nil
}

// DateLayouts lists the timestamp formats recognized in server records,
// in the order they are tried. Layouts without a zone are read as UTC.
var DateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses s with the first matching layout of DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SearchResult is one match returned by the content server's search.
type SearchResult struct {
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Content string    `json:"content"`
	Date    time.Time `json:"-"`
	RawDate string    `json:"date"`

	// Score is a similarity in (0, 1]; higher is closer.
	Score float64 `json:"score"`
}

// HealthStatusHealthy is the status reported by a working content server.
const HealthStatusHealthy = "healthy"

// Health describes the content server's reported state.
type Health struct {
	Status       string `json:"status"`
	ItemsIndexed int    `json:"items_indexed"`
	Collection   string `json:"collection"`
}

// Ack is the acknowledgement returned by the content server.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ContentWriter submits captured documents to the content server.
type ContentWriter interface {
	StoreContent(ctx context.Context, doc *CapturedDocument) (*Ack, error)
}

// ContentService represents the remote content server.
type ContentService interface {
	// StoreContent submits a captured document.
	StoreContent(ctx context.Context, doc *CapturedDocument) (*Ack, error)

	// ListContent returns summaries of every stored document.
	ListContent(ctx context.Context) ([]*ContentRecord, error)

	// DeleteContent removes a stored document.
	// Returns ENOTFOUND if the server reports no such document.
	DeleteContent(ctx context.Context, id string) error

	// Search returns stored documents ranked by similarity to query.
	Search(ctx context.Context, query string) ([]*SearchResult, error)

	// Health reports whether the server is up and how much it holds.
	Health(ctx context.Context) (*Health, error)
}

// SeenFilter remembers which captures were already submitted.
// False positives are possible; false negatives are not.
type SeenFilter interface {
	// Test reports whether an identical capture might have been added.
	Test(doc *CapturedDocument) bool

	// Add records doc.
	Add(doc *CapturedDocument)
}
