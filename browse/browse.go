// Package browse holds the state behind the companion page: the fetched
// content list, the date-filtered view of it and the user's selection.
package browse

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/pagekeep"
)

// Lister fetches and deletes content records.
type Lister interface {
	ListContent(ctx context.Context) ([]*pagekeep.ContentRecord, error)
	DeleteContent(ctx context.Context, id string) error
}

// Stats summarizes the current view.
type Stats struct {
	Total    int
	Selected int
}

// Item is a filtered record with its selection state.
type Item struct {
	*pagekeep.ContentRecord
	Selected bool
}

// View is a point-in-time copy of the model for rendering.
type View struct {
	Items []Item
	From  time.Time
	To    time.Time
	Stats Stats
	Err   error
}

// DeleteReport describes the outcome of DeleteSelected.
// Deleted and Remaining keep selection order; Failed is the id whose delete
// stopped the sequence, if any. RefreshErr is set when the list could not be
// refetched afterwards, in which case the view still shows the old list.
type DeleteReport struct {
	Deleted    []string
	Failed     string
	Remaining  []string
	Err        error
	RefreshErr error
}

// Model is the browse view-model. Model is safe for concurrent use.
type Model struct {
	content Lister

	mu       sync.Mutex
	all      []*pagekeep.ContentRecord
	filtered []*pagekeep.ContentRecord
	selected []string
	from, to time.Time
	err      error
}

// NewModel creates an empty Model over content. Call Refresh to load it.
func NewModel(content Lister) *Model {
	return &Model{content: content}
}

// Refresh fetches the list. On success it replaces all items, clears the
// selection and re-applies the active filter. On failure previous items are
// kept and the error is recorded.
func (m *Model) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh(ctx)
}

func (m *Model) refresh(ctx context.Context) error {
	records, err := m.content.ListContent(ctx)
	if err != nil {
		m.err = err
		return err
	}
	m.all = records
	m.selected = nil
	m.err = nil
	m.applyFilter()
	return nil
}

// ApplyDateFilter restricts the view to records dated within [from, to].
// A zero bound is open; both zero shows everything.
func (m *Model) ApplyDateFilter(from, to time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.from, m.to = from, to
	m.applyFilter()
}

// ClearFilter removes both bounds.
func (m *Model) ClearFilter() {
	m.ApplyDateFilter(time.Time{}, time.Time{})
}

func (m *Model) applyFilter() {
	m.filtered = m.filtered[:0:0]
	for _, r := range m.all {
		if InRange(r.Date, m.from, m.to) {
			m.filtered = append(m.filtered, r)
		}
	}
}

// InRange reports whether t lies within the inclusive range [from, to].
// Zero bounds are open. A zero t, an undated record, is outside every
// bounded range.
func InRange(t, from, to time.Time) bool {
	if t.IsZero() && (!from.IsZero() || !to.IsZero()) {
		return false
	}
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// SelectAll adds every filtered item to the selection.
func (m *Model) SelectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.filtered {
		m.add(r.ID)
	}
}

// DeselectAll clears the selection.
func (m *Model) DeselectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = nil
}

// Toggle sets the selection state of id. Unknown ids are ignored.
func (m *Model) Toggle(id string, checked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.known(id) {
		return
	}
	if checked {
		m.add(id)
		return
	}
	for i, sel := range m.selected {
		if sel == id {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			return
		}
	}
}

func (m *Model) add(id string) {
	for _, sel := range m.selected {
		if sel == id {
			return
		}
	}
	m.selected = append(m.selected, id)
}

func (m *Model) known(id string) bool {
	for _, r := range m.all {
		if r.ID == id {
			return true
		}
	}
	return false
}

// DeleteSelected deletes the selected items one at a time in selection
// order. The first failure stops the sequence; earlier deletes are not
// rolled back. The selection is then cleared and the list refetched
// whatever the outcome. The returned error is the delete failure, if any.
func (m *Model) DeleteSelected(ctx context.Context) (*DeleteReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.selected) == 0 {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "no items selected")
	}

	ids := m.selected
	report := &DeleteReport{}
	for i, id := range ids {
		if err := m.content.DeleteContent(ctx, id); err != nil {
			report.Failed = id
			report.Remaining = append([]string(nil), ids[i+1:]...)
			report.Err = err
			break
		}
		report.Deleted = append(report.Deleted, id)
	}

	m.selected = nil
	report.RefreshErr = m.refresh(ctx)

	return report, report.Err
}

// Stats returns the filtered and selected counts.
func (m *Model) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats()
}

func (m *Model) stats() Stats {
	return Stats{Total: len(m.filtered), Selected: len(m.selected)}
}

// Selected returns the selected ids in selection order.
func (m *Model) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.selected...)
}

// View returns a copy of the current state for rendering.
func (m *Model) View() *View {
	m.mu.Lock()
	defer m.mu.Unlock()

	sel := make(map[string]bool, len(m.selected))
	for _, id := range m.selected {
		sel[id] = true
	}
	items := make([]Item, len(m.filtered))
	for i, r := range m.filtered {
		items[i] = Item{ContentRecord: r, Selected: sel[r.ID]}
	}
	return &View{
		Items: items,
		From:  m.from,
		To:    m.to,
		Stats: m.stats(),
		Err:   m.err,
	}
}
