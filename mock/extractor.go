package mock

import "github.com/fwojciec/pagekeep"

var _ pagekeep.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagekeep.Extractor.
type Extractor struct {
	ExtractFn func(snap *pagekeep.Snapshot) (*pagekeep.CapturedDocument, error)
}

func (e *Extractor) Extract(snap *pagekeep.Snapshot) (*pagekeep.CapturedDocument, error) {
	return e.ExtractFn(snap)
}

var _ pagekeep.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of pagekeep.SeenFilter.
type SeenFilter struct {
	TestFn func(doc *pagekeep.CapturedDocument) bool
	AddFn  func(doc *pagekeep.CapturedDocument)
}

func (f *SeenFilter) Test(doc *pagekeep.CapturedDocument) bool {
	return f.TestFn(doc)
}

func (f *SeenFilter) Add(doc *pagekeep.CapturedDocument) {
	f.AddFn(doc)
}
