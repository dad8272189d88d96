// Package bloom provides capture deduplication using Bloom filters.
package bloom

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagekeep"
)

// Ensure Filter implements pagekeep.SeenFilter at compile time.
var _ pagekeep.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter keyed by capture fingerprints.
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected captures
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Fingerprint hashes the URL and content of doc. Title and date are
// ignored so that reloading an unchanged page yields the same value.
func Fingerprint(doc *pagekeep.CapturedDocument) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(doc.URL)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(doc.Content)
	return d.Sum64()
}

// Add records doc in the filter.
func (f *Filter) Add(doc *pagekeep.CapturedDocument) {
	key := fingerprintKey(doc)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.Add(key)
}

// Test reports whether doc might have been added.
func (f *Filter) Test(doc *pagekeep.CapturedDocument) bool {
	key := fingerprintKey(doc)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.Test(key)
}

func fingerprintKey(doc *pagekeep.CapturedDocument) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, Fingerprint(doc))
	return key
}

// EstimatedCount returns the approximate number of captures in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
