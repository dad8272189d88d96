package main_test

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagekeep"
	main "github.com/fwojciec/pagekeep/cmd/pagekeep"
	"github.com/fwojciec/pagekeep/mock"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// contentStore is an in-memory content server behind a mock service.
type contentStore struct {
	records []*pagekeep.ContentRecord
	deletes []string
	failOn  string
	stored  []*pagekeep.CapturedDocument

	// listLimit, when positive, makes every list call after the first
	// listLimit calls fail.
	listLimit int
	listCalls int

	healthErr error
	results   []*pagekeep.SearchResult
	queries   []string
}

func newContentStore(n int) *contentStore {
	s := &contentStore{}
	for i := 1; i <= n; i++ {
		s.records = append(s.records, &pagekeep.ContentRecord{
			ID:             fmt.Sprintf("id%d", i),
			Title:          fmt.Sprintf("Doc %d", i),
			URL:            fmt.Sprintf("https://example.com/%d", i),
			Date:           time.Date(2024, 3, i, 12, 0, 0, 0, time.UTC),
			ContentPreview: fmt.Sprintf("preview %d", i),
		})
	}
	return s
}

func (s *contentStore) service() *mock.ContentService {
	return &mock.ContentService{
		StoreContentFn: func(_ context.Context, doc *pagekeep.CapturedDocument) (*pagekeep.Ack, error) {
			s.stored = append(s.stored, doc)
			return &pagekeep.Ack{Status: "success"}, nil
		},
		ListContentFn: func(context.Context) ([]*pagekeep.ContentRecord, error) {
			s.listCalls++
			if s.listLimit > 0 && s.listCalls > s.listLimit {
				return nil, pagekeep.Errorf(pagekeep.EUNAVAILABLE, "content server unreachable")
			}
			return append([]*pagekeep.ContentRecord(nil), s.records...), nil
		},
		SearchFn: func(_ context.Context, query string) ([]*pagekeep.SearchResult, error) {
			s.queries = append(s.queries, query)
			return s.results, nil
		},
		HealthFn: func(context.Context) (*pagekeep.Health, error) {
			if s.healthErr != nil {
				return nil, s.healthErr
			}
			return &pagekeep.Health{Status: pagekeep.HealthStatusHealthy, ItemsIndexed: len(s.records)}, nil
		},
		DeleteContentFn: func(_ context.Context, id string) error {
			s.deletes = append(s.deletes, id)
			if id == s.failOn {
				return pagekeep.Errorf(pagekeep.EUNAVAILABLE, "server unavailable")
			}
			for i, r := range s.records {
				if r.ID == id {
					s.records = append(s.records[:i], s.records[i+1:]...)
					break
				}
			}
			return nil
		},
	}
}

// settingsStore is an in-memory settings store behind a mock service.
func settingsStore(s *pagekeep.Settings) *mock.SettingsService {
	return &mock.SettingsService{
		SettingsFn: func(context.Context) (*pagekeep.Settings, error) {
			cp := *s
			cp.WhitelistedDomains = append([]string{}, s.WhitelistedDomains...)
			return &cp, nil
		},
		UpdateSettingsFn: func(_ context.Context, upd pagekeep.SettingsUpdate) (*pagekeep.Settings, error) {
			next := *s
			if upd.WhitelistedDomains != nil {
				next.WhitelistedDomains = *upd.WhitelistedDomains
			}
			if upd.ServerURL != nil {
				next.ServerURL = *upd.ServerURL
			}
			if err := next.Validate(); err != nil {
				return nil, err
			}
			*s = next
			return s, nil
		},
	}
}

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    testContext(),
		Stdout: stdout,
		Stderr: stderr,
	}
}
