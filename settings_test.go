package pagekeep_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSettingsStore returns a mock settings store backed by a single value.
func newSettingsStore(initial *pagekeep.Settings) (*mock.SettingsService, *int) {
	state := initial
	updates := 0
	return &mock.SettingsService{
		SettingsFn: func(_ context.Context) (*pagekeep.Settings, error) {
			s := *state
			return &s, nil
		},
		UpdateSettingsFn: func(_ context.Context, upd pagekeep.SettingsUpdate) (*pagekeep.Settings, error) {
			updates++
			next := *state
			if upd.WhitelistedDomains != nil {
				next.WhitelistedDomains = *upd.WhitelistedDomains
			}
			if upd.ServerURL != nil {
				next.ServerURL = *upd.ServerURL
			}
			state = &next
			return &next, nil
		},
	}, &updates
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := pagekeep.DefaultSettings()

	assert.Empty(t, s.WhitelistedDomains)
	assert.NotNil(t, s.WhitelistedDomains)
	assert.Equal(t, "http://localhost:5000", s.ServerURL)
	require.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	t.Run("rejects relative server URL", func(t *testing.T) {
		t.Parallel()

		s := &pagekeep.Settings{ServerURL: "localhost:5000"}

		err := s.Validate()

		assert.Equal(t, pagekeep.EINVALID, pagekeep.ErrorCode(err))
	})

	t.Run("rejects domain with scheme", func(t *testing.T) {
		t.Parallel()

		s := &pagekeep.Settings{ServerURL: pagekeep.DefaultServerURL, WhitelistedDomains: []string{"https://example.com"}}

		err := s.Validate()

		assert.Equal(t, pagekeep.EINVALID, pagekeep.ErrorCode(err))
	})
}

func TestAddDomain(t *testing.T) {
	t.Parallel()

	t.Run("appends new domain", func(t *testing.T) {
		t.Parallel()

		store, _ := newSettingsStore(pagekeep.DefaultSettings())

		s, err := pagekeep.AddDomain(context.Background(), store, " example.com ")

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, s.WhitelistedDomains)
	})

	t.Run("ignores duplicate", func(t *testing.T) {
		t.Parallel()

		store, updates := newSettingsStore(&pagekeep.Settings{
			ServerURL:          pagekeep.DefaultServerURL,
			WhitelistedDomains: []string{"example.com"},
		})

		s, err := pagekeep.AddDomain(context.Background(), store, "example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, s.WhitelistedDomains)
		assert.Zero(t, *updates)
	})

	t.Run("rejects invalid domain", func(t *testing.T) {
		t.Parallel()

		store, _ := newSettingsStore(pagekeep.DefaultSettings())

		_, err := pagekeep.AddDomain(context.Background(), store, "example.com/path")

		assert.Equal(t, pagekeep.EINVALID, pagekeep.ErrorCode(err))
	})
}

func TestRemoveDomain(t *testing.T) {
	t.Parallel()

	t.Run("removes existing domain", func(t *testing.T) {
		t.Parallel()

		store, _ := newSettingsStore(&pagekeep.Settings{
			ServerURL:          pagekeep.DefaultServerURL,
			WhitelistedDomains: []string{"a.com", "b.com"},
		})

		s, err := pagekeep.RemoveDomain(context.Background(), store, "a.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"b.com"}, s.WhitelistedDomains)
	})

	t.Run("returns not found for unknown domain", func(t *testing.T) {
		t.Parallel()

		store, _ := newSettingsStore(pagekeep.DefaultSettings())

		_, err := pagekeep.RemoveDomain(context.Background(), store, "a.com")

		assert.Equal(t, pagekeep.ENOTFOUND, pagekeep.ErrorCode(err))
	})
}
