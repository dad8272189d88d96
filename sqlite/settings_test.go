package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestSettingsService_Settings(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults on empty database", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))

		settings, err := s.Settings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, pagekeep.DefaultSettings(), settings)
	})
}

func TestSettingsService_Install(t *testing.T) {
	t.Parallel()

	t.Run("writes defaults for missing keys", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		s := sqlite.NewSettingsService(db)
		ctx := context.Background()

		require.NoError(t, s.Install(ctx))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&count))
		assert.Equal(t, 2, count)

		var value string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", sqlite.KeyWhitelistedDomains).Scan(&value))
		assert.Equal(t, "[]", value)
	})

	t.Run("keeps existing values", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))
		ctx := context.Background()

		_, err := s.UpdateSettings(ctx, pagekeep.SettingsUpdate{ServerURL: ptr("http://127.0.0.1:9000")})
		require.NoError(t, err)

		require.NoError(t, s.Install(ctx))

		settings, err := s.Settings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:9000", settings.ServerURL)
	})
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("persists partial update", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))
		ctx := context.Background()

		updated, err := s.UpdateSettings(ctx, pagekeep.SettingsUpdate{
			WhitelistedDomains: ptr([]string{"example.com", "go.dev"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "go.dev"}, updated.WhitelistedDomains)
		assert.Equal(t, pagekeep.DefaultServerURL, updated.ServerURL)

		settings, err := s.Settings(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated, settings)
	})

	t.Run("overwrites previous value", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))
		ctx := context.Background()

		_, err := s.UpdateSettings(ctx, pagekeep.SettingsUpdate{ServerURL: ptr("http://a:1")})
		require.NoError(t, err)
		_, err = s.UpdateSettings(ctx, pagekeep.SettingsUpdate{ServerURL: ptr("http://b:2")})
		require.NoError(t, err)

		settings, err := s.Settings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "http://b:2", settings.ServerURL)
	})

	t.Run("stores empty whitelist as empty list", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))
		ctx := context.Background()

		_, err := s.UpdateSettings(ctx, pagekeep.SettingsUpdate{WhitelistedDomains: ptr([]string{"a.com"})})
		require.NoError(t, err)
		_, err = s.UpdateSettings(ctx, pagekeep.SettingsUpdate{WhitelistedDomains: ptr([]string(nil))})
		require.NoError(t, err)

		settings, err := s.Settings(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{}, settings.WhitelistedDomains)
	})

	t.Run("rejects invalid server URL without persisting", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))
		ctx := context.Background()

		_, err := s.UpdateSettings(ctx, pagekeep.SettingsUpdate{ServerURL: ptr("not a url")})
		assert.Equal(t, pagekeep.EINVALID, pagekeep.ErrorCode(err))

		settings, err := s.Settings(ctx)
		require.NoError(t, err)
		assert.Equal(t, pagekeep.DefaultServerURL, settings.ServerURL)
	})

	t.Run("works with whitelist helpers", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSettingsService(openDB(t))
		ctx := context.Background()

		_, err := pagekeep.AddDomain(ctx, s, "example.com")
		require.NoError(t, err)
		_, err = pagekeep.AddDomain(ctx, s, "go.dev")
		require.NoError(t, err)
		settings, err := pagekeep.RemoveDomain(ctx, s, "example.com")
		require.NoError(t, err)

		assert.Equal(t, []string{"go.dev"}, settings.WhitelistedDomains)
	})
}
