package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/pagekeep"
)

// Setting keys as stored in the settings table.
const (
	KeyWhitelistedDomains = "whitelistedDomains"
	KeyServerURL          = "serverUrl"
)

// Compile-time interface verification.
var _ pagekeep.SettingsService = (*SettingsService)(nil)

// SettingsService implements pagekeep.SettingsService using SQLite.
// Values are stored as JSON, one row per key.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// Install writes default values for keys that have never been set.
// Existing values are left untouched.
func (s *SettingsService) Install(ctx context.Context) error {
	defaults := pagekeep.DefaultSettings()
	values := map[string]any{
		KeyWhitelistedDomains: defaults.WhitelistedDomains,
		KeyServerURL:          defaults.ServerURL,
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		`, key, string(data), now); err != nil {
			return fmt.Errorf("failed to install %s: %w", key, err)
		}
	}
	return nil
}

// Settings returns the stored settings. Missing keys take default values.
func (s *SettingsService) Settings(ctx context.Context) (*pagekeep.Settings, error) {
	settings := pagekeep.DefaultSettings()

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}

		switch key {
		case KeyWhitelistedDomains:
			var domains []string
			if err := json.Unmarshal([]byte(value), &domains); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", key, err)
			}
			if domains != nil {
				settings.WhitelistedDomains = domains
			}
		case KeyServerURL:
			var serverURL string
			if err := json.Unmarshal([]byte(value), &serverURL); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", key, err)
			}
			if serverURL != "" {
				settings.ServerURL = serverURL
			}
		}
	}

	return settings, rows.Err()
}

// UpdateSettings persists the non-nil fields of upd.
func (s *SettingsService) UpdateSettings(ctx context.Context, upd pagekeep.SettingsUpdate) (*pagekeep.Settings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]any)
	if upd.WhitelistedDomains != nil {
		settings.WhitelistedDomains = *upd.WhitelistedDomains
		if settings.WhitelistedDomains == nil {
			settings.WhitelistedDomains = []string{}
		}
		changed[KeyWhitelistedDomains] = settings.WhitelistedDomains
	}
	if upd.ServerURL != nil {
		settings.ServerURL = *upd.ServerURL
		changed[KeyServerURL] = settings.ServerURL
	}

	// Validate before persisting
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	err = s.db.Update(ctx, func(tx *sql.Tx) error {
		for key, value := range changed {
			data, err := json.Marshal(value)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, string(data), now); err != nil {
				return fmt.Errorf("failed to update %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
