package mock

import (
	"context"

	"github.com/fwojciec/pagekeep"
)

var _ pagekeep.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of pagekeep.SettingsService.
type SettingsService struct {
	SettingsFn       func(ctx context.Context) (*pagekeep.Settings, error)
	UpdateSettingsFn func(ctx context.Context, upd pagekeep.SettingsUpdate) (*pagekeep.Settings, error)
}

func (s *SettingsService) Settings(ctx context.Context) (*pagekeep.Settings, error) {
	return s.SettingsFn(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd pagekeep.SettingsUpdate) (*pagekeep.Settings, error) {
	return s.UpdateSettingsFn(ctx, upd)
}
