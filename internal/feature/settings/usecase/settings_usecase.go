// Package usecase reads and writes display settings.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
)

// SettingRepository stores key/value settings.
type SettingRepository interface {
	// Get fails with domain.ErrSettingNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// List returns every setting ordered by key.
	List(ctx context.Context) ([]entity.Setting, error)
}

type SettingsUsecase struct {
	settings SettingRepository
}

func NewSettingsUsecase(settings SettingRepository) *SettingsUsecase {
	return &SettingsUsecase{settings: settings}
}

func (u *SettingsUsecase) Get(ctx context.Context, key string) (string, error) {
	return u.settings.Get(ctx, strings.TrimSpace(key))
}

func (u *SettingsUsecase) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 100 {
		return fmt.Errorf("%w: setting key must be 1-100 characters", domain.ErrValidation)
	}
	return u.settings.Set(ctx, key, value)
}

func (u *SettingsUsecase) List(ctx context.Context) ([]entity.Setting, error) {
	return u.settings.List(ctx)
}
