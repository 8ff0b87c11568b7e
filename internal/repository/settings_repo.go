package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	GetEmailSettings(ctx context.Context) (*model.EmailSettings, error)
	UpsertEmailSettings(ctx context.Context, settings *model.EmailSettings) (*model.EmailSettings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetEmailSettings returns the singleton row, or gorm.ErrRecordNotFound when unconfigured
func (r *settingsRepository) GetEmailSettings(ctx context.Context) (*model.EmailSettings, error) {
	var settings model.EmailSettings
	if err := GetDB(ctx, r.db).Limit(1).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertEmailSettings updates the existing singleton row or inserts the first one
func (r *settingsRepository) UpsertEmailSettings(ctx context.Context, settings *model.EmailSettings) (*model.EmailSettings, error) {
	existing, err := r.GetEmailSettings(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if createErr := GetDB(ctx, r.db).Create(settings).Error; createErr != nil {
			return nil, createErr
		}
		return settings, nil
	}

	settings.ID = existing.ID
	if saveErr := GetDB(ctx, r.db).Save(settings).Error; saveErr != nil {
		return nil, saveErr
	}
	return settings, nil
}
