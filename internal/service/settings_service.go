package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"gorm.io/gorm"
)

type EmailSettingsRequest struct {
	Host      string `json:"host" binding:"required"`
	Port      int    `json:"port" binding:"required"`
	Secure    bool   `json:"secure"`
	User      string `json:"user" binding:"required"`
	Password  string `json:"password"`
	FromEmail string `json:"from_email" binding:"required,email"`
}

// TestMailer sends a test message with the currently stored SMTP settings
type TestMailer interface {
	SendTest(ctx context.Context, to string) error
}

type SettingsService interface {
	GetEmailSettings(ctx context.Context) (*model.EmailSettings, error)
	UpdateEmailSettings(ctx context.Context, req EmailSettingsRequest) (*model.EmailSettings, error)
	SendTestEmail(ctx context.Context, to string) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	mailer       TestMailer
}

func NewSettingsService(settingsRepo repository.SettingsRepository, mailer TestMailer) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, mailer: mailer}
}

func (s *settingsService) GetEmailSettings(ctx context.Context) (*model.EmailSettings, error) {
	settings, err := s.settingsRepo.GetEmailSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("email settings not configured")
		}
		return nil, apperror.Persistence(err, "failed to load email settings")
	}
	return settings, nil
}

// UpdateEmailSettings replaces the singleton SMTP configuration. An empty
// password keeps the previously stored one.
func (s *settingsService) UpdateEmailSettings(ctx context.Context, req EmailSettingsRequest) (*model.EmailSettings, error) {
	settings := &model.EmailSettings{
		Host:      req.Host,
		Port:      req.Port,
		Secure:    req.Secure,
		User:      req.User,
		Password:  req.Password,
		FromEmail: req.FromEmail,
	}

	if req.Password == "" {
		existing, err := s.settingsRepo.GetEmailSettings(ctx)
		if err == nil {
			settings.Password = existing.Password
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Persistence(err, "failed to load email settings")
		}
	}

	updated, err := s.settingsRepo.UpsertEmailSettings(ctx, settings)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to save email settings")
	}
	return updated, nil
}

func (s *settingsService) SendTestEmail(ctx context.Context, to string) error {
	if to == "" {
		return apperror.Validation("recipient address is required")
	}
	if err := s.mailer.SendTest(ctx, to); err != nil {
		return apperror.Persistence(err, "test email failed")
	}
	return nil
}
