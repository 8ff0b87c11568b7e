package mailer

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
	gomail "gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when no SMTP settings row exists yet
var ErrNotConfigured = errors.New("email settings not configured")

// Mailer sends SMTP mail using the settings row stored in the database.
// Settings are loaded per send so admin updates take effect immediately.
type Mailer struct {
	settingsRepo repository.SettingsRepository
}

func New(settingsRepo repository.SettingsRepository) *Mailer {
	return &Mailer{settingsRepo: settingsRepo}
}

func (m *Mailer) dialer(ctx context.Context) (*gomail.Dialer, *model.EmailSettings, error) {
	settings, err := m.settingsRepo.GetEmailSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotConfigured
		}
		return nil, nil, err
	}

	d := gomail.NewDialer(settings.Host, settings.Port, settings.User, settings.Password)
	d.SSL = settings.Secure
	return d, settings, nil
}

// SendAllocationNotice emails the employee that an asset was handed to them.
// Skips silently when the employee has no email address on file.
func (m *Mailer) SendAllocationNotice(ctx context.Context, employee *model.Employee, asset *model.Asset) error {
	if employee.Email == "" {
		return nil
	}

	d, settings, err := m.dialer(ctx)
	if err != nil {
		return err
	}

	typeName := ""
	if asset.Type != nil {
		typeName = asset.Type.Name
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", settings.FromEmail)
	msg.SetHeader("To", employee.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Asset allocated: %s", asset.SerialNumber))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nThe following asset has been allocated to you:\n\n  Serial Number: %s\n  Type: %s\n\nPlease contact the asset management team if anything looks wrong.\n",
		employee.Name, asset.SerialNumber, typeName,
	))

	return d.DialAndSend(msg)
}

// SendTest sends a short message to verify the stored SMTP settings
func (m *Mailer) SendTest(ctx context.Context, to string) error {
	d, settings, err := m.dialer(ctx)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", settings.FromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "SMTP settings test")
	msg.SetBody("text/plain", "This is a test message confirming your SMTP settings are working.")

	return d.DialAndSend(msg)
}
