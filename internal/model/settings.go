package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailSettings is the singleton SMTP configuration used for allocation notifications
type EmailSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Host      string    `gorm:"type:varchar(255);not null" json:"host"`
	Port      int       `gorm:"not null" json:"port"`
	Secure    bool      `gorm:"default:true" json:"secure"`
	User      string    `gorm:"type:varchar(255);not null" json:"user"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	FromEmail string    `gorm:"type:varchar(255);not null" json:"from_email"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *EmailSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
