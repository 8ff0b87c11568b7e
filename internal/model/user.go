package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants. The role set is fixed, no dynamic permission tables.
const (
	RoleAdmin    = "admin"
	RoleVerifier = "verifier"
	RoleEmployee = "employee"
)

// User represents an application login account
type User struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password           string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role               string         `gorm:"type:varchar(50);not null;default:'employee'" json:"role"`
	IsLocked           bool           `gorm:"default:false" json:"is_locked"`
	FailedAttempts     int            `gorm:"default:0" json:"failed_attempts"`
	MustChangePassword bool           `gorm:"default:false" json:"must_change_password"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the uuid primary key when not preset
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVerifier || role == RoleEmployee
}
