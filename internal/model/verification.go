package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VerificationStatus constants
const (
	VerificationPending  = "Pending"
	VerificationApproved = "Approved"
	VerificationRejected = "Rejected"
)

// Verification is a review record for an asset, created by any authenticated reviewer
type Verification struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset      *Asset                      `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	VerifierID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"verifier_id"`
	Verifier   *User                       `gorm:"foreignKey:VerifierID" json:"verifier,omitempty"`
	VerifiedAt time.Time                   `gorm:"autoCreateTime" json:"verified_at"`
	Status     string                      `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	Remarks    string                      `gorm:"type:text" json:"remarks"`
	Images     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`
}

func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
