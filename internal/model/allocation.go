package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationStatus constants
const (
	AllocationActive   = "Active"
	AllocationReturned = "Returned"
)

// Allocation binds one Asset to one Employee for a time span.
// An asset has at most one Active allocation; Returned rows form its history.
type Allocation struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset        *Asset     `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee     *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	AllocatedAt  time.Time  `gorm:"autoCreateTime;index" json:"allocated_at"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	ReturnReason string     `gorm:"type:text" json:"return_reason"`
	Remarks      string     `gorm:"type:text" json:"remarks"`
	PDFURL       string     `gorm:"type:text" json:"pdf_url"`
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
