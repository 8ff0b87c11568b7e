package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionAllocateAsset       = "Allocate Asset"
	ActionReturnAsset         = "Return Asset"
	ActionAutoCreateEmployee  = "Auto Create Employee"
	ActionAutoCreateAsset     = "Auto Create Asset"
	ActionAutoCreateAssetType = "Auto Create Asset Type"

	ActionCreateEmployee = "Create Employee"
	ActionUpdateEmployee = "Update Employee"
	ActionCreateAsset     = "Create Asset"
	ActionUpdateAsset     = "Update Asset"
	ActionDeleteAsset     = "Delete Asset"
	ActionVerifyAsset     = "Verify Asset"
	ActionCreateAssetType = "Create Asset Type"
	ActionUpdateAssetType = "Update Asset Type"

	ActionImportEmployees   = "Import Employees"
	ActionImportAssets      = "Import Assets"
	ActionImportAssetTypes  = "Import Asset Types"
	ActionImportAllocations = "Import Allocations"
)

// AuditLog tracks Who, What, and When for every state-changing operation.
// Rows are append-only: never updated or deleted.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"` // nullable for automated actions
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string         `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityType string         `gorm:"type:varchar(50);index" json:"entity_type"`
	EntityID   string         `gorm:"type:varchar(50);index" json:"entity_id"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress  string         `gorm:"type:varchar(64)" json:"ip_address"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
