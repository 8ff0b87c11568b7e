package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssetStatus enum
const (
	AssetAvailable = "Available"
	AssetAllocated = "Allocated"
	AssetReturned  = "Returned"
	AssetDamaged   = "Damaged"
	AssetLost      = "Lost"
	AssetScrapped  = "Scrapped"
)

// ValidAssetStatus reports whether status is a member of the asset status enum
func ValidAssetStatus(status string) bool {
	switch status {
	case AssetAvailable, AssetAllocated, AssetReturned, AssetDamaged, AssetLost, AssetScrapped:
		return true
	}
	return false
}

// SchemaField is one attribute definition in an AssetType's schema.
// Type is one of "text", "number", "boolean", "select".
type SchemaField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// AssetType is a category of Asset carrying a user-defined attribute schema
type AssetType struct {
	ID          uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                                 `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string                                 `gorm:"type:text" json:"description"`
	Schema      datatypes.JSONSlice[SchemaField]       `gorm:"type:jsonb" json:"schema"`
	CreatedAt   time.Time                              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                              `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *AssetType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ValidateSpecifications checks specs against the type's schema: every
// required field must be present and non-empty. Unknown keys are accepted.
func (t *AssetType) ValidateSpecifications(specs map[string]interface{}) error {
	for _, field := range t.Schema {
		if !field.Required {
			continue
		}
		v, ok := specs[field.Name]
		if !ok || v == nil || v == "" {
			return fmt.Errorf("missing required specification %q", field.Name)
		}
	}
	return nil
}

// Asset represents one physical, serial-numbered item.
// SerialNumber is stored canonically upper-cased.
type Asset struct {
	ID            uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	AssetTypeID   uuid.UUID                    `gorm:"type:uuid;not null;index" json:"asset_type_id"`
	Type          *AssetType                   `gorm:"foreignKey:AssetTypeID" json:"type,omitempty"`
	SerialNumber  string                       `gorm:"type:varchar(255);uniqueIndex;not null" json:"serial_number"`
	Status        string                       `gorm:"type:varchar(20);not null;default:'Available';index" json:"status"`
	Specifications datatypes.JSONMap           `gorm:"type:jsonb" json:"specifications"`
	Images        datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"images"`
	PurchaseCost  decimal.Decimal              `gorm:"type:decimal(12,2);default:0" json:"purchase_cost"`
	CreatedAt     time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
