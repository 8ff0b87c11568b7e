package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeStatus constants
const (
	EmployeeActive   = "Active"
	EmployeeInactive = "Inactive"
)

// Employee represents a staff member assets can be allocated to.
// EmpID is the human-entered business key used during imports.
type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmpID         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"emp_id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Email         string     `gorm:"type:varchar(255);not null" json:"email"`
	Branch        string     `gorm:"type:varchar(255)" json:"branch"`
	Department    string     `gorm:"type:varchar(255)" json:"department"`
	Designation   string     `gorm:"type:varchar(255)" json:"designation"`
	Mobile        string     `gorm:"type:varchar(50)" json:"mobile"`
	Status        string     `gorm:"type:varchar(20);default:'Active'" json:"status"`
	DateOfJoining *time.Time `gorm:"type:date" json:"date_of_joining,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
