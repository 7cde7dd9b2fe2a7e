package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ReportTemplate is an admin-managed structure interns follow when writing
// periodic reports. Sections holds a JSON document describing the expected
// sections and fields; the workflow treats it as opaque beyond validity.
type ReportTemplate struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:200;not null;uniqueIndex"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Sections    json.RawMessage `json:"sections" gorm:"type:json;not null"`

	IsActive bool `json:"is_active" gorm:"default:true;index"`
	// IsDefault marks the template offered when an intern picks none.
	// At most one template is default at a time.
	IsDefault bool `json:"is_default" gorm:"default:false"`

	CreatedByID uint           `json:"created_by_id" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	CreatedBy User `json:"-" gorm:"foreignKey:CreatedByID"`
}
