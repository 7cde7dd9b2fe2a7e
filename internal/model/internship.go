package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InternshipType represents the compensation type of an internship.
type InternshipType string

const (
	InternshipTypePaid    InternshipType = "paid"
	InternshipTypeUnpaid  InternshipType = "unpaid"
	InternshipTypeStipend InternshipType = "stipend"
)

// InternshipDuration buckets the expected length of an internship.
type InternshipDuration string

const (
	DurationShort    InternshipDuration = "1-3"
	DurationMedium   InternshipDuration = "3-6"
	DurationLong     InternshipDuration = "6-12"
	DurationExtended InternshipDuration = "12+"
)

// Internship represents an internship posting.
type Internship struct {
	ID               uint               `json:"id" gorm:"primaryKey"`
	Title            string             `json:"title" gorm:"size:200;not null;index"`
	Description      string             `json:"description" gorm:"type:text;not null"`
	Requirements     string             `json:"requirements" gorm:"type:text"`
	Responsibilities string             `json:"responsibilities" gorm:"type:text"`
	Department       string             `json:"department" gorm:"size:200;not null"`
	Location         string             `json:"location" gorm:"size:200"`
	Type             InternshipType     `json:"internship_type" gorm:"type:varchar(20);not null;default:'unpaid'"`
	Duration         InternshipDuration `json:"duration" gorm:"type:varchar(10);default:'3-6'"`
	SalaryAmount     *decimal.Decimal   `json:"salary_amount,omitempty" gorm:"type:decimal(10,2)"`
	Benefits         string             `json:"benefits,omitempty" gorm:"type:text"`

	ApplicationDeadline time.Time `json:"application_deadline" gorm:"not null"`
	StartDate           time.Time `json:"start_date" gorm:"not null"`
	EndDate             time.Time `json:"end_date" gorm:"not null"`
	MaxApplicants       uint      `json:"max_applicants" gorm:"not null;default:50"`

	SupervisorID *uint `json:"supervisor_id,omitempty" gorm:"index"`
	CreatedByID  uint  `json:"created_by_id" gorm:"not null;index"`

	IsActive   bool `json:"is_active" gorm:"default:true;index"`
	IsFeatured bool `json:"is_featured" gorm:"default:false;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Supervisor *User `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID;constraint:OnDelete:SET NULL"`
	CreatedBy  User  `json:"-" gorm:"foreignKey:CreatedByID"`
}

// IsPaid reports whether the internship carries a salary.
func (i *Internship) IsPaid() bool {
	return i.Type == InternshipTypePaid
}

// DeadlinePassed reports whether the application deadline is behind now.
// The deadline day itself remains open; applications close at the start of
// the following day.
func (i *Internship) DeadlinePassed(now time.Time) bool {
	year, month, day := i.ApplicationDeadline.Date()
	closesAt := time.Date(year, month, day, 0, 0, 0, 0, i.ApplicationDeadline.Location()).AddDate(0, 0, 1)
	return !now.Before(closesAt)
}
