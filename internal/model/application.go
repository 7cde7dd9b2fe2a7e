package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplicationStatus represents the review status of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending       ApplicationStatus = "pending"
	ApplicationStatusApproved      ApplicationStatus = "approved"
	ApplicationStatusRejected      ApplicationStatus = "rejected"
	ApplicationStatusInternCreated ApplicationStatus = "intern_created"
)

// InternshipApplication is an application submitted by a visitor for an
// internship posting. At most one application may exist per (email,
// internship) pair, and at most one intern account may ever be provisioned
// from it.
type InternshipApplication struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Reference uuid.UUID `json:"reference" gorm:"type:char(36);uniqueIndex;not null"`

	// Personal information
	FirstName string `json:"first_name" gorm:"size:150;not null"`
	LastName  string `json:"last_name" gorm:"size:150;not null"`
	Email     string `json:"email" gorm:"size:255;not null;uniqueIndex:idx_application_email_internship"`
	Phone     string `json:"phone" gorm:"size:20;not null"`

	// Address information
	Address    string `json:"address" gorm:"type:text;not null"`
	City       string `json:"city" gorm:"size:100;not null"`
	Country    string `json:"country" gorm:"size:100;not null"`
	PostalCode string `json:"postal_code,omitempty" gorm:"size:20"`

	// Educational information
	Institution    string           `json:"institution" gorm:"size:200;not null"`
	FieldOfStudy   string           `json:"field_of_study" gorm:"size:200;not null"`
	AcademicLevel  string           `json:"academic_level" gorm:"size:100;not null"`
	GraduationYear uint             `json:"graduation_year" gorm:"not null"`
	GPA            *decimal.Decimal `json:"gpa,omitempty" gorm:"type:decimal(4,2)"`

	InternshipID uint `json:"internship_id" gorm:"not null;uniqueIndex:idx_application_email_internship;index"`

	// Application materials (opaque file references, storage is external)
	CVResume    string `json:"cv_resume" gorm:"size:255;not null"`
	CoverLetter string `json:"cover_letter,omitempty" gorm:"size:255"`
	Transcript  string `json:"transcript,omitempty" gorm:"size:255"`

	// Motivation and experience
	MotivationLetter   string `json:"motivation_letter" gorm:"type:text;not null"`
	PreviousExperience string `json:"previous_experience,omitempty" gorm:"type:text"`
	Skills             string `json:"skills,omitempty" gorm:"type:text"`

	// Availability
	AvailableStartDate time.Time `json:"available_start_date" gorm:"not null"`
	DurationMonths     uint      `json:"duration_months" gorm:"not null"`

	Status ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	// Admin review
	ReviewedByID *uint      `json:"reviewed_by_id,omitempty" gorm:"index"`
	ReviewDate   *time.Time `json:"review_date,omitempty"`
	ReviewNotes  string     `json:"review_notes,omitempty" gorm:"type:text"`

	// Provisioned intern account, set exactly once on intern_created.
	CreatedInternID *uint `json:"created_intern_id,omitempty" gorm:"uniqueIndex"`

	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Internship    Internship `json:"-" gorm:"foreignKey:InternshipID"`
	ReviewedBy    *User      `json:"-" gorm:"foreignKey:ReviewedByID;constraint:OnDelete:SET NULL"`
	CreatedIntern *User      `json:"-" gorm:"foreignKey:CreatedInternID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate assigns the public reference before inserting the record.
func (a *InternshipApplication) BeforeCreate(tx *gorm.DB) error {
	if a.Reference == uuid.Nil {
		a.Reference = uuid.New()
	}
	return nil
}

// FullName returns the applicant's full name.
func (a *InternshipApplication) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// HasInternAccount reports whether an intern account was provisioned from
// this application.
func (a *InternshipApplication) HasInternAccount() bool {
	return a.CreatedInternID != nil
}
