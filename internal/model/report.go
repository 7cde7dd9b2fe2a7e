package model

import (
	"time"

	"gorm.io/gorm"
)

// ReportStatus represents the review status of an intern report.
type ReportStatus string

const (
	ReportStatusDraft         ReportStatus = "draft"
	ReportStatusSubmitted     ReportStatus = "submitted"
	ReportStatusUnderReview   ReportStatus = "under_review"
	ReportStatusReviewed      ReportStatus = "reviewed"
	ReportStatusNeedsRevision ReportStatus = "needs_revision"
)

// InternReport is a periodic report authored by an intern. One report exists
// per (intern, internship, period label).
type InternReport struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	PeriodLabel string `json:"period_label" gorm:"size:100;not null;uniqueIndex:idx_report_period"`

	InternID     uint `json:"intern_id" gorm:"not null;uniqueIndex:idx_report_period;index"`
	InternshipID uint `json:"internship_id" gorm:"not null;uniqueIndex:idx_report_period;index"`

	// Report content
	Summary              string `json:"summary" gorm:"type:text;not null"`
	ActivitiesCompleted  string `json:"activities_completed" gorm:"type:text;not null"`
	ChallengesFaced      string `json:"challenges_faced,omitempty" gorm:"type:text"`
	SolutionsImplemented string `json:"solutions_implemented,omitempty" gorm:"type:text"`
	SkillsLearned        string `json:"skills_learned,omitempty" gorm:"type:text"`
	GoalsNextPeriod      string `json:"goals_next_period,omitempty" gorm:"type:text"`

	// Self assessment
	SelfRating  uint `json:"self_rating" gorm:"not null"`
	HoursWorked uint `json:"hours_worked" gorm:"not null"`

	// File references (storage is external)
	ReportFile      string `json:"report_file,omitempty" gorm:"size:255"`
	AdditionalFiles string `json:"additional_files,omitempty" gorm:"size:255"`

	Status ReportStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`

	// Supervisor review
	SupervisorFeedback string     `json:"supervisor_feedback,omitempty" gorm:"type:text"`
	SupervisorRating   *uint      `json:"supervisor_rating,omitempty"`
	ReviewedByID       *uint      `json:"reviewed_by_id,omitempty" gorm:"index"`
	ReviewDate         *time.Time `json:"review_date,omitempty"`

	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Intern     User       `json:"-" gorm:"foreignKey:InternID"`
	Internship Internship `json:"-" gorm:"foreignKey:InternshipID"`
	ReviewedBy *User      `json:"-" gorm:"foreignKey:ReviewedByID;constraint:OnDelete:SET NULL"`
}

// IsEditable reports whether the owning intern may still modify the report.
func (r *InternReport) IsEditable() bool {
	return r.Status == ReportStatusDraft || r.Status == ReportStatusNeedsRevision
}

// IsDeletable reports whether the report may still be deleted.
func (r *InternReport) IsDeletable() bool {
	return r.Status == ReportStatusDraft
}
