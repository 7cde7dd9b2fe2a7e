package model

import (
	"time"

	"gorm.io/gorm"
)

// NotificationEvent names a workflow transition worth notifying about.
type NotificationEvent string

const (
	EventApplicationSubmitted NotificationEvent = "application_submitted"
	EventApplicationApproved  NotificationEvent = "application_approved"
	EventApplicationRejected  NotificationEvent = "application_rejected"
	EventInternAccountCreated NotificationEvent = "intern_account_created"
	EventReportSubmitted      NotificationEvent = "report_submitted"
	EventReportReviewed       NotificationEvent = "report_reviewed"
	EventRevisionRequested    NotificationEvent = "revision_requested"
	EventEvaluationRecorded   NotificationEvent = "evaluation_recorded"
	EventAccountApproved      NotificationEvent = "account_approved"
)

// Notification is a persisted workflow event. Delivery (email, push) is the
// job of an external dispatcher; the core only records the events.
type Notification struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	Event          NotificationEvent `json:"event" gorm:"type:varchar(40);not null;index"`
	RecipientID    *uint             `json:"recipient_id,omitempty" gorm:"index"`
	RecipientEmail string            `json:"recipient_email" gorm:"size:255;not null"`
	Subject        string            `json:"subject" gorm:"size:255;not null"`
	Body           string            `json:"body" gorm:"type:text"`
	Dispatched     bool              `json:"dispatched" gorm:"default:false;index"`
	CreatedAt      time.Time         `json:"created_at"`
	DeletedAt      gorm.DeletedAt    `json:"-" gorm:"index"`
}
