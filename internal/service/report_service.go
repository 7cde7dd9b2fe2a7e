package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/notify"
	"internhub/internal/repository"
	"internhub/internal/workflow"
)

// ReportService drives the intern report workflow: drafting, submission, and
// supervisor review.
type ReportService interface {
	CreateDraft(ctx context.Context, principal auth.Principal, report *model.InternReport) (*model.InternReport, error)
	UpdateDraft(ctx context.Context, principal auth.Principal, report *model.InternReport) (*model.InternReport, error)
	Delete(ctx context.Context, principal auth.Principal, id uint) error
	Submit(ctx context.Context, principal auth.Principal, id uint) (*model.InternReport, error)
	StartReview(ctx context.Context, principal auth.Principal, id uint) (*model.InternReport, error)
	CompleteReview(ctx context.Context, principal auth.Principal, id uint, feedback string, rating uint) (*model.InternReport, error)
	RequestRevision(ctx context.Context, principal auth.Principal, id uint, feedback string) (*model.InternReport, error)
	Get(ctx context.Context, principal auth.Principal, id uint) (*model.InternReport, error)
	ListMine(ctx context.Context, principal auth.Principal) ([]model.InternReport, error)
	ListForSupervisor(ctx context.Context, principal auth.Principal, status model.ReportStatus) ([]model.InternReport, error)
}

type reportService struct {
	repo           repository.ReportRepository
	internshipRepo repository.InternshipRepository
	userRepo       repository.UserRepository
	validator      *UploadValidator
	notifier       notify.Emitter
}

// NewReportService creates a new report service.
func NewReportService(
	repo repository.ReportRepository,
	internshipRepo repository.InternshipRepository,
	userRepo repository.UserRepository,
	notifier notify.Emitter,
) ReportService {
	return &reportService{
		repo:           repo,
		internshipRepo: internshipRepo,
		userRepo:       userRepo,
		validator:      NewUploadValidator(),
		notifier:       notifier,
	}
}

// CreateDraft creates a report in draft for the calling intern. One report
// exists per (intern, internship, period label).
func (s *reportService) CreateDraft(ctx context.Context, principal auth.Principal, report *model.InternReport) (*model.InternReport, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}
	if report.SelfRating < 1 || report.SelfRating > 5 {
		return nil, errors.NewValidation("self rating must be between 1 and 5")
	}
	if report.HoursWorked == 0 {
		return nil, errors.NewValidation("hours worked is required")
	}
	if report.ReportFile != "" {
		if err := s.validator.ValidateDocument(report.ReportFile); err != nil {
			return nil, err
		}
	}

	if _, err := s.internshipRepo.FindByID(ctx, report.InternshipID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInternshipNotFound
		}
		return nil, err
	}

	exists, err := s.repo.ExistsByPeriod(ctx, principal.UserID, report.InternshipID, report.PeriodLabel)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewValidation("a report for this period already exists")
	}

	report.InternID = principal.UserID
	report.Status = model.ReportStatusDraft
	if err := s.repo.Create(ctx, report); err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.NewConflict("a report for this period already exists")
		}
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

// UpdateDraft updates a report owned by the calling intern. Editing is legal
// only while the report is in draft or needs_revision.
func (s *reportService) UpdateDraft(ctx context.Context, principal auth.Principal, report *model.InternReport) (*model.InternReport, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}
	if report.SelfRating < 1 || report.SelfRating > 5 {
		return nil, errors.NewValidation("self rating must be between 1 and 5")
	}

	existing, err := s.repo.FindByID(ctx, report.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReportNotFound
		}
		return nil, err
	}
	if existing.InternID != principal.UserID {
		return nil, errors.ErrNotPermitted
	}
	if !existing.IsEditable() {
		return nil, errors.NewPrecondition("report can no longer be edited")
	}

	existing.Title = report.Title
	existing.Summary = report.Summary
	existing.ActivitiesCompleted = report.ActivitiesCompleted
	existing.ChallengesFaced = report.ChallengesFaced
	existing.SolutionsImplemented = report.SolutionsImplemented
	existing.SkillsLearned = report.SkillsLearned
	existing.GoalsNextPeriod = report.GoalsNextPeriod
	existing.SelfRating = report.SelfRating
	existing.HoursWorked = report.HoursWorked
	if report.ReportFile != "" {
		if err := s.validator.ValidateDocument(report.ReportFile); err != nil {
			return nil, err
		}
		existing.ReportFile = report.ReportFile
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return existing, nil
}

// Delete removes a report owned by the calling intern, only while in draft.
func (s *reportService) Delete(ctx context.Context, principal auth.Principal, id uint) error {
	if !principal.CanSubmitReports() {
		return errors.ErrNotPermitted
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReportNotFound
		}
		return err
	}
	if report.InternID != principal.UserID {
		return errors.ErrNotPermitted
	}
	if !report.IsDeletable() {
		return errors.NewPrecondition("only draft reports can be deleted")
	}
	return s.repo.Delete(ctx, id)
}

// Submit moves a draft or revised report into submitted. Submitting from any
// other state is rejected by the machine, so a double submit is a visible
// precondition failure rather than a silent overwrite.
func (s *reportService) Submit(ctx context.Context, principal auth.Principal, id uint) (*model.InternReport, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}

	var submitted *model.InternReport
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReportRepository) error {
		report, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrReportNotFound
			}
			return err
		}
		if report.InternID != principal.UserID {
			return errors.ErrNotPermitted
		}

		next, err := workflow.ReportMachine.Next(
			workflow.State(report.Status), workflow.EventSubmit)
		if err != nil {
			return err
		}

		now := time.Now()
		report.Status = model.ReportStatus(next)
		report.SubmittedAt = &now
		if err := txRepo.Update(ctx, report); err != nil {
			return fmt.Errorf("update report: %w", err)
		}
		submitted = report
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, model.Notification{
		Event:          model.EventReportSubmitted,
		RecipientEmail: principal.Email,
		Subject:        "Report submitted",
		Body:           fmt.Sprintf("Report %q for %s was submitted for review.", submitted.Title, submitted.PeriodLabel),
	})

	return submitted, nil
}

// StartReview moves a submitted report into under_review, recording the
// reviewing supervisor.
func (s *reportService) StartReview(ctx context.Context, principal auth.Principal, id uint) (*model.InternReport, error) {
	return s.reviewTransition(ctx, principal, id, workflow.EventStartReview,
		func(report *model.InternReport, now time.Time) {
			report.ReviewedByID = &principal.UserID
		}, "", "")
}

// CompleteReview moves a submitted or under-review report into reviewed,
// recording feedback and rating.
func (s *reportService) CompleteReview(ctx context.Context, principal auth.Principal, id uint, feedback string, rating uint) (*model.InternReport, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.NewValidation("supervisor rating must be between 1 and 5")
	}
	return s.reviewTransition(ctx, principal, id, workflow.EventCompleteReview,
		func(report *model.InternReport, now time.Time) {
			report.ReviewedByID = &principal.UserID
			report.SupervisorFeedback = feedback
			report.SupervisorRating = &rating
			report.ReviewDate = &now
		}, "Report reviewed", "Your report has been reviewed by your supervisor.")
}

// RequestRevision sends a submitted or under-review report back to the
// intern with feedback.
func (s *reportService) RequestRevision(ctx context.Context, principal auth.Principal, id uint, feedback string) (*model.InternReport, error) {
	if feedback == "" {
		return nil, errors.NewValidation("revision feedback is required")
	}
	return s.reviewTransition(ctx, principal, id, workflow.EventRequestRevision,
		func(report *model.InternReport, now time.Time) {
			report.ReviewedByID = &principal.UserID
			report.SupervisorFeedback = feedback
			report.ReviewDate = &now
		}, "Revision requested", "Your supervisor requested changes to your report.")
}

// reviewTransition runs a supervisor transition as one atomic
// read-validate-write, checking the report's internship is assigned to the
// calling supervisor.
func (s *reportService) reviewTransition(ctx context.Context, principal auth.Principal, id uint, event workflow.Event, apply func(*model.InternReport, time.Time), subject, body string) (*model.InternReport, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}

	var updated *model.InternReport
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReportRepository) error {
		report, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrReportNotFound
			}
			return err
		}

		assigned, err := s.internshipRepo.IsAssignedTo(ctx, report.InternshipID, principal.UserID)
		if err != nil {
			return err
		}
		if !assigned {
			return errors.ErrNotPermitted
		}

		next, err := workflow.ReportMachine.Next(
			workflow.State(report.Status), event)
		if err != nil {
			return err
		}

		report.Status = model.ReportStatus(next)
		apply(report, time.Now())
		if err := txRepo.Update(ctx, report); err != nil {
			return fmt.Errorf("update report: %w", err)
		}
		updated = report
		return nil
	})
	if err != nil {
		return nil, err
	}

	if subject != "" {
		var notifyEvent model.NotificationEvent
		switch event {
		case workflow.EventCompleteReview:
			notifyEvent = model.EventReportReviewed
		case workflow.EventRequestRevision:
			notifyEvent = model.EventRevisionRequested
		}
		if intern, err := s.userRepo.FindByID(ctx, updated.InternID); err == nil {
			s.notifier.Emit(ctx, model.Notification{
				Event:          notifyEvent,
				RecipientID:    &intern.ID,
				RecipientEmail: intern.Email,
				Subject:        subject,
				Body:           body,
			})
		}
	}

	return updated, nil
}

// Get retrieves a report, visible to its owning intern, the assigned
// supervisor, and admins.
func (s *reportService) Get(ctx context.Context, principal auth.Principal, id uint) (*model.InternReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReportNotFound
		}
		return nil, err
	}

	switch {
	case principal.CanAccessAdmin():
		return report, nil
	case principal.CanSubmitReports() && report.InternID == principal.UserID:
		return report, nil
	case principal.CanSupervise():
		assigned, err := s.internshipRepo.IsAssignedTo(ctx, report.InternshipID, principal.UserID)
		if err != nil {
			return nil, err
		}
		if assigned {
			return report, nil
		}
	}
	return nil, errors.ErrNotPermitted
}

// ListMine lists the calling intern's reports.
func (s *reportService) ListMine(ctx context.Context, principal auth.Principal) ([]model.InternReport, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}
	return s.repo.ListByIntern(ctx, principal.UserID)
}

// ListForSupervisor lists reports for the calling supervisor's internships,
// optionally filtered by status.
func (s *reportService) ListForSupervisor(ctx context.Context, principal auth.Principal, status model.ReportStatus) ([]model.InternReport, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}

	internships, err := s.internshipRepo.ListBySupervisor(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(internships))
	for _, internship := range internships {
		ids = append(ids, internship.ID)
	}

	if status != "" {
		return s.repo.ListByInternshipsAndStatus(ctx, ids, status)
	}
	return s.repo.ListByInternships(ctx, ids)
}
