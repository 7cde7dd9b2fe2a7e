package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/notify"
	"internhub/internal/repository"
	"internhub/internal/workflow"
)

// FileReference is an opaque handle to an externally stored upload with its
// declared size.
type FileReference struct {
	Name string
	Size int64
}

// ApplicationService drives the application workflow: submission, admin
// review, and intern account provisioning.
type ApplicationService interface {
	Submit(ctx context.Context, submission *model.InternshipApplication, cv FileReference, coverLetter, transcript *FileReference) (*model.InternshipApplication, error)
	Approve(ctx context.Context, principal auth.Principal, id uint, notes string) (*model.InternshipApplication, error)
	Reject(ctx context.Context, principal auth.Principal, id uint, notes string) (*model.InternshipApplication, error)
	CreateInternAccount(ctx context.Context, principal auth.Principal, id uint, password string) (*model.User, error)
	Get(ctx context.Context, principal auth.Principal, id uint) (*model.InternshipApplication, error)
	List(ctx context.Context, principal auth.Principal, status model.ApplicationStatus) ([]model.InternshipApplication, error)
}

type applicationService struct {
	repo            repository.ApplicationRepository
	internshipRepo  repository.InternshipRepository
	validator       *UploadValidator
	notifier        notify.Emitter
	defaultPassword string
}

// NewApplicationService creates a new application service. defaultPassword is
// used for provisioned intern accounts when the admin supplies none.
func NewApplicationService(
	repo repository.ApplicationRepository,
	internshipRepo repository.InternshipRepository,
	notifier notify.Emitter,
	defaultPassword string,
) ApplicationService {
	return &applicationService{
		repo:            repo,
		internshipRepo:  internshipRepo,
		validator:       NewUploadValidator(),
		notifier:        notifier,
		defaultPassword: defaultPassword,
	}
}

// Submit validates and stores a visitor's application. Duplicate
// (email, internship) pairs are rejected before storage; the composite unique
// index backstops races.
func (s *applicationService) Submit(ctx context.Context, application *model.InternshipApplication, cv FileReference, coverLetter, transcript *FileReference) (*model.InternshipApplication, error) {
	internship, err := s.internshipRepo.FindByID(ctx, application.InternshipID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInternshipNotFound
		}
		return nil, err
	}

	if !internship.IsActive || internship.DeadlinePassed(time.Now()) {
		return nil, errors.NewValidation("internship is not accepting applications")
	}
	count, err := s.repo.CountByInternship(ctx, internship.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(internship.MaxApplicants) {
		return nil, errors.NewValidation("internship has reached its applicant limit")
	}

	if err := s.validator.ValidateResume(cv.Name, cv.Size); err != nil {
		return nil, err
	}
	if coverLetter != nil {
		if err := s.validator.ValidateDocument(coverLetter.Name); err != nil {
			return nil, err
		}
		application.CoverLetter = coverLetter.Name
	}
	if transcript != nil {
		if err := s.validator.ValidateTranscript(transcript.Name); err != nil {
			return nil, err
		}
		application.Transcript = transcript.Name
	}
	application.CVResume = cv.Name

	exists, err := s.repo.ExistsByEmailAndInternship(ctx, application.Email, application.InternshipID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewValidation("an application for this internship already exists for this email")
	}

	application.Status = model.ApplicationStatusPending
	if err := s.repo.Create(ctx, application); err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.NewConflict("an application for this internship already exists for this email")
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.notifier.Emit(ctx, model.Notification{
		Event:          model.EventApplicationSubmitted,
		RecipientEmail: application.Email,
		Subject:        "Application received",
		Body:           fmt.Sprintf("Your application for %s was received and is pending review.", internship.Title),
	})

	return application, nil
}

// Approve moves a pending application to approved. Admin only; fails with a
// precondition error if the application was already reviewed.
func (s *applicationService) Approve(ctx context.Context, principal auth.Principal, id uint, notes string) (*model.InternshipApplication, error) {
	return s.review(ctx, principal, id, notes, workflow.EventApprove, model.EventApplicationApproved,
		"Application approved", "Congratulations, your internship application has been approved.")
}

// Reject moves a pending application to rejected. Admin only.
func (s *applicationService) Reject(ctx context.Context, principal auth.Principal, id uint, notes string) (*model.InternshipApplication, error) {
	return s.review(ctx, principal, id, notes, workflow.EventReject, model.EventApplicationRejected,
		"Application update", "We are sorry, your internship application was not selected.")
}

// review performs the shared approve/reject transition as one atomic
// read-modify-write.
func (s *applicationService) review(ctx context.Context, principal auth.Principal, id uint, notes string, event workflow.Event, notifyEvent model.NotificationEvent, subject, body string) (*model.InternshipApplication, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}

	var reviewed *model.InternshipApplication
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ApplicationRepository) error {
		application, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrApplicationNotFound
			}
			return err
		}

		next, err := workflow.ApplicationMachine.Next(
			workflow.State(application.Status), event)
		if err != nil {
			return err
		}

		now := time.Now()
		application.Status = model.ApplicationStatus(next)
		application.ReviewedByID = &principal.UserID
		application.ReviewDate = &now
		application.ReviewNotes = notes

		if err := txRepo.Update(ctx, application); err != nil {
			return fmt.Errorf("update application: %w", err)
		}
		reviewed = application
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, model.Notification{
		Event:          notifyEvent,
		RecipientEmail: reviewed.Email,
		Subject:        subject,
		Body:           body,
	})

	return reviewed, nil
}

// CreateInternAccount provisions a pre-approved intern account from an
// approved application. This is the only path by which an intern account is
// manufactured from an application: the whole read-validate-create-link runs
// in one transaction, so a second call fails instead of duplicating.
func (s *applicationService) CreateInternAccount(ctx context.Context, principal auth.Principal, id uint, password string) (*model.User, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if password == "" {
		password = s.defaultPassword
	}

	var intern *model.User
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ApplicationRepository) error {
		application, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrApplicationNotFound
			}
			return err
		}

		if application.HasInternAccount() {
			return errors.NewPrecondition("intern account already exists for this application")
		}
		next, err := workflow.ApplicationMachine.Next(
			workflow.State(application.Status), workflow.EventCreateIntern)
		if err != nil {
			return err
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		// Admin approved the application, so the account starts approved.
		intern = &model.User{
			Username:     usernameFromEmail(application.Email),
			Email:        application.Email,
			PasswordHash: string(hashedPassword),
			FirstName:    application.FirstName,
			LastName:     application.LastName,
			Phone:        application.Phone,
			Role:         model.RoleIntern,
			IsApproved:   true,
			Active:       true,
			Profile: &model.Profile{
				Address:       application.Address,
				City:          application.City,
				Country:       application.Country,
				PostalCode:    application.PostalCode,
				Institution:   application.Institution,
				FieldOfStudy:  application.FieldOfStudy,
				AcademicLevel: application.AcademicLevel,
			},
		}
		if err := txRepo.Users().Create(ctx, intern); err != nil {
			if isDuplicateKeyError(err) {
				return errors.NewConflict("a user with this email already exists")
			}
			return fmt.Errorf("create intern user: %w", err)
		}

		application.CreatedInternID = &intern.ID
		application.Status = model.ApplicationStatus(next)
		if err := txRepo.Update(ctx, application); err != nil {
			return fmt.Errorf("link intern account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, model.Notification{
		Event:          model.EventInternAccountCreated,
		RecipientID:    &intern.ID,
		RecipientEmail: intern.Email,
		Subject:        "Your intern account is ready",
		Body:           fmt.Sprintf("Welcome %s, your intern account has been created.", intern.FullName()),
	})

	return intern, nil
}

// Get retrieves an application. Admin only.
func (s *applicationService) Get(ctx context.Context, principal auth.Principal, id uint) (*model.InternshipApplication, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrApplicationNotFound
		}
		return nil, err
	}
	return application, nil
}

// List lists applications, optionally filtered by status. Admin only.
func (s *applicationService) List(ctx context.Context, principal auth.Principal, status model.ApplicationStatus) ([]model.InternshipApplication, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if status != "" {
		return s.repo.ListByStatus(ctx, status)
	}
	return s.repo.List(ctx)
}

// usernameFromEmail derives a username from the email local part.
func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// isDuplicateKeyError reports whether err is a storage uniqueness violation.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
