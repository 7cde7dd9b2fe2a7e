package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/notify"
	"internhub/internal/repository"
)

// EvaluationService handles supervisor evaluations of interns. Evaluations
// have no status machine; they are created and updated in place, scoped to
// the authoring supervisor's assigned internships.
type EvaluationService interface {
	Create(ctx context.Context, principal auth.Principal, evaluation *model.Evaluation) (*model.Evaluation, error)
	Update(ctx context.Context, principal auth.Principal, evaluation *model.Evaluation) (*model.Evaluation, error)
	Get(ctx context.Context, principal auth.Principal, id uint) (*model.Evaluation, error)
	ListForIntern(ctx context.Context, principal auth.Principal) ([]model.Evaluation, error)
	ListBySupervisor(ctx context.Context, principal auth.Principal) ([]model.Evaluation, error)
}

type evaluationService struct {
	repo           repository.EvaluationRepository
	internshipRepo repository.InternshipRepository
	userRepo       repository.UserRepository
	notifier       notify.Emitter
}

// NewEvaluationService creates a new evaluation service.
func NewEvaluationService(
	repo repository.EvaluationRepository,
	internshipRepo repository.InternshipRepository,
	userRepo repository.UserRepository,
	notifier notify.Emitter,
) EvaluationService {
	return &evaluationService{
		repo:           repo,
		internshipRepo: internshipRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// validateRatings checks every rating is on the 1-5 scale.
func validateRatings(e *model.Evaluation) error {
	ratings := map[string]uint{
		"technical_skills":     e.TechnicalSkills,
		"communication_skills": e.CommunicationSkills,
		"teamwork":             e.Teamwork,
		"initiative":           e.Initiative,
		"reliability":          e.Reliability,
		"overall_performance":  e.OverallPerformance,
	}
	for name, rating := range ratings {
		if rating < 1 || rating > 5 {
			return errors.NewValidation(fmt.Sprintf("%s must be between 1 and 5", name))
		}
	}
	return nil
}

// verifyScope checks the internship is assigned to the supervisor and the
// target user is an intern.
func (s *evaluationService) verifyScope(ctx context.Context, principal auth.Principal, internID, internshipID uint) error {
	assigned, err := s.internshipRepo.IsAssignedTo(ctx, internshipID, principal.UserID)
	if err != nil {
		return err
	}
	if !assigned {
		return errors.ErrNotPermitted
	}

	intern, err := s.userRepo.FindByID(ctx, internID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}
	if !intern.IsIntern() {
		return errors.NewValidation("evaluations can only target intern accounts")
	}
	return nil
}

// Create records a new evaluation for one (intern, internship, period type,
// period label) tuple.
func (s *evaluationService) Create(ctx context.Context, principal auth.Principal, evaluation *model.Evaluation) (*model.Evaluation, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}
	if err := validateRatings(evaluation); err != nil {
		return nil, err
	}
	if err := s.verifyScope(ctx, principal, evaluation.InternID, evaluation.InternshipID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByPeriod(ctx, evaluation.InternID, evaluation.InternshipID,
		evaluation.PeriodType, evaluation.PeriodLabel)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewValidation("an evaluation for this period already exists")
	}

	evaluation.SupervisorID = principal.UserID
	if err := s.repo.Create(ctx, evaluation); err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.NewConflict("an evaluation for this period already exists")
		}
		return nil, fmt.Errorf("create evaluation: %w", err)
	}

	if intern, err := s.userRepo.FindByID(ctx, evaluation.InternID); err == nil {
		s.notifier.Emit(ctx, model.Notification{
			Event:          model.EventEvaluationRecorded,
			RecipientID:    &intern.ID,
			RecipientEmail: intern.Email,
			Subject:        "New evaluation recorded",
			Body:           fmt.Sprintf("A %s evaluation for %s has been recorded.", evaluation.PeriodType, evaluation.PeriodLabel),
		})
	}

	return evaluation, nil
}

// Update revises an evaluation authored by the calling supervisor. The
// period identity is immutable; only ratings and qualitative fields change.
func (s *evaluationService) Update(ctx context.Context, principal auth.Principal, evaluation *model.Evaluation) (*model.Evaluation, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}
	if err := validateRatings(evaluation); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, evaluation.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEvaluationNotFound
		}
		return nil, err
	}
	if existing.SupervisorID != principal.UserID {
		return nil, errors.ErrNotPermitted
	}

	existing.TechnicalSkills = evaluation.TechnicalSkills
	existing.CommunicationSkills = evaluation.CommunicationSkills
	existing.Teamwork = evaluation.Teamwork
	existing.Initiative = evaluation.Initiative
	existing.Reliability = evaluation.Reliability
	existing.OverallPerformance = evaluation.OverallPerformance
	existing.Strengths = evaluation.Strengths
	existing.AreasForImprovement = evaluation.AreasForImprovement
	existing.Achievements = evaluation.Achievements
	existing.Recommendations = evaluation.Recommendations
	existing.GoalsMet = evaluation.GoalsMet
	existing.GoalsNextPeriod = evaluation.GoalsNextPeriod
	existing.WouldRecommend = evaluation.WouldRecommend
	existing.AdditionalComments = evaluation.AdditionalComments
	existing.EvaluationDate = evaluation.EvaluationDate

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	return existing, nil
}

// Get retrieves an evaluation, visible to its author, its subject intern,
// and admins.
func (s *evaluationService) Get(ctx context.Context, principal auth.Principal, id uint) (*model.Evaluation, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEvaluationNotFound
		}
		return nil, err
	}

	switch {
	case principal.CanAccessAdmin():
		return evaluation, nil
	case principal.CanSupervise() && evaluation.SupervisorID == principal.UserID:
		return evaluation, nil
	case principal.CanSubmitReports() && evaluation.InternID == principal.UserID:
		return evaluation, nil
	}
	return nil, errors.ErrNotPermitted
}

// ListForIntern lists evaluations received by the calling intern.
func (s *evaluationService) ListForIntern(ctx context.Context, principal auth.Principal) ([]model.Evaluation, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}
	return s.repo.ListByIntern(ctx, principal.UserID)
}

// ListBySupervisor lists evaluations authored by the calling supervisor.
func (s *evaluationService) ListBySupervisor(ctx context.Context, principal auth.Principal) ([]model.Evaluation, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}
	return s.repo.ListBySupervisor(ctx, principal.UserID)
}
