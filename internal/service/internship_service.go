package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/cache"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/repository"
)

const internshipCacheTTL = 5 * time.Minute

// InternshipDetail is an internship posting with its derived read-only
// properties.
type InternshipDetail struct {
	model.Internship
	ApplicationCount          int64                    `json:"application_count"`
	PendingApplicationsCount  int64                    `json:"pending_applications_count"`
	ApprovedApplicationsCount int64                    `json:"approved_applications_count"`
	IsApplicationOpen         bool                     `json:"is_application_open"`
	SkillRequirements         []model.SkillRequirement `json:"skill_requirements"`
}

// InternshipService handles internship catalog operations, including the
// skill catalog postings draw their requirements from.
type InternshipService interface {
	Create(ctx context.Context, principal auth.Principal, internship *model.Internship) (*model.Internship, error)
	Update(ctx context.Context, principal auth.Principal, internship *model.Internship) (*model.Internship, error)
	Delete(ctx context.Context, principal auth.Principal, id uint) error
	Get(ctx context.Context, id uint) (*InternshipDetail, error)
	List(ctx context.Context) ([]model.Internship, error)
	ListOpen(ctx context.Context) ([]InternshipDetail, error)
	ListFeatured(ctx context.Context) ([]model.Internship, error)
	ListForSupervisor(ctx context.Context, principal auth.Principal) ([]model.Internship, error)
	IsApplicationOpen(ctx context.Context, internship *model.Internship) (bool, error)
	CreateSkill(ctx context.Context, principal auth.Principal, skill *model.Skill) (*model.Skill, error)
	ListSkills(ctx context.Context) ([]model.Skill, error)
	SetSkillRequirements(ctx context.Context, principal auth.Principal, internshipID uint, requirements []model.SkillRequirement) ([]model.SkillRequirement, error)
}

type internshipService struct {
	repo            repository.InternshipRepository
	applicationRepo repository.ApplicationRepository
	skillRepo       repository.SkillRepository
	cache           *cache.Client
}

// NewInternshipService creates a new internship service.
func NewInternshipService(
	repo repository.InternshipRepository,
	applicationRepo repository.ApplicationRepository,
	skillRepo repository.SkillRepository,
	cache *cache.Client,
) InternshipService {
	return &internshipService{
		repo:            repo,
		applicationRepo: applicationRepo,
		skillRepo:       skillRepo,
		cache:           cache,
	}
}

func (s *internshipService) cacheKey(id uint) string {
	return fmt.Sprintf("internship:%d", id)
}

// validateDates enforces deadline < start < end.
func validateDates(internship *model.Internship) error {
	if !internship.StartDate.Before(internship.EndDate) {
		return errors.NewValidation("start date must precede end date")
	}
	if !internship.ApplicationDeadline.Before(internship.StartDate) {
		return errors.NewValidation("application deadline must precede start date")
	}
	return nil
}

// Create creates an internship posting. Admin only.
func (s *internshipService) Create(ctx context.Context, principal auth.Principal, internship *model.Internship) (*model.Internship, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if err := validateDates(internship); err != nil {
		return nil, err
	}

	internship.CreatedByID = principal.UserID
	if err := s.repo.Create(ctx, internship); err != nil {
		return nil, fmt.Errorf("create internship: %w", err)
	}
	return internship, nil
}

// Update updates an internship posting. Admin only.
func (s *internshipService) Update(ctx context.Context, principal auth.Principal, internship *model.Internship) (*model.Internship, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if err := validateDates(internship); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, internship.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInternshipNotFound
		}
		return nil, err
	}
	internship.CreatedByID = existing.CreatedByID
	internship.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, internship); err != nil {
		return nil, fmt.Errorf("update internship: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(internship.ID))
	return internship, nil
}

// Delete removes an internship posting. Admin only.
func (s *internshipService) Delete(ctx context.Context, principal auth.Principal, id uint) error {
	if !principal.CanAccessAdmin() {
		return errors.ErrNotPermitted
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrInternshipNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete internship: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Get retrieves an internship with derived properties, cached.
func (s *internshipService) Get(ctx context.Context, id uint) (*InternshipDetail, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached InternshipDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	internship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInternshipNotFound
		}
		return nil, err
	}

	detail, err := s.buildDetail(ctx, internship)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, internshipCacheTTL)
	}
	return detail, nil
}

// List lists all internships.
func (s *internshipService) List(ctx context.Context) ([]model.Internship, error) {
	return s.repo.List(ctx)
}

// ListOpen lists active internships currently accepting applications.
func (s *internshipService) ListOpen(ctx context.Context) ([]InternshipDetail, error) {
	internships, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	open := make([]InternshipDetail, 0, len(internships))
	for i := range internships {
		detail, err := s.buildDetail(ctx, &internships[i])
		if err != nil {
			return nil, err
		}
		if detail.IsApplicationOpen {
			open = append(open, *detail)
		}
	}
	return open, nil
}

// ListFeatured lists featured active internships.
func (s *internshipService) ListFeatured(ctx context.Context) ([]model.Internship, error) {
	return s.repo.ListFeatured(ctx)
}

// ListForSupervisor lists internships assigned to the calling supervisor.
func (s *internshipService) ListForSupervisor(ctx context.Context, principal auth.Principal) ([]model.Internship, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}
	return s.repo.ListBySupervisor(ctx, principal.UserID)
}

// IsApplicationOpen reports whether applications are currently accepted:
// active, deadline not passed, applicant count below the maximum.
func (s *internshipService) IsApplicationOpen(ctx context.Context, internship *model.Internship) (bool, error) {
	if !internship.IsActive || internship.DeadlinePassed(time.Now()) {
		return false, nil
	}
	count, err := s.applicationRepo.CountByInternship(ctx, internship.ID)
	if err != nil {
		return false, err
	}
	return count < int64(internship.MaxApplicants), nil
}

func (s *internshipService) buildDetail(ctx context.Context, internship *model.Internship) (*InternshipDetail, error) {
	total, err := s.applicationRepo.CountByInternship(ctx, internship.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.applicationRepo.CountByInternshipAndStatus(ctx, internship.ID, model.ApplicationStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.applicationRepo.CountByInternshipAndStatus(ctx, internship.ID, model.ApplicationStatusApproved)
	if err != nil {
		return nil, err
	}
	requirements, err := s.skillRepo.ListRequirements(ctx, internship.ID)
	if err != nil {
		return nil, err
	}

	open := internship.IsActive &&
		!internship.DeadlinePassed(time.Now()) &&
		total < int64(internship.MaxApplicants)

	return &InternshipDetail{
		Internship:                *internship,
		ApplicationCount:          total,
		PendingApplicationsCount:  pending,
		ApprovedApplicationsCount: approved,
		IsApplicationOpen:         open,
		SkillRequirements:         requirements,
	}, nil
}

// CreateSkill adds a skill to the catalog. Admin only; names are unique.
func (s *internshipService) CreateSkill(ctx context.Context, principal auth.Principal, skill *model.Skill) (*model.Skill, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if err := s.skillRepo.CreateSkill(ctx, skill); err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.NewConflict("a skill with this name already exists")
		}
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return skill, nil
}

// ListSkills lists the skill catalog.
func (s *internshipService) ListSkills(ctx context.Context) ([]model.Skill, error) {
	return s.skillRepo.ListSkills(ctx)
}

// SetSkillRequirements replaces a posting's skill requirements. Admin only.
func (s *internshipService) SetSkillRequirements(ctx context.Context, principal auth.Principal, internshipID uint, requirements []model.SkillRequirement) ([]model.SkillRequirement, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if _, err := s.repo.FindByID(ctx, internshipID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInternshipNotFound
		}
		return nil, err
	}

	seen := make(map[uint]bool, len(requirements))
	for i := range requirements {
		if !requirements[i].ValidLevel() {
			return nil, errors.NewValidation("unknown skill level")
		}
		if seen[requirements[i].SkillID] {
			return nil, errors.NewValidation("duplicate skill in requirements")
		}
		seen[requirements[i].SkillID] = true
		requirements[i].InternshipID = internshipID
	}

	if err := s.skillRepo.ReplaceRequirements(ctx, internshipID, requirements); err != nil {
		return nil, fmt.Errorf("replace skill requirements: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(internshipID))
	return s.skillRepo.ListRequirements(ctx, internshipID)
}
