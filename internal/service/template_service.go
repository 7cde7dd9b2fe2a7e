package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// ReportTemplateService manages the admin-curated templates interns follow
// when writing periodic reports.
type ReportTemplateService interface {
	Create(ctx context.Context, principal auth.Principal, template *model.ReportTemplate) (*model.ReportTemplate, error)
	Update(ctx context.Context, principal auth.Principal, template *model.ReportTemplate) (*model.ReportTemplate, error)
	Get(ctx context.Context, principal auth.Principal, id uint) (*model.ReportTemplate, error)
	List(ctx context.Context, principal auth.Principal) ([]model.ReportTemplate, error)
	ListActive(ctx context.Context) ([]model.ReportTemplate, error)
}

type templateService struct {
	repo repository.ReportTemplateRepository
}

// NewReportTemplateService creates a new report template service.
func NewReportTemplateService(repo repository.ReportTemplateRepository) ReportTemplateService {
	return &templateService{repo: repo}
}

// validateSections checks the sections document is well-formed JSON.
func validateSections(template *model.ReportTemplate) error {
	if len(template.Sections) == 0 || !json.Valid(template.Sections) {
		return errors.NewValidation("sections must be a valid JSON document")
	}
	return nil
}

// Create records a new template. Admin only; at most one template stays
// default.
func (s *templateService) Create(ctx context.Context, principal auth.Principal, template *model.ReportTemplate) (*model.ReportTemplate, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if err := validateSections(template); err != nil {
		return nil, err
	}

	template.CreatedByID = principal.UserID
	if err := s.repo.Create(ctx, template); err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.NewConflict("a template with this name already exists")
		}
		return nil, fmt.Errorf("create report template: %w", err)
	}
	if template.IsDefault {
		if err := s.repo.ClearDefault(ctx, template.ID); err != nil {
			return nil, fmt.Errorf("clear default template: %w", err)
		}
	}
	return template, nil
}

// Update revises a template. Admin only; authorship is preserved.
func (s *templateService) Update(ctx context.Context, principal auth.Principal, template *model.ReportTemplate) (*model.ReportTemplate, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if err := validateSections(template); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, template.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTemplateNotFound
		}
		return nil, err
	}
	template.CreatedByID = existing.CreatedByID
	template.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, template); err != nil {
		return nil, fmt.Errorf("update report template: %w", err)
	}
	if template.IsDefault {
		if err := s.repo.ClearDefault(ctx, template.ID); err != nil {
			return nil, fmt.Errorf("clear default template: %w", err)
		}
	}
	return template, nil
}

// Get retrieves a template. Admins see every template; other callers only
// active ones.
func (s *templateService) Get(ctx context.Context, principal auth.Principal, id uint) (*model.ReportTemplate, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTemplateNotFound
		}
		return nil, err
	}
	if !template.IsActive && !principal.CanAccessAdmin() {
		return nil, errors.ErrTemplateNotFound
	}
	return template, nil
}

// List lists all templates. Admin only.
func (s *templateService) List(ctx context.Context, principal auth.Principal) ([]model.ReportTemplate, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	return s.repo.List(ctx)
}

// ListActive lists the templates offered to report authors.
func (s *templateService) ListActive(ctx context.Context) ([]model.ReportTemplate, error) {
	return s.repo.ListActive(ctx)
}
