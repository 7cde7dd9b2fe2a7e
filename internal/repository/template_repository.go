package repository

import (
	"context"

	"gorm.io/gorm"

	"internhub/internal/model"
)

// ReportTemplateRepository defines report template persistence operations.
type ReportTemplateRepository interface {
	Create(ctx context.Context, template *model.ReportTemplate) error
	Update(ctx context.Context, template *model.ReportTemplate) error
	FindByID(ctx context.Context, id uint) (*model.ReportTemplate, error)
	List(ctx context.Context) ([]model.ReportTemplate, error)
	ListActive(ctx context.Context) ([]model.ReportTemplate, error)
	// ClearDefault unsets the default flag on every template except the given
	// one, keeping at most one default.
	ClearDefault(ctx context.Context, exceptID uint) error
}

type templateRepository struct {
	db *gorm.DB
}

// NewReportTemplateRepository creates a new report template repository.
func NewReportTemplateRepository(db *gorm.DB) ReportTemplateRepository {
	return &templateRepository{db: db}
}

// Create creates a new report template.
func (r *templateRepository) Create(ctx context.Context, template *model.ReportTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Update updates an existing report template.
func (r *templateRepository) Update(ctx context.Context, template *model.ReportTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// FindByID finds a report template by ID.
func (r *templateRepository) FindByID(ctx context.Context, id uint) (*model.ReportTemplate, error) {
	var template model.ReportTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// List lists all report templates by name.
func (r *templateRepository) List(ctx context.Context) ([]model.ReportTemplate, error) {
	var templates []model.ReportTemplate
	if err := r.db.WithContext(ctx).Order("name asc").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// ListActive lists active report templates by name.
func (r *templateRepository) ListActive(ctx context.Context) ([]model.ReportTemplate, error) {
	var templates []model.ReportTemplate
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("name asc").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// ClearDefault unsets the default flag on every template except the given one.
func (r *templateRepository) ClearDefault(ctx context.Context, exceptID uint) error {
	return r.db.WithContext(ctx).Model(&model.ReportTemplate{}).
		Where("id <> ? AND is_default = ?", exceptID, true).
		Update("is_default", false).Error
}
