package repository

import (
	"context"

	"gorm.io/gorm"

	"internhub/internal/model"
)

// InternshipRepository defines internship posting persistence operations.
type InternshipRepository interface {
	Create(ctx context.Context, internship *model.Internship) error
	Update(ctx context.Context, internship *model.Internship) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Internship, error)
	List(ctx context.Context) ([]model.Internship, error)
	ListActive(ctx context.Context) ([]model.Internship, error)
	ListFeatured(ctx context.Context) ([]model.Internship, error)
	ListBySupervisor(ctx context.Context, supervisorID uint) ([]model.Internship, error)
	IsAssignedTo(ctx context.Context, internshipID, supervisorID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type internshipRepository struct {
	db *gorm.DB
}

// NewInternshipRepository creates a new internship repository.
func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

// Create creates a new internship posting.
func (r *internshipRepository) Create(ctx context.Context, internship *model.Internship) error {
	return r.db.WithContext(ctx).Create(internship).Error
}

// Update updates an existing internship posting.
func (r *internshipRepository) Update(ctx context.Context, internship *model.Internship) error {
	return r.db.WithContext(ctx).Save(internship).Error
}

// Delete soft-deletes an internship posting.
func (r *internshipRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Internship{}, id).Error
}

// FindByID finds an internship by ID.
func (r *internshipRepository) FindByID(ctx context.Context, id uint) (*model.Internship, error) {
	var internship model.Internship
	if err := r.db.WithContext(ctx).Preload("Supervisor").
		Where("id = ?", id).First(&internship).Error; err != nil {
		return nil, err
	}
	return &internship, nil
}

// List lists all internships, newest first.
func (r *internshipRepository) List(ctx context.Context) ([]model.Internship, error) {
	var internships []model.Internship
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

// ListActive lists active internships.
func (r *internshipRepository) ListActive(ctx context.Context) ([]model.Internship, error) {
	var internships []model.Internship
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at desc").Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

// ListFeatured lists active featured internships.
func (r *internshipRepository) ListFeatured(ctx context.Context) ([]model.Internship, error) {
	var internships []model.Internship
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at desc").Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

// ListBySupervisor lists internships assigned to a supervisor.
func (r *internshipRepository) ListBySupervisor(ctx context.Context, supervisorID uint) ([]model.Internship, error) {
	var internships []model.Internship
	if err := r.db.WithContext(ctx).Where("supervisor_id = ?", supervisorID).
		Order("created_at desc").Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

// IsAssignedTo reports whether the internship is assigned to the supervisor.
func (r *internshipRepository) IsAssignedTo(ctx context.Context, internshipID, supervisorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Internship{}).
		Where("id = ? AND supervisor_id = ?", internshipID, supervisorID).
		Count(&count).Error
	return count > 0, err
}

// Count counts all internships.
func (r *internshipRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Internship{}).Count(&count).Error
	return count, err
}

// CountActive counts active internships.
func (r *internshipRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Internship{}).
		Where("is_active = ?", true).Count(&count).Error
	return count, err
}
