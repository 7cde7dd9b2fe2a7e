package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"internhub/internal/model"
)

// ApplicationRepository defines application persistence operations.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.InternshipApplication) error
	Update(ctx context.Context, application *model.InternshipApplication) error
	FindByID(ctx context.Context, id uint) (*model.InternshipApplication, error)
	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction so a status transition is an atomic read-modify-write.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.InternshipApplication, error)
	ExistsByEmailAndInternship(ctx context.Context, email string, internshipID uint) (bool, error)
	List(ctx context.Context) ([]model.InternshipApplication, error)
	ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.InternshipApplication, error)
	ListByInternship(ctx context.Context, internshipID uint) ([]model.InternshipApplication, error)
	CountByInternship(ctx context.Context, internshipID uint) (int64, error)
	CountByInternshipAndStatus(ctx context.Context, internshipID uint, status model.ApplicationStatus) (int64, error)
	CountByStatus(ctx context.Context, status model.ApplicationStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ApplicationRepository) error) error
	// Users returns a user repository bound to the same connection, so the
	// account provisioned from an application commits with the application.
	Users() UserRepository
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application.
func (r *applicationRepository) Create(ctx context.Context, application *model.InternshipApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// Update updates an existing application.
func (r *applicationRepository) Update(ctx context.Context, application *model.InternshipApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

// FindByID finds an application by ID.
func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.InternshipApplication, error) {
	var application model.InternshipApplication
	if err := r.db.WithContext(ctx).Preload("Internship").
		Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByIDForUpdate finds an application by ID with a row-level lock.
func (r *applicationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.InternshipApplication, error) {
	var application model.InternshipApplication
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// ExistsByEmailAndInternship reports whether the (email, internship) pair is
// already taken.
func (r *applicationRepository) ExistsByEmailAndInternship(ctx context.Context, email string, internshipID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Where("email = ? AND internship_id = ?", email, internshipID).
		Count(&count).Error
	return count > 0, err
}

// List lists all applications, newest first.
func (r *applicationRepository) List(ctx context.Context) ([]model.InternshipApplication, error) {
	var applications []model.InternshipApplication
	if err := r.db.WithContext(ctx).Preload("Internship").
		Order("submitted_at desc").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// ListByStatus lists applications in the given status.
func (r *applicationRepository) ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.InternshipApplication, error) {
	var applications []model.InternshipApplication
	if err := r.db.WithContext(ctx).Preload("Internship").
		Where("status = ?", status).
		Order("submitted_at desc").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// ListByInternship lists applications targeting an internship.
func (r *applicationRepository) ListByInternship(ctx context.Context, internshipID uint) ([]model.InternshipApplication, error) {
	var applications []model.InternshipApplication
	if err := r.db.WithContext(ctx).Where("internship_id = ?", internshipID).
		Order("submitted_at desc").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// CountByInternship counts applications targeting an internship.
func (r *applicationRepository) CountByInternship(ctx context.Context, internshipID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Where("internship_id = ?", internshipID).Count(&count).Error
	return count, err
}

// CountByInternshipAndStatus counts applications for an internship in a status.
func (r *applicationRepository) CountByInternshipAndStatus(ctx context.Context, internshipID uint, status model.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Where("internship_id = ? AND status = ?", internshipID, status).
		Count(&count).Error
	return count, err
}

// CountByStatus counts applications in the given status.
func (r *applicationRepository) CountByStatus(ctx context.Context, status model.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// Count counts all applications.
func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *applicationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ApplicationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &applicationRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

// Users returns a user repository bound to the same connection.
func (r *applicationRepository) Users() UserRepository {
	return &userRepository{db: r.db}
}
