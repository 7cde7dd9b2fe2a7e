package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"internhub/internal/model"
)

// ReportRepository defines intern report persistence operations.
type ReportRepository interface {
	Create(ctx context.Context, report *model.InternReport) error
	Update(ctx context.Context, report *model.InternReport) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.InternReport, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.InternReport, error)
	ExistsByPeriod(ctx context.Context, internID, internshipID uint, periodLabel string) (bool, error)
	ListByIntern(ctx context.Context, internID uint) ([]model.InternReport, error)
	ListByInternships(ctx context.Context, internshipIDs []uint) ([]model.InternReport, error)
	ListByInternshipsAndStatus(ctx context.Context, internshipIDs []uint, status model.ReportStatus) ([]model.InternReport, error)
	CountByStatus(ctx context.Context, status model.ReportStatus) (int64, error)
	CountByInternAndStatus(ctx context.Context, internID uint, status model.ReportStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReportRepository) error) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create creates a new report.
func (r *reportRepository) Create(ctx context.Context, report *model.InternReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// Update updates an existing report.
func (r *reportRepository) Update(ctx context.Context, report *model.InternReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete soft-deletes a report.
func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.InternReport{}, id).Error
}

// FindByID finds a report by ID.
func (r *reportRepository) FindByID(ctx context.Context, id uint) (*model.InternReport, error) {
	var report model.InternReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// FindByIDForUpdate finds a report by ID with a row-level lock.
func (r *reportRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.InternReport, error) {
	var report model.InternReport
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ExistsByPeriod reports whether a report already exists for the
// (intern, internship, period label) triple.
func (r *reportRepository) ExistsByPeriod(ctx context.Context, internID, internshipID uint, periodLabel string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternReport{}).
		Where("intern_id = ? AND internship_id = ? AND period_label = ?",
			internID, internshipID, periodLabel).
		Count(&count).Error
	return count > 0, err
}

// ListByIntern lists reports authored by an intern, newest first.
func (r *reportRepository) ListByIntern(ctx context.Context, internID uint) ([]model.InternReport, error) {
	var reports []model.InternReport
	if err := r.db.WithContext(ctx).Where("intern_id = ?", internID).
		Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByInternships lists reports belonging to the given internships.
func (r *reportRepository) ListByInternships(ctx context.Context, internshipIDs []uint) ([]model.InternReport, error) {
	if len(internshipIDs) == 0 {
		return nil, nil
	}
	var reports []model.InternReport
	if err := r.db.WithContext(ctx).Where("internship_id IN ?", internshipIDs).
		Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByInternshipsAndStatus lists reports for the internships in a status.
func (r *reportRepository) ListByInternshipsAndStatus(ctx context.Context, internshipIDs []uint, status model.ReportStatus) ([]model.InternReport, error) {
	if len(internshipIDs) == 0 {
		return nil, nil
	}
	var reports []model.InternReport
	if err := r.db.WithContext(ctx).
		Where("internship_id IN ? AND status = ?", internshipIDs, status).
		Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// CountByStatus counts reports in the given status.
func (r *reportRepository) CountByStatus(ctx context.Context, status model.ReportStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternReport{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountByInternAndStatus counts an intern's reports in the given status.
func (r *reportRepository) CountByInternAndStatus(ctx context.Context, internID uint, status model.ReportStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternReport{}).
		Where("intern_id = ? AND status = ?", internID, status).
		Count(&count).Error
	return count, err
}

// Count counts all reports.
func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InternReport{}).Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *reportRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReportRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &reportRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
