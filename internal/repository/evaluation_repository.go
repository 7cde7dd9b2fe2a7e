package repository

import (
	"context"

	"gorm.io/gorm"

	"internhub/internal/model"
)

// EvaluationRepository defines evaluation persistence operations.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *model.Evaluation) error
	Update(ctx context.Context, evaluation *model.Evaluation) error
	FindByID(ctx context.Context, id uint) (*model.Evaluation, error)
	ExistsByPeriod(ctx context.Context, internID, internshipID uint, periodType model.EvaluationPeriod, periodLabel string) (bool, error)
	ListByIntern(ctx context.Context, internID uint) ([]model.Evaluation, error)
	ListBySupervisor(ctx context.Context, supervisorID uint) ([]model.Evaluation, error)
	CountBySupervisor(ctx context.Context, supervisorID uint) (int64, error)
	CountByIntern(ctx context.Context, internID uint) (int64, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Create creates a new evaluation.
func (r *evaluationRepository) Create(ctx context.Context, evaluation *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

// Update updates an existing evaluation.
func (r *evaluationRepository) Update(ctx context.Context, evaluation *model.Evaluation) error {
	return r.db.WithContext(ctx).Save(evaluation).Error
}

// FindByID finds an evaluation by ID.
func (r *evaluationRepository) FindByID(ctx context.Context, id uint) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&evaluation).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// ExistsByPeriod reports whether an evaluation exists for the
// (intern, internship, period type, period label) tuple.
func (r *evaluationRepository) ExistsByPeriod(ctx context.Context, internID, internshipID uint, periodType model.EvaluationPeriod, periodLabel string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Where("intern_id = ? AND internship_id = ? AND period_type = ? AND period_label = ?",
			internID, internshipID, periodType, periodLabel).
		Count(&count).Error
	return count > 0, err
}

// ListByIntern lists evaluations of an intern, newest first.
func (r *evaluationRepository) ListByIntern(ctx context.Context, internID uint) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	if err := r.db.WithContext(ctx).Where("intern_id = ?", internID).
		Order("evaluation_date desc").Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

// ListBySupervisor lists evaluations authored by a supervisor.
func (r *evaluationRepository) ListBySupervisor(ctx context.Context, supervisorID uint) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	if err := r.db.WithContext(ctx).Where("supervisor_id = ?", supervisorID).
		Order("evaluation_date desc").Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

// CountBySupervisor counts evaluations authored by a supervisor.
func (r *evaluationRepository) CountBySupervisor(ctx context.Context, supervisorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Where("supervisor_id = ?", supervisorID).Count(&count).Error
	return count, err
}

// CountByIntern counts evaluations received by an intern.
func (r *evaluationRepository) CountByIntern(ctx context.Context, internID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Where("intern_id = ?", internID).Count(&count).Error
	return count, err
}
