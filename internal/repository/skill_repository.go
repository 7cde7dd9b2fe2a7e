package repository

import (
	"context"

	"gorm.io/gorm"

	"internhub/internal/model"
)

// SkillRepository defines skill catalog persistence operations.
type SkillRepository interface {
	CreateSkill(ctx context.Context, skill *model.Skill) error
	FindSkillByID(ctx context.Context, id uint) (*model.Skill, error)
	ListSkills(ctx context.Context) ([]model.Skill, error)
	// ReplaceRequirements swaps an internship's skill requirements for the
	// given set in one transaction.
	ReplaceRequirements(ctx context.Context, internshipID uint, requirements []model.SkillRequirement) error
	ListRequirements(ctx context.Context, internshipID uint) ([]model.SkillRequirement, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// CreateSkill creates a new catalog skill.
func (r *skillRepository) CreateSkill(ctx context.Context, skill *model.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

// FindSkillByID finds a catalog skill by ID.
func (r *skillRepository) FindSkillByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// ListSkills lists the skill catalog grouped by category.
func (r *skillRepository) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	if err := r.db.WithContext(ctx).Order("category asc, name asc").
		Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// ReplaceRequirements swaps an internship's skill requirements for the given set.
func (r *skillRepository) ReplaceRequirements(ctx context.Context, internshipID uint, requirements []model.SkillRequirement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("internship_id = ?", internshipID).
			Delete(&model.SkillRequirement{}).Error; err != nil {
			return err
		}
		if len(requirements) == 0 {
			return nil
		}
		return tx.Create(&requirements).Error
	})
}

// ListRequirements lists an internship's skill requirements with their skills.
func (r *skillRepository) ListRequirements(ctx context.Context, internshipID uint) ([]model.SkillRequirement, error) {
	var requirements []model.SkillRequirement
	if err := r.db.WithContext(ctx).Preload("Skill").
		Where("internship_id = ?", internshipID).
		Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}
