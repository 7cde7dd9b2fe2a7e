package model

import "time"

// SkillLevel represents the proficiency expected for a skill requirement.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// Skill is a catalog entry postings can require, e.g. "Go" or "SQL".
type Skill struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Category  string    `json:"category,omitempty" gorm:"size:50;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SkillRequirement links a posting to a catalog skill with an expected level.
// One row per (internship, skill) pair.
type SkillRequirement struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	InternshipID uint       `json:"internship_id" gorm:"not null;uniqueIndex:idx_internship_skill;index"`
	SkillID      uint       `json:"skill_id" gorm:"not null;uniqueIndex:idx_internship_skill"`
	Level        SkillLevel `json:"level" gorm:"type:varchar(20);not null;default:'beginner'"`
	// IsRequired distinguishes required skills from preferred ones.
	IsRequired bool `json:"is_required" gorm:"default:true"`

	// Relations
	Internship Internship `json:"-" gorm:"foreignKey:InternshipID;constraint:OnDelete:CASCADE"`
	Skill      Skill      `json:"skill" gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// ValidLevel reports whether the level is one of the known proficiency tiers.
func (r *SkillRequirement) ValidLevel() bool {
	switch r.Level {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}
