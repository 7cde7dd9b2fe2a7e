package model

import (
	"time"

	"gorm.io/gorm"
)

// EvaluationPeriod represents the cadence of an evaluation.
type EvaluationPeriod string

const (
	PeriodWeekly    EvaluationPeriod = "weekly"
	PeriodMonthly   EvaluationPeriod = "monthly"
	PeriodQuarterly EvaluationPeriod = "quarterly"
	PeriodFinal     EvaluationPeriod = "final"
)

// Evaluation is a supervisor's scored assessment of an intern for one period.
// Evaluations have no status machine; they are created and updated in place,
// one per (intern, internship, period type, period label).
type Evaluation struct {
	ID uint `json:"id" gorm:"primaryKey"`

	InternID     uint `json:"intern_id" gorm:"not null;uniqueIndex:idx_evaluation_period;index"`
	SupervisorID uint `json:"supervisor_id" gorm:"not null;index"`
	InternshipID uint `json:"internship_id" gorm:"not null;uniqueIndex:idx_evaluation_period;index"`

	PeriodType  EvaluationPeriod `json:"period_type" gorm:"type:varchar(20);not null;default:'monthly';uniqueIndex:idx_evaluation_period"`
	PeriodLabel string           `json:"period_label" gorm:"size:100;not null;uniqueIndex:idx_evaluation_period"`

	// Performance ratings, 1-5 scale
	TechnicalSkills     uint `json:"technical_skills" gorm:"not null"`
	CommunicationSkills uint `json:"communication_skills" gorm:"not null"`
	Teamwork            uint `json:"teamwork" gorm:"not null"`
	Initiative          uint `json:"initiative" gorm:"not null"`
	Reliability         uint `json:"reliability" gorm:"not null"`
	OverallPerformance  uint `json:"overall_performance" gorm:"not null"`

	// Qualitative feedback
	Strengths           string `json:"strengths" gorm:"type:text;not null"`
	AreasForImprovement string `json:"areas_for_improvement" gorm:"type:text;not null"`
	Achievements        string `json:"achievements,omitempty" gorm:"type:text"`
	Recommendations     string `json:"recommendations,omitempty" gorm:"type:text"`
	GoalsMet            string `json:"goals_met,omitempty" gorm:"type:text"`
	GoalsNextPeriod     string `json:"goals_next_period,omitempty" gorm:"type:text"`

	WouldRecommend     bool   `json:"would_recommend" gorm:"default:true"`
	AdditionalComments string `json:"additional_comments,omitempty" gorm:"type:text"`

	EvaluationDate time.Time      `json:"evaluation_date" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Intern     User       `json:"-" gorm:"foreignKey:InternID"`
	Supervisor User       `json:"-" gorm:"foreignKey:SupervisorID"`
	Internship Internship `json:"-" gorm:"foreignKey:InternshipID"`
}

// AverageRating returns the arithmetic mean of the five sub-ratings. The
// overall performance rating is excluded; rounding is left to the caller.
func (e *Evaluation) AverageRating() float64 {
	sum := e.TechnicalSkills + e.CommunicationSkills + e.Teamwork + e.Initiative + e.Reliability
	return float64(sum) / 5
}

// PerformanceLevel buckets the overall performance rating into a display label.
func (e *Evaluation) PerformanceLevel() string {
	switch {
	case e.OverallPerformance >= 5:
		return "Excellent"
	case e.OverallPerformance >= 4:
		return "Good"
	case e.OverallPerformance >= 3:
		return "Satisfactory"
	case e.OverallPerformance >= 2:
		return "Needs Improvement"
	default:
		return "Unsatisfactory"
	}
}
