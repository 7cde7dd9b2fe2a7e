package model

import "time"

// Profile holds extended profile information for a user. It is exclusively
// owned by its user and removed together with it.
type Profile struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	// Contact information
	Address    string `json:"address,omitempty" gorm:"type:text"`
	City       string `json:"city,omitempty" gorm:"size:100"`
	Country    string `json:"country,omitempty" gorm:"size:100"`
	PostalCode string `json:"postal_code,omitempty" gorm:"size:20"`

	// Educational information (interns)
	Institution   string `json:"institution,omitempty" gorm:"size:200"`
	FieldOfStudy  string `json:"field_of_study,omitempty" gorm:"size:200"`
	AcademicLevel string `json:"academic_level,omitempty" gorm:"size:100"`

	// Professional information (supervisors)
	Department      string `json:"department,omitempty" gorm:"size:200"`
	Position        string `json:"position,omitempty" gorm:"size:200"`
	ExperienceYears *uint  `json:"experience_years,omitempty"`

	// Social links
	LinkedinURL  string `json:"linkedin_url,omitempty" gorm:"size:255"`
	GithubURL    string `json:"github_url,omitempty" gorm:"size:255"`
	PortfolioURL string `json:"portfolio_url,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
