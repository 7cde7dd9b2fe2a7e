package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role represents a user's role in the system.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleIntern     Role = "intern"
)

// User represents an authenticated user in the system.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"size:150"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string         `json:"first_name" gorm:"size:150;not null"`
	LastName     string         `json:"last_name" gorm:"size:150;not null"`
	Phone        string         `json:"phone" gorm:"size:20"`
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;default:'intern';index"`
	IsApproved   bool           `json:"is_approved" gorm:"default:false;index"`
	Active       bool           `json:"active" gorm:"default:true;index"`
	Bio          string         `json:"bio,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// FullName returns the user's full name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor reports whether the user holds the supervisor role.
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// IsIntern reports whether the user holds the intern role.
func (u *User) IsIntern() bool {
	return u.Role == RoleIntern
}
