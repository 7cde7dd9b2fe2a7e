package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/cache"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/notify"
	"internhub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// InternProfileUpdate carries the profile fields an intern may change.
// Role-conditional fields are fixed per request variant instead of a single
// mutable field set.
type InternProfileUpdate struct {
	Phone         string
	Bio           string
	Address       string
	City          string
	Country       string
	PostalCode    string
	Institution   string
	FieldOfStudy  string
	AcademicLevel string
	LinkedinURL   string
	GithubURL     string
	PortfolioURL  string
}

// SupervisorProfileUpdate carries the profile fields a supervisor may change.
type SupervisorProfileUpdate struct {
	Phone           string
	Bio             string
	Department      string
	Position        string
	ExperienceYears *uint
	LinkedinURL     string
}

// UserService exposes user and account management operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, principal auth.Principal, role model.Role) ([]model.User, error)
	ApproveUser(ctx context.Context, principal auth.Principal, id uint) (*model.User, error)
	DeactivateUser(ctx context.Context, principal auth.Principal, id uint) (*model.User, error)
	UpdateInternProfile(ctx context.Context, principal auth.Principal, update InternProfileUpdate) (*model.User, error)
	UpdateSupervisorProfile(ctx context.Context, principal auth.Principal, update SupervisorProfileUpdate) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	notifier notify.Emitter
}

// NewUserService builds a UserService with repository, cache, and notifier.
func NewUserService(repo repository.UserRepository, cache *cache.Client, notifier notify.Emitter) UserService {
	return &userService{repo: repo, cache: cache, notifier: notifier}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListUsers lists users, optionally filtered by role. Admin only.
func (s *userService) ListUsers(ctx context.Context, principal auth.Principal, role model.Role) ([]model.User, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}
	if role != "" {
		return s.repo.ListByRole(ctx, role)
	}
	return s.repo.List(ctx)
}

// ApproveUser sets the approval flag on an account. Admin only.
func (s *userService) ApproveUser(ctx context.Context, principal auth.Principal, id uint) (*model.User, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if user.IsApproved {
		return user, nil
	}

	user.IsApproved = true
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("approve user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))

	s.notifier.Emit(ctx, model.Notification{
		Event:          model.EventAccountApproved,
		RecipientID:    &user.ID,
		RecipientEmail: user.Email,
		Subject:        "Your account has been approved",
		Body:           fmt.Sprintf("Hello %s, your %s account is now active.", user.FullName(), user.Role),
	})

	return user, nil
}

// DeactivateUser clears the active flag on an account. Admin only.
func (s *userService) DeactivateUser(ctx context.Context, principal auth.Principal, id uint) (*model.User, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	user.Active = false
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("deactivate user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))

	return user, nil
}

// UpdateInternProfile updates the caller's own intern profile.
func (s *userService) UpdateInternProfile(ctx context.Context, principal auth.Principal, update InternProfileUpdate) (*model.User, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}

	user, err := s.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	user.Phone = update.Phone
	user.Bio = update.Bio
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	profile, err := s.repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		profile = &model.Profile{UserID: user.ID}
	}
	profile.Address = update.Address
	profile.City = update.City
	profile.Country = update.Country
	profile.PostalCode = update.PostalCode
	profile.Institution = update.Institution
	profile.FieldOfStudy = update.FieldOfStudy
	profile.AcademicLevel = update.AcademicLevel
	profile.LinkedinURL = update.LinkedinURL
	profile.GithubURL = update.GithubURL
	profile.PortfolioURL = update.PortfolioURL
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	user.Profile = profile
	return user, nil
}

// UpdateSupervisorProfile updates the caller's own supervisor profile.
func (s *userService) UpdateSupervisorProfile(ctx context.Context, principal auth.Principal, update SupervisorProfileUpdate) (*model.User, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}

	user, err := s.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	user.Phone = update.Phone
	user.Bio = update.Bio
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	profile, err := s.repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		profile = &model.Profile{UserID: user.ID}
	}
	profile.Department = update.Department
	profile.Position = update.Position
	profile.ExperienceYears = update.ExperienceYears
	profile.LinkedinURL = update.LinkedinURL
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	user.Profile = profile
	return user, nil
}
