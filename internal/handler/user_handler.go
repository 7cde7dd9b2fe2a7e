package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/service"
)

// UserHandler handles user account and profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// InternProfileRequest represents an intern profile update payload.
type InternProfileRequest struct {
	Phone         string `json:"phone"`
	Bio           string `json:"bio"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
	Institution   string `json:"institution"`
	FieldOfStudy  string `json:"field_of_study"`
	AcademicLevel string `json:"academic_level"`
	LinkedinURL   string `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL     string `json:"github_url" validate:"omitempty,url"`
	PortfolioURL  string `json:"portfolio_url" validate:"omitempty,url"`
}

// SupervisorProfileRequest represents a supervisor profile update payload.
type SupervisorProfileRequest struct {
	Phone           string `json:"phone"`
	Bio             string `json:"bio"`
	Department      string `json:"department"`
	Position        string `json:"position"`
	ExperienceYears *uint  `json:"experience_years"`
	LinkedinURL     string `json:"linkedin_url" validate:"omitempty,url"`
}

// Me godoc
// @Summary Get the calling user's account and profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), principal.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// List godoc
// @Summary List users, optionally filtered by role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(admin, supervisor, intern)
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	role := model.Role(c.QueryParam("role"))
	users, err := h.userService.ListUsers(c.Request().Context(), principal, role)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	if !principal.CanAccessAdmin() {
		return domainError(errors.ErrNotPermitted)
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Approve godoc
// @Summary Approve a pending user account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/approve [post]
func (h *UserHandler) Approve(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	user, err := h.userService.ApproveUser(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate godoc
// @Summary Deactivate a user account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	user, err := h.userService.DeactivateUser(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateInternProfile godoc
// @Summary Update the calling intern's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InternProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /intern/profile [put]
func (h *UserHandler) UpdateInternProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req InternProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	update := service.InternProfileUpdate{
		Phone:         req.Phone,
		Bio:           req.Bio,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Institution:   req.Institution,
		FieldOfStudy:  req.FieldOfStudy,
		AcademicLevel: req.AcademicLevel,
		LinkedinURL:   req.LinkedinURL,
		GithubURL:     req.GithubURL,
		PortfolioURL:  req.PortfolioURL,
	}

	user, err := h.userService.UpdateInternProfile(c.Request().Context(), principal, update)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateSupervisorProfile godoc
// @Summary Update the calling supervisor's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SupervisorProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /supervisor/profile [put]
func (h *UserHandler) UpdateSupervisorProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req SupervisorProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	update := service.SupervisorProfileUpdate{
		Phone:           req.Phone,
		Bio:             req.Bio,
		Department:      req.Department,
		Position:        req.Position,
		ExperienceYears: req.ExperienceYears,
		LinkedinURL:     req.LinkedinURL,
	}

	user, err := h.userService.UpdateSupervisorProfile(c.Request().Context(), principal, update)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}
