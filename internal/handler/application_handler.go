package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/service"
)

// ApplicationHandler handles application workflow endpoints.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// FileReferenceRequest describes an uploaded file reference.
type FileReferenceRequest struct {
	Name string `json:"name" validate:"required"`
	Size int64  `json:"size" validate:"gte=0"`
}

// SubmitApplicationRequest represents a visitor's application.
type SubmitApplicationRequest struct {
	FirstName          string                `json:"first_name" validate:"required"`
	LastName           string                `json:"last_name" validate:"required"`
	Email              string                `json:"email" validate:"required,email"`
	Phone              string                `json:"phone" validate:"required"`
	Address            string                `json:"address" validate:"required"`
	City               string                `json:"city" validate:"required"`
	Country            string                `json:"country" validate:"required"`
	PostalCode         string                `json:"postal_code"`
	Institution        string                `json:"institution" validate:"required"`
	FieldOfStudy       string                `json:"field_of_study" validate:"required"`
	AcademicLevel      string                `json:"academic_level" validate:"required"`
	GraduationYear     uint                  `json:"graduation_year" validate:"required,gte=2000"`
	GPA                string                `json:"gpa"`
	InternshipID       uint                  `json:"internship_id" validate:"required"`
	CVResume           FileReferenceRequest  `json:"cv_resume" validate:"required"`
	CoverLetter        *FileReferenceRequest `json:"cover_letter"`
	Transcript         *FileReferenceRequest `json:"transcript"`
	MotivationLetter   string                `json:"motivation_letter" validate:"required"`
	PreviousExperience string                `json:"previous_experience"`
	Skills             string                `json:"skills"`
	AvailableStartDate string                `json:"available_start_date" validate:"required"`
	DurationMonths     uint                  `json:"duration_months" validate:"required,gte=1"`
}

// ReviewRequest carries admin review notes.
type ReviewRequest struct {
	Notes string `json:"notes"`
}

// CreateInternAccountRequest carries the initial password for a provisioned
// intern account. Empty means the configured default is used.
type CreateInternAccountRequest struct {
	Password string `json:"password"`
}

// Submit godoc
// @Summary Submit an internship application
// @Tags applications
// @Accept json
// @Produce json
// @Param request body SubmitApplicationRequest true "Application data"
// @Success 201 {object} model.InternshipApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req SubmitApplicationRequest
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

	startDate, err := time.Parse("2006-01-02", req.AvailableStartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid available_start_date, expected YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	application := &model.InternshipApplication{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		Country:            req.Country,
		PostalCode:         req.PostalCode,
		Institution:        req.Institution,
		FieldOfStudy:       req.FieldOfStudy,
		AcademicLevel:      req.AcademicLevel,
		GraduationYear:     req.GraduationYear,
		InternshipID:       req.InternshipID,
		MotivationLetter:   req.MotivationLetter,
		PreviousExperience: req.PreviousExperience,
		Skills:             req.Skills,
		AvailableStartDate: startDate,
		DurationMonths:     req.DurationMonths,
	}
	if req.GPA != "" {
		gpa, err := decimal.NewFromString(req.GPA)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid gpa",
				Code:  "INVALID_GPA",
			})
		}
		application.GPA = &gpa
	}

	cv := service.FileReference{Name: req.CVResume.Name, Size: req.CVResume.Size}
	var coverLetter, transcript *service.FileReference
	if req.CoverLetter != nil {
		coverLetter = &service.FileReference{Name: req.CoverLetter.Name, Size: req.CoverLetter.Size}
	}
	if req.Transcript != nil {
		transcript = &service.FileReference{Name: req.Transcript.Name, Size: req.Transcript.Size}
	}

	created, err := h.applicationService.Submit(c.Request().Context(), application, cv, coverLetter, transcript)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} model.InternshipApplication
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	status := model.ApplicationStatus(c.QueryParam("status"))
	applications, err := h.applicationService.List(c.Request().Context(), principal, status)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, applications)
}

// Get godoc
// @Summary Get an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} model.InternshipApplication
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	application, err := h.applicationService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, application)
}

// Approve godoc
// @Summary Approve a pending application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body ReviewRequest true "Review notes"
// @Success 200 {object} model.InternshipApplication
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/applications/{id}/approve [post]
func (h *ApplicationHandler) Approve(c echo.Context) error {
	return h.review(c, h.applicationService.Approve)
}

type reviewFn func(ctx context.Context, principal auth.Principal, id uint, notes string) (*model.InternshipApplication, error)

// Reject godoc
// @Summary Reject a pending application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body ReviewRequest true "Review notes"
// @Success 200 {object} model.InternshipApplication
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c echo.Context) error {
	return h.review(c, h.applicationService.Reject)
}

func (h *ApplicationHandler) review(c echo.Context, fn reviewFn) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	application, err := fn(c.Request().Context(), principal, id, req.Notes)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, application)
}

// CreateInternAccount godoc
// @Summary Provision an intern account from an approved application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body CreateInternAccountRequest true "Initial password"
// @Success 201 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/applications/{id}/create-intern [post]
func (h *ApplicationHandler) CreateInternAccount(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req CreateInternAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	intern, err := h.applicationService.CreateInternAccount(c.Request().Context(), principal, id, req.Password)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, intern)
}
