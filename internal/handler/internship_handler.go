package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/service"
)

// InternshipHandler handles internship catalog endpoints.
type InternshipHandler struct {
	internshipService service.InternshipService
}

// NewInternshipHandler creates a new internship handler.
func NewInternshipHandler(internshipService service.InternshipService) *InternshipHandler {
	return &InternshipHandler{internshipService: internshipService}
}

// InternshipRequest represents an internship create/update payload.
type InternshipRequest struct {
	Title               string `json:"title" validate:"required"`
	Description         string `json:"description" validate:"required"`
	Requirements        string `json:"requirements"`
	Responsibilities    string `json:"responsibilities"`
	Department          string `json:"department" validate:"required"`
	Location            string `json:"location"`
	Type                string `json:"internship_type" validate:"required,oneof=paid unpaid stipend"`
	Duration            string `json:"duration" validate:"omitempty,oneof=1-3 3-6 6-12 12+"`
	SalaryAmount        string `json:"salary_amount"`
	Benefits            string `json:"benefits"`
	ApplicationDeadline string `json:"application_deadline" validate:"required"`
	StartDate           string `json:"start_date" validate:"required"`
	EndDate             string `json:"end_date" validate:"required"`
	MaxApplicants       uint   `json:"max_applicants" validate:"required,gte=1"`
	SupervisorID        *uint  `json:"supervisor_id"`
	IsActive            bool   `json:"is_active"`
	IsFeatured          bool   `json:"is_featured"`
}

func (r *InternshipRequest) toModel() (*model.Internship, error) {
	deadline, err := time.Parse("2006-01-02", r.ApplicationDeadline)
	if err != nil {
		return nil, errors.NewValidation("invalid application_deadline, expected YYYY-MM-DD")
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, errors.NewValidation("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, errors.NewValidation("invalid end_date, expected YYYY-MM-DD")
	}

	internship := &model.Internship{
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		Department:          r.Department,
		Location:            r.Location,
		Type:                model.InternshipType(r.Type),
		Duration:            model.InternshipDuration(r.Duration),
		Benefits:            r.Benefits,
		ApplicationDeadline: deadline,
		StartDate:           start,
		EndDate:             end,
		MaxApplicants:       r.MaxApplicants,
		SupervisorID:        r.SupervisorID,
		IsActive:            r.IsActive,
		IsFeatured:          r.IsFeatured,
	}
	if r.Duration == "" {
		internship.Duration = model.DurationMedium
	}
	if r.SalaryAmount != "" {
		salary, err := decimal.NewFromString(r.SalaryAmount)
		if err != nil {
			return nil, errors.NewValidation("invalid salary_amount")
		}
		internship.SalaryAmount = &salary
	}
	return internship, nil
}

// ListOpen godoc
// @Summary List internships currently accepting applications
// @Tags internships
// @Produce json
// @Success 200 {array} service.InternshipDetail
// @Router /internships [get]
func (h *InternshipHandler) ListOpen(c echo.Context) error {
	internships, err := h.internshipService.ListOpen(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, internships)
}

// ListFeatured godoc
// @Summary List featured internships
// @Tags internships
// @Produce json
// @Success 200 {array} model.Internship
// @Router /internships/featured [get]
func (h *InternshipHandler) ListFeatured(c echo.Context) error {
	internships, err := h.internshipService.ListFeatured(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, internships)
}

// Get godoc
// @Summary Get an internship with derived properties
// @Tags internships
// @Produce json
// @Param id path int true "Internship ID"
// @Success 200 {object} service.InternshipDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /internships/{id} [get]
func (h *InternshipHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	detail, err := h.internshipService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListAll godoc
// @Summary List all internships
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Internship
// @Router /admin/internships [get]
func (h *InternshipHandler) ListAll(c echo.Context) error {
	internships, err := h.internshipService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, internships)
}

// ListAssigned godoc
// @Summary List internships assigned to the calling supervisor
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Internship
// @Failure 403 {object} errors.ErrorResponse
// @Router /supervisor/internships [get]
func (h *InternshipHandler) ListAssigned(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	internships, err := h.internshipService.ListForSupervisor(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, internships)
}

// Create godoc
// @Summary Create an internship posting
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InternshipRequest true "Internship data"
// @Success 201 {object} model.Internship
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/internships [post]
func (h *InternshipHandler) Create(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req InternshipRequest
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

	internship, err := req.toModel()
	if err != nil {
		return domainError(err)
	}

	created, err := h.internshipService.Create(c.Request().Context(), principal, internship)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update an internship posting
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body InternshipRequest true "Internship data"
// @Success 200 {object} model.Internship
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/internships/{id} [put]
func (h *InternshipHandler) Update(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req InternshipRequest
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

	internship, err := req.toModel()
	if err != nil {
		return domainError(err)
	}
	internship.ID = id

	updated, err := h.internshipService.Update(c.Request().Context(), principal, internship)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete an internship posting
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/internships/{id} [delete]
func (h *InternshipHandler) Delete(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.internshipService.Delete(c.Request().Context(), principal, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "internship deleted",
	})
}

// SkillRequest represents a catalog skill payload.
type SkillRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"max=50"`
}

// SkillRequirementRequest is one entry of a posting's skill requirement set.
type SkillRequirementRequest struct {
	SkillID    uint   `json:"skill_id" validate:"required"`
	Level      string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	IsRequired bool   `json:"is_required"`
}

// SetSkillRequirementsRequest replaces a posting's skill requirements.
type SetSkillRequirementsRequest struct {
	Requirements []SkillRequirementRequest `json:"requirements" validate:"dive"`
}

// ListSkills godoc
// @Summary List the skill catalog
// @Tags skills
// @Produce json
// @Success 200 {array} model.Skill
// @Router /skills [get]
func (h *InternshipHandler) ListSkills(c echo.Context) error {
	skills, err := h.internshipService.ListSkills(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, skills)
}

// CreateSkill godoc
// @Summary Add a skill to the catalog
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SkillRequest true "Skill data"
// @Success 201 {object} model.Skill
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/skills [post]
func (h *InternshipHandler) CreateSkill(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req SkillRequest
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

	skill, err := h.internshipService.CreateSkill(c.Request().Context(), principal, &model.Skill{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, skill)
}

// SetSkillRequirements godoc
// @Summary Replace an internship's skill requirements
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body SetSkillRequirementsRequest true "Skill requirements"
// @Success 200 {array} model.SkillRequirement
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/internships/{id}/skills [put]
func (h *InternshipHandler) SetSkillRequirements(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req SetSkillRequirementsRequest
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

	requirements := make([]model.SkillRequirement, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		level := model.SkillLevel(r.Level)
		if r.Level == "" {
			level = model.SkillLevelBeginner
		}
		requirements = append(requirements, model.SkillRequirement{
			SkillID:    r.SkillID,
			Level:      level,
			IsRequired: r.IsRequired,
		})
	}

	stored, err := h.internshipService.SetSkillRequirements(c.Request().Context(), principal, id, requirements)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stored)
}
