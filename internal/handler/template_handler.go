package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/service"
)

// TemplateHandler handles report template endpoints.
type TemplateHandler struct {
	templateService service.ReportTemplateService
}

// NewTemplateHandler creates a new report template handler.
func NewTemplateHandler(templateService service.ReportTemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// ReportTemplateRequest represents a template create/update payload.
type ReportTemplateRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Sections    json.RawMessage `json:"sections" validate:"required"`
	IsActive    bool            `json:"is_active"`
	IsDefault   bool            `json:"is_default"`
}

func (r *ReportTemplateRequest) toModel() *model.ReportTemplate {
	return &model.ReportTemplate{
		Name:        r.Name,
		Description: r.Description,
		Sections:    r.Sections,
		IsActive:    r.IsActive,
		IsDefault:   r.IsDefault,
	}
}

// Create godoc
// @Summary Create a report template
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReportTemplateRequest true "Template data"
// @Success 201 {object} model.ReportTemplate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/report-templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req ReportTemplateRequest
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

	created, err := h.templateService.Create(c.Request().Context(), principal, req.toModel())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update a report template
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Param request body ReportTemplateRequest true "Template data"
// @Success 200 {object} model.ReportTemplate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/report-templates/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ReportTemplateRequest
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

	template := req.toModel()
	template.ID = id

	updated, err := h.templateService.Update(c.Request().Context(), principal, template)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Get godoc
// @Summary Get a report template
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {object} model.ReportTemplate
// @Failure 404 {object} errors.ErrorResponse
// @Router /report-templates/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	template, err := h.templateService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, template)
}

// ListAll godoc
// @Summary List all report templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ReportTemplate
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/report-templates [get]
func (h *TemplateHandler) ListAll(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	templates, err := h.templateService.List(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

// ListActive godoc
// @Summary List active report templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ReportTemplate
// @Router /report-templates [get]
func (h *TemplateHandler) ListActive(c echo.Context) error {
	templates, err := h.templateService.ListActive(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, templates)
}
