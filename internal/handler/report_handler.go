package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/service"
)

// ReportHandler handles intern report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportRequest represents a report draft create/update payload.
type ReportRequest struct {
	Title                string `json:"title" validate:"required"`
	PeriodLabel          string `json:"period_label" validate:"required"`
	InternshipID         uint   `json:"internship_id" validate:"required"`
	Summary              string `json:"summary" validate:"required"`
	ActivitiesCompleted  string `json:"activities_completed" validate:"required"`
	ChallengesFaced      string `json:"challenges_faced"`
	SolutionsImplemented string `json:"solutions_implemented"`
	SkillsLearned        string `json:"skills_learned"`
	GoalsNextPeriod      string `json:"goals_next_period"`
	SelfRating           uint   `json:"self_rating" validate:"required,gte=1,lte=5"`
	HoursWorked          uint   `json:"hours_worked" validate:"required,gte=1"`
	ReportFile           string `json:"report_file"`
	AdditionalFiles      string `json:"additional_files"`
}

func (r *ReportRequest) toModel() *model.InternReport {
	return &model.InternReport{
		Title:                r.Title,
		PeriodLabel:          r.PeriodLabel,
		InternshipID:         r.InternshipID,
		Summary:              r.Summary,
		ActivitiesCompleted:  r.ActivitiesCompleted,
		ChallengesFaced:      r.ChallengesFaced,
		SolutionsImplemented: r.SolutionsImplemented,
		SkillsLearned:        r.SkillsLearned,
		GoalsNextPeriod:      r.GoalsNextPeriod,
		SelfRating:           r.SelfRating,
		HoursWorked:          r.HoursWorked,
		ReportFile:           r.ReportFile,
		AdditionalFiles:      r.AdditionalFiles,
	}
}

// ReviewFeedbackRequest carries supervisor review input.
type ReviewFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
	Rating   uint   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// CreateDraft godoc
// @Summary Create a report draft
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReportRequest true "Report data"
// @Success 201 {object} model.InternReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /intern/reports [post]
func (h *ReportHandler) CreateDraft(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req ReportRequest
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

	created, err := h.reportService.CreateDraft(c.Request().Context(), principal, req.toModel())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateDraft godoc
// @Summary Update an editable report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body ReportRequest true "Report data"
// @Success 200 {object} model.InternReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /intern/reports/{id} [put]
func (h *ReportHandler) UpdateDraft(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ReportRequest
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

	report := req.toModel()
	report.ID = id

	updated, err := h.reportService.UpdateDraft(c.Request().Context(), principal, report)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a draft report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /intern/reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.reportService.Delete(c.Request().Context(), principal, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "report deleted",
	})
}

// Submit godoc
// @Summary Submit a report for review
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.InternReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /intern/reports/{id}/submit [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.Submit(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// ListMine godoc
// @Summary List the calling intern's reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.InternReport
// @Failure 403 {object} errors.ErrorResponse
// @Router /intern/reports [get]
func (h *ReportHandler) ListMine(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	reports, err := h.reportService.ListMine(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// ListForSupervisor godoc
// @Summary List reports across the supervisor's internships
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} model.InternReport
// @Failure 403 {object} errors.ErrorResponse
// @Router /supervisor/reports [get]
func (h *ReportHandler) ListForSupervisor(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	status := model.ReportStatus(c.QueryParam("status"))
	reports, err := h.reportService.ListForSupervisor(c.Request().Context(), principal, status)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// Get godoc
// @Summary Get a single report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.InternReport
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// StartReview godoc
// @Summary Mark a submitted report as under review
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.InternReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supervisor/reports/{id}/start-review [post]
func (h *ReportHandler) StartReview(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.StartReview(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// CompleteReview godoc
// @Summary Complete a report review with feedback and rating
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body ReviewFeedbackRequest true "Review feedback"
// @Success 200 {object} model.InternReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supervisor/reports/{id}/complete-review [post]
func (h *ReportHandler) CompleteReview(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ReviewFeedbackRequest
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

	report, err := h.reportService.CompleteReview(c.Request().Context(), principal, id, req.Feedback, req.Rating)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// RequestRevision godoc
// @Summary Send a report back to the intern for revision
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body ReviewFeedbackRequest true "Revision feedback"
// @Success 200 {object} model.InternReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supervisor/reports/{id}/request-revision [post]
func (h *ReportHandler) RequestRevision(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ReviewFeedbackRequest
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

	report, err := h.reportService.RequestRevision(c.Request().Context(), principal, id, req.Feedback)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}
