package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/service"
)

// EvaluationHandler handles supervisor evaluation endpoints.
type EvaluationHandler struct {
	evaluationService service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(evaluationService service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// EvaluationRequest represents an evaluation create/update payload.
type EvaluationRequest struct {
	InternID     uint   `json:"intern_id" validate:"required"`
	InternshipID uint   `json:"internship_id" validate:"required"`
	PeriodType   string `json:"period_type" validate:"required,oneof=weekly monthly quarterly final"`
	PeriodLabel  string `json:"period_label" validate:"required"`

	TechnicalSkills     uint `json:"technical_skills" validate:"required,gte=1,lte=5"`
	CommunicationSkills uint `json:"communication_skills" validate:"required,gte=1,lte=5"`
	Teamwork            uint `json:"teamwork" validate:"required,gte=1,lte=5"`
	Initiative          uint `json:"initiative" validate:"required,gte=1,lte=5"`
	Reliability         uint `json:"reliability" validate:"required,gte=1,lte=5"`
	OverallPerformance  uint `json:"overall_performance" validate:"required,gte=1,lte=5"`

	Strengths           string `json:"strengths" validate:"required"`
	AreasForImprovement string `json:"areas_for_improvement" validate:"required"`
	Achievements        string `json:"achievements"`
	Recommendations     string `json:"recommendations"`
	GoalsMet            string `json:"goals_met"`
	GoalsNextPeriod     string `json:"goals_next_period"`

	WouldRecommend     bool   `json:"would_recommend"`
	AdditionalComments string `json:"additional_comments"`
}

func (r *EvaluationRequest) toModel() *model.Evaluation {
	return &model.Evaluation{
		InternID:            r.InternID,
		InternshipID:        r.InternshipID,
		PeriodType:          model.EvaluationPeriod(r.PeriodType),
		PeriodLabel:         r.PeriodLabel,
		TechnicalSkills:     r.TechnicalSkills,
		CommunicationSkills: r.CommunicationSkills,
		Teamwork:            r.Teamwork,
		Initiative:          r.Initiative,
		Reliability:         r.Reliability,
		OverallPerformance:  r.OverallPerformance,
		Strengths:           r.Strengths,
		AreasForImprovement: r.AreasForImprovement,
		Achievements:        r.Achievements,
		Recommendations:     r.Recommendations,
		GoalsMet:            r.GoalsMet,
		GoalsNextPeriod:     r.GoalsNextPeriod,
		WouldRecommend:      r.WouldRecommend,
		AdditionalComments:  r.AdditionalComments,
		EvaluationDate:      time.Now(),
	}
}

// Create godoc
// @Summary Record an evaluation for an intern
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EvaluationRequest true "Evaluation data"
// @Success 201 {object} model.Evaluation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /supervisor/evaluations [post]
func (h *EvaluationHandler) Create(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req EvaluationRequest
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

	created, err := h.evaluationService.Create(c.Request().Context(), principal, req.toModel())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update an evaluation authored by the caller
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body EvaluationRequest true "Evaluation data"
// @Success 200 {object} model.Evaluation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supervisor/evaluations/{id} [put]
func (h *EvaluationHandler) Update(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req EvaluationRequest
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

	evaluation := req.toModel()
	evaluation.ID = id

	updated, err := h.evaluationService.Update(c.Request().Context(), principal, evaluation)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Get godoc
// @Summary Get a single evaluation
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} model.Evaluation
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	evaluation, err := h.evaluationService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, evaluation)
}

// ListMine godoc
// @Summary List evaluations about the calling intern
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Evaluation
// @Failure 403 {object} errors.ErrorResponse
// @Router /intern/evaluations [get]
func (h *EvaluationHandler) ListMine(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	evaluations, err := h.evaluationService.ListForIntern(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, evaluations)
}

// ListAuthored godoc
// @Summary List evaluations authored by the calling supervisor
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Evaluation
// @Failure 403 {object} errors.ErrorResponse
// @Router /supervisor/evaluations [get]
func (h *EvaluationHandler) ListAuthored(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	evaluations, err := h.evaluationService.ListBySupervisor(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, evaluations)
}
