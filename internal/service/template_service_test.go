package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"internhub/internal/errors"
	"internhub/internal/model"
)

func templateInput() *model.ReportTemplate {
	return &model.ReportTemplate{
		Name:        "Weekly Progress",
		Description: "Standard weekly check-in.",
		Sections:    json.RawMessage(`{"sections":["accomplishments","blockers","next_steps"]}`),
		IsActive:    true,
	}
}

func TestTemplateService_Create(t *testing.T) {
	t.Run("admin creates template", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ReportTemplate")).Return(nil)
		service := NewReportTemplateService(mockRepo)

		created, err := service.Create(context.Background(), adminPrincipal(), templateInput())
		assert.NoError(t, err)
		assert.Equal(t, adminPrincipal().UserID, created.CreatedByID)
		mockRepo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		service := NewReportTemplateService(mockRepo)

		_, err := service.Create(context.Background(), internPrincipal(), templateInput())
		assert.ErrorIs(t, err, errors.ErrNotPermitted)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed sections rejected", func(t *testing.T) {
		service := NewReportTemplateService(new(MockTemplateRepository))

		input := templateInput()
		input.Sections = json.RawMessage(`{"sections":`)
		_, err := service.Create(context.Background(), adminPrincipal(), input)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("empty sections rejected", func(t *testing.T) {
		service := NewReportTemplateService(new(MockTemplateRepository))

		input := templateInput()
		input.Sections = nil
		_, err := service.Create(context.Background(), adminPrincipal(), input)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("new default clears previous default", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ReportTemplate")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.ReportTemplate).ID = 3
		}).Return(nil)
		mockRepo.On("ClearDefault", mock.Anything, uint(3)).Return(nil)
		service := NewReportTemplateService(mockRepo)

		input := templateInput()
		input.IsDefault = true
		_, err := service.Create(context.Background(), adminPrincipal(), input)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ReportTemplate")).Return(gorm.ErrDuplicatedKey)
		service := NewReportTemplateService(mockRepo)

		_, err := service.Create(context.Background(), adminPrincipal(), templateInput())
		assert.True(t, errors.IsConflict(err))
	})
}

func TestTemplateService_Update(t *testing.T) {
	t.Run("preserves authorship", func(t *testing.T) {
		createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
		existing := templateInput()
		existing.ID = 5
		existing.CreatedByID = 99
		existing.CreatedAt = createdAt

		mockRepo := new(MockTemplateRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.ReportTemplate")).Return(nil)
		service := NewReportTemplateService(mockRepo)

		input := templateInput()
		input.ID = 5
		input.Description = "Revised weekly check-in."
		updated, err := service.Update(context.Background(), adminPrincipal(), input)
		assert.NoError(t, err)
		assert.Equal(t, uint(99), updated.CreatedByID)
		assert.Equal(t, createdAt, updated.CreatedAt)
	})

	t.Run("unknown template", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)
		service := NewReportTemplateService(mockRepo)

		input := templateInput()
		input.ID = 404
		_, err := service.Update(context.Background(), adminPrincipal(), input)
		assert.ErrorIs(t, err, errors.ErrTemplateNotFound)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		service := NewReportTemplateService(new(MockTemplateRepository))

		_, err := service.Update(context.Background(), supervisorPrincipal(), templateInput())
		assert.ErrorIs(t, err, errors.ErrNotPermitted)
	})
}

func TestTemplateService_Get(t *testing.T) {
	inactive := templateInput()
	inactive.ID = 7
	inactive.IsActive = false

	t.Run("inactive hidden from non-admins", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(inactive, nil)
		service := NewReportTemplateService(mockRepo)

		_, err := service.Get(context.Background(), internPrincipal(), 7)
		assert.ErrorIs(t, err, errors.ErrTemplateNotFound)
	})

	t.Run("inactive visible to admin", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(inactive, nil)
		service := NewReportTemplateService(mockRepo)

		template, err := service.Get(context.Background(), adminPrincipal(), 7)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), template.ID)
	})
}

func TestTemplateService_List(t *testing.T) {
	t.Run("admin lists all", func(t *testing.T) {
		mockRepo := new(MockTemplateRepository)
		mockRepo.On("List", mock.Anything).Return([]model.ReportTemplate{*templateInput()}, nil)
		service := NewReportTemplateService(mockRepo)

		templates, err := service.List(context.Background(), adminPrincipal())
		assert.NoError(t, err)
		assert.Len(t, templates, 1)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		service := NewReportTemplateService(new(MockTemplateRepository))

		_, err := service.List(context.Background(), internPrincipal())
		assert.ErrorIs(t, err, errors.ErrNotPermitted)
	})
}
