package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
)

func internPrincipal() auth.Principal {
	return auth.Principal{UserID: 42, Email: "amina@example.com", Role: model.RoleIntern, IsApproved: true}
}

func supervisorPrincipal() auth.Principal {
	return auth.Principal{UserID: 8, Email: "s.rahman@example.com", Role: model.RoleSupervisor, IsApproved: true}
}

func draftReport() *model.InternReport {
	return &model.InternReport{
		ID:                  3,
		Title:               "Week 4 report",
		PeriodLabel:         "2026-W04",
		InternID:            42,
		InternshipID:        10,
		Summary:             "Implemented the export endpoint.",
		ActivitiesCompleted: "Endpoint, tests, review feedback.",
		SelfRating:          4,
		HoursWorked:         38,
		Status:              model.ReportStatusDraft,
	}
}

func TestReportService_CreateDraft(t *testing.T) {
	tests := []struct {
		name       string
		principal  auth.Principal
		mutate     func(*model.InternReport)
		setupMock  func(*MockReportRepository, *MockInternshipRepository)
		checkError func(*testing.T, error)
	}{
		{
			name:      "successful draft",
			principal: internPrincipal(),
			mutate:    func(r *model.InternReport) {},
			setupMock: func(mReports *MockReportRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(&model.Internship{ID: 10}, nil)
				mReports.On("ExistsByPeriod", mock.Anything, uint(42), uint(10), "2026-W04").Return(false, nil)
				mReports.On("Create", mock.Anything, mock.AnythingOfType("*model.InternReport")).Return(nil)
			},
			checkError: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:      "supervisor cannot author reports",
			principal: supervisorPrincipal(),
			mutate:    func(r *model.InternReport) {},
			setupMock: func(mReports *MockReportRepository, mInternships *MockInternshipRepository) {},
			checkError: func(t *testing.T, err error) {
				assert.Equal(t, errors.ErrNotPermitted, err)
			},
		},
		{
			name:      "self rating out of range",
			principal: internPrincipal(),
			mutate:    func(r *model.InternReport) { r.SelfRating = 6 },
			setupMock: func(mReports *MockReportRepository, mInternships *MockInternshipRepository) {},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
		{
			name:      "duplicate period",
			principal: internPrincipal(),
			mutate:    func(r *model.InternReport) {},
			setupMock: func(mReports *MockReportRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(&model.Internship{ID: 10}, nil)
				mReports.On("ExistsByPeriod", mock.Anything, uint(42), uint(10), "2026-W04").Return(true, nil)
			},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReports := new(MockReportRepository)
			mockInternships := new(MockInternshipRepository)
			tt.setupMock(mockReports, mockInternships)

			service := NewReportService(mockReports, mockInternships, new(MockUserRepository), &capturingEmitter{})

			report := draftReport()
			report.ID = 0
			tt.mutate(report)
			created, err := service.CreateDraft(context.Background(), tt.principal, report)

			tt.checkError(t, err)
			if err == nil {
				assert.Equal(t, model.ReportStatusDraft, created.Status)
				assert.Equal(t, uint(42), created.InternID)
			}

			mockReports.AssertExpectations(t)
			mockInternships.AssertExpectations(t)
		})
	}
}

func TestReportService_UpdateDraft_Locked(t *testing.T) {
	mockReports := new(MockReportRepository)
	submitted := draftReport()
	submitted.Status = model.ReportStatusSubmitted
	mockReports.On("FindByID", mock.Anything, uint(3)).Return(submitted, nil)

	service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
	_, err := service.UpdateDraft(context.Background(), internPrincipal(), draftReport())

	assert.True(t, errors.IsPrecondition(err))
}

func TestReportService_UpdateDraft_OtherIntern(t *testing.T) {
	mockReports := new(MockReportRepository)
	other := draftReport()
	other.InternID = 99
	mockReports.On("FindByID", mock.Anything, uint(3)).Return(other, nil)

	service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
	_, err := service.UpdateDraft(context.Background(), internPrincipal(), draftReport())

	assert.Equal(t, errors.ErrNotPermitted, err)
}

func TestReportService_Delete(t *testing.T) {
	t.Run("draft can be deleted", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockReports.On("FindByID", mock.Anything, uint(3)).Return(draftReport(), nil)
		mockReports.On("Delete", mock.Anything, uint(3)).Return(nil)

		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
		assert.NoError(t, service.Delete(context.Background(), internPrincipal(), 3))
		mockReports.AssertExpectations(t)
	})

	t.Run("needs_revision cannot be deleted", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		revision := draftReport()
		revision.Status = model.ReportStatusNeedsRevision
		mockReports.On("FindByID", mock.Anything, uint(3)).Return(revision, nil)

		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
		err := service.Delete(context.Background(), internPrincipal(), 3)
		assert.True(t, errors.IsPrecondition(err))
	})
}

func TestReportService_Submit(t *testing.T) {
	t.Run("successful submit", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(draftReport(), nil)
		mockReports.On("Update", mock.Anything, mock.AnythingOfType("*model.InternReport")).Return(nil)

		emitter := &capturingEmitter{}
		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), emitter)

		submitted, err := service.Submit(context.Background(), internPrincipal(), 3)
		assert.NoError(t, err)
		assert.Equal(t, model.ReportStatusSubmitted, submitted.Status)
		assert.NotNil(t, submitted.SubmittedAt)
		assert.Len(t, emitter.emitted, 1)
		assert.Equal(t, model.EventReportSubmitted, emitter.emitted[0].Event)
	})

	t.Run("double submit fails", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		submitted := draftReport()
		submitted.Status = model.ReportStatusSubmitted
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(submitted, nil)

		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
		_, err := service.Submit(context.Background(), internPrincipal(), 3)
		assert.True(t, errors.IsPrecondition(err))
	})

	// Submitting outside {draft, needs_revision} is rejected, not silently
	// ignored, and the stored record is untouched.
	t.Run("submit from reviewed fails without mutation", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		reviewed := draftReport()
		reviewed.Status = model.ReportStatusReviewed
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(reviewed, nil)

		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
		_, err := service.Submit(context.Background(), internPrincipal(), 3)
		assert.True(t, errors.IsPrecondition(err))
		mockReports.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestReportService_CompleteReview(t *testing.T) {
	intern := &model.User{ID: 42, Email: "amina@example.com", Role: model.RoleIntern}

	t.Run("review submitted report", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockInternships := new(MockInternshipRepository)
		mockUsers := new(MockUserRepository)

		submitted := draftReport()
		submitted.Status = model.ReportStatusSubmitted
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(submitted, nil)
		mockInternships.On("IsAssignedTo", mock.Anything, uint(10), uint(8)).Return(true, nil)
		mockReports.On("Update", mock.Anything, mock.AnythingOfType("*model.InternReport")).Return(nil)
		mockUsers.On("FindByID", mock.Anything, uint(42)).Return(intern, nil)

		emitter := &capturingEmitter{}
		service := NewReportService(mockReports, mockInternships, mockUsers, emitter)

		reviewed, err := service.CompleteReview(context.Background(), supervisorPrincipal(), 3, "solid work", 4)
		assert.NoError(t, err)
		assert.Equal(t, model.ReportStatusReviewed, reviewed.Status)
		assert.Equal(t, "solid work", reviewed.SupervisorFeedback)
		assert.NotNil(t, reviewed.SupervisorRating)
		assert.Equal(t, uint(4), *reviewed.SupervisorRating)
		assert.NotNil(t, reviewed.ReviewedByID)
		assert.Equal(t, uint(8), *reviewed.ReviewedByID)
		assert.Len(t, emitter.emitted, 1)
		assert.Equal(t, model.EventReportReviewed, emitter.emitted[0].Event)
	})

	t.Run("unassigned supervisor rejected", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockInternships := new(MockInternshipRepository)

		submitted := draftReport()
		submitted.Status = model.ReportStatusSubmitted
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(submitted, nil)
		mockInternships.On("IsAssignedTo", mock.Anything, uint(10), uint(8)).Return(false, nil)

		service := NewReportService(mockReports, mockInternships, new(MockUserRepository), &capturingEmitter{})
		_, err := service.CompleteReview(context.Background(), supervisorPrincipal(), 3, "nope", 3)
		assert.Equal(t, errors.ErrNotPermitted, err)
	})

	t.Run("cannot review a draft", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockInternships := new(MockInternshipRepository)
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(draftReport(), nil)
		mockInternships.On("IsAssignedTo", mock.Anything, uint(10), uint(8)).Return(true, nil)

		service := NewReportService(mockReports, mockInternships, new(MockUserRepository), &capturingEmitter{})
		_, err := service.CompleteReview(context.Background(), supervisorPrincipal(), 3, "feedback", 3)
		assert.True(t, errors.IsPrecondition(err))
	})

	t.Run("rating out of range", func(t *testing.T) {
		service := NewReportService(new(MockReportRepository), new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
		_, err := service.CompleteReview(context.Background(), supervisorPrincipal(), 3, "feedback", 0)
		assert.True(t, errors.IsValidation(err))
	})
}

func TestReportService_RequestRevision(t *testing.T) {
	intern := &model.User{ID: 42, Email: "amina@example.com", Role: model.RoleIntern}

	t.Run("feedback required", func(t *testing.T) {
		service := NewReportService(new(MockReportRepository), new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})
		_, err := service.RequestRevision(context.Background(), supervisorPrincipal(), 3, "")
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("revision from under review", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockInternships := new(MockInternshipRepository)
		mockUsers := new(MockUserRepository)

		underReview := draftReport()
		underReview.Status = model.ReportStatusUnderReview
		mockReports.On("FindByIDForUpdate", mock.Anything, uint(3)).Return(underReview, nil)
		mockInternships.On("IsAssignedTo", mock.Anything, uint(10), uint(8)).Return(true, nil)
		mockReports.On("Update", mock.Anything, mock.AnythingOfType("*model.InternReport")).Return(nil)
		mockUsers.On("FindByID", mock.Anything, uint(42)).Return(intern, nil)

		emitter := &capturingEmitter{}
		service := NewReportService(mockReports, mockInternships, mockUsers, emitter)

		revised, err := service.RequestRevision(context.Background(), supervisorPrincipal(), 3, "expand the summary")
		assert.NoError(t, err)
		assert.Equal(t, model.ReportStatusNeedsRevision, revised.Status)
		assert.Equal(t, "expand the summary", revised.SupervisorFeedback)
		assert.Len(t, emitter.emitted, 1)
		assert.Equal(t, model.EventRevisionRequested, emitter.emitted[0].Event)
	})
}

func TestReportService_Get_Visibility(t *testing.T) {
	report := draftReport()

	t.Run("owner sees own report", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockReports.On("FindByID", mock.Anything, uint(3)).Return(report, nil)
		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})

		got, err := service.Get(context.Background(), internPrincipal(), 3)
		assert.NoError(t, err)
		assert.Equal(t, report, got)
	})

	t.Run("other intern denied", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockReports.On("FindByID", mock.Anything, uint(3)).Return(report, nil)
		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})

		other := auth.Principal{UserID: 99, Role: model.RoleIntern, IsApproved: true}
		_, err := service.Get(context.Background(), other, 3)
		assert.Equal(t, errors.ErrNotPermitted, err)
	})

	t.Run("assigned supervisor sees report", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockInternships := new(MockInternshipRepository)
		mockReports.On("FindByID", mock.Anything, uint(3)).Return(report, nil)
		mockInternships.On("IsAssignedTo", mock.Anything, uint(10), uint(8)).Return(true, nil)
		service := NewReportService(mockReports, mockInternships, new(MockUserRepository), &capturingEmitter{})

		got, err := service.Get(context.Background(), supervisorPrincipal(), 3)
		assert.NoError(t, err)
		assert.Equal(t, report, got)
	})

	t.Run("admin sees any report", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockReports.On("FindByID", mock.Anything, uint(3)).Return(report, nil)
		service := NewReportService(mockReports, new(MockInternshipRepository), new(MockUserRepository), &capturingEmitter{})

		got, err := service.Get(context.Background(), adminPrincipal(), 3)
		assert.NoError(t, err)
		assert.Equal(t, report, got)
	})
}

func TestReportService_ListForSupervisor(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockInternships := new(MockInternshipRepository)

	mockInternships.On("ListBySupervisor", mock.Anything, uint(8)).Return([]model.Internship{{ID: 10}, {ID: 11}}, nil)
	mockReports.On("ListByInternshipsAndStatus", mock.Anything, []uint{10, 11}, model.ReportStatusSubmitted).
		Return([]model.InternReport{*draftReport()}, nil)

	service := NewReportService(mockReports, mockInternships, new(MockUserRepository), &capturingEmitter{})
	reports, err := service.ListForSupervisor(context.Background(), supervisorPrincipal(), model.ReportStatusSubmitted)

	assert.NoError(t, err)
	assert.Len(t, reports, 1)
	mockReports.AssertExpectations(t)
	mockInternships.AssertExpectations(t)
}
