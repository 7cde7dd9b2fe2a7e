package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/errors"
	"internhub/internal/model"
)

func adminPrincipal() auth.Principal {
	return auth.Principal{UserID: 1, Email: "admin@example.com", Role: model.RoleAdmin, IsApproved: true}
}

func openInternship() *model.Internship {
	return &model.Internship{
		ID:                  10,
		Title:               "Backend Engineering Intern",
		IsActive:            true,
		ApplicationDeadline: time.Now().Add(30 * 24 * time.Hour),
		MaxApplicants:       50,
	}
}

func pendingApplication() *model.InternshipApplication {
	return &model.InternshipApplication{
		ID:           5,
		FirstName:    "Amina",
		LastName:     "Diallo",
		Email:        "amina@example.com",
		Phone:        "+123456",
		Address:      "1 Main St",
		City:         "Dakar",
		Country:      "Senegal",
		InternshipID: 10,
		Status:       model.ApplicationStatusPending,
	}
}

func TestApplicationService_Submit(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*MockApplicationRepository, *MockInternshipRepository)
		cv         FileReference
		checkError func(*testing.T, error)
	}{
		{
			name: "successful submission",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(openInternship(), nil)
				mApps.On("CountByInternship", mock.Anything, uint(10)).Return(int64(3), nil)
				mApps.On("ExistsByEmailAndInternship", mock.Anything, "amina@example.com", uint(10)).Return(false, nil)
				mApps.On("Create", mock.Anything, mock.AnythingOfType("*model.InternshipApplication")).Return(nil)
			},
			cv: FileReference{Name: "cv.pdf", Size: 1024},
			checkError: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "internship not found",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			cv: FileReference{Name: "cv.pdf", Size: 1024},
			checkError: func(t *testing.T, err error) {
				assert.Equal(t, errors.ErrInternshipNotFound, err)
			},
		},
		{
			name: "deadline passed",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				closed := openInternship()
				closed.ApplicationDeadline = time.Now().Add(-24 * time.Hour)
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(closed, nil)
			},
			cv: FileReference{Name: "cv.pdf", Size: 1024},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
		{
			name: "inactive posting",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				inactive := openInternship()
				inactive.IsActive = false
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(inactive, nil)
			},
			cv: FileReference{Name: "cv.pdf", Size: 1024},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
		{
			name: "applicant limit reached",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(openInternship(), nil)
				mApps.On("CountByInternship", mock.Anything, uint(10)).Return(int64(50), nil)
			},
			cv: FileReference{Name: "cv.pdf", Size: 1024},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
		{
			name: "oversized resume",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(openInternship(), nil)
				mApps.On("CountByInternship", mock.Anything, uint(10)).Return(int64(0), nil)
			},
			cv: FileReference{Name: "cv.pdf", Size: MaxResumeSize + 1},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
		{
			name: "duplicate application",
			setupMock: func(mApps *MockApplicationRepository, mInternships *MockInternshipRepository) {
				mInternships.On("FindByID", mock.Anything, uint(10)).Return(openInternship(), nil)
				mApps.On("CountByInternship", mock.Anything, uint(10)).Return(int64(3), nil)
				mApps.On("ExistsByEmailAndInternship", mock.Anything, "amina@example.com", uint(10)).Return(true, nil)
			},
			cv: FileReference{Name: "cv.pdf", Size: 1024},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockApps := new(MockApplicationRepository)
			mockInternships := new(MockInternshipRepository)
			tt.setupMock(mockApps, mockInternships)

			emitter := &capturingEmitter{}
			service := NewApplicationService(mockApps, mockInternships, emitter, "intern2024")

			application := pendingApplication()
			application.ID = 0
			created, err := service.Submit(context.Background(), application, tt.cv, nil, nil)

			tt.checkError(t, err)
			if err == nil {
				assert.NotNil(t, created)
				assert.Equal(t, model.ApplicationStatusPending, created.Status)
				assert.Equal(t, "cv.pdf", created.CVResume)
				assert.Len(t, emitter.emitted, 1)
				assert.Equal(t, model.EventApplicationSubmitted, emitter.emitted[0].Event)
			}

			mockApps.AssertExpectations(t)
			mockInternships.AssertExpectations(t)
		})
	}
}

func TestApplicationService_Submit_TranscriptMustBePDF(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockInternships := new(MockInternshipRepository)
	mockInternships.On("FindByID", mock.Anything, uint(10)).Return(openInternship(), nil)
	mockApps.On("CountByInternship", mock.Anything, uint(10)).Return(int64(0), nil)

	service := NewApplicationService(mockApps, mockInternships, &capturingEmitter{}, "intern2024")

	_, err := service.Submit(context.Background(), pendingApplication(),
		FileReference{Name: "cv.pdf", Size: 1024},
		nil,
		&FileReference{Name: "transcript.docx", Size: 1024})

	assert.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestApplicationService_Approve(t *testing.T) {
	tests := []struct {
		name       string
		principal  auth.Principal
		setupMock  func(*MockApplicationRepository)
		checkError func(*testing.T, error)
	}{
		{
			name:      "successful approval",
			principal: adminPrincipal(),
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(pendingApplication(), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.InternshipApplication")).Return(nil)
			},
			checkError: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:      "non-admin rejected",
			principal: auth.Principal{UserID: 2, Role: model.RoleSupervisor, IsApproved: true},
			setupMock: func(m *MockApplicationRepository) {},
			checkError: func(t *testing.T, err error) {
				assert.Equal(t, errors.ErrNotPermitted, err)
			},
		},
		{
			name:      "already approved",
			principal: adminPrincipal(),
			setupMock: func(m *MockApplicationRepository) {
				approved := pendingApplication()
				approved.Status = model.ApplicationStatusApproved
				m.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(approved, nil)
			},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.IsPrecondition(err))
			},
		},
		{
			name:      "not found",
			principal: adminPrincipal(),
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			checkError: func(t *testing.T, err error) {
				assert.Equal(t, errors.ErrApplicationNotFound, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockApps := new(MockApplicationRepository)
			tt.setupMock(mockApps)

			service := NewApplicationService(mockApps, new(MockInternshipRepository), &capturingEmitter{}, "intern2024")
			reviewed, err := service.Approve(context.Background(), tt.principal, 5, "looks good")

			tt.checkError(t, err)
			if err == nil {
				assert.Equal(t, model.ApplicationStatusApproved, reviewed.Status)
				assert.NotNil(t, reviewed.ReviewedByID)
				assert.Equal(t, tt.principal.UserID, *reviewed.ReviewedByID)
				assert.NotNil(t, reviewed.ReviewDate)
				assert.Equal(t, "looks good", reviewed.ReviewNotes)
			}

			mockApps.AssertExpectations(t)
		})
	}
}

func TestApplicationService_Reject_Terminal(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	rejected := pendingApplication()
	rejected.Status = model.ApplicationStatusRejected
	mockApps.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(rejected, nil)

	service := NewApplicationService(mockApps, new(MockInternshipRepository), &capturingEmitter{}, "intern2024")

	// A rejected application is terminal; neither approve nor reject may fire.
	_, err := service.Approve(context.Background(), adminPrincipal(), 5, "")
	assert.True(t, errors.IsPrecondition(err))
	_, err = service.Reject(context.Background(), adminPrincipal(), 5, "")
	assert.True(t, errors.IsPrecondition(err))
}

func TestApplicationService_CreateInternAccount(t *testing.T) {
	t.Run("successful provisioning", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockApps := &MockApplicationRepository{users: mockUsers}

		approved := pendingApplication()
		approved.Status = model.ApplicationStatusApproved
		approved.Institution = "Dakar University"
		mockApps.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(approved, nil)
		mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 42
		}).Return(nil)
		mockApps.On("Update", mock.Anything, mock.AnythingOfType("*model.InternshipApplication")).Return(nil)

		emitter := &capturingEmitter{}
		service := NewApplicationService(mockApps, new(MockInternshipRepository), emitter, "intern2024")

		intern, err := service.CreateInternAccount(context.Background(), adminPrincipal(), 5, "")

		assert.NoError(t, err)
		assert.NotNil(t, intern)
		assert.Equal(t, "amina", intern.Username)
		assert.Equal(t, "amina@example.com", intern.Email)
		assert.Equal(t, model.RoleIntern, intern.Role)
		assert.True(t, intern.IsApproved, "provisioned accounts are pre-approved")
		assert.NotEmpty(t, intern.PasswordHash)
		assert.NotNil(t, intern.Profile)
		assert.Equal(t, "Dakar University", intern.Profile.Institution)

		assert.Equal(t, model.ApplicationStatusInternCreated, approved.Status)
		assert.NotNil(t, approved.CreatedInternID)
		assert.Equal(t, uint(42), *approved.CreatedInternID)

		assert.Len(t, emitter.emitted, 1)
		assert.Equal(t, model.EventInternAccountCreated, emitter.emitted[0].Event)

		mockApps.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("second provisioning fails", func(t *testing.T) {
		mockApps := &MockApplicationRepository{users: new(MockUserRepository)}
		internID := uint(42)
		done := pendingApplication()
		done.Status = model.ApplicationStatusInternCreated
		done.CreatedInternID = &internID
		mockApps.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(done, nil)

		service := NewApplicationService(mockApps, new(MockInternshipRepository), &capturingEmitter{}, "intern2024")
		_, err := service.CreateInternAccount(context.Background(), adminPrincipal(), 5, "")

		assert.True(t, errors.IsPrecondition(err))
	})

	t.Run("pending application cannot be provisioned", func(t *testing.T) {
		mockApps := &MockApplicationRepository{users: new(MockUserRepository)}
		mockApps.On("FindByIDForUpdate", mock.Anything, uint(5)).Return(pendingApplication(), nil)

		service := NewApplicationService(mockApps, new(MockInternshipRepository), &capturingEmitter{}, "intern2024")
		_, err := service.CreateInternAccount(context.Background(), adminPrincipal(), 5, "")

		assert.True(t, errors.IsPrecondition(err))
	})
}
