package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"internhub/internal/model"
	"internhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SaveProfile(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) FindProfileByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockInternshipRepository is a mock implementation of InternshipRepository.
type MockInternshipRepository struct {
	mock.Mock
}

func (m *MockInternshipRepository) Create(ctx context.Context, internship *model.Internship) error {
	args := m.Called(ctx, internship)
	return args.Error(0)
}

func (m *MockInternshipRepository) Update(ctx context.Context, internship *model.Internship) error {
	args := m.Called(ctx, internship)
	return args.Error(0)
}

func (m *MockInternshipRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInternshipRepository) FindByID(ctx context.Context, id uint) (*model.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) List(ctx context.Context) ([]model.Internship, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) ListActive(ctx context.Context) ([]model.Internship, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) ListFeatured(ctx context.Context) ([]model.Internship, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) ListBySupervisor(ctx context.Context, supervisorID uint) ([]model.Internship, error) {
	args := m.Called(ctx, supervisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) IsAssignedTo(ctx context.Context, internshipID, supervisorID uint) (bool, error) {
	args := m.Called(ctx, internshipID, supervisorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInternshipRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInternshipRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockApplicationRepository is a mock implementation of ApplicationRepository.
// WithTransaction runs the callback against the mock itself so transition
// logic is exercised without a database.
type MockApplicationRepository struct {
	mock.Mock
	users repository.UserRepository
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *model.InternshipApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) Update(ctx context.Context, application *model.InternshipApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uint) (*model.InternshipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.InternshipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) ExistsByEmailAndInternship(ctx context.Context, email string, internshipID uint) (bool, error) {
	args := m.Called(ctx, email, internshipID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context) ([]model.InternshipApplication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.InternshipApplication, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByInternship(ctx context.Context, internshipID uint) ([]model.InternshipApplication, error) {
	args := m.Called(ctx, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) CountByInternship(ctx context.Context, internshipID uint) (int64, error) {
	args := m.Called(ctx, internshipID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CountByInternshipAndStatus(ctx context.Context, internshipID uint, status model.ApplicationStatus) (int64, error) {
	args := m.Called(ctx, internshipID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, status model.ApplicationStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ApplicationRepository) error) error {
	return fn(ctx, m)
}

func (m *MockApplicationRepository) Users() repository.UserRepository {
	return m.users
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *model.InternReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Update(ctx context.Context, report *model.InternReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uint) (*model.InternReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternReport), args.Error(1)
}

func (m *MockReportRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.InternReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternReport), args.Error(1)
}

func (m *MockReportRepository) ExistsByPeriod(ctx context.Context, internID, internshipID uint, periodLabel string) (bool, error) {
	args := m.Called(ctx, internID, internshipID, periodLabel)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportRepository) ListByIntern(ctx context.Context, internID uint) ([]model.InternReport, error) {
	args := m.Called(ctx, internID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternReport), args.Error(1)
}

func (m *MockReportRepository) ListByInternships(ctx context.Context, internshipIDs []uint) ([]model.InternReport, error) {
	args := m.Called(ctx, internshipIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternReport), args.Error(1)
}

func (m *MockReportRepository) ListByInternshipsAndStatus(ctx context.Context, internshipIDs []uint, status model.ReportStatus) ([]model.InternReport, error) {
	args := m.Called(ctx, internshipIDs, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternReport), args.Error(1)
}

func (m *MockReportRepository) CountByStatus(ctx context.Context, status model.ReportStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountByInternAndStatus(ctx context.Context, internID uint, status model.ReportStatus) (int64, error) {
	args := m.Called(ctx, internID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ReportRepository) error) error {
	return fn(ctx, m)
}

// MockEvaluationRepository is a mock implementation of EvaluationRepository.
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) Create(ctx context.Context, evaluation *model.Evaluation) error {
	args := m.Called(ctx, evaluation)
	return args.Error(0)
}

func (m *MockEvaluationRepository) Update(ctx context.Context, evaluation *model.Evaluation) error {
	args := m.Called(ctx, evaluation)
	return args.Error(0)
}

func (m *MockEvaluationRepository) FindByID(ctx context.Context, id uint) (*model.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) ExistsByPeriod(ctx context.Context, internID, internshipID uint, periodType model.EvaluationPeriod, periodLabel string) (bool, error) {
	args := m.Called(ctx, internID, internshipID, periodType, periodLabel)
	return args.Bool(0), args.Error(1)
}

func (m *MockEvaluationRepository) ListByIntern(ctx context.Context, internID uint) ([]model.Evaluation, error) {
	args := m.Called(ctx, internID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) ListBySupervisor(ctx context.Context, supervisorID uint) ([]model.Evaluation, error) {
	args := m.Called(ctx, supervisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) CountBySupervisor(ctx context.Context, supervisorID uint) (int64, error) {
	args := m.Called(ctx, supervisorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEvaluationRepository) CountByIntern(ctx context.Context, internID uint) (int64, error) {
	args := m.Called(ctx, internID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSkillRepository is a mock implementation of SkillRepository.
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) CreateSkill(ctx context.Context, skill *model.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) FindSkillByID(ctx context.Context, id uint) (*model.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Skill), args.Error(1)
}

func (m *MockSkillRepository) ListSkills(ctx context.Context) ([]model.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Skill), args.Error(1)
}

func (m *MockSkillRepository) ReplaceRequirements(ctx context.Context, internshipID uint, requirements []model.SkillRequirement) error {
	args := m.Called(ctx, internshipID, requirements)
	return args.Error(0)
}

func (m *MockSkillRepository) ListRequirements(ctx context.Context, internshipID uint) ([]model.SkillRequirement, error) {
	args := m.Called(ctx, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SkillRequirement), args.Error(1)
}

// MockTemplateRepository is a mock implementation of ReportTemplateRepository.
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *model.ReportTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *model.ReportTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uint) (*model.ReportTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportTemplate), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]model.ReportTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListActive(ctx context.Context) ([]model.ReportTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ClearDefault(ctx context.Context, exceptID uint) error {
	args := m.Called(ctx, exceptID)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// capturingEmitter records emitted notifications for assertions.
type capturingEmitter struct {
	emitted []model.Notification
}

func (e *capturingEmitter) Emit(_ context.Context, notification model.Notification) {
	e.emitted = append(e.emitted, notification)
}
