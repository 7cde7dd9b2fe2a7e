package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"internhub/internal/auth"
	"internhub/internal/cache"
	"internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/repository"
)

const dashboardCacheTTL = time.Minute

// AdminStats is the system overview for the admin dashboard.
type AdminStats struct {
	Applications struct {
		Total         int64 `json:"total"`
		Pending       int64 `json:"pending"`
		Approved      int64 `json:"approved"`
		Rejected      int64 `json:"rejected"`
		InternCreated int64 `json:"intern_created"`
	} `json:"applications"`
	Users struct {
		Admins          int64 `json:"admins"`
		Supervisors     int64 `json:"supervisors"`
		Interns         int64 `json:"interns"`
		PendingApproval int64 `json:"pending_approval"`
	} `json:"users"`
	Internships struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"internships"`
	Reports struct {
		Total       int64 `json:"total"`
		Submitted   int64 `json:"submitted"`
		UnderReview int64 `json:"under_review"`
		Reviewed    int64 `json:"reviewed"`
	} `json:"reports"`
}

// SupervisorStats summarizes a supervisor's workload.
type SupervisorStats struct {
	AssignedInternships int   `json:"assigned_internships"`
	PendingReviews      int   `json:"pending_reviews"`
	EvaluationsAuthored int64 `json:"evaluations_authored"`
}

// InternStats summarizes an intern's own activity.
type InternStats struct {
	Reports struct {
		Total         int64 `json:"total"`
		Draft         int64 `json:"draft"`
		Submitted     int64 `json:"submitted"`
		UnderReview   int64 `json:"under_review"`
		Reviewed      int64 `json:"reviewed"`
		NeedsRevision int64 `json:"needs_revision"`
	} `json:"reports"`
	EvaluationsReceived int64 `json:"evaluations_received"`
}

// DashboardService aggregates role-specific statistics.
type DashboardService interface {
	AdminStats(ctx context.Context, principal auth.Principal) (*AdminStats, error)
	SupervisorStats(ctx context.Context, principal auth.Principal) (*SupervisorStats, error)
	InternStats(ctx context.Context, principal auth.Principal) (*InternStats, error)
}

type dashboardService struct {
	userRepo        repository.UserRepository
	internshipRepo  repository.InternshipRepository
	applicationRepo repository.ApplicationRepository
	reportRepo      repository.ReportRepository
	evaluationRepo  repository.EvaluationRepository
	cache           *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	userRepo repository.UserRepository,
	internshipRepo repository.InternshipRepository,
	applicationRepo repository.ApplicationRepository,
	reportRepo repository.ReportRepository,
	evaluationRepo repository.EvaluationRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		userRepo:        userRepo,
		internshipRepo:  internshipRepo,
		applicationRepo: applicationRepo,
		reportRepo:      reportRepo,
		evaluationRepo:  evaluationRepo,
		cache:           cache,
	}
}

// AdminStats builds the admin dashboard counters, cached briefly.
func (s *dashboardService) AdminStats(ctx context.Context, principal auth.Principal) (*AdminStats, error) {
	if !principal.CanAccessAdmin() {
		return nil, errors.ErrNotPermitted
	}

	const key = "dashboard:admin"
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached AdminStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats AdminStats
	var err error

	if stats.Applications.Total, err = s.applicationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Applications.Pending, err = s.applicationRepo.CountByStatus(ctx, model.ApplicationStatusPending); err != nil {
		return nil, err
	}
	if stats.Applications.Approved, err = s.applicationRepo.CountByStatus(ctx, model.ApplicationStatusApproved); err != nil {
		return nil, err
	}
	if stats.Applications.Rejected, err = s.applicationRepo.CountByStatus(ctx, model.ApplicationStatusRejected); err != nil {
		return nil, err
	}
	if stats.Applications.InternCreated, err = s.applicationRepo.CountByStatus(ctx, model.ApplicationStatusInternCreated); err != nil {
		return nil, err
	}

	if stats.Users.Admins, err = s.userRepo.CountByRole(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.Users.Supervisors, err = s.userRepo.CountByRole(ctx, model.RoleSupervisor); err != nil {
		return nil, err
	}
	if stats.Users.Interns, err = s.userRepo.CountByRole(ctx, model.RoleIntern); err != nil {
		return nil, err
	}
	if stats.Users.PendingApproval, err = s.userRepo.CountPendingApproval(ctx); err != nil {
		return nil, err
	}

	if stats.Internships.Total, err = s.internshipRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Internships.Active, err = s.internshipRepo.CountActive(ctx); err != nil {
		return nil, err
	}

	if stats.Reports.Total, err = s.reportRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Reports.Submitted, err = s.reportRepo.CountByStatus(ctx, model.ReportStatusSubmitted); err != nil {
		return nil, err
	}
	if stats.Reports.UnderReview, err = s.reportRepo.CountByStatus(ctx, model.ReportStatusUnderReview); err != nil {
		return nil, err
	}
	if stats.Reports.Reviewed, err = s.reportRepo.CountByStatus(ctx, model.ReportStatusReviewed); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(&stats); err == nil {
		_ = s.cache.Set(ctx, key, payload, dashboardCacheTTL)
	}
	return &stats, nil
}

// SupervisorStats builds the supervisor dashboard counters.
func (s *dashboardService) SupervisorStats(ctx context.Context, principal auth.Principal) (*SupervisorStats, error) {
	if !principal.CanSupervise() {
		return nil, errors.ErrNotPermitted
	}

	key := fmt.Sprintf("dashboard:supervisor:%d", principal.UserID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached SupervisorStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	internships, err := s.internshipRepo.ListBySupervisor(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(internships))
	for _, internship := range internships {
		ids = append(ids, internship.ID)
	}

	pending, err := s.reportRepo.ListByInternshipsAndStatus(ctx, ids, model.ReportStatusSubmitted)
	if err != nil {
		return nil, err
	}
	authored, err := s.evaluationRepo.CountBySupervisor(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	stats := &SupervisorStats{
		AssignedInternships: len(internships),
		PendingReviews:      len(pending),
		EvaluationsAuthored: authored,
	}
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, key, payload, dashboardCacheTTL)
	}
	return stats, nil
}

// InternStats builds the intern dashboard counters.
func (s *dashboardService) InternStats(ctx context.Context, principal auth.Principal) (*InternStats, error) {
	if !principal.CanSubmitReports() {
		return nil, errors.ErrNotPermitted
	}

	key := fmt.Sprintf("dashboard:intern:%d", principal.UserID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached InternStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats InternStats
	var err error
	for status, target := range map[model.ReportStatus]*int64{
		model.ReportStatusDraft:         &stats.Reports.Draft,
		model.ReportStatusSubmitted:     &stats.Reports.Submitted,
		model.ReportStatusUnderReview:   &stats.Reports.UnderReview,
		model.ReportStatusReviewed:      &stats.Reports.Reviewed,
		model.ReportStatusNeedsRevision: &stats.Reports.NeedsRevision,
	} {
		if *target, err = s.reportRepo.CountByInternAndStatus(ctx, principal.UserID, status); err != nil {
			return nil, err
		}
		stats.Reports.Total += *target
	}
	if stats.EvaluationsReceived, err = s.evaluationRepo.CountByIntern(ctx, principal.UserID); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(&stats); err == nil {
		_ = s.cache.Set(ctx, key, payload, dashboardCacheTTL)
	}
	return &stats, nil
}
