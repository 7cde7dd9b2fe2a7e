package auth

import "internhub/internal/model"

// Principal is the authenticated caller of a workflow operation. It is
// threaded explicitly into every service call; capability checks are pure
// functions of its role and approval flag, never of ambient state.
type Principal struct {
	UserID     uint
	Email      string
	Role       model.Role
	IsApproved bool
}

// CanAccessAdmin reports whether the principal may perform admin operations.
func (p Principal) CanAccessAdmin() bool {
	return p.Role == model.RoleAdmin && p.IsApproved
}

// CanSupervise reports whether the principal may review reports and author
// evaluations.
func (p Principal) CanSupervise() bool {
	return p.Role == model.RoleSupervisor && p.IsApproved
}

// CanSubmitReports reports whether the principal may author and submit
// reports.
func (p Principal) CanSubmitReports() bool {
	return p.Role == model.RoleIntern && p.IsApproved
}

// FromClaims builds a Principal from validated token claims.
func FromClaims(claims *Claims) Principal {
	return Principal{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Role:       model.Role(claims.Role),
		IsApproved: claims.IsApproved,
	}
}
