package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInternshipNotFound is returned when an internship posting is not found.
	ErrInternshipNotFound = errors.New("internship not found")
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrReportNotFound is returned when a report is not found.
	ErrReportNotFound = errors.New("report not found")
	// ErrEvaluationNotFound is returned when an evaluation is not found.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrTemplateNotFound is returned when a report template is not found.
	ErrTemplateNotFound = errors.New("report template not found")
	// ErrNotPermitted is returned when the caller lacks the capability for an
	// operation or the target entity is outside the caller's scope. It carries
	// no detail about the target entity.
	ErrNotPermitted = errors.New("not permitted")
)

// ValidationError signals malformed or missing input: duplicate application,
// bad date ordering, oversized file. Surfaced to the caller, never swallowed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError.
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// PreconditionError signals a wrong-state transition attempt. The record is
// left exactly as it was before the call.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// NewPrecondition creates a PreconditionError.
func NewPrecondition(message string) error {
	return &PreconditionError{Message: message}
}

// ConflictError signals a uniqueness violation detected at the storage layer.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict creates a ConflictError.
func NewConflict(message string) error {
	return &ConflictError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotPermitted):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PERMITTED")
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInternshipNotFound),
		errors.Is(err, ErrApplicationNotFound),
		errors.Is(err, ErrReportNotFound),
		errors.Is(err, ErrEvaluationNotFound),
		errors.Is(err, ErrTemplateNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case IsValidation(err):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case IsPrecondition(err):
		return NewHTTPError(http.StatusConflict, err.Error(), "PRECONDITION_FAILED")
	case IsConflict(err):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
