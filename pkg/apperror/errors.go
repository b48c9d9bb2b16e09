package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error kinds. Handlers map every error to an HTTP envelope, but
// services and callers branch on Kind, never on message text.
const (
	KindInvalidStateTransition = "invalid_state_transition"
	KindSourceNotFound         = "source_not_found"
	KindDataIntegrity          = "data_integrity_violation"
	KindNoLinesProduced        = "no_lines_produced"
	KindReversalInconsistency  = "reversal_inconsistency"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}

	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewInvalidTransitionError reports a ticket status change that is not
// permitted from the ticket's current state. The ticket is left untouched.
func NewInvalidTransitionError(ticketID int64, from, to fmt.Stringer) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInvalidStateTransition,
		Message: fmt.Sprintf("ticket %d: transition %s -> %s is not allowed", ticketID, from, to),
	}
}

// NewSourceNotFoundError reports a referenced ticket/client/company that
// does not exist.
func NewSourceNotFoundError(resource string, id int64) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindSourceNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
	}
}

// NewDataIntegrityError reports a fetched row whose parent reference does
// not match the requested one.
func NewDataIntegrityError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindDataIntegrity,
		Message: message,
	}
}

// NewNoLinesProducedError reports a consolidation that resolved zero lines.
func NewNoLinesProducedError() *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindNoLinesProduced,
		Message: "consolidation produced no document lines",
	}
}

// NewReversalInconsistencyError reports a document whose task or tickets no
// longer exist in the expected shape at reversal time.
func NewReversalInconsistencyError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindReversalInconsistency,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
