/*
Package errors - Typed Errors for the SICOSS Pipeline

==============================================================================
FILE: internal/errors/errors.go
==============================================================================

DESCRIPTION:
    Provides typed error definitions for consistent error handling across the
    application. Replaces string-based error checking with type assertions,
    making error handling more robust and maintainable.

USAGE:
    // In a stage:
    return errors.Wrap(err, errors.ErrExtractionFailed)

    // In the API layer:
    if errors.Is(err, errors.ErrInvariantViolation) {
        c.JSON(http.StatusUnprocessableEntity, ...)
    }

==============================================================================
*/
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// AppError represents an application-level error with HTTP status code.
type AppError struct {
	Code       string // Machine-readable error code
	Message    string // Human-readable message
	HTTPStatus int    // HTTP status code for API responses
	Err        error  // Underlying error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is().
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, status int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// Wrap wraps an underlying error with an AppError.
func Wrap(err error, appErr *AppError) *AppError {
	return &AppError{
		Code:       appErr.Code,
		Message:    appErr.Message,
		HTTPStatus: appErr.HTTPStatus,
		Err:        err,
	}
}

// WithMessage creates a copy of the error with a custom message.
func (e *AppError) WithMessage(msg string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    msg,
		HTTPStatus: e.HTTPStatus,
		Err:        e.Err,
	}
}

// ============================================================================
// SICOSS error taxonomy (spec.md §7)
// ============================================================================

var (
	// ErrInvalidConfig: caps negative, unknown differential class set.
	// Fatal pre-flight.
	ErrInvalidConfig = NewAppError(
		"SICOSS_INVALID_CONFIG",
		"invalid SICOSS configuration",
		http.StatusBadRequest,
	)

	// ErrExtractionFailed: DB unavailable or query error. Retried (3x,
	// exponential backoff) by the extractor before surfacing.
	ErrExtractionFailed = NewAppError(
		"SICOSS_EXTRACTION_FAILED",
		"failed to extract source data",
		http.StatusInternalServerError,
	)

	// ErrConsolidationIncomplete: post-aggregation a required column is
	// missing. Fatal run; no partial persistence.
	ErrConsolidationIncomplete = NewAppError(
		"SICOSS_CONSOLIDATION_INCOMPLETE",
		"consolidation produced an incomplete row",
		http.StatusUnprocessableEntity,
	)

	// ErrInvariantViolation: any of I1-I7 fails after a stage. Fatal run.
	ErrInvariantViolation = NewAppError(
		"SICOSS_INVARIANT_VIOLATION",
		"invariant check failed",
		http.StatusUnprocessableEntity,
	)

	// ErrPersistenceFailed: bulk insert rollback on constraint violation.
	ErrPersistenceFailed = NewAppError(
		"SICOSS_PERSISTENCE_FAILED",
		"failed to persist output rows",
		http.StatusInternalServerError,
	)

	// ErrCancelled: cooperative cancel. Not an API-level error; the facade
	// reports success=false, reason=cancelled instead of this HTTP status.
	ErrCancelled = NewAppError(
		"SICOSS_CANCELLED",
		"run was cancelled",
		http.StatusOK,
	)

	// ErrPeriodBusy: an advisory lock on the fiscal period is already held
	// by another run (§6.3's supplemented 409 Conflict).
	ErrPeriodBusy = NewAppError(
		"SICOSS_PERIOD_BUSY",
		"a run is already in progress for this period",
		http.StatusConflict,
	)

	// ErrInvalidRequest: malformed ProcessRequest payload.
	ErrInvalidRequest = NewAppError(
		"SICOSS_INVALID_REQUEST",
		"invalid request",
		http.StatusBadRequest,
	)
)

// ============================================================================
// Helper Functions
// ============================================================================

// GetHTTPStatus returns the HTTP status code for an error.
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// GetErrorCode returns the error code for an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// GetErrorMessage returns the user-friendly message for an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
