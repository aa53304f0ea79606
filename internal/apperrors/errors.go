package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidTransition indicates a state-machine operation attempted from a state that does not permit it.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrStore indicates that the record store or receipt store failed.
var ErrStore = errors.New("store error")

// ErrConflict indicates a concurrent modification or an already existing resource.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the actor may not perform the requested operation.
var ErrForbidden = errors.New("forbidden")

// AppError carries a status code and message alongside the error category it wraps.
type AppError struct {
	Code    int
	Message string
	Err     error
	kind    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the category sentinel and the underlying cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError without a category; the code alone classifies it.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError reports a missing or invalid required field.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, kind: ErrValidation}
}

// NewInvalidTransitionError reports an operation attempted from a disallowed status.
func NewInvalidTransitionError(from, operation string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("cannot %s from status %s", operation, from),
		kind:    ErrInvalidTransition,
	}
}

// NewStoreError wraps a record/receipt store failure.
func NewStoreError(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message, Err: err, kind: ErrStore}
}

// NewConflictError reports a version mismatch or duplicate resource.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, kind: ErrConflict}
}

// NewNotFoundError reports a missing identifier.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, kind: ErrNotFound}
}

// NewForbiddenError reports an actor lacking the role for an operation.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, kind: ErrForbidden}
}

// HTTPStatus maps an error onto the status code a handler should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrStore):
		return http.StatusBadGateway
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
