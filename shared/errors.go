package shared

import (
	"errors"
	"net/http"
)

// Progression engine sentinels. Services wrap these into an AppError before
// they cross the HTTP boundary; callers inside the engine match with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyRegistered = errors.New("already registered for challenge")
	ErrInvalidTransition = errors.New("invalid day transition")
	ErrStoreConflict     = errors.New("store write conflict")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// AppError carries the HTTP status a service-level failure should surface as.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, err error, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Err: err}
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(http.StatusBadRequest, err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return NewAppError(http.StatusUnauthorized, err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return NewAppError(http.StatusForbidden, err, message)
}

func NewNotFoundError(err error, message string) *AppError {
	return NewAppError(http.StatusNotFound, err, message)
}

func NewConflictError(err error, message string) *AppError {
	return NewAppError(http.StatusConflict, err, message)
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(http.StatusInternalServerError, err, message)
}

func NewUnavailableError(err error, message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, err, message)
}

// GetAppError unwraps err looking for an AppError.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ToAppError maps engine sentinels onto their HTTP representation. Errors
// that already carry an AppError pass through untouched.
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := GetAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(err, "Not Found")
	case errors.Is(err, ErrAlreadyRegistered):
		return NewConflictError(err, "Already registered")
	case errors.Is(err, ErrInvalidTransition):
		return NewBadRequestError(err, "Invalid day transition")
	case errors.Is(err, ErrStoreConflict):
		return NewUnavailableError(err, "Concurrent update, please retry")
	case errors.Is(err, ErrStoreUnavailable):
		return NewUnavailableError(err, "Storage unavailable")
	default:
		return NewInternalError(err, "Internal Server Error")
	}
}
