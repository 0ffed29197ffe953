package common

import "errors"

// AppError represents an expected failure with an envelope status and HTTP code.
type AppError struct {
	Status     Status
	Message    string
	HTTPStatus int
	Err        error
	Errors     []string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Status.Describe()
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(status Status, message string, httpStatus int, err error) *AppError {
	return &AppError{Status: status, Message: message, HTTPStatus: httpStatus, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
