package errors

import (
	stderrors "errors"
)

// Envelope is the error document the payment service returns.
// It is the same shape the envelope parser recognizes with status=error.
type Envelope struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ToEnvelope converts an AppError into the service's error envelope.
func (e *AppError) ToEnvelope() Envelope {
	return Envelope{
		Status:  "error",
		Code:    e.Code,
		Message: e.Message,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
