package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified client error type.
type AppError struct {
	// Op is the operation class the error crossed. Empty for base errors.
	Op Operation `json:"operation,omitempty"`
	// Kind is the base failure kind.
	Kind Kind `json:"kind"`
	// Code is the upstream error code returned by the service, if any.
	Code string `json:"code,omitempty"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if repeating the call may succeed.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status of the response that carried the error, 0 if none.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	tag := string(e.Kind)
	if e.Op != OpNone {
		tag = string(e.Op)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s [%s]: %s", tag, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", tag, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// HasCode reports whether the service supplied an error code.
func (e *AppError) HasCode() bool { return e.Code != "" }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithStatus records the HTTP status of the carrying response.
func (e *AppError) WithStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// WithRetryable overrides the retry advice implied by the kind.
func (e *AppError) WithRetryable(retryable bool) *AppError {
	e.Retryable = retryable
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a base error of the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:      kind,
		Message:   message,
		Retryable: IsRetryableKind(kind),
	}
}

// --- Base error constructors ---

// Transport creates a base error for a request that never produced a response body.
func Transport(method string, cause error) *AppError {
	return New(KindTransport, fmt.Sprintf("Error: %s failed: %v", method, cause)).
		WithCause(cause).
		WithDetail("method", method)
}

// Malformed creates a base error for a body that could not be read as an envelope.
func Malformed(message string, cause error) *AppError {
	return New(KindMalformed, message).WithCause(cause)
}

// Service creates a base error from an error envelope. code may be empty.
func Service(code, message string) *AppError {
	e := New(KindService, message)
	e.Code = code
	return e
}

// Serialization creates a base error for a local value that could not be encoded or decoded.
func Serialization(what string, cause error) *AppError {
	return New(KindSerialization, fmt.Sprintf("failed to serialize %s: %v", what, cause)).
		WithCause(cause).
		WithDetail("resource", what)
}

// Deserialization creates a base error for a payload that does not fit the expected shape.
func Deserialization(what string, cause error) *AppError {
	return New(KindSerialization, fmt.Sprintf("failed to deserialize server response (%s): %v", what, cause)).
		WithCause(cause).
		WithDetail("resource", what)
}

// Scope re-wraps err into the error of operation class op.
// Kind, Code, Message and HTTPStatus are preserved and the result unwraps to
// the base error. An error already scoped is returned unchanged, so wrapping
// happens exactly once. A nil err yields nil.
func Scope(op Operation, err error) error {
	if err == nil {
		return nil
	}
	base, ok := AsAppError(err)
	if !ok {
		base = New(KindTransport, err.Error()).WithCause(err)
	}
	if base.Op != OpNone {
		return base
	}
	return &AppError{
		Op:         op,
		Kind:       base.Kind,
		Code:       base.Code,
		Message:    base.Message,
		Retryable:  base.Retryable,
		HTTPStatus: base.HTTPStatus,
		Details:    base.Details,
		Cause:      base,
	}
}

// --- Classification helpers ---

// KindOf returns the base kind of err, or "" if err is not an AppError.
func KindOf(err error) Kind {
	if e, ok := AsAppError(err); ok {
		return e.Kind
	}
	return ""
}

// OperationOf returns the operation class of err, or OpNone.
func OperationOf(err error) Operation {
	if e, ok := AsAppError(err); ok {
		return e.Op
	}
	return OpNone
}

// IsConnection checks if err is a session setup failure.
func IsConnection(err error) bool { return OperationOf(err) == OpConnection }

// IsCreation checks if err is a resource creation failure.
func IsCreation(err error) bool { return OperationOf(err) == OpCreation }

// IsQuery checks if err is a resource query failure.
func IsQuery(err error) bool { return OperationOf(err) == OpQuery }

// IsDelivery checks if err is a delivery failure.
func IsDelivery(err error) bool { return OperationOf(err) == OpDelivery }

// IsTransport checks if err is a transport failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsMalformed checks if err is a malformed response failure.
func IsMalformed(err error) bool { return KindOf(err) == KindMalformed }

// IsService checks if err is an error reported by the service.
func IsService(err error) bool { return KindOf(err) == KindService }

// IsSerialization checks if err is a local serialization failure.
func IsSerialization(err error) bool { return KindOf(err) == KindSerialization }

// IsRetryable checks if err is marked retryable.
func IsRetryable(err error) bool {
	e, ok := AsAppError(err)
	return ok && e.Retryable
}

// Is reports whether any error in err's chain matches target. It re-exports
// the standard library function so callers importing this package need not
// alias it.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
