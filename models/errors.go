package models

import "fmt"

// ValidationError reports malformed caller input: bad filter bounds, missing
// bulk-operation fields, an empty entry-ID list. Not retryable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate tag name
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError builds a ConflictError from a format string
func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports a disallowed lifecycle transition, e.g. archiving
// an already-archived entry
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

// NewInvalidStateError builds an InvalidStateError from a format string
func NewInvalidStateError(format string, args ...interface{}) *InvalidStateError {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entry or tag
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given resource and ID
func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StorageError wraps a transient storage-layer fault. Callers may retry.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }

// Unwrap exposes the underlying driver error
func (e *StorageError) Unwrap() error { return e.Err }

// Retryable always reports true; storage faults are transient by contract
func (e *StorageError) Retryable() bool { return true }

// NewStorageError wraps err as a StorageError
func NewStorageError(err error) *StorageError {
	return &StorageError{Err: err}
}
