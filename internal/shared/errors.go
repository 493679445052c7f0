// ============================================================================
// internal/shared/errors.go
// Error taxonomy shared by all stores and services
// ============================================================================

package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyRegistered is returned when registering a course the
	// student already holds. The store is left unchanged.
	ErrAlreadyRegistered = errors.New("course already registered")

	// ErrNotRegistered is returned when dropping a course the student
	// never registered. The store is left unchanged.
	ErrNotRegistered = errors.New("course not registered")

	// ErrMarksDerived is returned when overall marks are edited directly
	// while course grades exist; overall marks are derived in that state.
	ErrMarksDerived = errors.New("overall marks are derived from course grades")

	// ErrInsufficientData is returned by aggregations that need a minimum
	// number of samples to be meaningful.
	ErrInsufficientData = errors.New("not enough data points")
)

// ValidationError reports input that fails shape or range checks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateKeyError reports a uniqueness violation on a collection key.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// CapacityError reports a registration attempt against a full course.
type CapacityError struct {
	CourseID    string
	MaxStudents int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("course %s is full (max %d students)", e.CourseID, e.MaxStudents)
}

// StorageError reports a failed write to a backing file. It is fatal from
// the caller's perspective: no retry, surfaced verbatim.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
