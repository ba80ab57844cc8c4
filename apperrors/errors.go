package apperrors

import (
	"fmt"
	"strings"
)

// Operation tags a storage fault with the phase it happened in.
type Operation string

const (
	OpAccess Operation = "access"
	OpRead   Operation = "read"
	OpWrite  Operation = "write"
)

// PersonNotFoundError is returned when a person lookup by ID has no match.
type PersonNotFoundError struct {
	ID int
}

func (e *PersonNotFoundError) Error() string {
	return fmt.Sprintf("person with ID %d was not found", e.ID)
}

// ColorNotFoundError reports a color id or name outside the catalog.
// ValidNames always carries the full catalog roster.
type ColorNotFoundError struct {
	Input      string
	ValidNames []string
}

func (e *ColorNotFoundError) Error() string {
	return fmt.Sprintf("color '%s' is not valid, valid colors are: %s", e.Input, strings.Join(e.ValidNames, ", "))
}

// InvalidPersonDataError accumulates every validation failure of a create request.
type InvalidPersonDataError struct {
	Errors []string
}

func (e *InvalidPersonDataError) Error() string {
	return "invalid person data: " + strings.Join(e.Errors, "; ")
}

// StorageAccessError means the backing resource could not be reached at all.
type StorageAccessError struct {
	Path      string
	Operation Operation
	Cause     error
}

func (e *StorageAccessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage %s failed for %s: %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("storage %s failed for %s", e.Operation, e.Path)
}

func (e *StorageAccessError) Unwrap() error { return e.Cause }

// StorageOperationError wraps a read or write that started but did not complete.
type StorageOperationError struct {
	Operation Operation
	Cause     error
}

func (e *StorageOperationError) Error() string {
	return fmt.Sprintf("storage %s operation failed: %v", e.Operation, e.Cause)
}

func (e *StorageOperationError) Unwrap() error { return e.Cause }

// NewStorageOperation wraps cause, or returns nil when there is nothing to wrap.
func NewStorageOperation(op Operation, cause error) error {
	if cause == nil {
		return nil
	}
	return &StorageOperationError{Operation: op, Cause: cause}
}
