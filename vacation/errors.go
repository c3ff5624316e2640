/*
errors.go - Centralized error types for the validation engine

PURPOSE:
  Fatal-to-the-request conditions live here. Business rejections are NOT
  errors: they are Verdict values (see verdict.go). Only conditions under
  which no verdict can be produced at all - a failed storage read, an
  employee id that does not resolve - surface as Go errors.

ERROR CATEGORIES:
  1. Storage errors - A collaborator read failed or timed out
  2. Lookup errors - Referenced records missing

POLICY:
  A storage failure must never decay into a default verdict. Callers treat
  any returned error as "no decision was made" and present a retry-later
  message. Retries, if any, belong to the storage collaborator's own
  resilience policy, not to this engine.

SEE ALSO:
  - verdict.go: Structured business rejections
  - validator.go: Where these errors originate
*/
package vacation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStorageUnavailable is returned when a storage read failed or timed
	// out. The request is fatal; no verdict is implied.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEmployeeNotFound is returned when the requesting employee id does
	// not resolve to a roster record.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrPeriodNotFound is returned when an edit references a vacation
	// period id that does not exist.
	ErrPeriodNotFound = errors.New("vacation period not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// StorageError wraps a collaborator failure with the operation that failed.
type StorageError struct {
	Op  string // e.g. "get employee periods"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return ErrStorageUnavailable }

// NotFoundError identifies which record failed to resolve.
type NotFoundError struct {
	Kind string // "employee" or "period"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Kind == "period" {
		return ErrPeriodNotFound
	}
	return ErrEmployeeNotFound
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrPeriodNotFound)
}

// IsStorage returns true if the error is a collaborator failure, i.e. the
// caller may retry later with the same input.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
