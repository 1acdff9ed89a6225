package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting role lacks rights for the requested fields.
var ErrForbidden = errors.New("permission denied")

// ErrLockedField indicates an attempt to edit non-notes fields on a LOCKED transaction.
// Kept distinct from ErrForbidden so callers can render "this record is frozen"
// instead of a generic permission failure.
var ErrLockedField = errors.New("transaction is locked")

// ErrLockingRule indicates a violation of the locking rules: non-admin unlock,
// missing/too-short unlock comment, or unlocking a transaction that is not LOCKED.
var ErrLockingRule = errors.New("locking rule violation")

// ErrEmptyCriteria indicates a bulk update invoked with no filter criteria.
var ErrEmptyCriteria = errors.New("bulk update requires at least one filter criterion")

// ErrConflict indicates the row changed under a read-modify-write operation.
var ErrConflict = errors.New("conflicting concurrent modification")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
