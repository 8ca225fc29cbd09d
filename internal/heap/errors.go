package heap

import (
	"errors"
	"fmt"
)

// Error represents a failure detected while comparing or restoring items.
//
// Errors include:
//   - Oracle contract violations: the oracle picked neither item
//   - Oracle failures: the oracle returned an error instead of a choice
//   - Invariant violations: the learned relation is inconsistent
//   - Invalid snapshots: persisted state cannot be rebuilt
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// A and B name the items being compared, when there are any.
	A string
	B string

	// Err is the underlying cause (oracle failures only).
	Err error
}

// ErrorCode categorizes heap errors.
type ErrorCode string

const (
	// ErrCodeOracleContract indicates the oracle returned an item that was
	// not one of the two it was asked about.
	ErrCodeOracleContract ErrorCode = "ORACLE_CONTRACT"

	// ErrCodeOracleFailed indicates the oracle returned an error.
	ErrCodeOracleFailed ErrorCode = "ORACLE_FAILED"

	// ErrCodeInvariant indicates the learned relation or heap order is broken.
	ErrCodeInvariant ErrorCode = "INVARIANT_VIOLATION"

	// ErrCodeInvalidSnapshot indicates a snapshot cannot be restored.
	ErrCodeInvalidSnapshot ErrorCode = "INVALID_SNAPSHOT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.A != "" || e.B != "" {
		msg += fmt.Sprintf(" (a=%q, b=%q)", e.A, e.B)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsContractError returns true if the oracle broke its contract.
// Uses errors.As to handle wrapped errors.
func IsContractError(err error) bool {
	return hasCode(err, ErrCodeOracleContract)
}

// IsInvariantError returns true if the error reports an internal
// consistency fault.
func IsInvariantError(err error) bool {
	return hasCode(err, ErrCodeInvariant)
}

// IsOracleFailure returns true if the oracle returned an error.
func IsOracleFailure(err error) bool {
	return hasCode(err, ErrCodeOracleFailed)
}

// IsSnapshotError returns true if a snapshot could not be restored.
func IsSnapshotError(err error) bool {
	return hasCode(err, ErrCodeInvalidSnapshot)
}

func hasCode(err error, code ErrorCode) bool {
	var he *Error
	if errors.As(err, &he) {
		return he.Code == code
	}
	return false
}

func newContractError(a, b, got *Item) *Error {
	name := "<nil>"
	if got != nil {
		name = got.name
	}
	return &Error{
		Code:    ErrCodeOracleContract,
		Message: fmt.Sprintf("oracle chose %q, which is neither item", name),
		A:       a.name,
		B:       b.name,
	}
}

func newOracleFailure(a, b *Item, err error) *Error {
	return &Error{
		Code:    ErrCodeOracleFailed,
		Message: "oracle did not choose",
		A:       a.name,
		B:       b.name,
		Err:     err,
	}
}

func newInvariantError(a, b *Item, format string, args ...any) *Error {
	e := &Error{
		Code:    ErrCodeInvariant,
		Message: fmt.Sprintf(format, args...),
	}
	if a != nil {
		e.A = a.name
	}
	if b != nil {
		e.B = b.name
	}
	return e
}

func newSnapshotError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidSnapshot,
		Message: fmt.Sprintf(format, args...),
	}
}
