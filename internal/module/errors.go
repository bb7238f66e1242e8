package module

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes module invariant violations.
type ErrorCode string

const (
	// ErrCodeScopeUnderflow indicates LeaveScope without a matching EnterScope.
	ErrCodeScopeUnderflow ErrorCode = "SCOPE_UNDERFLOW"

	// ErrCodePendingPatches indicates Commit before deferred patches were resolved.
	ErrCodePendingPatches ErrorCode = "PENDING_PATCHES"

	// ErrCodeAlreadyCommitted indicates a second Commit.
	ErrCodeAlreadyCommitted ErrorCode = "ALREADY_COMMITTED"

	// ErrCodeRowCountMismatch indicates an operation wrote a different number
	// of rows than it announced, or a writer sized differently from RowCount.
	ErrCodeRowCountMismatch ErrorCode = "ROW_COUNT_MISMATCH"

	// ErrCodeNonMonotonicID indicates operation ids that do not strictly increase.
	ErrCodeNonMonotonicID ErrorCode = "NON_MONOTONIC_ID"

	// ErrCodeFinalized indicates a mutation after the module was finalized.
	ErrCodeFinalized ErrorCode = "FINALIZED"

	// ErrCodeMalformedCallData indicates call data the precompile can never
	// accept, so the EVM fails the call before the module sees it.
	ErrCodeMalformedCallData ErrorCode = "MALFORMED_CALL_DATA"
)

// InvariantError is a programming-contract failure inside a module. It is
// never recoverable: the conflation being traced must be abandoned.
type InvariantError struct {
	Code    ErrorCode
	Module  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (module=%s): %v", e.Code, e.Message, e.Module, e.Err)
	}
	return fmt.Sprintf("%s: %s (module=%s)", e.Code, e.Message, e.Module)
}

// Unwrap returns the underlying error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// NewInvariantError creates an InvariantError.
func NewInvariantError(module string, code ErrorCode, format string, args ...any) *InvariantError {
	return &InvariantError{Code: code, Module: module, Message: fmt.Sprintf(format, args...)}
}

// IsInvariantError reports whether err wraps an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// HasCode reports whether err wraps an InvariantError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var ie *InvariantError
	if errors.As(err, &ie) {
		return ie.Code == code
	}
	return false
}
