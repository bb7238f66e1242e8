package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is a failure detected while driving a conflation. Every
// RuntimeError aborts the conflation: nothing is committed and no trace is
// written.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Conflation identifies the affected conflation.
	Conflation string

	// Seq is the clock value of the offending event, 0 when the failure is
	// not tied to one.
	Seq uint64

	// Module names the module that failed, if any.
	Module string

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeScopeUnderflow indicates a leave event without a matching enter.
	ErrCodeScopeUnderflow RuntimeErrorCode = "SCOPE_UNDERFLOW"

	// ErrCodeOpenScopes indicates a commit while scopes are still open.
	ErrCodeOpenScopes RuntimeErrorCode = "OPEN_SCOPES"

	// ErrCodeModuleFailure wraps an error or invariant panic raised by a module.
	ErrCodeModuleFailure RuntimeErrorCode = "MODULE_FAILURE"

	// ErrCodeUnknownModule indicates a module name no constructor exists for.
	ErrCodeUnknownModule RuntimeErrorCode = "UNKNOWN_MODULE"

	// ErrCodeAlreadyCommitted indicates a second Commit or an event after Commit.
	ErrCodeAlreadyCommitted RuntimeErrorCode = "ALREADY_COMMITTED"

	// ErrCodeLimitExceeded indicates modules whose traces outgrew their limit.
	ErrCodeLimitExceeded RuntimeErrorCode = "LIMIT_EXCEEDED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Module != "" {
		msg = fmt.Sprintf("%s (module=%s)", msg, e.Module)
	}
	if e.Seq != 0 {
		msg = fmt.Sprintf("%s (event=%d)", msg, e.Seq)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err wraps a RuntimeError with the given code.
func HasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsLimitError reports whether err is a limit overflow.
func IsLimitError(err error) bool {
	return HasCode(err, ErrCodeLimitExceeded)
}

// IsScopeError reports whether err comes from unbalanced enter/leave events.
func IsScopeError(err error) bool {
	return HasCode(err, ErrCodeScopeUnderflow) || HasCode(err, ErrCodeOpenScopes)
}

// NewLimitError reports the modules in overflows.
func NewLimitError(conflation string, overflows []Overflow) *RuntimeError {
	names := make([]string, len(overflows))
	for i, o := range overflows {
		names[i] = fmt.Sprintf("%s %d>%d", o.Module, o.Rows, o.Limit)
	}
	return &RuntimeError{
		Code:       ErrCodeLimitExceeded,
		Message:    fmt.Sprintf("%d modules over their row limit: %v", len(overflows), names),
		Conflation: conflation,
	}
}
