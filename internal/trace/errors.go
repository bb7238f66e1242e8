package trace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes writer invariant violations.
type ErrorCode string

const (
	// ErrCodeColumnAlreadySet indicates a column was written twice in one row.
	ErrCodeColumnAlreadySet ErrorCode = "COLUMN_ALREADY_SET"

	// ErrCodeColumnWidthMismatch indicates a value wider than its column.
	ErrCodeColumnWidthMismatch ErrorCode = "COLUMN_WIDTH_MISMATCH"

	// ErrCodeMissingColumn indicates a row was validated with unset columns.
	ErrCodeMissingColumn ErrorCode = "MISSING_COLUMN"

	// ErrCodeUnknownColumn indicates a write to an undeclared column.
	ErrCodeUnknownColumn ErrorCode = "UNKNOWN_COLUMN"

	// ErrCodeRowOverflow indicates more rows than were allocated.
	ErrCodeRowOverflow ErrorCode = "ROW_OVERFLOW"

	// ErrCodeRowCountMismatch indicates Build before the allocated rows were written.
	ErrCodeRowCountMismatch ErrorCode = "ROW_COUNT_MISMATCH"

	// ErrCodeDirtyRow indicates Size or Build called on a partially filled row.
	ErrCodeDirtyRow ErrorCode = "DIRTY_ROW"

	// ErrCodeInvalidLayout indicates a bad column definition.
	ErrCodeInvalidLayout ErrorCode = "INVALID_LAYOUT"
)

// Error is an invariant violation raised by a Writer. Once returned the
// writer is poisoned and keeps returning the same error.
type Error struct {
	Code    ErrorCode
	Module  string
	Row     int
	Columns []string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Module != "" {
		fmt.Fprintf(&b, " (module=%s, row=%d", e.Module, e.Row)
		if len(e.Columns) > 0 {
			fmt.Fprintf(&b, ", columns=%s", strings.Join(e.Columns, ","))
		}
		b.WriteString(")")
	}
	return b.String()
}

// HasCode reports whether err wraps a trace Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// IsMissingColumnError reports whether err is a MISSING_COLUMN violation.
func IsMissingColumnError(err error) bool {
	return HasCode(err, ErrCodeMissingColumn)
}

// IsColumnAlreadySetError reports whether err is a COLUMN_ALREADY_SET violation.
func IsColumnAlreadySetError(err error) bool {
	return HasCode(err, ErrCodeColumnAlreadySet)
}
