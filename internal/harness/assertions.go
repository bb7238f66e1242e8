package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/zkarith/internal/word"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Target   string // module or column
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s %s: expected %s, actual %s", e.Type, e.Target, e.Expected, e.Actual)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertRowCount:
			err = assertRowCount(result, a)
		case AssertCell:
			err = assertCell(result, a)
		case AssertColumn:
			err = assertColumn(result, a)
		case AssertOverflow:
			err = assertOverflow(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}
	return errs
}

func assertRowCount(r *Result, a Assertion) error {
	t, ok := r.Trace(a.Module)
	if !ok {
		return fmt.Errorf("module %q not traced", a.Module)
	}
	if t.Rows != a.Count {
		return &AssertionError{Type: a.Type, Target: a.Module, Expected: fmt.Sprint(a.Count), Actual: fmt.Sprint(t.Rows)}
	}
	return nil
}

// columnValues returns every cell of a qualified column as words.
func columnValues(r *Result, column string) ([]word.Word, error) {
	module, _, _ := strings.Cut(column, ".")
	t, ok := r.Trace(module)
	if !ok {
		return nil, fmt.Errorf("module %q not traced", module)
	}
	c, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("no column %q", column)
	}
	out := make([]word.Word, t.Rows)
	for i := range out {
		out[i] = word.FromBytes(c.Cell(i))
	}
	return out, nil
}

func assertCell(r *Result, a Assertion) error {
	values, err := columnValues(r, a.Column)
	if err != nil {
		return err
	}
	if a.Row >= len(values) {
		return &AssertionError{Type: a.Type, Target: a.Column, Expected: fmt.Sprintf("row %d", a.Row), Actual: fmt.Sprintf("%d rows", len(values))}
	}
	if got := values[a.Row]; got != a.Value {
		return &AssertionError{Type: a.Type, Target: fmt.Sprintf("%s[%d]", a.Column, a.Row), Expected: a.Value.String(), Actual: got.String()}
	}
	return nil
}

func assertColumn(r *Result, a Assertion) error {
	values, err := columnValues(r, a.Column)
	if err != nil {
		return err
	}
	if len(values) != len(a.Values) || !equalWords(values, a.Values) {
		return &AssertionError{Type: a.Type, Target: a.Column, Expected: formatWords(a.Values), Actual: formatWords(values)}
	}
	return nil
}

func assertOverflow(r *Result, a Assertion) error {
	for _, o := range r.Overflows {
		if o.Module == a.Module {
			return nil
		}
	}
	return &AssertionError{Type: a.Type, Target: a.Module, Expected: "rows over limit", Actual: "within limit"}
}

func equalWords(a, b []word.Word) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatWords(ws []word.Word) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
