package harness

import (
	"github.com/roach88/zkarith/internal/engine"
	"github.com/roach88/zkarith/internal/trace"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when the run matched expect and every assertion held.
	Pass bool `json:"pass"`

	Conflation string `json:"conflation"`
	Events     uint64 `json:"events"`

	// ErrorCode is the code the conflation failed with, if it failed.
	ErrorCode string `json:"error_code,omitempty"`

	Overflows []engine.Overflow `json:"overflows,omitempty"`

	// Errors lists expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`

	traces map[string]*trace.Trace
	order  []string
}

// NewResult creates a new passing result.
func NewResult(conflation string) *Result {
	return &Result{
		Pass:       true,
		Conflation: conflation,
		Errors:     []string{},
		traces:     map[string]*trace.Trace{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Pass = false
	r.Errors = append(r.Errors, msg)
}

// Trace returns the committed trace of a module.
func (r *Result) Trace(module string) (*trace.Trace, bool) {
	t, ok := r.traces[module]
	return t, ok
}

// Modules lists the traced modules in dispatch order.
func (r *Result) Modules() []string {
	return r.order
}

func (r *Result) addTraces(ts []*trace.Trace) {
	for _, t := range ts {
		r.traces[t.Module] = t
		r.order = append(r.order, t.Module)
	}
}
