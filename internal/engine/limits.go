package engine

import (
	"log/slog"
	"sort"

	"github.com/roach88/zkarith/internal/trace"
)

// Limits caps the number of rows per module. A module absent from the map
// or mapped to 0 is unbounded.
//
// Limits never stop a conflation on their own: the engine only reports
// overflows, and the caller decides whether they are fatal.
type Limits map[string]int

// Overflow is one module whose trace outgrew its limit.
type Overflow struct {
	Module string `json:"module"`
	Rows   int    `json:"rows"`
	Limit  int    `json:"limit"`
}

// Check returns the overflows among traces, sorted by module name.
func (l Limits) Check(traces []*trace.Trace) []Overflow {
	var out []Overflow
	for _, t := range traces {
		limit := l[t.Module]
		if limit > 0 && t.Rows > limit {
			out = append(out, Overflow{Module: t.Module, Rows: t.Rows, Limit: limit})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })
	return out
}

// CheckLimits reports and logs the modules of traces over the engine's
// limits.
func (e *Engine) CheckLimits(traces []*trace.Trace) []Overflow {
	overflows := e.limits.Check(traces)
	for _, o := range overflows {
		slog.Warn("module over row limit",
			"conflation", e.id,
			"module", o.Module,
			"rows", o.Rows,
			"limit", o.Limit,
			"event", "limit_exceeded",
		)
	}
	return overflows
}
