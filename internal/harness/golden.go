package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/zkarith/internal/manifest"
)

// Snapshot is the golden summary of a scenario run: per-module row counts,
// overflows and the failure code.
type Snapshot struct {
	Scenario   string
	Conflation string
	Events     uint64
	Rows       []ModuleRows
	Overflows  []manifest.Overflow
	Error      string
}

// ModuleRows is one module's row count.
type ModuleRows struct {
	Module string
	Rows   int
}

// NewSnapshot summarizes result.
func NewSnapshot(name string, result *Result) *Snapshot {
	s := &Snapshot{Scenario: name, Conflation: result.Conflation, Events: result.Events, Error: result.ErrorCode}
	for _, m := range result.Modules() {
		t, _ := result.Trace(m)
		s.Rows = append(s.Rows, ModuleRows{Module: m, Rows: t.Rows})
	}
	for _, o := range result.Overflows {
		s.Overflows = append(s.Overflows, manifest.Overflow{Module: o.Module, Rows: o.Rows, Limit: o.Limit})
	}
	return s
}

// Marshal encodes the snapshot as canonical JSON followed by a newline.
// Empty error and overflow fields are omitted.
func (s *Snapshot) Marshal() ([]byte, error) {
	rows := make([]any, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = map[string]any{"module": r.Module, "rows": r.Rows}
	}
	m := map[string]any{
		"scenario":   s.Scenario,
		"conflation": s.Conflation,
		"events":     s.Events,
		"modules":    rows,
	}
	if len(s.Overflows) > 0 {
		overflows := make([]any, len(s.Overflows))
		for i, o := range s.Overflows {
			overflows[i] = map[string]any{"module": o.Module, "rows": o.Rows, "limit": o.Limit}
		}
		m["overflows"] = overflows
	}
	if s.Error != "" {
		m["error"] = s.Error
	}
	data, err := manifest.MarshalCanonical(m)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// RunWithGolden runs a scenario, fails the test on any expectation or
// assertion failure, and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		t.Fatalf("run %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}
	AssertGolden(t, scenario.Name, result)
	return result
}

// AssertGolden compares result's snapshot against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	data, err := NewSnapshot(name, result).Marshal()
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	newGoldie(t).Assert(t, name, data)
}
