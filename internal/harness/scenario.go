package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/word"
)

// Scenario is one conformance test: an event stream and what its traces
// must look like.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Modules restricts the enabled modules. Empty enables all.
	Modules []string `yaml:"modules,omitempty"`

	// Limits caps module row counts for overflow assertions.
	Limits map[string]int `yaml:"limits,omitempty"`

	// Conflation fixes the conflation id. Defaults to "scenario-<name>".
	Conflation string `yaml:"conflation,omitempty"`

	Events []event.Event `yaml:"events"`

	// Expect describes a conflation that must fail.
	Expect *Expect `yaml:"expect,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// Expect is the expected failure of a scenario.
type Expect struct {
	// Error is the error code the conflation must fail with.
	Error string `yaml:"error"`
}

// Assertion checks one property of the committed traces.
type Assertion struct {
	Type string `yaml:"type"`

	// Module names the trace (row_count, overflow).
	Module string `yaml:"module,omitempty"`

	// Column is a qualified column name such as wcp.RESULT (cell, column).
	Column string `yaml:"column,omitempty"`

	Row    int         `yaml:"row,omitempty"`
	Value  word.Word   `yaml:"value,omitempty"`
	Values []word.Word `yaml:"values,omitempty"`
	Count  int         `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRowCount = "row_count"
	AssertCell     = "cell"
	AssertColumn   = "column"
	AssertOverflow = "overflow"
)

// ConflationID is the fixed conflation id the scenario runs under.
func (s *Scenario) ConflationID() string {
	if s.Conflation != "" {
		return s.Conflation
	}
	return "scenario-" + s.Name
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var out []*Scenario
	seen := map[string]string{}
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", filepath.Base(p), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(p)
		out = append(out, s)
	}
	return out, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i := range s.Events {
		if err := event.Validate(&s.Events[i]); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
	}
	if s.Expect != nil && s.Expect.Error == "" {
		return fmt.Errorf("expect.error is required when expect is given")
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertRowCount, AssertOverflow:
		if a.Module == "" {
			return fmt.Errorf("%s requires module", a.Type)
		}
	case AssertCell, AssertColumn:
		if _, _, ok := strings.Cut(a.Column, "."); !ok {
			return fmt.Errorf("%s requires a qualified column, got %q", a.Type, a.Column)
		}
		if a.Row < 0 {
			return fmt.Errorf("negative row %d", a.Row)
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
