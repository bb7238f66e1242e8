// Package manifest describes the trace files of a committed conflation in
// canonical JSON, so two runs over the same events produce byte-identical
// manifests.
package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Version is the manifest format version.
const Version = 1

// Manifest lists the traces of one conflation.
type Manifest struct {
	Conflation string     `json:"conflation"`
	Events     uint64     `json:"events"`
	Modules    []Entry    `json:"modules"`
	Overflows  []Overflow `json:"overflows"`
}

// Entry is one module's trace file.
type Entry struct {
	Module  string `json:"module"`
	File    string `json:"file"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Bytes   int    `json:"bytes"`
	Digest  string `json:"digest"`
}

// Overflow records a module over its row limit.
type Overflow struct {
	Module string `json:"module"`
	Rows   int    `json:"rows"`
	Limit  int    `json:"limit"`
}

// Sort orders modules and overflows by name.
func (m *Manifest) Sort() {
	sort.Slice(m.Modules, func(i, j int) bool { return m.Modules[i].Module < m.Modules[j].Module })
	sort.Slice(m.Overflows, func(i, j int) bool { return m.Overflows[i].Module < m.Overflows[j].Module })
}

// Rows returns the total row count.
func (m *Manifest) Rows() int {
	n := 0
	for _, e := range m.Modules {
		n += e.Rows
	}
	return n
}

// Marshal returns the canonical JSON encoding.
func (m *Manifest) Marshal() ([]byte, error) {
	modules := make([]any, len(m.Modules))
	for i, e := range m.Modules {
		modules[i] = map[string]any{
			"module":  e.Module,
			"file":    e.File,
			"rows":    e.Rows,
			"columns": e.Columns,
			"bytes":   e.Bytes,
			"digest":  e.Digest,
		}
	}
	overflows := make([]any, len(m.Overflows))
	for i, o := range m.Overflows {
		overflows[i] = map[string]any{"module": o.Module, "rows": o.Rows, "limit": o.Limit}
	}
	data, err := MarshalCanonical(map[string]any{
		"version":    Version,
		"conflation": m.Conflation,
		"events":     m.Events,
		"modules":    modules,
		"overflows":  overflows,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a manifest written by Marshal.
func Unmarshal(data []byte) (*Manifest, error) {
	var m struct {
		Manifest
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	if len(m.Modules) == 0 {
		m.Modules = nil
	}
	if len(m.Overflows) == 0 {
		m.Overflows = nil
	}
	return &m.Manifest, nil
}

// Digest is the domain-separated digest of the canonical encoding.
func (m *Manifest) Digest() (string, error) {
	data, err := m.Marshal()
	if err != nil {
		return "", err
	}
	return Digest(DomainManifest, data), nil
}
