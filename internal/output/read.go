package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/zkarith/internal/manifest"
	"github.com/roach88/zkarith/internal/trace"
)

// ReadManifest loads dir's manifest.
func ReadManifest(dir string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return manifest.Unmarshal(data)
}

// ReadTrace loads the trace file of one manifest entry and checks its digest.
func ReadTrace(dir string, e manifest.Entry) (*trace.Trace, error) {
	data, err := os.ReadFile(filepath.Join(dir, e.File))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", e.Module, err)
	}
	if got := manifest.Digest(manifest.DomainTrace, data); got != e.Digest {
		return nil, fmt.Errorf("%s: digest mismatch: manifest %s, file %s", e.Module, e.Digest, got)
	}
	t, err := trace.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.Module, err)
	}
	return t, nil
}

// Verify re-reads every trace listed in dir's manifest.
func Verify(dir string) (*manifest.Manifest, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range m.Modules {
		t, err := ReadTrace(dir, e)
		if err != nil {
			return nil, err
		}
		if t.Rows != e.Rows {
			return nil, fmt.Errorf("%s: manifest lists %d rows, file has %d", e.Module, e.Rows, t.Rows)
		}
	}
	return m, nil
}
