// Package output writes a committed conflation to disk: one binary trace
// file per module and a canonical manifest.json describing them.
package output

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/zkarith/internal/engine"
	"github.com/roach88/zkarith/internal/manifest"
	"github.com/roach88/zkarith/internal/trace"
)

// ManifestFile is the manifest's file name inside the output directory.
const ManifestFile = "manifest.json"

// Options tunes WriteDir.
type Options struct {
	// Parallelism bounds concurrent file writes; values below 1 mean 1.
	Parallelism int
	// OnWritten is called after each trace file lands. It may be called
	// from several goroutines at once.
	OnWritten func(manifest.Entry)
}

// WriteDir encodes every trace of res into dir and writes the manifest last,
// so a directory with a manifest is complete.
func WriteDir(ctx context.Context, dir string, res *engine.Result, overflows []engine.Overflow, opts Options) (*manifest.Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}

	m := &manifest.Manifest{Conflation: res.ID, Events: res.Events}
	for _, o := range overflows {
		m.Overflows = append(m.Overflows, manifest.Overflow{Module: o.Module, Rows: o.Rows, Limit: o.Limit})
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, t := range res.Traces {
		t := t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := writeTrace(dir, t)
			if err != nil {
				return err
			}
			mu.Lock()
			m.Modules = append(m.Modules, entry)
			mu.Unlock()
			if opts.OnWritten != nil {
				opts.OnWritten(entry)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.Sort()
	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(dir, ManifestFile), data); err != nil {
		return nil, err
	}
	slog.Debug("wrote conflation", "dir", dir, "conflation", m.Conflation, "modules", len(m.Modules), "rows", m.Rows())
	return m, nil
}

func writeTrace(dir string, t *trace.Trace) (manifest.Entry, error) {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return manifest.Entry{}, fmt.Errorf("encode %s: %w", t.Module, err)
	}
	name := t.Module + ".bin"
	if err := writeFile(filepath.Join(dir, name), buf.Bytes()); err != nil {
		return manifest.Entry{}, err
	}
	return manifest.Entry{
		Module:  t.Module,
		File:    name,
		Rows:    t.Rows,
		Columns: len(t.Columns),
		Bytes:   buf.Len(),
		Digest:  manifest.Digest(manifest.DomainTrace, buf.Bytes()),
	}, nil
}

// writeFile writes through a temporary file and renames it into place.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
