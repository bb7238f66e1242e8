package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/zkarith/internal/manifest"
)

// ErrNotFound is returned for an unknown conflation id.
var ErrNotFound = errors.New("conflation not found")

// Conflation is one recorded conflation summary.
type Conflation struct {
	ID             string `json:"id"`
	Seq            int64  `json:"seq"`
	Events         uint64 `json:"events"`
	Rows           int    `json:"rows"`
	ManifestDigest string `json:"manifest_digest"`
	OutDir         string `json:"out_dir"`
}

// WriteConflation records a manifest written to dir in one transaction. A
// conflation id already present is left untouched and reported as false.
func (s *Store) WriteConflation(ctx context.Context, m *manifest.Manifest, dir string) (bool, error) {
	digest, err := m.Digest()
	if err != nil {
		return false, fmt.Errorf("write conflation: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write conflation: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO conflations (id, seq, events, total_rows, manifest_digest, out_dir)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM conflations), ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, m.Conflation, int64(m.Events), m.Rows(), digest, dir)
	if err != nil {
		return false, fmt.Errorf("write conflation: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, fmt.Errorf("write conflation: %w", err)
	} else if n == 0 {
		return false, nil
	}

	for _, e := range m.Modules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO module_traces (conflation_id, module, row_count, column_count, bytes, digest)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.Conflation, e.Module, e.Rows, e.Columns, e.Bytes, e.Digest); err != nil {
			return false, fmt.Errorf("write module trace %s: %w", e.Module, err)
		}
	}
	for _, o := range m.Overflows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO limit_overflows (conflation_id, module, row_count, row_limit)
			VALUES (?, ?, ?, ?)
		`, m.Conflation, o.Module, o.Rows, o.Limit); err != nil {
			return false, fmt.Errorf("write overflow %s: %w", o.Module, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write conflation: commit: %w", err)
	}
	return true, nil
}

// ListConflations returns every conflation in recording order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListConflations(ctx context.Context) ([]Conflation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, events, total_rows, manifest_digest, out_dir
		FROM conflations
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query conflations: %w", err)
	}
	defer rows.Close()

	out := []Conflation{}
	for rows.Next() {
		c, err := scanConflation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conflations: %w", err)
	}
	return out, nil
}

// ReadConflation returns one conflation or ErrNotFound.
func (s *Store) ReadConflation(ctx context.Context, id string) (Conflation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, events, total_rows, manifest_digest, out_dir
		FROM conflations
		WHERE id = ?
	`, id)
	c, err := scanConflation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Conflation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, err
}

// ReadModuleTraces returns the trace entries of a conflation ordered by
// module name.
func (s *Store) ReadModuleTraces(ctx context.Context, id string) ([]manifest.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT module, row_count, column_count, bytes, digest
		FROM module_traces
		WHERE conflation_id = ?
		ORDER BY module COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query module traces: %w", err)
	}
	defer rows.Close()

	out := []manifest.Entry{}
	for rows.Next() {
		var e manifest.Entry
		if err := rows.Scan(&e.Module, &e.Rows, &e.Columns, &e.Bytes, &e.Digest); err != nil {
			return nil, fmt.Errorf("scan module trace: %w", err)
		}
		e.File = e.Module + ".bin"
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate module traces: %w", err)
	}
	return out, nil
}

// ReadOverflows returns the limit overflows of a conflation ordered by
// module name.
func (s *Store) ReadOverflows(ctx context.Context, id string) ([]manifest.Overflow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT module, row_count, row_limit
		FROM limit_overflows
		WHERE conflation_id = ?
		ORDER BY module COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query overflows: %w", err)
	}
	defer rows.Close()

	out := []manifest.Overflow{}
	for rows.Next() {
		var o manifest.Overflow
		if err := rows.Scan(&o.Module, &o.Rows, &o.Limit); err != nil {
			return nil, fmt.Errorf("scan overflow: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overflows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConflation(row scanner) (Conflation, error) {
	var c Conflation
	var events int64
	if err := row.Scan(&c.ID, &c.Seq, &events, &c.Rows, &c.ManifestDigest, &c.OutDir); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Conflation{}, err
		}
		return Conflation{}, fmt.Errorf("scan conflation: %w", err)
	}
	c.Events = uint64(events)
	return c, nil
}
