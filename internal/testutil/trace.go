package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/trace"
)

// Commit runs the two-pass commit on m: finalize, size a writer from
// RowCount, commit, build.
func Commit(t *testing.T, m module.Module) *trace.Trace {
	t.Helper()
	require.NoError(t, m.Finalize())
	w, err := trace.NewWriter(m.Name(), m.Columns(), m.RowCount())
	require.NoError(t, err)
	require.NoError(t, m.Commit(w))
	tr, err := w.Build()
	require.NoError(t, err)
	require.Equal(t, m.RowCount(), tr.Rows)
	return tr
}

// Cell returns the bytes of column name at row.
func Cell(t *testing.T, tr *trace.Trace, name string, row int) []byte {
	t.Helper()
	c, ok := tr.Column(name)
	require.True(t, ok, "column %s not found", name)
	require.Less(t, row, tr.Rows)
	return c.Cell(row)
}

// Uint reads a column cell as a big-endian unsigned integer.
func Uint(t *testing.T, tr *trace.Trace, name string, row int) uint64 {
	t.Helper()
	var v uint64
	for _, b := range Cell(t, tr, name, row) {
		v = v<<8 | uint64(b)
	}
	return v
}

// Bool reads a 1-byte flag.
func Bool(t *testing.T, tr *trace.Trace, name string, row int) bool {
	t.Helper()
	return Uint(t, tr, name, row) != 0
}
