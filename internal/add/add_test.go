package add

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/testutil"
	"github.com/roach88/zkarith/internal/word"
)

func TestAddOverflow(t *testing.T) {
	m := New()
	assert.True(t, m.Add(word.Max, word.FromUint64(1)).IsZero())
	assert.Equal(t, word.FromUint64(5), m.Add(word.FromUint64(2), word.FromUint64(3)))

	tr := testutil.Commit(t, m)
	require.Equal(t, 2, tr.Rows)
	assert.True(t, testutil.Bool(t, tr, colOverflow, 0))
	assert.False(t, testutil.Bool(t, tr, colOverflow, 1))
	assert.Equal(t, uint64(5), testutil.Uint(t, tr, colResLo, 1))
}

func TestSubBorrow(t *testing.T) {
	m := New()
	assert.Equal(t, word.Max, m.Sub(word.Zero, word.FromUint64(1)))
	assert.Equal(t, word.FromUint64(1), m.Sub(word.FromUint64(3), word.FromUint64(2)))

	tr := testutil.Commit(t, m)
	assert.True(t, testutil.Bool(t, tr, colOverflow, 0))
	assert.False(t, testutil.Bool(t, tr, colOverflow, 1))
	assert.Equal(t, uint64(opcode.SUB), testutil.Uint(t, tr, colInst, 0))
	assert.Equal(t, word.Max.Hi(), word.Limb(testutil.Cell(t, tr, colResHi, 0)))
}

func TestRecordEventIgnoresOthers(t *testing.T) {
	m := New()
	ev := event.Op(opcode.MUL, word.FromUint64(1), word.FromUint64(1))
	_, ok, err := m.RecordEvent(&ev)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, m.RowCount())
}

func TestRollback(t *testing.T) {
	m := New()
	m.Add(word.FromUint64(1), word.FromUint64(1))
	require.NoError(t, m.EnterScope())
	m.Add(word.FromUint64(2), word.FromUint64(2))
	require.NoError(t, m.LeaveScope(false))
	assert.Equal(t, 1, m.RowCount())
}
