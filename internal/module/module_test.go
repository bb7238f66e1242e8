package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/trace"
)

var fakeColumns = trace.Layout{
	{Name: "fake.STAMP", Width: 4},
	{Name: "fake.PREV", Width: 4},
	{Name: "fake.CT", Width: 1},
	{Name: "fake.VALUE", Width: 1},
}.Headers()

type fakeOp struct {
	rows  int
	value byte
	id    uint64
	lie   bool
}

func (o *fakeOp) RowCount() int { return o.rows }

func (o *fakeOp) Trace(w *trace.Writer, stamp, previousID uint64) error {
	n := o.rows
	if o.lie {
		n--
	}
	for ct := 0; ct < n; ct++ {
		if err := w.Row().
			Uint("fake.STAMP", stamp).
			Uint("fake.PREV", previousID).
			Uint("fake.CT", uint64(ct)).
			Bytes("fake.VALUE", []byte{o.value}).
			Validate(); err != nil {
			return err
		}
	}
	return nil
}

type idOp struct{ fakeOp }

func (o *idOp) ID() uint64 { return o.id }

func commitAll(t *testing.T, b *Base[Operation]) *trace.Trace {
	t.Helper()
	require.NoError(t, b.Finalize())
	w, err := trace.NewWriter(b.Name(), b.Columns(), b.RowCount())
	require.NoError(t, err)
	require.NoError(t, b.Commit(w))
	tr, err := w.Build()
	require.NoError(t, err)
	return tr
}

func TestCommitStampsInInsertionOrder(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	_, err := b.Record(&fakeOp{rows: 2, value: 1})
	require.NoError(t, err)
	_, err = b.Record(&fakeOp{rows: 1, value: 2})
	require.NoError(t, err)

	tr := commitAll(t, b)
	assert.Equal(t, 3, tr.Rows)

	stamp, _ := tr.Column("fake.STAMP")
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 2}, stamp.Data)
	prev, _ := tr.Column("fake.PREV")
	assert.Equal(t, []byte{0, 0, 0, 1}, prev.Cell(2))
}

func TestPreviousIDUsesOperationID(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	b.MustRecord(&idOp{fakeOp{rows: 1, id: 7}})
	b.MustRecord(&idOp{fakeOp{rows: 1, id: 9}})

	tr := commitAll(t, b)
	prev, _ := tr.Column("fake.PREV")
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 7}, prev.Data)
}

func TestRollbackLeavesRowCountUnchanged(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	b.MustRecord(&fakeOp{rows: 16})
	before := b.RowCount()

	require.NoError(t, b.EnterScope())
	b.MustRecord(&fakeOp{rows: 1})
	b.MustRecord(&fakeOp{rows: 16})
	require.NoError(t, b.LeaveScope(false))

	assert.Equal(t, before, b.RowCount())
	assert.Len(t, b.Operations(), 1)
}

func TestEmptyModuleCommits(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	tr := commitAll(t, b)
	assert.Zero(t, tr.Rows)
}

func TestCommitTwiceFails(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	commitAll(t, b)
	w, err := trace.NewWriter("fake", fakeColumns, 0)
	require.NoError(t, err)
	assert.True(t, HasCode(b.Commit(w), ErrCodeAlreadyCommitted))
}

func TestCommitDetectsLyingOperation(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	b.MustRecord(&fakeOp{rows: 2, lie: true})
	require.NoError(t, b.Finalize())
	w, err := trace.NewWriter("fake", fakeColumns, 2)
	require.NoError(t, err)
	assert.True(t, HasCode(b.Commit(w), ErrCodeRowCountMismatch))
}

func TestCommitRejectsMisSizedWriter(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	b.MustRecord(&fakeOp{rows: 2})
	w, err := trace.NewWriter("fake", fakeColumns, 3)
	require.NoError(t, err)
	assert.True(t, HasCode(b.Commit(w), ErrCodeRowCountMismatch))
}

func TestCommitRequiresResolvedPatches(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	op := &fakeOp{rows: 1}
	h := b.MustRecord(op)
	require.NoError(t, b.Defer(h, func(o Operation) error {
		o.(*fakeOp).value = 5
		return nil
	}))

	w, err := trace.NewWriter("fake", fakeColumns, 1)
	require.NoError(t, err)
	assert.True(t, HasCode(b.Commit(w), ErrCodePendingPatches))

	tr := commitAll(t, b)
	value, _ := tr.Column("fake.VALUE")
	assert.Equal(t, []byte{5}, value.Data)
}

func TestScopeUnderflowIsInvariantError(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	err := b.LeaveScope(true)
	assert.True(t, HasCode(err, ErrCodeScopeUnderflow))
	assert.True(t, IsInvariantError(err))
}

func TestRecordAfterFinalizePanics(t *testing.T) {
	b := NewBase[Operation]("fake", fakeColumns)
	require.NoError(t, b.Finalize())
	assert.Panics(t, func() { b.MustRecord(&fakeOp{rows: 1}) })
}
