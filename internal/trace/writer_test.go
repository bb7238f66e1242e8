package trace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/word"
)

var testLayout = Layout{
	{"t.FLAG", 1},
	{"t.STAMP", 4},
	{"t.LIMB", 16},
}

func newTestWriter(t *testing.T, rows int) *Writer {
	t.Helper()
	w, err := NewWriter("t", testLayout.Headers(), rows)
	require.NoError(t, err)
	return w
}

func TestWriterFillsRows(t *testing.T) {
	w := newTestWriter(t, 2)

	require.NoError(t, w.Row().Bool("t.FLAG", true).Uint("t.STAMP", 1).Limb("t.LIMB", word.LimbFromUint64(0xabcd)).Validate())
	require.NoError(t, w.Row().Bool("t.FLAG", false).Uint("t.STAMP", 2).Bytes("t.LIMB", []byte{0xff}).Validate())

	size, err := w.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	tr, err := w.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Rows)

	flag, ok := tr.Column("t.FLAG")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 0}, flag.Data)

	stamp, _ := tr.Column("t.STAMP")
	assert.Equal(t, []byte{0, 0, 0, 2}, stamp.Cell(1))

	limb, _ := tr.Column("t.LIMB")
	assert.Equal(t, byte(0xab), limb.Cell(0)[14])
	assert.Equal(t, byte(0xff), limb.Cell(1)[15])
}

func TestColumnAlreadySet(t *testing.T) {
	w := newTestWriter(t, 1)
	require.NoError(t, w.SetBool("t.FLAG", true))

	err := w.SetBool("t.FLAG", false)
	require.Error(t, err)
	assert.True(t, IsColumnAlreadySetError(err))

	// Poisoned: later calls keep failing with the same error.
	assert.Equal(t, err, w.SetUint("t.STAMP", 1))
	assert.Equal(t, err, w.ValidateRow())
}

func TestColumnWidthMismatch(t *testing.T) {
	w := newTestWriter(t, 1)

	// Leading zeros are trimmed before the width check.
	require.NoError(t, w.Set("t.STAMP", []byte{0, 0, 0, 0, 0, 0, 0, 9}))

	err := w.Set("t.FLAG", []byte{1, 0})
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeColumnWidthMismatch))
}

func TestMissingColumnListsEveryColumn(t *testing.T) {
	w := newTestWriter(t, 1)
	require.NoError(t, w.SetBool("t.FLAG", true))

	err := w.ValidateRow()
	require.Error(t, err)
	assert.True(t, IsMissingColumnError(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []string{"t.STAMP", "t.LIMB"}, te.Columns)
}

func TestPadAndValidateRow(t *testing.T) {
	w := newTestWriter(t, 1)
	require.NoError(t, w.SetUint("t.STAMP", 7))
	require.NoError(t, w.PadAndValidateRow())

	tr, err := w.Build()
	require.NoError(t, err)
	flag, _ := tr.Column("t.FLAG")
	assert.Equal(t, []byte{0}, flag.Data)
}

func TestSizeFailsMidRow(t *testing.T) {
	w := newTestWriter(t, 1)
	require.NoError(t, w.SetBool("t.FLAG", true))

	_, err := w.Size()
	assert.True(t, HasCode(err, ErrCodeDirtyRow))
}

func TestBuildRequiresExactRowCount(t *testing.T) {
	w := newTestWriter(t, 2)
	require.NoError(t, w.Row().Bool("t.FLAG", true).Uint("t.STAMP", 1).Limb("t.LIMB", word.Limb{}).Validate())

	_, err := w.Build()
	assert.True(t, HasCode(err, ErrCodeRowCountMismatch))
}

func TestRowOverflow(t *testing.T) {
	w := newTestWriter(t, 0)
	err := w.SetBool("t.FLAG", true)
	assert.True(t, HasCode(err, ErrCodeRowOverflow))
}

func TestEmptyWriterBuilds(t *testing.T) {
	w := newTestWriter(t, 0)
	tr, err := w.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Rows)
	assert.Len(t, tr.Columns, 3)
}

func TestUnknownColumn(t *testing.T) {
	w := newTestWriter(t, 1)
	assert.True(t, HasCode(w.SetBool("t.NOPE", true), ErrCodeUnknownColumn))
}

func TestDefineColumnsRejectsDuplicates(t *testing.T) {
	_, err := DefineColumns([]string{"a", "a"}, []int{1, 1})
	assert.True(t, HasCode(err, ErrCodeInvalidLayout))

	_, err = DefineColumns([]string{"a"}, []int{0})
	assert.Error(t, err)

	_, err = DefineColumns([]string{"a"}, []int{1, 2})
	assert.Error(t, err)
}

func TestWireRoundTrip(t *testing.T) {
	w := newTestWriter(t, 2)
	require.NoError(t, w.Row().Bool("t.FLAG", true).Uint("t.STAMP", 1).Limb("t.LIMB", word.LimbFromUint64(3)).Validate())
	require.NoError(t, w.Row().Bool("t.FLAG", true).Uint("t.STAMP", 2).Limb("t.LIMB", word.LimbFromUint64(4)).Validate())
	tr, err := w.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tr.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, tr, got)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOPE\x01")))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader([]byte("ZKTR\x09")))
	assert.Error(t, err)
}
