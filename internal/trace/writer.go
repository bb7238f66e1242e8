package trace

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/roach88/zkarith/internal/word"
)

// Writer fills a fixed number of rows of a module's columns.
type Writer struct {
	module  string
	headers []ColumnHeader
	index   map[string]int
	data    [][]byte
	length  int
	row     int
	filled  *bitset.BitSet
	err     error
}

// NewWriter allocates zeroed buffers for length rows of every column.
func NewWriter(module string, headers []ColumnHeader, length int) (*Writer, error) {
	if length < 0 {
		return nil, &Error{Code: ErrCodeInvalidLayout, Module: module, Message: fmt.Sprintf("negative length %d", length)}
	}
	w := &Writer{
		module:  module,
		headers: headers,
		index:   make(map[string]int, len(headers)),
		data:    make([][]byte, len(headers)),
		length:  length,
		filled:  bitset.New(uint(len(headers))),
	}
	for i, h := range headers {
		if _, dup := w.index[h.Name]; dup {
			return nil, &Error{Code: ErrCodeInvalidLayout, Module: module, Message: "duplicate column " + h.Name}
		}
		w.index[h.Name] = i
		w.data[i] = make([]byte, length*h.Width)
	}
	return w, nil
}

// Module returns the owning module's name.
func (w *Writer) Module() string {
	return w.module
}

// Len returns the number of rows the writer was allocated for.
func (w *Writer) Len() int {
	return w.length
}

// Err returns the poisoning error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(code ErrorCode, msg string, cols ...string) error {
	w.err = &Error{Code: code, Module: w.module, Row: w.row, Columns: cols, Message: msg}
	return w.err
}

// Set writes value into the current row of column name. Leading zero bytes
// are dropped before the width check and the value is left-padded.
func (w *Writer) Set(name string, value []byte) error {
	if w.err != nil {
		return w.err
	}
	i, ok := w.index[name]
	if !ok {
		return w.fail(ErrCodeUnknownColumn, "column not declared", name)
	}
	if w.filled.Test(uint(i)) {
		return w.fail(ErrCodeColumnAlreadySet, "column set twice in one row", name)
	}
	for len(value) > 0 && value[0] == 0 {
		value = value[1:]
	}
	width := w.headers[i].Width
	if len(value) > width {
		return w.fail(ErrCodeColumnWidthMismatch, fmt.Sprintf("%d significant bytes exceed width %d", len(value), width), name)
	}
	if w.row >= w.length {
		return w.fail(ErrCodeRowOverflow, fmt.Sprintf("writer holds %d rows", w.length), name)
	}
	end := (w.row + 1) * width
	copy(w.data[i][end-len(value):end], value)
	w.filled.Set(uint(i))
	return nil
}

// SetBool writes 1 or 0.
func (w *Writer) SetBool(name string, v bool) error {
	if v {
		return w.Set(name, []byte{1})
	}
	return w.Set(name, nil)
}

// SetUint writes v big-endian.
func (w *Writer) SetUint(name string, v uint64) error {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> (8 * i))
	}
	return w.Set(name, b[:])
}

// SetLimb writes a 16-byte limb.
func (w *Writer) SetLimb(name string, l word.Limb) error {
	return w.Set(name, l[:])
}

// ValidateRow checks that every column of the current row was set and
// advances to the next row.
func (w *Writer) ValidateRow() error {
	if w.err != nil {
		return w.err
	}
	if missing := w.missing(); len(missing) > 0 {
		return w.fail(ErrCodeMissingColumn, fmt.Sprintf("%d columns not set", len(missing)), missing...)
	}
	return w.advance()
}

// PadAndValidateRow leaves every unset column of the current row at its zero
// value and advances. Only use it for rows whose unset columns are optional.
func (w *Writer) PadAndValidateRow() error {
	if w.err != nil {
		return w.err
	}
	return w.advance()
}

func (w *Writer) advance() error {
	if w.row >= w.length {
		return w.fail(ErrCodeRowOverflow, fmt.Sprintf("writer holds %d rows", w.length))
	}
	w.filled.ClearAll()
	w.row++
	return nil
}

func (w *Writer) missing() []string {
	var names []string
	for i, h := range w.headers {
		if !w.filled.Test(uint(i)) {
			names = append(names, h.Name)
		}
	}
	return names
}

// Size returns the number of validated rows. It fails mid-row.
func (w *Writer) Size() (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.filled.Any() {
		return 0, w.fail(ErrCodeDirtyRow, "size requested with a partially filled row")
	}
	return w.row, nil
}

// Build finalizes the writer. Exactly Len rows must have been validated.
func (w *Writer) Build() (*Trace, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.filled.Any() {
		return nil, w.fail(ErrCodeDirtyRow, "build with a partially filled row")
	}
	if w.row != w.length {
		return nil, w.fail(ErrCodeRowCountMismatch, fmt.Sprintf("wrote %d rows, expected %d", w.row, w.length))
	}
	t := &Trace{Module: w.module, Rows: w.length, Columns: make([]Column, len(w.headers))}
	for i, h := range w.headers {
		t.Columns[i] = Column{Header: h, Data: w.data[i]}
	}
	return t, nil
}

// Row is a chained view on the writer's current row. Errors are sticky on the
// writer, so intermediate results can be dropped and checked once through
// Validate or PadAndValidate.
type Row struct {
	w *Writer
}

// Row starts writing the current row.
func (w *Writer) Row() Row {
	return Row{w: w}
}

// Bytes sets a raw value.
func (r Row) Bytes(name string, v []byte) Row {
	_ = r.w.Set(name, v)
	return r
}

// Bool sets a 1-byte flag.
func (r Row) Bool(name string, v bool) Row {
	_ = r.w.SetBool(name, v)
	return r
}

// Uint sets an unsigned integer.
func (r Row) Uint(name string, v uint64) Row {
	_ = r.w.SetUint(name, v)
	return r
}

// Limb sets a 16-byte limb.
func (r Row) Limb(name string, v word.Limb) Row {
	_ = r.w.SetLimb(name, v)
	return r
}

// Validate closes the row with ValidateRow.
func (r Row) Validate() error {
	return r.w.ValidateRow()
}

// PadAndValidate closes the row with PadAndValidateRow.
func (r Row) PadAndValidate() error {
	return r.w.PadAndValidateRow()
}
