// Package add implements the 256-bit addition module (ADD and SUB). Each
// call is one row.
package add

import (
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

// Name is the module name and column prefix.
const Name = "add"

const (
	colStamp    = "add.STAMP"
	colInst     = "add.INST"
	colArg1Hi   = "add.ARG_1_HI"
	colArg1Lo   = "add.ARG_1_LO"
	colArg2Hi   = "add.ARG_2_HI"
	colArg2Lo   = "add.ARG_2_LO"
	colResHi    = "add.RES_HI"
	colResLo    = "add.RES_LO"
	colOverflow = "add.OVERFLOW"
)

// Columns is the module's layout.
var Columns = trace.Layout{
	{Name: colStamp, Width: 4},
	{Name: colInst, Width: 1},
	{Name: colArg1Hi, Width: 16},
	{Name: colArg1Lo, Width: 16},
	{Name: colArg2Hi, Width: 16},
	{Name: colArg2Lo, Width: 16},
	{Name: colResHi, Width: 16},
	{Name: colResLo, Width: 16},
	{Name: colOverflow, Width: 1},
}.Headers()

// Operation is one addition or subtraction.
type Operation struct {
	inst     opcode.OpCode
	a, b     word.Word
	res      word.Word
	overflow bool
}

func newOperation(inst opcode.OpCode, a, b word.Word) *Operation {
	op := &Operation{inst: inst, a: a, b: b}
	if inst == opcode.ADD {
		op.res, op.overflow = word.AddCarry(a, b)
	} else {
		op.overflow = a.Cmp(b) < 0
		op.res = word.Sub(a, b)
	}
	return op
}

// RowCount is always 1.
func (op *Operation) RowCount() int { return 1 }

// Trace writes the single row. OVERFLOW is the carry for ADD and the borrow
// for SUB.
func (op *Operation) Trace(w *trace.Writer, stamp, _ uint64) error {
	return w.Row().
		Uint(colStamp, stamp).
		Uint(colInst, uint64(op.inst)).
		Limb(colArg1Hi, op.a.Hi()).
		Limb(colArg1Lo, op.a.Lo()).
		Limb(colArg2Hi, op.b.Hi()).
		Limb(colArg2Lo, op.b.Lo()).
		Limb(colResHi, op.res.Hi()).
		Limb(colResLo, op.res.Lo()).
		Bool(colOverflow, op.overflow).
		Validate()
}

// Module is the addition module.
type Module struct {
	*module.Base[*Operation]
}

// New returns an empty module.
func New() *Module {
	return &Module{Base: module.NewBase[*Operation](Name, Columns)}
}

// Add records and returns a + b mod 2^256.
func (m *Module) Add(a, b word.Word) word.Word {
	return m.call(opcode.ADD, a, b)
}

// Sub records and returns a - b mod 2^256.
func (m *Module) Sub(a, b word.Word) word.Word {
	return m.call(opcode.SUB, a, b)
}

func (m *Module) call(inst opcode.OpCode, a, b word.Word) word.Word {
	op := newOperation(inst, a, b)
	m.MustRecord(op)
	return op.res
}

// RecordEvent handles ADD and SUB.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	if ev.Kind != event.KindOpcode || (ev.Opcode != opcode.ADD && ev.Opcode != opcode.SUB) {
		return module.Handle{}, false, nil
	}
	h, err := m.Record(newOperation(ev.Opcode, ev.Arg(0), ev.Arg(1)))
	return h, err == nil, err
}
