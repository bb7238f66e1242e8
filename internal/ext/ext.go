// Package ext implements the extended modular arithmetic module (ADDMOD and
// MULMOD over 256-bit words). Each call is one row.
package ext

import (
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

// Name is the module name and column prefix.
const Name = "ext"

const (
	colStamp  = "ext.STAMP"
	colInst   = "ext.INST"
	colArg1Hi = "ext.ARG_1_HI"
	colArg1Lo = "ext.ARG_1_LO"
	colArg2Hi = "ext.ARG_2_HI"
	colArg2Lo = "ext.ARG_2_LO"
	colArg3Hi = "ext.ARG_3_HI"
	colArg3Lo = "ext.ARG_3_LO"
	colResHi  = "ext.RES_HI"
	colResLo  = "ext.RES_LO"
	colOli    = "ext.OLI"
)

// Columns is the module's layout.
var Columns = trace.Layout{
	{Name: colStamp, Width: 4},
	{Name: colInst, Width: 1},
	{Name: colArg1Hi, Width: 16},
	{Name: colArg1Lo, Width: 16},
	{Name: colArg2Hi, Width: 16},
	{Name: colArg2Lo, Width: 16},
	{Name: colArg3Hi, Width: 16},
	{Name: colArg3Lo, Width: 16},
	{Name: colResHi, Width: 16},
	{Name: colResLo, Width: 16},
	{Name: colOli, Width: 1},
}.Headers()

// Operation is one modular addition or multiplication.
type Operation struct {
	inst    opcode.OpCode
	a, b, m word.Word
	res     word.Word
}

// RowCount is always 1.
func (op *Operation) RowCount() int { return 1 }

// Trace writes the single row. OLI flags the trivial moduli 0 and 1, whose
// result is zero without any reduction.
func (op *Operation) Trace(w *trace.Writer, stamp, _ uint64) error {
	trivial := op.m.Cmp(word.FromUint64(1)) <= 0
	return w.Row().
		Uint(colStamp, stamp).
		Uint(colInst, uint64(op.inst)).
		Limb(colArg1Hi, op.a.Hi()).
		Limb(colArg1Lo, op.a.Lo()).
		Limb(colArg2Hi, op.b.Hi()).
		Limb(colArg2Lo, op.b.Lo()).
		Limb(colArg3Hi, op.m.Hi()).
		Limb(colArg3Lo, op.m.Lo()).
		Limb(colResHi, op.res.Hi()).
		Limb(colResLo, op.res.Lo()).
		Bool(colOli, trivial).
		Validate()
}

// Module is the extended modular arithmetic module.
type Module struct {
	*module.Base[*Operation]
}

// New returns an empty module.
func New() *Module {
	return &Module{Base: module.NewBase[*Operation](Name, Columns)}
}

// AddMod records and returns (a + b) mod m.
func (m *Module) AddMod(a, b, mod word.Word) word.Word {
	return m.call(opcode.ADDMOD, a, b, mod)
}

// MulMod records and returns (a * b) mod m.
func (m *Module) MulMod(a, b, mod word.Word) word.Word {
	return m.call(opcode.MULMOD, a, b, mod)
}

func (m *Module) call(inst opcode.OpCode, a, b, mod word.Word) word.Word {
	op := newOperation(inst, a, b, mod)
	m.MustRecord(op)
	return op.res
}

func newOperation(inst opcode.OpCode, a, b, mod word.Word) *Operation {
	op := &Operation{inst: inst, a: a, b: b, m: mod}
	if inst == opcode.ADDMOD {
		op.res = word.AddMod(a, b, mod)
	} else {
		op.res = word.MulMod(a, b, mod)
	}
	return op
}

// RecordEvent handles ADDMOD and MULMOD.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	if ev.Kind != event.KindOpcode || (ev.Opcode != opcode.ADDMOD && ev.Opcode != opcode.MULMOD) {
		return module.Handle{}, false, nil
	}
	h, err := m.Record(newOperation(ev.Opcode, ev.Arg(0), ev.Arg(1), ev.Arg(2)))
	return h, err == nil, err
}
