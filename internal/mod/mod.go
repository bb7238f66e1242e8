// Package mod implements the division module (DIV, MOD, SDIV, SMOD). Each
// call is one row; a zero divisor yields zero as in the EVM.
package mod

import (
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

// Name is the module name and column prefix.
const Name = "mod"

const (
	colStamp  = "mod.STAMP"
	colInst   = "mod.INST"
	colArg1Hi = "mod.ARG_1_HI"
	colArg1Lo = "mod.ARG_1_LO"
	colArg2Hi = "mod.ARG_2_HI"
	colArg2Lo = "mod.ARG_2_LO"
	colResHi  = "mod.RES_HI"
	colResLo  = "mod.RES_LO"
	colSigned = "mod.SIGNED"
	colOli    = "mod.OLI"
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
	{Name: colSigned, Width: 1},
	{Name: colOli, Width: 1},
}.Headers()

// Operation is one division or remainder.
type Operation struct {
	inst opcode.OpCode
	a, b word.Word
	res  word.Word
}

func newOperation(inst opcode.OpCode, a, b word.Word) *Operation {
	op := &Operation{inst: inst, a: a, b: b}
	switch inst {
	case opcode.DIV:
		op.res = word.Div(a, b)
	case opcode.MOD:
		op.res = word.Mod(a, b)
	case opcode.SDIV:
		op.res = word.SDiv(a, b)
	case opcode.SMOD:
		op.res = word.SMod(a, b)
	}
	return op
}

// RowCount is always 1.
func (op *Operation) RowCount() int { return 1 }

// Trace writes the single row. OLI marks a zero divisor.
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
		Bool(colSigned, op.inst == opcode.SDIV || op.inst == opcode.SMOD).
		Bool(colOli, op.b.IsZero()).
		Validate()
}

// Module is the division module.
type Module struct {
	*module.Base[*Operation]
}

// New returns an empty module.
func New() *Module {
	return &Module{Base: module.NewBase[*Operation](Name, Columns)}
}

// Div records and returns a / b.
func (m *Module) Div(a, b word.Word) word.Word {
	return m.call(opcode.DIV, a, b)
}

// Mod records and returns a mod b.
func (m *Module) Mod(a, b word.Word) word.Word {
	return m.call(opcode.MOD, a, b)
}

func (m *Module) call(inst opcode.OpCode, a, b word.Word) word.Word {
	op := newOperation(inst, a, b)
	m.MustRecord(op)
	return op.res
}

// RecordEvent handles DIV, MOD, SDIV and SMOD.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	if ev.Kind != event.KindOpcode {
		return module.Handle{}, false, nil
	}
	switch ev.Opcode {
	case opcode.DIV, opcode.MOD, opcode.SDIV, opcode.SMOD:
	default:
		return module.Handle{}, false, nil
	}
	h, err := m.Record(newOperation(ev.Opcode, ev.Arg(0), ev.Arg(1)))
	return h, err == nil, err
}
