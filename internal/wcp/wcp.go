// Package wcp implements the word comparison module.
//
// Every comparison, whether it comes from an LT/GT/SLT/SGT/EQ/ISZERO opcode
// or from another module's exogenous call, adds one Operation. EQ and ISZERO
// take a single row; the ordering instructions take sixteen, one per byte of
// a limb, so the solver can rebuild both limbs byte by byte.
package wcp

import (
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// Module is the word comparison module.
type Module struct {
	*module.Base[*Operation]
}

// New returns an empty module.
func New() *Module {
	return &Module{Base: module.NewBase[*Operation](Name, Columns)}
}

// LessThan records and returns a < b.
func (m *Module) LessThan(a, b word.Word) bool {
	return m.call(opcode.LT, a, b)
}

// GreaterThan records and returns a > b.
func (m *Module) GreaterThan(a, b word.Word) bool {
	return m.call(opcode.GT, a, b)
}

// SignedLessThan records and returns a < b in two's complement.
func (m *Module) SignedLessThan(a, b word.Word) bool {
	return m.call(opcode.SLT, a, b)
}

// SignedGreaterThan records and returns a > b in two's complement.
func (m *Module) SignedGreaterThan(a, b word.Word) bool {
	return m.call(opcode.SGT, a, b)
}

// Equal records and returns a == b.
func (m *Module) Equal(a, b word.Word) bool {
	return m.call(opcode.EQ, a, b)
}

// IsZero records and returns a == 0.
func (m *Module) IsZero(a word.Word) bool {
	return m.call(opcode.ISZERO, a, word.Zero)
}

// LessOrEqual records and returns a <= b.
func (m *Module) LessOrEqual(a, b word.Word) bool {
	return m.call(opcode.LEQ, a, b)
}

// GreaterOrEqual records and returns a >= b.
func (m *Module) GreaterOrEqual(a, b word.Word) bool {
	return m.call(opcode.GEQ, a, b)
}

func (m *Module) call(inst opcode.OpCode, a, b word.Word) bool {
	op := newOperation(inst, a, b)
	m.MustRecord(op)
	return op.result
}

// RecordEvent handles the comparison opcodes.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	if ev.Kind != event.KindOpcode {
		return module.Handle{}, false, nil
	}
	var op *Operation
	switch ev.Opcode {
	case opcode.LT, opcode.GT, opcode.SLT, opcode.SGT, opcode.EQ:
		op = newOperation(ev.Opcode, ev.Arg(0), ev.Arg(1))
	case opcode.ISZERO:
		op = newOperation(ev.Opcode, ev.Arg(0), word.Zero)
	default:
		return module.Handle{}, false, nil
	}
	h, err := m.Record(op)
	return h, err == nil, err
}
