// Package shf implements the shift module (SHL, SHR, SAR).
//
// A shift is expressed to the solver as a composition of byte-granular
// shifts: each of the sixteen rows exposes one byte of both limbs, the
// shift-by-b variants of the value and the suffix/prefix split of the
// current byte at the micro shift parameter. SHL and SHR by 256 or more
// need no decomposition and take a single row.
package shf

import (
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// Module is the shift module.
type Module struct {
	*module.Base[*Operation]
}

// New returns an empty module.
func New() *Module {
	return &Module{Base: module.NewBase[*Operation](Name, Columns)}
}

// Shift records and returns value shifted by amount.
func (m *Module) Shift(inst opcode.OpCode, value, amount word.Word) word.Word {
	op := newOperation(inst, amount, value)
	m.MustRecord(op)
	return op.res
}

// RecordEvent handles SHL, SHR and SAR. The stack holds the amount on top
// and the value below it.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	if ev.Kind != event.KindOpcode {
		return module.Handle{}, false, nil
	}
	switch ev.Opcode {
	case opcode.SHL, opcode.SHR, opcode.SAR:
	default:
		return module.Handle{}, false, nil
	}
	h, err := m.Record(newOperation(ev.Opcode, ev.Arg(0), ev.Arg(1)))
	return h, err == nil, err
}
