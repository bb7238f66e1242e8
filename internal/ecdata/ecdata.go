// Package ecdata implements the elliptic curve precompile witness module.
//
// Each ECRECOVER, ECADD, ECMUL, ECPAIRING or P256VERIFY call becomes one
// Operation with a data phase (one limb of input per row) followed by a
// result phase. Input checks are delegated to the word comparison and
// modular arithmetic modules; every such call appears both in this table
// and in the callee's. The result rows are always present and TOTAL_SIZE
// tells whether they hold anything.
package ecdata

import (
	"fmt"
	"log/slog"

	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// Comparator is the part of the word comparison module used here.
type Comparator interface {
	LessThan(a, b word.Word) bool
	Equal(a, b word.Word) bool
}

// ModArith is the part of the modular arithmetic module used here.
type ModArith interface {
	AddMod(a, b, m word.Word) word.Word
	MulMod(a, b, m word.Word) word.Word
}

// Module is the elliptic curve precompile module.
type Module struct {
	*module.Base[*Operation]
	wcp Comparator
	ext ModArith
}

// New returns an empty module delegating to wcp and ext.
func New(wcp Comparator, ext ModArith) *Module {
	return &Module{
		Base: module.NewBase[*Operation](Name, Columns),
		wcp:  wcp,
		ext:  ext,
	}
}

// Call records one precompile call. Ids must strictly increase across the
// calls that survive rollback. returnData may be nil when the EVM's output
// is not known yet; attach it later with AttachReturnData. ECPAIRING call
// data that is empty or not a whole number of pairs is refused.
func (m *Module) Call(id uint64, kind opcode.Precompile, callData, returnData []byte) (module.Handle, error) {
	if !Supports(kind) {
		return module.Handle{}, fmt.Errorf("ecdata: unsupported precompile %s", kind)
	}
	if last := m.lastID(); id <= last {
		return module.Handle{}, module.NewInvariantError(Name, module.ErrCodeNonMonotonicID, "id %d after id %d", id, last)
	}
	if !validCallData(kind, callData) {
		return module.Handle{}, module.NewInvariantError(Name, module.ErrCodeMalformedCallData,
			"%s call %d with %d bytes of call data", kind, id, len(callData))
	}
	h, err := m.Record(newOperation(m.wcp, m.ext, id, kind, callData))
	if err != nil {
		return module.Handle{}, err
	}
	if returnData != nil {
		if err := m.AttachReturnData(h, returnData); err != nil {
			return module.Handle{}, err
		}
	}
	return h, nil
}

// AttachReturnData schedules the EVM's return data for the call behind h.
// It is applied when the module is finalized.
func (m *Module) AttachReturnData(h module.Handle, returnData []byte) error {
	return m.Defer(h, func(op *Operation) error {
		return op.attach(returnData)
	})
}

func (m *Module) lastID() uint64 {
	ops := m.Operations()
	if len(ops) == 0 {
		return 0
	}
	return ops[len(ops)-1].id
}

// RecordEvent handles precompile events for the elliptic curve precompiles.
// A pairing call with malformed call data fails in the EVM before the
// precompile runs and leaves no rows here.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	if ev.Kind != event.KindPrecompile || !Supports(ev.Precompile) {
		return module.Handle{}, false, nil
	}
	if !validCallData(ev.Precompile, ev.CallData) {
		slog.Debug("skipping malformed precompile call", "module", Name, "id", ev.ID,
			"precompile", ev.Precompile, "size", len(ev.CallData))
		return module.Handle{}, false, nil
	}
	h, err := m.Call(ev.ID, ev.Precompile, ev.CallData, ev.ReturnData)
	return h, err == nil, err
}
