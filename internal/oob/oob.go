// Package oob implements the out-of-bounds module. It checks the bounds and
// gas conditions the EVM evaluates before an instruction or a precompile
// runs: jump destinations, copy ranges, call and create aborts, precompile
// pricing. Every chunk row makes at most one call into the Add, Mod or Wcp
// module and mirrors it into the OUTGOING_* columns so the tables link.
package oob

import (
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// Module is the out-of-bounds module.
type Module struct {
	*module.Base[*Operation]
	add Adder
	div Divider
	wcp Comparator
}

// New returns an empty module calling into the given collaborators.
func New(add Adder, div Divider, wcp Comparator) *Module {
	return &Module{Base: module.NewBase[*Operation](Name, Columns), add: add, div: div, wcp: wcp}
}

// RecordEvent records the chunks of an opcode event and returns the handle
// of the first one.
func (m *Module) RecordEvent(ev *event.Event) (module.Handle, bool, error) {
	hs, err := m.RecordPreOpcode(ev)
	if err != nil || len(hs) == 0 {
		return module.Handle{}, false, err
	}
	return hs[0], true, nil
}

// RecordPreOpcode records every chunk the instruction of ev needs before it
// executes. Events of no interest yield no handles.
func (m *Module) RecordPreOpcode(ev *event.Event) ([]module.Handle, error) {
	if ev.Kind != event.KindOpcode {
		return nil, nil
	}
	var r recorder
	r.m = m
	env := &ev.Env
	switch op := ev.Opcode; {
	case op == opcode.JUMP:
		c := m.chunk(JUMP)
		c.jump(ev.Arg(0), env.CodeSize)
		r.add(c)
	case op == opcode.JUMPI:
		c := m.chunk(JUMPI)
		c.jumpi(ev.Arg(0), ev.Arg(1), env.CodeSize)
		r.add(c)
	case op == opcode.RETURNDATACOPY:
		c := m.chunk(RDC)
		c.returnDataCopy(ev.Arg(1), ev.Arg(2), env.ReturnDataSize)
		r.add(c)
	case op == opcode.CALLDATALOAD:
		c := m.chunk(CDL)
		c.callDataLoad(ev.Arg(0), env.CallDataSize)
		r.add(c)
	case op == opcode.SSTORE:
		c := m.chunk(SSTORE)
		c.sstore(env.Gas)
		r.add(c)
	case op == opcode.RETURN && env.Deployment:
		c := m.chunk(DEPLOYMENT)
		c.deployment(ev.Arg(1))
		r.add(c)
	case op.IsCreate():
		c := m.chunk(CREATE)
		c.create(createEnv{
			value:        ev.Arg(0),
			balance:      env.Balance,
			nonce:        env.DeployedNonce,
			hasCode:      env.DeployedHasCode,
			depth:        env.Depth,
			creatorNonce: env.CreatorNonce,
		})
		r.add(c)
	case op.IsCall():
		m.recordCall(&r, ev)
	}
	return r.handles, r.err
}

// recordCall handles the CALL family. A value-bearing CALL in a static frame
// is checked by XCALL first; the call itself is only checked when the value
// is zero. Precompile chunks follow an unaborted call to a precompile.
func (m *Module) recordCall(r *recorder, ev *event.Event) {
	env := &ev.Env
	var value word.Word
	argsOffset := 2
	if ev.Opcode.HasValue() {
		value = ev.Arg(2)
		argsOffset = 3
	}
	if ev.Opcode == opcode.CALL && env.Static {
		c := m.chunk(XCALL)
		exception := c.xcall(value)
		r.add(c)
		if exception {
			return
		}
	}
	c := m.chunk(CALL)
	aborted := c.callFamily(value, env.Balance, env.Depth)
	r.add(c)
	if aborted {
		return
	}
	addr := ev.Arg(1).Bytes()
	var target [20]byte
	copy(target[:], addr[12:])
	p := opcode.PrecompileAt(target)
	if p == opcode.NotPrecompile {
		return
	}
	m.recordPrecompile(r, p, env.CalleeGas, ev.Arg(argsOffset+1), ev.Arg(argsOffset+3), ev.CallData)
}

func (m *Module) recordPrecompile(r *recorder, p opcode.Precompile, gas uint64, cds, rac word.Word, callData []byte) {
	switch p {
	case opcode.MODEXP:
		m.recordModexp(r, gas, cds, rac, callData)
	case opcode.BLAKE2F:
		c := m.chunk(BLAKE2F_CDS)
		valid := c.blakeCds(cds, rac)
		r.add(c)
		if !valid {
			return
		}
		input := window(callData, 0, blakeCallData)
		rounds := uint64(input[0])<<24 | uint64(input[1])<<16 | uint64(input[2])<<8 | uint64(input[3])
		c = m.chunk(BLAKE2F_PARAMS)
		c.blakeParams(gas, rounds, input[blakeCallData-1])
		r.add(c)
	default:
		inst, ok := precompileInstruction[p]
		if !ok {
			return
		}
		c := m.chunk(inst)
		c.precompile(p, gas, cds, rac)
		r.add(c)
	}
}

// recordModexp always emits the seven MODEXP chunks. Declared sizes above
// 512 bytes are traced as such; the leading exponent word is then read as
// zero.
func (m *Module) recordModexp(r *recorder, gas uint64, cds, rac word.Word, callData []byte) {
	input := callData
	if n := cds.Clamp(); n < uint64(len(input)) {
		input = input[:n]
	}
	h := parseModexpHeader(input)

	c := m.chunk(MODEXP_CDS)
	c.modexpCds(cds)
	r.add(c)

	c = m.chunk(MODEXP_XBS)
	c.modexpXbs(h.bbs, word.Zero, false)
	r.add(c)
	c = m.chunk(MODEXP_XBS)
	c.modexpXbs(h.ebs, word.Zero, false)
	r.add(c)
	c = m.chunk(MODEXP_XBS)
	c.modexpXbs(h.mbs, h.bbs, true)
	r.add(c)

	c = m.chunk(MODEXP_LEAD)
	c.modexpLead(h.bbs, cds, h.ebs)
	r.add(c)

	maxSize := h.mbs
	if h.bbs.Cmp(h.mbs) > 0 {
		maxSize = h.bbs
	}
	c = m.chunk(MODEXP_PRICING)
	c.modexpPricing(gas, rac, exponentLog(input, h), maxSize)
	r.add(c)

	c = m.chunk(MODEXP_EXTRACT)
	c.modexpExtract(cds, h.bbs, h.ebs, h.mbs)
	r.add(c)
}

// recorder collects chunk handles and keeps the first error.
type recorder struct {
	m       *Module
	handles []module.Handle
	err     error
}

func (r *recorder) add(c *chunk) {
	if r.err != nil {
		return
	}
	h, err := r.m.Record(c.op)
	if err != nil {
		r.err = err
		return
	}
	r.handles = append(r.handles, h)
}
