package oob

import (
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

// Adder is the addition module as seen from Oob.
type Adder interface {
	Add(a, b word.Word) word.Word
}

// Divider is the division module as seen from Oob.
type Divider interface {
	Div(a, b word.Word) word.Word
	Mod(a, b word.Word) word.Word
}

// Comparator is the word-comparison module as seen from Oob.
type Comparator interface {
	LessThan(a, b word.Word) bool
	GreaterThan(a, b word.Word) bool
	Equal(a, b word.Word) bool
	IsZero(a word.Word) bool
}

type target uint8

const (
	noCall target = iota
	addCall
	modCall
	wcpCall
)

// request is the exogenous call of one chunk row.
type request struct {
	target     target
	inst       opcode.OpCode
	arg1, arg2 word.Word
	res        word.Limb
}

// Operation is one chunk: CtMax+1 rows sharing an instruction and its DATA.
type Operation struct {
	inst  Instruction
	data  [9]word.Limb
	calls []request
}

// Instruction returns the chunk's OOB_INST.
func (op *Operation) Instruction() Instruction { return op.inst }

// Data returns DATA_i, 1-based.
func (op *Operation) Data(i int) word.Limb { return op.data[i-1] }

// RowCount is CtMax+1.
func (op *Operation) RowCount() int { return op.inst.CtMax() + 1 }

// Trace writes one row per counter value. Rows past the last recorded call
// are no-call rows.
func (op *Operation) Trace(w *trace.Writer, stamp, _ uint64) error {
	info := instructions[op.inst]
	for ct := 0; ct <= info.ctMax; ct++ {
		var c request
		if ct < len(op.calls) {
			c = op.calls[ct]
		}
		row := w.Row().
			Bool(colAddFlag, c.target == addCall).
			Uint(colCt, uint64(ct)).
			Uint(colCtMax, uint64(info.ctMax)).
			Bool(colModFlag, c.target == modCall).
			Bool(colWcpFlag, c.target == wcpCall).
			Uint(colOobInst, uint64(op.inst)).
			Limb(colOutData1, c.arg1.Hi()).
			Limb(colOutData2, c.arg1.Lo()).
			Limb(colOutData3, c.arg2.Hi()).
			Limb(colOutData4, c.arg2.Lo()).
			Uint(colOutInst, uint64(c.inst)).
			Limb(colOutResLo, c.res).
			Uint(colStamp, stamp)
		for i, col := range dataColumns {
			row = row.Limb(col, op.data[i])
		}
		for _, col := range flagColumns {
			row = row.Bool(col, col == info.flag)
		}
		if err := row.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// chunk builds an Operation, issuing its calls in row order.
type chunk struct {
	op  *Operation
	add Adder
	mod Divider
	wcp Comparator
}

func (m *Module) chunk(inst Instruction) *chunk {
	return &chunk{op: &Operation{inst: inst}, add: m.add, mod: m.div, wcp: m.wcp}
}

func (c *chunk) push(t target, inst opcode.OpCode, a, b word.Word, res word.Limb) {
	c.op.calls = append(c.op.calls, request{target: t, inst: inst, arg1: a, arg2: b, res: res})
}

func (c *chunk) lt(a, b word.Word) bool {
	r := c.wcp.LessThan(a, b)
	c.push(wcpCall, opcode.LT, a, b, boolLimb(r))
	return r
}

func (c *chunk) gt(a, b word.Word) bool {
	r := c.wcp.GreaterThan(a, b)
	c.push(wcpCall, opcode.GT, a, b, boolLimb(r))
	return r
}

func (c *chunk) eq(a, b word.Word) bool {
	r := c.wcp.Equal(a, b)
	c.push(wcpCall, opcode.EQ, a, b, boolLimb(r))
	return r
}

func (c *chunk) isZero(a word.Word) bool {
	r := c.wcp.IsZero(a)
	c.push(wcpCall, opcode.ISZERO, a, word.Zero, boolLimb(r))
	return r
}

// sum leaves OUTGOING_RES_LO at zero; only the operands are linked.
func (c *chunk) sum(a, b word.Word) word.Word {
	r := c.add.Add(a, b)
	c.push(addCall, opcode.ADD, a, b, word.Limb{})
	return r
}

func (c *chunk) div(a, b word.Word) word.Word {
	r := c.mod.Div(a, b)
	c.push(modCall, opcode.DIV, a, b, r.Lo())
	return r
}

func (c *chunk) rem(a, b word.Word) word.Word {
	r := c.mod.Mod(a, b)
	c.push(modCall, opcode.MOD, a, b, r.Lo())
	return r
}

func (c *chunk) skip() {
	c.push(noCall, 0, word.Zero, word.Zero, word.Limb{})
}

func (c *chunk) set(i int, l word.Limb) {
	c.op.data[i-1] = l
}

func (c *chunk) setWord(hi, lo int, w word.Word) {
	c.set(hi, w.Hi())
	c.set(lo, w.Lo())
}

func (c *chunk) setUint(i int, v uint64) {
	c.set(i, word.LimbFromUint64(v))
}

func (c *chunk) setBool(i int, v bool) {
	c.set(i, boolLimb(v))
}

func boolLimb(b bool) word.Limb {
	if b {
		return word.LimbFromUint64(1)
	}
	return word.Limb{}
}

func u(v uint64) word.Word { return word.FromUint64(v) }

// low keeps the low limb of w.
func low(w word.Word) word.Word { return word.FromLimbs(word.Limb{}, w.Lo()) }
