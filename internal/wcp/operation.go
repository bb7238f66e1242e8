package wcp

import (
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

const (
	ctMaxOneLine  = 0
	ctMaxVariable = word.LimbSize - 1
)

// Operation is one comparison. All derived fields are fixed at construction.
type Operation struct {
	inst   opcode.OpCode
	arg1   word.Word
	arg2   word.Word
	result bool

	oneLine bool
	neg1    bool
	neg2    bool
	bit1    bool
	bit2    bool
	bit3    bool
	bit4    bool
	adjHi   word.Limb
	adjLo   word.Limb
	bits    [16]bool
}

func newOperation(inst opcode.OpCode, arg1, arg2 word.Word) *Operation {
	op := &Operation{inst: inst, arg1: arg1, arg2: arg2}
	op.result = Compute(inst, arg1, arg2)
	op.oneLine = inst == opcode.EQ || inst == opcode.ISZERO

	a1h, a1l := arg1.Hi(), arg1.Lo()
	a2h, a2l := arg2.Hi(), arg2.Lo()
	op.bit1 = a1h == a2h
	op.bit2 = a1l == a2l
	op.bit3 = a1h.Cmp(a2h) > 0
	op.bit4 = a1l.Cmp(a2l) > 0
	op.adjHi = adjust(a1h, a2h, op.bit3)
	op.adjLo = adjust(a1l, a2l, op.bit4)

	msb1, msb2 := arg1.Byte(0), arg2.Byte(0)
	op.neg1 = msb1&0x80 != 0
	op.neg2 = msb2&0x80 != 0
	for i := 0; i < 8; i++ {
		op.bits[i] = msb1&(0x80>>i) != 0
		op.bits[8+i] = msb2&(0x80>>i) != 0
	}
	return op
}

// adjust returns a-b-1 when a > b and b-a otherwise. Both results fit a limb
// and are what the solver range-checks to prove strict ordering.
func adjust(a, b word.Limb, aGreater bool) word.Limb {
	x, y := a.Word(), b.Word()
	if aGreater {
		return word.Sub(word.Sub(x, y), word.FromUint64(1)).Lo()
	}
	return word.Sub(y, x).Lo()
}

// Compute evaluates inst on two words without recording anything.
func Compute(inst opcode.OpCode, a, b word.Word) bool {
	switch inst {
	case opcode.LT:
		return a.Cmp(b) < 0
	case opcode.GT:
		return a.Cmp(b) > 0
	case opcode.SLT:
		return a.SignedCmp(b) < 0
	case opcode.SGT:
		return a.SignedCmp(b) > 0
	case opcode.EQ:
		return a == b
	case opcode.ISZERO:
		return a.IsZero()
	case opcode.LEQ:
		return a.Cmp(b) <= 0
	case opcode.GEQ:
		return a.Cmp(b) >= 0
	}
	return false
}

// Result is the comparison outcome.
func (op *Operation) Result() bool {
	return op.result
}

// Instruction returns the comparison instruction.
func (op *Operation) Instruction() opcode.OpCode {
	return op.inst
}

// RowCount is 1 for EQ and ISZERO, 16 otherwise.
func (op *Operation) RowCount() int {
	return op.ctMax() + 1
}

func (op *Operation) ctMax() int {
	if op.oneLine {
		return ctMaxOneLine
	}
	return ctMaxVariable
}

// Trace writes one row per byte position.
func (op *Operation) Trace(w *trace.Writer, stamp, _ uint64) error {
	a1h, a1l := op.arg1.Hi(), op.arg1.Lo()
	a2h, a2l := op.arg2.Hi(), op.arg2.Lo()
	ctMax := op.ctMax()

	for ct := 0; ct <= ctMax; ct++ {
		err := w.Row().
			Bytes(colAcc1, a1h[:ct+1]).
			Bytes(colAcc2, a1l[:ct+1]).
			Bytes(colAcc3, a2h[:ct+1]).
			Bytes(colAcc4, a2l[:ct+1]).
			Bytes(colAcc5, op.adjHi[:ct+1]).
			Bytes(colAcc6, op.adjLo[:ct+1]).
			Limb(colArg1Hi, a1h).
			Limb(colArg1Lo, a1l).
			Limb(colArg2Hi, a2h).
			Limb(colArg2Lo, a2l).
			Bool(colBit1, op.bit1).
			Bool(colBit2, op.bit2).
			Bool(colBit3, op.bit3).
			Bool(colBit4, op.bit4).
			Bool(colBits, op.bits[ct]).
			Bytes(colByte1, a1h[ct:ct+1]).
			Bytes(colByte2, a1l[ct:ct+1]).
			Bytes(colByte3, a2h[ct:ct+1]).
			Bytes(colByte4, a2l[ct:ct+1]).
			Bytes(colByte5, op.adjHi[ct:ct+1]).
			Bytes(colByte6, op.adjLo[ct:ct+1]).
			Uint(colCounter, uint64(ct)).
			Uint(colCtMax, uint64(ctMax)).
			Uint(colInst, uint64(op.inst)).
			Bool(colIsEq, op.inst == opcode.EQ).
			Bool(colIsGeq, op.inst == opcode.GEQ).
			Bool(colIsGt, op.inst == opcode.GT).
			Bool(colIsIszero, op.inst == opcode.ISZERO).
			Bool(colIsLeq, op.inst == opcode.LEQ).
			Bool(colIsLt, op.inst == opcode.LT).
			Bool(colIsSgt, op.inst == opcode.SGT).
			Bool(colIsSlt, op.inst == opcode.SLT).
			Bool(colNeg1, op.neg1).
			Bool(colNeg2, op.neg2).
			Bool(colOneLine, op.oneLine).
			Bool(colResult, op.result).
			Bool(colVariableLen, !op.oneLine).
			Uint(colStamp, stamp).
			Validate()
		if err != nil {
			return err
		}
	}
	return nil
}
