package shf

import (
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

const (
	ctMaxOneLine  = 0
	ctMaxVariable = word.LimbSize - 1
)

// Operation is one shift. arg1 is the shift amount and arg2 the shifted
// value, in stack order.
type Operation struct {
	inst opcode.OpCode
	arg1 word.Word
	arg2 word.Word
	res  word.Word

	oneLine bool
	known   bool
	neg     bool
	lsb     byte
	low3    byte
	mu      byte
	shb     [5]word.Word
	bits    [16]bool
}

func newOperation(inst opcode.OpCode, amount, value word.Word) *Operation {
	op := &Operation{inst: inst, arg1: amount, arg2: value}
	op.res = Compute(inst, value, amount)

	saturated := amount.Cmp(word.FromUint64(256)) >= 0
	op.oneLine = saturated && inst != opcode.SAR
	op.known = saturated && inst == opcode.SAR
	op.neg = value.IsNegative()

	lo := amount.Lo()
	op.lsb = lo[word.LimbSize-1]
	op.low3 = op.lsb % 8
	if inst == opcode.SHL {
		op.mu = 8 - op.low3
	} else {
		op.mu = op.low3
	}

	for k := 3; k <= 7; k++ {
		n := uint64(op.lsb & byte(1<<(k+1)-1))
		op.shb[k-3] = shiftBy(inst, value, n)
	}

	msb := value.Byte(0)
	for i := 0; i < 8; i++ {
		op.bits[i] = msb&(0x80>>i) != 0
		op.bits[8+i] = op.lsb&(0x80>>i) != 0
	}
	return op
}

func shiftBy(inst opcode.OpCode, value word.Word, n uint64) word.Word {
	switch inst {
	case opcode.SHL:
		return value.Shl(n)
	case opcode.SHR:
		return value.Shr(n)
	default:
		return value.Sar(n)
	}
}

// Compute evaluates a shift of value by amount without recording anything.
// Amounts of 256 and above saturate.
func Compute(inst opcode.OpCode, value, amount word.Word) word.Word {
	return shiftBy(inst, value, amount.Clamp())
}

// Result is the shifted word.
func (op *Operation) Result() word.Word {
	return op.res
}

// RowCount is 1 for saturating SHL/SHR, 16 otherwise.
func (op *Operation) RowCount() int {
	return op.ctMax() + 1
}

func (op *Operation) ctMax() int {
	if op.oneLine {
		return ctMaxOneLine
	}
	return ctMaxVariable
}

// Trace writes one row per byte position of the limbs.
func (op *Operation) Trace(w *trace.Writer, stamp, _ uint64) error {
	a1h, a1l := op.arg1.Hi(), op.arg1.Lo()
	a2h, a2l := op.arg2.Hi(), op.arg2.Lo()
	rh, rl := op.res.Hi(), op.res.Lo()
	plateau := int(op.lsb>>3) & 0x0f
	ones := byte(0xff << (8 - op.mu))

	for ct := 0; ct <= op.ctMax(); ct++ {
		row := w.Row().
			Bytes(colAcc1, a1l[:ct+1]).
			Bytes(colAcc2, a2h[:ct+1]).
			Bytes(colAcc3, a2l[:ct+1]).
			Bytes(colAcc4, rh[:ct+1]).
			Bytes(colAcc5, rl[:ct+1]).
			Limb(colArg1Hi, a1h).
			Limb(colArg1Lo, a1l).
			Limb(colArg2Hi, a2h).
			Limb(colArg2Lo, a2l).
			Bool(colBit1, ct >= plateau).
			Bool(colBit2, ct >= word.LimbSize-plateau).
			Bool(colBit3, ct >= 8).
			Bool(colBit4, ct == ctMaxVariable).
			Bool(colBits, op.bits[ct]).
			Bytes(colByte1, a1l[ct:ct+1]).
			Bytes(colByte2, a2h[ct:ct+1]).
			Bytes(colByte3, a2l[ct:ct+1]).
			Bytes(colByte4, rh[ct:ct+1]).
			Bytes(colByte5, rl[ct:ct+1]).
			Uint(colCounter, uint64(ct)).
			Uint(colInst, uint64(op.inst)).
			Bool(colIomf, true).
			Bool(colKnown, op.known).
			Uint(colLasHi, uint64(a2h[ct]<<(8-op.mu))).
			Uint(colLasLo, uint64(a2l[ct]<<(8-op.mu))).
			Uint(colLow3, uint64(op.low3)).
			Uint(colMicroShift, uint64(op.mu)).
			Bool(colNeg, op.neg).
			Bool(colOneLine, op.oneLine).
			Uint(colOnes, uint64(ones)).
			Limb(colResHi, rh).
			Limb(colResLo, rl).
			Uint(colRapHi, uint64(a2h[ct]>>op.mu)).
			Uint(colRapLo, uint64(a2l[ct]>>op.mu)).
			Bool(colShiftDirection, op.inst != opcode.SHL).
			Uint(colStamp, stamp)
		for k := 3; k <= 7; k++ {
			hi, lo := op.shb[k-3].Hi(), op.shb[k-3].Lo()
			row = row.
				Bool(bitBColumns[k-3], op.lsb&(1<<k) != 0).
				Bytes(shbColumns[k-3][0], hi[ct:ct+1]).
				Bytes(shbColumns[k-3][1], lo[ct:ct+1])
		}
		if err := row.Validate(); err != nil {
			return err
		}
	}
	return nil
}

var bitBColumns = [5]string{colBitB3, colBitB4, colBitB5, colBitB6, colBitB7}

var shbColumns = [5][2]string{
	{colShb3Hi, colShb3Lo},
	{colShb4Hi, colShb4Lo},
	{colShb5Hi, colShb5Lo},
	{colShb6Hi, colShb6Lo},
	{colShb7Hi, colShb7Lo},
}
