package ecdata

import (
	"bytes"
	"encoding/binary"
	"log/slog"

	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/word"
)

type wcpCall struct {
	inst opcode.OpCode
	a, b word.Word
	res  bool
}

type extCall struct {
	inst       opcode.OpCode
	a, b, m, r word.Word
}

// row holds the per-row state filled while the operation is built.
type row struct {
	limb       word.Limb
	hurdle     bool
	infinity   bool
	notOnG2    bool
	notOnG2Acc bool
	trivial    bool
	wcp        *wcpCall
	ext        *extCall
}

// Operation is one elliptic curve precompile call.
type Operation struct {
	id       uint64
	kind     opcode.Precompile
	callData []byte
	pairs    int

	dataRows   int
	resultRows int
	rows       []row

	icp           bool
	success       bool
	notOnG2AccMax bool

	// output is the precompile's return data as computed here; returnData
	// is the EVM's, once attached.
	output     []byte
	returnData []byte
	attached   bool

	wcp Comparator
	ext ModArith
}

func newOperation(wcp Comparator, ext ModArith, id uint64, kind opcode.Precompile, callData []byte) *Operation {
	l := layouts[kind]
	op := &Operation{id: id, kind: kind, wcp: wcp, ext: ext}
	op.callData, op.pairs = padCallData(kind, callData)
	op.dataRows = l.dataRows
	if kind == opcode.ECPAIRING {
		op.dataRows = l.dataRows * op.pairs
	}
	op.resultRows = l.resultRows
	op.rows = make([]row, op.dataRows+op.resultRows)
	for i := range op.rows {
		op.rows[i].trivial = true
	}

	switch kind {
	case opcode.ECRECOVER:
		op.recover()
	case opcode.ECADD:
		op.add()
	case opcode.ECMUL:
		op.mul()
	case opcode.ECPAIRING:
		op.pairing()
	case opcode.P256VERIFY:
		op.p256Verify()
	}
	op.setResultLimbs(op.output)
	return op
}

// ID is the upstream id of the call.
func (op *Operation) ID() uint64 { return op.id }

// Kind is the precompile.
func (op *Operation) Kind() opcode.Precompile { return op.kind }

// InternalChecksPassed reports whether every input check held.
func (op *Operation) InternalChecksPassed() bool { return op.icp }

// SuccessBit reports whether the precompile call succeeds.
func (op *Operation) SuccessBit() bool { return op.success }

// Output is the return data computed for the call. It is empty on failure.
func (op *Operation) Output() []byte { return op.output }

// RowCount is data rows plus result rows.
func (op *Operation) RowCount() int { return len(op.rows) }

func (op *Operation) callWcp(i int, inst opcode.OpCode, a, b word.Word) bool {
	var res bool
	if inst == opcode.EQ {
		res = op.wcp.Equal(a, b)
	} else {
		res = op.wcp.LessThan(a, b)
	}
	op.rows[i].wcp = &wcpCall{inst: inst, a: a, b: b, res: res}
	return res
}

func (op *Operation) callExt(i int, inst opcode.OpCode, a, b, m word.Word) word.Word {
	var r word.Word
	if inst == opcode.ADDMOD {
		r = op.ext.AddMod(a, b, m)
	} else {
		r = op.ext.MulMod(a, b, m)
	}
	op.rows[i].ext = &extCall{inst: inst, a: a, b: b, m: m, r: r}
	return r
}

func (op *Operation) setLimbs(start int, words ...word.Word) {
	for j, w := range words {
		op.rows[start+2*j].limb = w.Hi()
		op.rows[start+2*j+1].limb = w.Lo()
	}
}

// setResultLimbs fills the result rows from return data, right-padded to
// the result size.
func (op *Operation) setResultLimbs(data []byte) {
	buf := make([]byte, op.resultRows*word.LimbSize)
	copy(buf, data)
	for j := 0; j < op.resultRows; j++ {
		copy(op.rows[op.dataRows+j].limb[:], buf[j*word.LimbSize:(j+1)*word.LimbSize])
	}
}

// attach records the EVM's return data. It is what gets traced; a mismatch
// with the computed output is reported but not fatal.
func (op *Operation) attach(returnData []byte) error {
	op.returnData = bytes.Clone(returnData)
	op.attached = true
	if !bytes.Equal(op.returnData, op.output) {
		slog.Warn("precompile return data differs from computed result",
			"precompile", op.kind.String(),
			"id", op.id,
			"computed", len(op.output),
			"returned", len(op.returnData))
		op.setResultLimbs(op.returnData)
	}
	return nil
}

// Trace writes the data rows then the result rows.
func (op *Operation) Trace(w *trace.Writer, stamp, previousID uint64) error {
	if op.id <= previousID {
		return module.NewInvariantError(Name, module.ErrCodeNonMonotonicID, "id %d follows id %d", op.id, previousID)
	}
	gap := op.id - previousID - 1
	if gap > 0xffffffff {
		return module.NewInvariantError(Name, module.ErrCodeNonMonotonicID, "id gap %d exceeds %d bytes", gap, deltaBytes)
	}
	var delta [deltaBytes]byte
	binary.BigEndian.PutUint32(delta[:], uint32(gap))

	l := layouts[op.kind]
	isPairing := op.kind == opcode.ECPAIRING

	var (
		ct                 int
		small, large       bool
		smallInf, largeInf bool
	)
	for i := range op.rows {
		r := &op.rows[i]
		isData := i < op.dataRows
		if isPairing && isData && ct == 0 && !small && !large {
			small = true
			smallInf = op.rows[i].infinity
			largeInf = op.rows[i+ctMaxSmallPoint+1].infinity
		}

		// G2 membership only matters once every input check passed.
		accMax := isPairing && isData && op.notOnG2AccMax && op.icp
		var g2Required bool
		if accMax {
			g2Required = large && !largeInf && r.notOnG2
		} else {
			g2Required = large && !largeInf && smallInf
		}
		g2Required = g2Required && op.icp
		acceptable := isPairing && op.success && !accMax && !largeInf && !smallInf

		index, indexMax, totalSize, phase := i, op.dataRows-1, l.dataSize*max(op.pairs, 1), l.dataPhase
		if !isData {
			index, indexMax, totalSize, phase = i-op.dataRows, op.resultRows-1, 0, l.resultPhase
			if op.success {
				totalSize = l.resultSize
			}
		}
		ctMax := 0
		switch {
		case small:
			ctMax = ctMaxSmallPoint
		case large:
			ctMax = ctMaxLargePoint
		}
		accPairings := 0
		if isPairing && isData {
			accPairings = 1 + i/pairingDataRows
		}
		var byteDelta []byte
		if i < deltaBytes {
			byteDelta = delta[i : i+1]
		}

		b := w.Row().
			Uint(colAccPairings, uint64(accPairings)).
			Bool(colAcceptablePair, acceptable).
			Bytes(colByteDelta, byteDelta).
			Bool(colSelectorEcadd, op.kind == opcode.ECADD && op.icp).
			Bool(colSelectorEcmul, op.kind == opcode.ECMUL && op.icp).
			Bool(colSelectorEcpairing, acceptable).
			Bool(colSelectorEcrecover, op.kind == opcode.ECRECOVER && op.icp).
			Bool(colSelectorG2, g2Required).
			Bool(colSelectorP256, op.kind == opcode.P256VERIFY && op.icp).
			Uint(colCt, uint64(ct)).
			Uint(colCtMax, uint64(ctMax)).
			Bool(colG2TestRequired, g2Required).
			Bool(colHurdle, r.hurdle).
			Uint(colID, op.id).
			Uint(colIndex, uint64(index)).
			Uint(colIndexMax, uint64(indexMax)).
			Bool(colICP, op.icp).
			Bool(colIsEcaddData, op.kind == opcode.ECADD && isData).
			Bool(colIsEcaddResult, op.kind == opcode.ECADD && !isData).
			Bool(colIsEcmulData, op.kind == opcode.ECMUL && isData).
			Bool(colIsEcmulResult, op.kind == opcode.ECMUL && !isData).
			Bool(colIsEcpairingData, isPairing && isData).
			Bool(colIsEcpairingResult, isPairing && !isData).
			Bool(colIsEcrecoverData, op.kind == opcode.ECRECOVER && isData).
			Bool(colIsEcrecoverResult, op.kind == opcode.ECRECOVER && !isData).
			Bool(colIsInfinity, r.infinity).
			Bool(colIsLargePoint, large).
			Bool(colIsP256Data, op.kind == opcode.P256VERIFY && isData).
			Bool(colIsP256Result, op.kind == opcode.P256VERIFY && !isData).
			Bool(colIsSmallPoint, small).
			Limb(colLimb, r.limb).
			Bool(colNotOnG2, r.notOnG2 && op.icp).
			Bool(colNotOnG2Acc, r.notOnG2Acc && op.icp).
			Bool(colNotOnG2AccMax, accMax).
			Bool(colTrivialPairing, isPairing && isData && r.trivial).
			Uint(colPhase, phase).
			Uint(colStamp, stamp).
			Bool(colSuccessBit, op.success).
			Uint(colTotalPairings, uint64(op.pairs)).
			Uint(colTotalSize, uint64(totalSize))
		wc, xc := wcpCall{}, extCall{}
		if r.wcp != nil {
			wc = *r.wcp
		}
		if r.ext != nil {
			xc = *r.ext
		}
		err := b.
			Bool(colWcpFlag, r.wcp != nil).
			Uint(colWcpInst, uint64(wc.inst)).
			Limb(colWcpArg1Hi, wc.a.Hi()).
			Limb(colWcpArg1Lo, wc.a.Lo()).
			Limb(colWcpArg2Hi, wc.b.Hi()).
			Limb(colWcpArg2Lo, wc.b.Lo()).
			Bool(colWcpRes, wc.res).
			Bool(colExtFlag, r.ext != nil).
			Uint(colExtInst, uint64(xc.inst)).
			Limb(colExtArg1Hi, xc.a.Hi()).
			Limb(colExtArg1Lo, xc.a.Lo()).
			Limb(colExtArg2Hi, xc.b.Hi()).
			Limb(colExtArg2Lo, xc.b.Lo()).
			Limb(colExtArg3Hi, xc.m.Hi()).
			Limb(colExtArg3Lo, xc.m.Lo()).
			Limb(colExtResHi, xc.r.Hi()).
			Limb(colExtResLo, xc.r.Lo()).
			Validate()
		if err != nil {
			return err
		}

		if isPairing && isData {
			ct++
			switch {
			case small && ct == ctMaxSmallPoint+1:
				small, large, ct = false, true, 0
			case large && ct == ctMaxLargePoint+1:
				large, ct = false, 0
				smallInf, largeInf = false, false
			}
		}
	}
	return nil
}
