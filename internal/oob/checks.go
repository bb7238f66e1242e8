package oob

import (
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

const (
	maxCallDepth     = 1024
	maxCodeSize      = 24576
	callStipend      = 2300
	maxNonce         = ^uint64(0)
	blakeCallData    = 213
	pairSize         = 192
	pairingBaseGas   = 45000
	pairingPerPair   = 34000
	modexpMinGas     = 200
	modexpQuadDiv    = 3
	modexpMaxBytes   = 512
	modexpHeaderSize = 96
)

// fixedCost is the gas of precompiles priced independently of their input.
var fixedCost = map[opcode.Precompile]uint64{
	opcode.ECRECOVER:  3000,
	opcode.ECADD:      150,
	opcode.ECMUL:      6000,
	opcode.P256VERIFY: 6900,
}

// perWordCost is the gas per 32-byte word of the hashing precompiles. Their
// base cost is five words.
var perWordCost = map[opcode.Precompile]uint64{
	opcode.SHA256:    12,
	opcode.RIPEMD160: 120,
	opcode.IDENTITY:  3,
}

var precompileInstruction = map[opcode.Precompile]Instruction{
	opcode.ECRECOVER:  ECRECOVER,
	opcode.SHA256:     SHA2,
	opcode.RIPEMD160:  RIPEMD,
	opcode.IDENTITY:   IDENTITY,
	opcode.ECADD:      ECADD,
	opcode.ECMUL:      ECMUL,
	opcode.ECPAIRING:  ECPAIRING,
	opcode.P256VERIFY: P256VERIFY,
}

// DATA: 1-2 new pc, 5 code size, 7 guaranteed exception, 8 must be attempted.
func (c *chunk) jump(pc word.Word, codeSize uint64) {
	valid := c.lt(pc, u(codeSize))
	c.setWord(1, 2, pc)
	c.setUint(5, codeSize)
	c.setBool(7, !valid)
	c.setBool(8, valid)
}

// DATA: as JUMP plus 3-4 condition and 6 jump not attempted.
func (c *chunk) jumpi(pc, cond word.Word, codeSize uint64) {
	valid := c.lt(pc, u(codeSize))
	noJump := c.isZero(cond)
	c.setWord(1, 2, pc)
	c.setWord(3, 4, cond)
	c.setUint(5, codeSize)
	c.setBool(6, noJump)
	c.setBool(7, !noJump && !valid)
	c.setBool(8, !noJump && valid)
}

// DATA: 1-2 offset, 3-4 size, 5 return data size, 7 out of bounds.
func (c *chunk) returnDataCopy(offset, size word.Word, rds uint64) bool {
	hiZero := c.isZero(word.FromLimbs(offset.Hi(), size.Hi()))
	oob := !hiZero
	if hiZero {
		end := c.sum(low(offset), low(size))
		oob = c.gt(end, u(rds))
	} else {
		c.skip()
		c.skip()
	}
	c.setWord(1, 2, offset)
	c.setWord(3, 4, size)
	c.setUint(5, rds)
	c.setBool(7, oob)
	return oob
}

// DATA: 1-2 offset, 5 call data size, 7 offset past the call data.
func (c *chunk) callDataLoad(offset word.Word, cds uint64) {
	inside := c.lt(offset, u(cds))
	c.setWord(1, 2, offset)
	c.setUint(5, cds)
	c.setBool(7, !inside)
}

// DATA: 5 gas, 7 stipend exception.
func (c *chunk) sstore(gas uint64) bool {
	x := !c.lt(u(callStipend), u(gas))
	c.setUint(5, gas)
	c.setBool(7, x)
	return x
}

// DATA: 1-2 code size, 7 max code size exception.
func (c *chunk) deployment(size word.Word) bool {
	x := c.lt(u(maxCodeSize), size)
	c.setWord(1, 2, size)
	c.setBool(7, x)
	return x
}

// DATA: 1-2 value, 7 value nonzero, 8 value zero.
func (c *chunk) xcall(value word.Word) bool {
	zero := c.isZero(value)
	c.setWord(1, 2, value)
	c.setBool(7, !zero)
	c.setBool(8, zero)
	return !zero
}

// DATA: 1-2 value, 3 balance, 6 depth, 7 value nonzero, 8 aborting.
func (c *chunk) callFamily(value, balance word.Word, depth uint64) bool {
	poor := c.lt(balance, value)
	shallow := c.lt(u(depth), u(maxCallDepth))
	zero := c.isZero(value)
	abort := poor || !shallow
	c.setWord(1, 2, value)
	c.set(3, balance.Lo())
	c.setUint(6, depth)
	c.setBool(7, !zero)
	c.setBool(8, abort)
	return abort
}

type createEnv struct {
	value        word.Word
	balance      word.Word
	nonce        uint64
	hasCode      bool
	depth        uint64
	creatorNonce uint64
}

// DATA: 1-2 value, 3 balance, 4 deployed nonce, 5 deployed has code,
// 6 depth, 7 aborting, 8 failure condition, 9 creator nonce.
func (c *chunk) create(e createEnv) bool {
	poor := c.lt(e.balance, e.value)
	shallow := c.lt(u(e.depth), u(maxCallDepth))
	fresh := c.isZero(u(e.nonce))
	nonceOK := c.lt(u(e.creatorNonce), u(maxNonce))
	abort := poor || !shallow || !nonceOK
	c.setWord(1, 2, e.value)
	c.set(3, e.balance.Lo())
	c.setUint(4, e.nonce)
	c.setBool(5, e.hasCode)
	c.setUint(6, e.depth)
	c.setBool(7, abort)
	c.setBool(8, !abort && (e.hasCode || !fresh))
	c.setUint(9, e.creatorNonce)
	return abort
}

// DATA: 1 callee gas, 2 call data size, 3 return at capacity, 4 hub success,
// 5 return gas, 6 extract call data, 7 empty call data, 8 return at capacity
// nonzero.
func (c *chunk) precompile(p opcode.Precompile, gas uint64, cds, rac word.Word) bool {
	emptyInput := c.isZero(cds)
	racZero := c.isZero(rac)

	var cost uint64
	var success bool
	switch {
	case fixedCost[p] != 0:
		cost = fixedCost[p]
		success = !c.lt(u(gas), u(cost))
	case perWordCost[p] != 0:
		words := c.div(u(saturatingAdd(cds.Clamp(), 31)), u(32))
		cost = linearCost(5*perWordCost[p], perWordCost[p], words.Clamp())
		success = !c.lt(u(gas), u(cost))
	case p == opcode.ECPAIRING:
		r := c.rem(cds, u(pairSize))
		whole := c.isZero(r)
		if whole {
			cost = linearCost(pairingBaseGas, pairingPerPair, cds.Clamp()/pairSize)
			success = !c.lt(u(gas), u(cost))
		} else {
			c.skip()
		}
	}

	var returnGas uint64
	if success {
		returnGas = gas - cost
	}
	c.setUint(1, gas)
	c.set(2, cds.Lo())
	c.set(3, rac.Lo())
	c.setBool(4, success)
	c.setUint(5, returnGas)
	c.setBool(6, success && !emptyInput)
	c.setBool(7, success && emptyInput)
	c.setBool(8, !racZero)
	return success
}

// DATA: 2 call data size, 3-5 base, exponent and modulus sizes present.
func (c *chunk) modexpCds(cds word.Word) {
	c.set(2, cds.Lo())
	c.setBool(3, c.lt(word.Zero, cds))
	c.setBool(4, c.lt(u(32), cds))
	c.setBool(5, c.lt(u(64), cds))
}

// DATA: 1-2 size, 3 other size, 4 compute max, 7 max of both, 8 size nonzero.
func (c *chunk) modexpXbs(xbs, ybs word.Word, computeMax bool) {
	c.lt(xbs, u(modexpMaxBytes+1))
	xLess := c.lt(low(xbs), low(ybs))
	xZero := c.isZero(low(xbs))
	c.setWord(1, 2, xbs)
	c.set(3, ybs.Lo())
	c.setBool(4, computeMax)
	if computeMax {
		if xLess {
			c.set(7, ybs.Lo())
		} else {
			c.set(7, xbs.Lo())
		}
		c.setBool(8, !xZero)
	}
}

// DATA: 1 base size, 2 call data size, 3 exponent size, 4 load leading word,
// 6 call data cutoff, 7 exponent size cutoff, 8 exponent size minus 32.
func (c *chunk) modexpLead(bbs, cds, ebs word.Word) {
	ebsZero := c.isZero(ebs)
	ebsShort := c.lt(ebs, u(32))
	start := word.Add(u(modexpHeaderSize), bbs)
	hasExponent := c.lt(start, cds)
	var cdsCutoff uint64
	if hasExponent {
		rest := word.Sub(cds, start)
		if c.lt(rest, u(32)) {
			cdsCutoff = rest.Clamp()
		} else {
			cdsCutoff = 32
		}
	} else {
		c.skip()
	}
	ebsCutoff, sub := uint64(32), word.Sub(ebs, u(32))
	if ebsShort {
		ebsCutoff, sub = ebs.Clamp(), word.Zero
	}
	c.set(1, bbs.Lo())
	c.set(2, cds.Lo())
	c.set(3, ebs.Lo())
	c.setBool(4, hasExponent && !ebsZero)
	c.setUint(6, cdsCutoff)
	c.setUint(7, ebsCutoff)
	c.set(8, sub.Lo())
}

// DATA: 1 callee gas, 3 return at capacity, 4 ram success, 5 return gas,
// 6 exponent log, 7 max of modulus and base sizes, 8 return at capacity
// nonzero.
func (c *chunk) modexpPricing(gas uint64, rac, expLog, maxSize word.Word) bool {
	racZero := c.isZero(rac)
	logZero := c.isZero(expLog)
	f := c.div(word.Add(maxSize, u(7)), u(8))
	complexity := word.Mul(f, f)
	if !logZero {
		complexity = word.Mul(complexity, expLog)
	}
	q := c.div(complexity, u(modexpQuadDiv))
	cost := q.Clamp()
	if c.lt(q, u(modexpMinGas)) {
		cost = modexpMinGas
	}
	success := !c.lt(u(gas), u(cost))
	var returnGas uint64
	if success {
		returnGas = gas - cost
	}
	c.setUint(1, gas)
	c.set(3, rac.Lo())
	c.setBool(4, success)
	c.setUint(5, returnGas)
	c.set(6, expLog.Lo())
	c.set(7, maxSize.Lo())
	c.setBool(8, !racZero)
	return success
}

// DATA: 2 call data size, 3-5 sizes, 6-8 extract base, exponent, modulus.
func (c *chunk) modexpExtract(cds, bbs, ebs, mbs word.Word) {
	bbsZero := c.isZero(bbs)
	ebsZero := c.isZero(ebs)
	mbsZero := c.isZero(mbs)
	beyond := c.lt(word.Add(word.Add(u(modexpHeaderSize), bbs), ebs), cds)
	modulus := beyond && !mbsZero
	c.set(2, cds.Lo())
	c.set(3, bbs.Lo())
	c.set(4, ebs.Lo())
	c.set(5, mbs.Lo())
	c.setBool(6, modulus && !bbsZero)
	c.setBool(7, modulus && !ebsZero)
	c.setBool(8, modulus)
}

// DATA: 2 call data size, 3 return at capacity, 4 hub success, 8 return at
// capacity nonzero.
func (c *chunk) blakeCds(cds, rac word.Word) bool {
	valid := c.eq(cds, u(blakeCallData))
	racZero := c.isZero(rac)
	c.set(2, cds.Lo())
	c.set(3, rac.Lo())
	c.setBool(4, valid)
	c.setBool(8, !racZero)
	return valid
}

// DATA: 1 callee gas, 5 return gas, 6 rounds, 7 final flag, 8 ram success.
func (c *chunk) blakeParams(gas uint64, rounds uint64, final byte) bool {
	poor := c.lt(u(gas), u(rounds))
	f := u(uint64(final))
	binary := c.eq(f, word.Mul(f, f))
	success := !poor && binary
	var returnGas uint64
	if success {
		returnGas = gas - rounds
	}
	c.setUint(1, gas)
	c.setUint(5, returnGas)
	c.setUint(6, rounds)
	c.setUint(7, uint64(final))
	c.setBool(8, success)
	return success
}

func saturatingAdd(a, b uint64) uint64 {
	if a > ^uint64(0)-b {
		return ^uint64(0)
	}
	return a + b
}

// linearCost is base + per*n, saturating.
func linearCost(base, per, n uint64) uint64 {
	if n > (^uint64(0)-base)/per {
		return ^uint64(0)
	}
	return base + per*n
}

// modexpHeader holds the three declared sizes of a MODEXP input.
type modexpHeader struct {
	bbs, ebs, mbs word.Word
}

func parseModexpHeader(callData []byte) modexpHeader {
	return modexpHeader{
		bbs: word.FromBytes(window(callData, 0, 32)),
		ebs: word.FromBytes(window(callData, 32, 32)),
		mbs: word.FromBytes(window(callData, 64, 32)),
	}
}

// exponentLog is the adjusted exponent length of the MODEXP gas formula.
func exponentLog(callData []byte, h modexpHeader) word.Word {
	bbs, ebs := h.bbs.Clamp(), h.ebs.Clamp()
	n := ebs
	if n > 32 {
		n = 32
	}
	var lead word.Word
	if bbs <= modexpMaxBytes {
		lead = word.FromBytes(window(callData, modexpHeaderSize+bbs, n))
	}
	bits := uint64(0)
	if n := lead.BitLen(); n > 0 {
		bits = uint64(n - 1)
	}
	if ebs <= 32 {
		return u(bits)
	}
	extra := word.Mul(word.Sub(h.ebs, u(32)), u(8))
	return word.Add(extra, u(bits))
}

// window returns n bytes of data starting at offset, zero-filled past its end.
func window(data []byte, offset, n uint64) []byte {
	out := make([]byte, n)
	if offset < uint64(len(data)) {
		copy(out, data[offset:])
	}
	return out
}
