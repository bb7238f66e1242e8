package ecdata

import (
	"crypto/ecdsa"
	"crypto/elliptic"

	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// p256Verify checks (h, r, s, qx, qy) and verifies the secp256r1 signature.
func (op *Operation) p256Verify() {
	h := wordAt(op.callData, 0)
	r := wordAt(op.callData, 32)
	s := wordAt(op.callData, 64)
	qx := wordAt(op.callData, 96)
	qy := wordAt(op.callData, 128)
	op.setLimbs(0, h, r, s, qx, qy)

	rInRange := op.callWcp(0, opcode.LT, r, p256N)
	rPositive := op.callWcp(1, opcode.LT, word.Zero, r)
	sInRange := op.callWcp(2, opcode.LT, s, p256N)
	sPositive := op.callWcp(3, opcode.LT, word.Zero, s)
	xInRange := op.callWcp(4, opcode.LT, qx, p256P)
	yInRange := op.callWcp(5, opcode.LT, qy, p256P)

	// y^2 = x^3 + a*x + b mod p
	ySquare := op.callExt(0, opcode.MULMOD, qy, qy, p256P)
	xSquare := op.callExt(1, opcode.MULMOD, qx, qx, p256P)
	xCube := op.callExt(2, opcode.MULMOD, xSquare, qx, p256P)
	ax := op.callExt(3, opcode.MULMOD, p256A, qx, p256P)
	partial := op.callExt(4, opcode.ADDMOD, xCube, ax, p256P)
	rhs := op.callExt(5, opcode.ADDMOD, partial, p256B, p256P)
	onCurve := op.callWcp(6, opcode.EQ, ySquare, rhs)

	op.rows[0].hurdle = rInRange && rPositive
	op.rows[1].hurdle = sInRange && sPositive
	op.rows[2].hurdle = op.rows[0].hurdle && op.rows[1].hurdle
	op.rows[3].hurdle = xInRange && yInRange
	op.rows[4].hurdle = op.rows[3].hurdle && onCurve
	op.rows[op.dataRows-1].hurdle = op.rows[2].hurdle && op.rows[4].hurdle
	op.icp = op.rows[op.dataRows-1].hurdle
	if !op.icp {
		return
	}

	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: qx.Big(), Y: qy.Big()}
	op.success = ecdsa.Verify(pub, h.Bytes(), r.Big(), s.Big())
	if op.success {
		op.output = word.FromUint64(1).Bytes()
	}
}
