package ecdata

import (
	"log/slog"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// c1Membership checks that (x, y) is a point of the BN254 G1 curve or the
// point at infinity. It uses rows k to k+3.
func (op *Operation) c1Membership(k int, x, y word.Word) (member, infinity bool) {
	ySquare := op.callExt(k, opcode.MULMOD, y, y, pBN)
	xSquare := op.callExt(k+1, opcode.MULMOD, x, x, pBN)
	xCube := op.callExt(k+2, opcode.MULMOD, xSquare, x, pBN)
	rhs := op.callExt(k+3, opcode.ADDMOD, xCube, word.FromUint64(3), pBN)

	xInRange := op.callWcp(k, opcode.LT, x, pBN)
	yInRange := op.callWcp(k+1, opcode.LT, y, pBN)
	onCurve := op.callWcp(k+2, opcode.EQ, ySquare, rhs)

	inRange := xInRange && yInRange
	infinity = inRange && x.IsZero() && y.IsZero()
	member = inRange && (infinity || onCurve)
	op.rows[k+1].hurdle = inRange
	op.rows[k].hurdle = member
	for i := 0; i <= ctMaxSmallPoint; i++ {
		op.rows[k+i].infinity = infinity
	}
	return member, infinity
}

// wellFormedCoordinates range checks the four coordinates of a G2 point. It
// uses rows k to k+7.
func (op *Operation) wellFormedCoordinates(k int, xIm, xRe, yIm, yRe word.Word) (wellFormed, infinity bool) {
	xImInRange := op.callWcp(k, opcode.LT, xIm, pBN)
	xReInRange := op.callWcp(k+1, opcode.LT, xRe, pBN)
	yImInRange := op.callWcp(k+2, opcode.LT, yIm, pBN)
	yReInRange := op.callWcp(k+3, opcode.LT, yRe, pBN)

	xInRange := xImInRange && xReInRange
	yInRange := yImInRange && yReInRange
	wellFormed = xInRange && yInRange
	infinity = wellFormed && xIm.IsZero() && xRe.IsZero() && yIm.IsZero() && yRe.IsZero()
	op.rows[k+2].hurdle = xInRange
	op.rows[k+1].hurdle = yInRange
	op.rows[k].hurdle = wellFormed
	for i := 0; i <= ctMaxLargePoint; i++ {
		op.rows[k+i].infinity = infinity
	}
	return wellFormed, infinity
}

func (op *Operation) add() {
	px := wordAt(op.callData, 0)
	py := wordAt(op.callData, 32)
	qx := wordAt(op.callData, 64)
	qy := wordAt(op.callData, 96)
	op.setLimbs(0, px, py, qx, qy)

	first, _ := op.c1Membership(0, px, py)
	second, _ := op.c1Membership(4, qx, qy)
	op.rows[op.dataRows-1].hurdle = first && second
	op.icp = first && second
	op.success = op.icp
	if !op.success {
		return
	}

	a, b := g1Point(px, py), g1Point(qx, qy)
	var ja, jb bn254.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var sum bn254.G1Affine
	sum.FromJacobian(&ja)
	op.output = encodeG1(&sum)
}

func (op *Operation) mul() {
	px := wordAt(op.callData, 0)
	py := wordAt(op.callData, 32)
	n := wordAt(op.callData, 64)
	op.setLimbs(0, px, py, n)

	member, _ := op.c1Membership(0, px, py)
	op.rows[op.dataRows-1].hurdle = member
	op.icp = member
	op.success = op.icp
	if !op.success {
		return
	}

	p := g1Point(px, py)
	scalar := new(big.Int).Mod(n.Big(), fr.Modulus())
	var product bn254.G1Affine
	product.ScalarMultiplication(&p, scalar)
	op.output = encodeG1(&product)
}

func (op *Operation) pairing() {
	var (
		anyLargeNotInfinity bool
		anyLargeNotOnG2     bool
		g1s                 []bn254.G1Affine
		g2s                 []bn254.G2Affine
	)
	for p := 0; p < op.pairs; p++ {
		off := p * pairingDataSize
		k := p * pairingDataRows
		ax := wordAt(op.callData, off)
		ay := wordAt(op.callData, off+32)
		bxIm := wordAt(op.callData, off+64)
		bxRe := wordAt(op.callData, off+96)
		byIm := wordAt(op.callData, off+128)
		byRe := wordAt(op.callData, off+160)
		op.setLimbs(k, ax, ay, bxIm, bxRe, byIm, byRe)

		member, smallInf := op.c1Membership(k, ax, ay)
		wellFormed, largeInf := op.wellFormedCoordinates(k+4, bxIm, bxRe, byIm, byRe)

		b := g2Point(bxIm, bxRe, byIm, byRe)
		firstNotOnG2 := false
		if wellFormed && !anyLargeNotOnG2 && !largeInf && !(b.IsOnCurve() && b.IsInSubGroup()) {
			anyLargeNotOnG2, firstNotOnG2 = true, true
			op.notOnG2AccMax = true
		}
		firstNotInfinity := false
		if !largeInf && !anyLargeNotInfinity {
			anyLargeNotInfinity, firstNotInfinity = true, true
		}

		// Transitions take effect on the first large point row.
		for i := 0; i < pairingDataRows; i++ {
			r := &op.rows[k+i]
			if firstNotInfinity {
				if i > ctMaxSmallPoint {
					r.trivial = false
				}
			} else {
				r.trivial = !anyLargeNotInfinity
			}
			if firstNotOnG2 {
				if i > ctMaxSmallPoint {
					r.notOnG2, r.notOnG2Acc = true, true
				}
			} else {
				r.notOnG2Acc = anyLargeNotOnG2
			}
		}

		pairOK := member && wellFormed
		if p == 0 {
			op.icp = pairOK
		} else {
			op.icp = op.icp && pairOK
			op.rows[k+pairingDataRows-2].hurdle = pairOK
		}
		op.rows[k+pairingDataRows-1].hurdle = op.icp

		if pairOK && !smallInf && !largeInf {
			g1s = append(g1s, g1Point(ax, ay))
			g2s = append(g2s, b)
		}
	}

	op.success = op.icp && !op.notOnG2AccMax
	if !op.success {
		return
	}
	result := true
	if len(g1s) > 0 {
		ok, err := bn254.PairingCheck(g1s, g2s)
		if err != nil {
			slog.Warn("pairing check failed", "id", op.id, "pairs", len(g1s), "error", err)
		}
		result = err == nil && ok
	}
	op.output = word.FromBool(result).Bytes()
}

func g1Point(x, y word.Word) bn254.G1Affine {
	var p bn254.G1Affine
	p.X.SetBytes(x.Bytes())
	p.Y.SetBytes(y.Bytes())
	return p
}

// g2Point builds a G2 point from its EVM encoding, which lists the
// imaginary part of each coordinate first.
func g2Point(xIm, xRe, yIm, yRe word.Word) bn254.G2Affine {
	var q bn254.G2Affine
	q.X.A0.SetBytes(xRe.Bytes())
	q.X.A1.SetBytes(xIm.Bytes())
	q.Y.A0.SetBytes(yRe.Bytes())
	q.Y.A1.SetBytes(yIm.Bytes())
	return q
}

func encodeG1(p *bn254.G1Affine) []byte {
	x := p.X.Bytes()
	y := p.Y.Bytes()
	return append(x[:], y[:]...)
}
