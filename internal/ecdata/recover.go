package ecdata

import (
	"github.com/consensys/gnark-crypto/ecc/secp256k1/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// recover checks (h, v, r, s) and recovers the signer address.
func (op *Operation) recover() {
	h := wordAt(op.callData, 0)
	v := wordAt(op.callData, 32)
	r := wordAt(op.callData, 64)
	s := wordAt(op.callData, 96)
	op.setLimbs(0, h, v, r, s)

	rInRange := op.callWcp(0, opcode.LT, r, secp256k1N)
	rPositive := op.callWcp(1, opcode.LT, word.Zero, r)
	sInRange := op.callWcp(2, opcode.LT, s, secp256k1N)
	sPositive := op.callWcp(3, opcode.LT, word.Zero, s)
	v27 := op.callWcp(4, opcode.EQ, v, word.FromUint64(27))
	v28 := op.callWcp(5, opcode.EQ, v, word.FromUint64(28))

	op.rows[0].hurdle = rInRange && rPositive
	op.rows[1].hurdle = sInRange && sPositive
	op.rows[2].hurdle = op.rows[0].hurdle && op.rows[1].hurdle
	op.rows[op.dataRows-1].hurdle = op.rows[2].hurdle && (v27 || v28)
	op.icp = op.rows[op.dataRows-1].hurdle

	// The ext table must never be empty when an ecrecover is traced.
	op.ext.AddMod(word.Zero, word.Zero, word.Zero)

	var address word.Word
	if op.icp {
		address = recoverAddress(h, v, r, s)
	}
	op.success = !address.IsZero()
	if op.success {
		op.output = address.Bytes()
	}
}

// recoverAddress returns the address of the key that signed h, or zero when
// no key can be recovered.
func recoverAddress(h, v, r, s word.Word) word.Word {
	recID, _ := v.Uint64()
	var pk ecdsa.PublicKey
	if err := pk.RecoverFrom(h.Bytes(), uint(recID-27), r.Big(), s.Big()); err != nil {
		return word.Zero
	}
	x := pk.A.X.Bytes()
	y := pk.A.Y.Bytes()

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(x[:])
	hasher.Write(y[:])
	sum := hasher.Sum(nil)
	return word.FromBytes(sum[12:])
}
