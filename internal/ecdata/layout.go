package ecdata

import (
	"bytes"

	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

const (
	ctMaxSmallPoint = 3
	ctMaxLargePoint = 7

	pairingDataRows = 12
	pairingDataSize = 192

	// deltaBytes is the number of rows carrying the id gap.
	deltaBytes = 4
)

var (
	pBN        = word.FromLimbs(word.LimbFromDecimal("64323764613183177041862057485226039389"), word.LimbFromDecimal("201385395114098847380338600778089168199"))
	secp256k1N = word.FromLimbs(word.LimbFromDecimal("340282366920938463463374607431768211455"), word.LimbFromDecimal("340282366920938463463374607427473243183"))

	p256P = word.MustHex("0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff")
	p256N = word.MustHex("0xffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
	p256A = word.Sub(p256P, word.FromUint64(3))
	p256B = word.MustHex("0x5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b")
)

// layout fixes the row and byte counts of one precompile. For ECPAIRING the
// data figures are per pair.
type layout struct {
	dataRows    int
	resultRows  int
	dataSize    int
	resultSize  int
	dataPhase   uint64
	resultPhase uint64
}

var layouts = map[opcode.Precompile]layout{
	opcode.ECRECOVER:  {dataRows: 8, resultRows: 2, dataSize: 128, resultSize: 32, dataPhase: 0x10a, resultPhase: 0x10b},
	opcode.ECADD:      {dataRows: 8, resultRows: 4, dataSize: 128, resultSize: 64, dataPhase: 0x60a, resultPhase: 0x60b},
	opcode.ECMUL:      {dataRows: 6, resultRows: 4, dataSize: 96, resultSize: 64, dataPhase: 0x70a, resultPhase: 0x70b},
	opcode.ECPAIRING:  {dataRows: pairingDataRows, resultRows: 2, dataSize: pairingDataSize, resultSize: 32, dataPhase: 0x80a, resultPhase: 0x80b},
	opcode.P256VERIFY: {dataRows: 10, resultRows: 2, dataSize: 160, resultSize: 32, dataPhase: 0xa0a, resultPhase: 0xa0b},
}

// Supports reports whether kind is one of the elliptic curve precompiles.
func Supports(kind opcode.Precompile) bool {
	_, ok := layouts[kind]
	return ok
}

// padCallData right-pads callData with zeros to the size the precompile
// reads, as the EVM does for short input. Pairing input is never padded: it
// must already be whole pairs, which validCallData checks. It also returns
// the number of pairs.
func padCallData(kind opcode.Precompile, callData []byte) ([]byte, int) {
	if kind == opcode.ECPAIRING {
		return bytes.Clone(callData), len(callData) / pairingDataSize
	}
	padded := make([]byte, layouts[kind].dataSize)
	copy(padded, callData)
	return padded, 0
}

// validCallData reports whether the precompile can be traced for callData.
// ECPAIRING needs at least one pair and no partial pair.
func validCallData(kind opcode.Precompile, callData []byte) bool {
	if kind != opcode.ECPAIRING {
		return true
	}
	return len(callData) > 0 && len(callData)%pairingDataSize == 0
}

// wordAt reads the 32-byte word at offset.
func wordAt(data []byte, offset int) word.Word {
	return word.FromBytes(data[offset : offset+32])
}
