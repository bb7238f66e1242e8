// Package word implements the 256-bit EVM word and its hi/lo limb decomposition.
//
// Word is a value type over uint256.Int; all arithmetic returns new words and
// wraps modulo 2^256. Every column that carries a word stores it as two
// 16-byte big-endian limbs, which Hi and Lo expose.
package word

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Size is the byte length of a word.
const Size = 32

// LimbSize is the byte length of one limb.
const LimbSize = 16

// Word is a 256-bit unsigned integer.
type Word uint256.Int

// Limb is one 128-bit half of a word, big-endian.
type Limb [LimbSize]byte

var (
	// Zero is the all-zero word.
	Zero Word

	// Max is 2^256 - 1.
	Max = Word(uint256.Int{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)})
)

// Int returns a copy of w as a uint256.Int.
func (w Word) Int() *uint256.Int {
	x := uint256.Int(w)
	return &x
}

// FromInt returns x as a word.
func FromInt(x *uint256.Int) Word {
	return Word(*x)
}

// FromUint64 returns v as a word.
func FromUint64(v uint64) Word {
	return FromInt(uint256.NewInt(v))
}

// FromBool returns 1 or 0.
func FromBool(b bool) Word {
	if b {
		return FromUint64(1)
	}
	return Zero
}

// FromBytes interprets b as a big-endian integer. Shorter inputs are
// left-padded with zeros; longer inputs keep their trailing 32 bytes.
func FromBytes(b []byte) Word {
	if len(b) > Size {
		b = b[len(b)-Size:]
	}
	return FromInt(new(uint256.Int).SetBytes(b))
}

// FromBig reduces x modulo 2^256. Negative values wrap to two's complement.
func FromBig(x *big.Int) Word {
	r, _ := uint256.FromBig(x)
	return FromInt(r)
}

// FromLimbs joins a hi and a lo limb.
func FromLimbs(hi, lo Limb) Word {
	var b [Size]byte
	copy(b[:LimbSize], hi[:])
	copy(b[LimbSize:], lo[:])
	return FromInt(new(uint256.Int).SetBytes32(b[:]))
}

// FromHex parses an optionally 0x-prefixed hex string of at most 64 digits.
func FromHex(s string) (Word, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) > 2*Size {
		return Zero, fmt.Errorf("hex word too long: %d digits", len(s))
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse hex word: %w", err)
	}
	return FromBytes(b), nil
}

// MustHex is FromHex for constants and tests. It panics on malformed input.
func MustHex(s string) Word {
	w, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Bytes32 returns the 32 big-endian bytes.
func (w Word) Bytes32() [Size]byte {
	return w.Int().Bytes32()
}

// Bytes returns a copy of the 32 big-endian bytes.
func (w Word) Bytes() []byte {
	b := w.Bytes32()
	return b[:]
}

// Byte returns big-endian byte i, 0 being the most significant.
func (w Word) Byte(i int) byte {
	return w.Bytes32()[i]
}

// Hi returns the upper limb.
func (w Word) Hi() Limb {
	b := w.Bytes32()
	return Limb(b[:LimbSize])
}

// Lo returns the lower limb.
func (w Word) Lo() Limb {
	b := w.Bytes32()
	return Limb(b[LimbSize:])
}

// Big returns w as an unsigned big integer, for curve libraries that take
// math/big scalars.
func (w Word) Big() *big.Int {
	return w.Int().ToBig()
}

// IsZero reports whether w is zero.
func (w Word) IsZero() bool {
	return w == Zero
}

// IsNegative reports whether the sign bit is set.
func (w Word) IsNegative() bool {
	return w.Int().Sign() < 0
}

// Cmp compares unsigned magnitudes.
func (w Word) Cmp(o Word) int {
	return w.Int().Cmp(o.Int())
}

// SignedCmp compares two's complement values.
func (w Word) SignedCmp(o Word) int {
	a, b := w.Int(), o.Int()
	switch {
	case a.Slt(b):
		return -1
	case a.Sgt(b):
		return 1
	}
	return 0
}

// Uint64 returns the low 64 bits and whether the word fits in them.
func (w Word) Uint64() (uint64, bool) {
	x := w.Int()
	return x.Uint64(), x.IsUint64()
}

// Clamp returns the word as a uint64, saturating at the maximum.
func (w Word) Clamp() uint64 {
	v, ok := w.Uint64()
	if !ok {
		return ^uint64(0)
	}
	return v
}

// BitLen is the number of significant bits.
func (w Word) BitLen() int {
	return w.Int().BitLen()
}

// String formats the word as 0x-prefixed hex without leading zeros.
func (w Word) String() string {
	return w.Int().Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (w Word) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText accepts hex (0x-prefixed) or decimal text.
func (w *Word) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		parsed, err := FromHex(s)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	}
	x, err := uint256.FromDecimal(s)
	if err != nil {
		return fmt.Errorf("invalid word %q: %w", s, err)
	}
	*w = FromInt(x)
	return nil
}

// IsZero reports whether the limb is zero.
func (l Limb) IsZero() bool {
	return l == Limb{}
}

// Word widens the limb to a word.
func (l Limb) Word() Word {
	return FromLimbs(Limb{}, l)
}

// Cmp compares limbs as unsigned integers.
func (l Limb) Cmp(o Limb) int {
	return bytes.Compare(l[:], o[:])
}

// LimbFromDecimal parses a decimal constant of at most 128 bits. It panics on
// malformed input.
func LimbFromDecimal(s string) Limb {
	x, err := uint256.FromDecimal(s)
	if err != nil || x.BitLen() > 8*LimbSize {
		panic(fmt.Sprintf("word: bad limb constant %q", s))
	}
	return FromInt(x).Lo()
}

// LimbFromUint64 returns v as a limb.
func LimbFromUint64(v uint64) Limb {
	return FromUint64(v).Lo()
}
