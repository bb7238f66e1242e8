package word

import "github.com/holiman/uint256"

// Add returns a + b mod 2^256.
func Add(a, b Word) Word {
	return FromInt(new(uint256.Int).Add(a.Int(), b.Int()))
}

// AddCarry returns a + b mod 2^256 and whether the sum overflowed.
func AddCarry(a, b Word) (Word, bool) {
	r, carry := new(uint256.Int).AddOverflow(a.Int(), b.Int())
	return FromInt(r), carry
}

// Sub returns a - b mod 2^256.
func Sub(a, b Word) Word {
	return FromInt(new(uint256.Int).Sub(a.Int(), b.Int()))
}

// Mul returns a * b mod 2^256.
func Mul(a, b Word) Word {
	return FromInt(new(uint256.Int).Mul(a.Int(), b.Int()))
}

// Div is unsigned division; division by zero yields zero.
func Div(a, b Word) Word {
	return FromInt(new(uint256.Int).Div(a.Int(), b.Int()))
}

// Mod is the unsigned remainder; modulus zero yields zero.
func Mod(a, b Word) Word {
	return FromInt(new(uint256.Int).Mod(a.Int(), b.Int()))
}

// SDiv is signed division truncating toward zero; division by zero yields zero.
func SDiv(a, b Word) Word {
	return FromInt(new(uint256.Int).SDiv(a.Int(), b.Int()))
}

// SMod is the signed remainder taking the sign of a; modulus zero yields zero.
func SMod(a, b Word) Word {
	return FromInt(new(uint256.Int).SMod(a.Int(), b.Int()))
}

// AddMod returns (a + b) mod m computed without overflow; m zero yields zero.
func AddMod(a, b, m Word) Word {
	return FromInt(new(uint256.Int).AddMod(a.Int(), b.Int(), m.Int()))
}

// MulMod returns (a * b) mod m computed without overflow; m zero yields zero.
func MulMod(a, b, m Word) Word {
	return FromInt(new(uint256.Int).MulMod(a.Int(), b.Int(), m.Int()))
}

// Shl shifts left by n bits; n >= 256 yields zero.
func (w Word) Shl(n uint64) Word {
	if n >= 256 {
		return Zero
	}
	return FromInt(new(uint256.Int).Lsh(w.Int(), uint(n)))
}

// Shr is the logical right shift; n >= 256 yields zero.
func (w Word) Shr(n uint64) Word {
	if n >= 256 {
		return Zero
	}
	return FromInt(new(uint256.Int).Rsh(w.Int(), uint(n)))
}

// Sar is the arithmetic right shift. Shifts of 256 or more yield zero for
// non-negative words and all ones for negative ones.
func (w Word) Sar(n uint64) Word {
	if n >= 256 {
		if w.IsNegative() {
			return Max
		}
		return Zero
	}
	return FromInt(new(uint256.Int).SRsh(w.Int(), uint(n)))
}

// Not returns the bitwise complement.
func (w Word) Not() Word {
	return FromInt(new(uint256.Int).Not(w.Int()))
}
