package opcode

import (
	"fmt"
	"strings"
)

// Precompile identifies a precompiled contract by its address.
type Precompile uint16

const (
	NotPrecompile Precompile = 0x00
	ECRECOVER     Precompile = 0x01
	SHA256        Precompile = 0x02
	RIPEMD160     Precompile = 0x03
	IDENTITY      Precompile = 0x04
	MODEXP        Precompile = 0x05
	ECADD         Precompile = 0x06
	ECMUL         Precompile = 0x07
	ECPAIRING     Precompile = 0x08
	BLAKE2F       Precompile = 0x09
	P256VERIFY    Precompile = 0x100
)

var precompileNames = map[Precompile]string{
	ECRECOVER: "ECRECOVER", SHA256: "SHA256", RIPEMD160: "RIPEMD160", IDENTITY: "IDENTITY",
	MODEXP: "MODEXP", ECADD: "ECADD", ECMUL: "ECMUL", ECPAIRING: "ECPAIRING",
	BLAKE2F: "BLAKE2F", P256VERIFY: "P256VERIFY",
}

// String returns the precompile name.
func (p Precompile) String() string {
	if n, ok := precompileNames[p]; ok {
		return n
	}
	return fmt.Sprintf("precompile(0x%x)", uint16(p))
}

// ParsePrecompile resolves a precompile name.
func ParsePrecompile(s string) (Precompile, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for p, n := range precompileNames {
		if n == up {
			return p, nil
		}
	}
	return NotPrecompile, fmt.Errorf("unknown precompile %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precompile) UnmarshalText(text []byte) error {
	v, err := ParsePrecompile(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Precompile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PrecompileAt maps a 20-byte address to a known precompile.
func PrecompileAt(addr [20]byte) Precompile {
	for i := 0; i < 18; i++ {
		if addr[i] != 0 {
			return NotPrecompile
		}
	}
	p := Precompile(uint16(addr[18])<<8 | uint16(addr[19]))
	if _, ok := precompileNames[p]; ok {
		return p
	}
	return NotPrecompile
}
