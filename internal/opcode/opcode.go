// Package opcode names the EVM instructions and precompiles the modules react to.
package opcode

import (
	"fmt"
	"strings"
)

// OpCode is one EVM instruction byte.
type OpCode byte

const (
	ADD            OpCode = 0x01
	MUL            OpCode = 0x02
	SUB            OpCode = 0x03
	DIV            OpCode = 0x04
	SDIV           OpCode = 0x05
	MOD            OpCode = 0x06
	SMOD           OpCode = 0x07
	ADDMOD         OpCode = 0x08
	MULMOD         OpCode = 0x09
	LT             OpCode = 0x10
	GT             OpCode = 0x11
	SLT            OpCode = 0x12
	SGT            OpCode = 0x13
	EQ             OpCode = 0x14
	ISZERO         OpCode = 0x15
	SHL            OpCode = 0x1b
	SHR            OpCode = 0x1c
	SAR            OpCode = 0x1d
	CALLDATALOAD   OpCode = 0x35
	RETURNDATACOPY OpCode = 0x3e
	SSTORE         OpCode = 0x55
	JUMP           OpCode = 0x56
	JUMPI          OpCode = 0x57
	CREATE         OpCode = 0xf0
	CALL           OpCode = 0xf1
	CALLCODE       OpCode = 0xf2
	RETURN         OpCode = 0xf3
	DELEGATECALL   OpCode = 0xf4
	CREATE2        OpCode = 0xf5
	STATICCALL     OpCode = 0xfa
	INVALID        OpCode = 0xfe
)

// Module-internal comparison instructions that have no EVM opcode.
const (
	GEQ OpCode = 0x0e
	LEQ OpCode = 0x0f
)

var names = map[OpCode]string{
	ADD: "ADD", MUL: "MUL", SUB: "SUB", DIV: "DIV", SDIV: "SDIV", MOD: "MOD", SMOD: "SMOD",
	ADDMOD: "ADDMOD", MULMOD: "MULMOD", GEQ: "GEQ", LEQ: "LEQ",
	LT: "LT", GT: "GT", SLT: "SLT", SGT: "SGT", EQ: "EQ", ISZERO: "ISZERO",
	SHL: "SHL", SHR: "SHR", SAR: "SAR",
	CALLDATALOAD: "CALLDATALOAD", RETURNDATACOPY: "RETURNDATACOPY",
	SSTORE: "SSTORE", JUMP: "JUMP", JUMPI: "JUMPI",
	CREATE: "CREATE", CALL: "CALL", CALLCODE: "CALLCODE", RETURN: "RETURN",
	DELEGATECALL: "DELEGATECALL", CREATE2: "CREATE2", STATICCALL: "STATICCALL",
	INVALID: "INVALID",
}

var byName = func() map[string]OpCode {
	m := make(map[string]OpCode, len(names))
	for op, n := range names {
		m[n] = op
	}
	return m
}()

// String returns the mnemonic, or a hex form for unnamed bytes.
func (o OpCode) String() string {
	if n, ok := names[o]; ok {
		return n
	}
	return fmt.Sprintf("0x%02x", byte(o))
}

// Parse resolves a mnemonic (case-insensitive) or a 0x-prefixed byte.
func Parse(s string) (OpCode, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if op, ok := byName[up]; ok {
		return op, nil
	}
	var b byte
	if _, err := fmt.Sscanf(strings.ToLower(up), "0x%02x", &b); err == nil {
		return OpCode(b), nil
	}
	return 0, fmt.Errorf("unknown opcode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o OpCode) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OpCode) UnmarshalText(text []byte) error {
	op, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// IsCall reports whether o belongs to the CALL family.
func (o OpCode) IsCall() bool {
	switch o {
	case CALL, CALLCODE, DELEGATECALL, STATICCALL:
		return true
	}
	return false
}

// HasValue reports whether a call-family opcode carries a value operand.
func (o OpCode) HasValue() bool {
	return o == CALL || o == CALLCODE
}

// IsCreate reports whether o deploys a contract.
func (o OpCode) IsCreate() bool {
	return o == CREATE || o == CREATE2
}
