package event

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/zkarith/internal/opcode"
)

// File is the on-disk shape of an event stream.
type File struct {
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	Events []Event `yaml:"events" json:"events"`
}

// DecodeError reports a malformed event file.
type DecodeError struct {
	Index   int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return "decode events: " + e.Message
	}
	return fmt.Sprintf("decode events: event %d: %s", e.Index, e.Message)
}

// LoadFile reads an event stream from a YAML or JSON file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses and validates an event stream. JSON input is accepted since
// it is valid YAML.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, &DecodeError{Index: -1, Message: err.Error()}
	}
	for i := range f.Events {
		if err := Validate(&f.Events[i]); err != nil {
			return nil, &DecodeError{Index: i, Message: err.Error()}
		}
	}
	return &f, nil
}

// arity is the number of stack operands the engine reads per opcode.
var arity = map[opcode.OpCode]int{
	opcode.ADD: 2, opcode.SUB: 2, opcode.MUL: 2,
	opcode.DIV: 2, opcode.SDIV: 2, opcode.MOD: 2, opcode.SMOD: 2,
	opcode.ADDMOD: 3, opcode.MULMOD: 3,
	opcode.LT: 2, opcode.GT: 2, opcode.SLT: 2, opcode.SGT: 2, opcode.EQ: 2, opcode.ISZERO: 1,
	opcode.SHL: 2, opcode.SHR: 2, opcode.SAR: 2,
	opcode.CALLDATALOAD: 1, opcode.RETURNDATACOPY: 3,
	opcode.SSTORE: 2, opcode.JUMP: 1, opcode.JUMPI: 2,
	opcode.CREATE: 3, opcode.CREATE2: 4, opcode.RETURN: 2,
	opcode.CALL: 7, opcode.CALLCODE: 7, opcode.DELEGATECALL: 6, opcode.STATICCALL: 6,
}

// Arity returns how many operands op needs and whether the engine knows op.
func Arity(op opcode.OpCode) (int, bool) {
	n, ok := arity[op]
	return n, ok
}

// Validate checks the fields required by the event's kind. Opcodes the
// engine does not trace are accepted and later ignored.
func Validate(e *Event) error {
	switch e.Kind {
	case KindEnter, KindLeave:
		return nil
	case KindOpcode:
		if n, ok := arity[e.Opcode]; ok && len(e.Stack) < n {
			return fmt.Errorf("%s needs %d stack operands, got %d", e.Opcode, n, len(e.Stack))
		}
		return nil
	case KindPrecompile:
		if e.Precompile == opcode.NotPrecompile {
			return fmt.Errorf("precompile event without precompile")
		}
		return nil
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}
