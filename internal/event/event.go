// Package event defines the execution events the engine replays and their
// YAML/JSON file encoding.
package event

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

// Kind discriminates events.
type Kind string

const (
	// KindOpcode reports one executed instruction with its stack operands.
	KindOpcode Kind = "opcode"
	// KindPrecompile reports one precompile invocation with its call data.
	KindPrecompile Kind = "precompile"
	// KindEnter opens a call frame or transaction scope.
	KindEnter Kind = "enter"
	// KindLeave closes the innermost scope, committing or reverting it.
	KindLeave Kind = "leave"
)

// Event is one step of an execution trace.
type Event struct {
	Kind Kind `yaml:"kind" json:"kind"`

	// Opcode and Stack describe KindOpcode events. Stack lists operands
	// top first.
	Opcode opcode.OpCode `yaml:"opcode,omitempty" json:"opcode,omitempty"`
	Stack  []word.Word   `yaml:"stack,omitempty" json:"stack,omitempty"`

	// Committed is the outcome of a KindLeave event.
	Committed bool `yaml:"committed,omitempty" json:"committed,omitempty"`

	// ID, Precompile, CallData and ReturnData describe KindPrecompile events.
	// IDs must strictly increase over the stream. CALL-family opcode events
	// also carry the callee's input in CallData.
	ID         uint64            `yaml:"id,omitempty" json:"id,omitempty"`
	Precompile opcode.Precompile `yaml:"precompile,omitempty" json:"precompile,omitempty"`
	CallData   Bytes             `yaml:"call_data,omitempty" json:"call_data,omitempty"`
	ReturnData Bytes             `yaml:"return_data,omitempty" json:"return_data,omitempty"`

	Env Env `yaml:"env,omitempty" json:"env,omitempty"`
}

// Env is the frame state an instruction executes in.
type Env struct {
	CodeSize        uint64    `yaml:"code_size,omitempty" json:"code_size,omitempty"`
	CallDataSize    uint64    `yaml:"call_data_size,omitempty" json:"call_data_size,omitempty"`
	ReturnDataSize  uint64    `yaml:"return_data_size,omitempty" json:"return_data_size,omitempty"`
	Balance         word.Word `yaml:"balance,omitempty" json:"balance,omitempty"`
	Depth           uint64    `yaml:"depth,omitempty" json:"depth,omitempty"`
	Gas             uint64    `yaml:"gas,omitempty" json:"gas,omitempty"`
	CalleeGas       uint64    `yaml:"callee_gas,omitempty" json:"callee_gas,omitempty"`
	Static          bool      `yaml:"static,omitempty" json:"static,omitempty"`
	Deployment      bool      `yaml:"deployment,omitempty" json:"deployment,omitempty"`
	CreatorNonce    uint64    `yaml:"creator_nonce,omitempty" json:"creator_nonce,omitempty"`
	DeployedNonce   uint64    `yaml:"deployed_nonce,omitempty" json:"deployed_nonce,omitempty"`
	DeployedHasCode bool      `yaml:"deployed_has_code,omitempty" json:"deployed_has_code,omitempty"`
}

// Arg returns the i-th stack operand (0 is the top), or zero when the stack
// is shorter.
func (e *Event) Arg(i int) word.Word {
	if i < len(e.Stack) {
		return e.Stack[i]
	}
	return word.Zero
}

// Bytes is a byte string encoded as 0x-prefixed hex text.
type Bytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "0x")
	if len(s)%2 == 1 {
		return fmt.Errorf("odd-length hex %q", text)
	}
	d, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	*b = d
	return nil
}

// Enter returns a scope-opening event.
func Enter() Event {
	return Event{Kind: KindEnter}
}

// Leave returns a scope-closing event.
func Leave(committed bool) Event {
	return Event{Kind: KindLeave, Committed: committed}
}

// Op returns an opcode event with operands listed top first.
func Op(op opcode.OpCode, stack ...word.Word) Event {
	return Event{Kind: KindOpcode, Opcode: op, Stack: stack}
}

// Precompiled returns a precompile invocation event.
func Precompiled(id uint64, p opcode.Precompile, callData, returnData []byte) Event {
	return Event{Kind: KindPrecompile, ID: id, Precompile: p, CallData: callData, ReturnData: returnData}
}
