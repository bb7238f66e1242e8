package event

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/word"
)

const sample = `
name: sample
events:
  - kind: enter
  - kind: opcode
    opcode: LT
    stack: ["0x01", "0x02"]
  - kind: precompile
    id: 3
    precompile: ECRECOVER
    call_data: "0x00ff"
  - kind: opcode
    opcode: CALL
    stack: [100, "0x08", 0, 0, 192, 0, 32]
    env:
      callee_gas: 50000
      balance: "0x10"
  - kind: leave
    committed: true
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Events, 5)
	assert.Equal(t, "sample", f.Name)

	lt := f.Events[1]
	assert.Equal(t, opcode.LT, lt.Opcode)
	assert.Equal(t, word.FromUint64(2), lt.Arg(1))
	assert.Equal(t, word.Zero, lt.Arg(5))

	pc := f.Events[2]
	assert.Equal(t, opcode.ECRECOVER, pc.Precompile)
	assert.Equal(t, Bytes{0x00, 0xff}, pc.CallData)
	assert.Equal(t, uint64(3), pc.ID)

	call := f.Events[3]
	assert.Equal(t, uint64(50000), call.Env.CalleeGas)
	assert.Equal(t, word.FromUint64(16), call.Env.Balance)
	assert.Equal(t, word.FromUint64(192), call.Arg(4))

	assert.True(t, f.Events[4].Committed)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", "events:\n  - kind: teleport\n"},
		{"short stack", "events:\n  - kind: opcode\n    opcode: ADDMOD\n    stack: [1, 2]\n"},
		{"bad opcode", "events:\n  - kind: opcode\n    opcode: FROB\n"},
		{"bad hex", "events:\n  - kind: precompile\n    precompile: ECADD\n    call_data: \"0xzz\"\n"},
		{"missing precompile", "events:\n  - kind: precompile\n"},
		{"unknown field", "events:\n  - kind: enter\n    colour: red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Events)
}

func TestDecodeJSON(t *testing.T) {
	f, err := Decode(strings.NewReader(`{"events":[{"kind":"opcode","opcode":"ISZERO","stack":["0x0"]}]}`))
	require.NoError(t, err)
	require.Len(t, f.Events, 1)
	assert.Equal(t, opcode.ISZERO, f.Events[0].Opcode)
}

func TestBuilders(t *testing.T) {
	e := Op(opcode.SHL, word.FromUint64(1), word.FromUint64(2))
	assert.NoError(t, Validate(&e))
	assert.Equal(t, KindLeave, Leave(false).Kind)
	assert.Equal(t, KindEnter, Enter().Kind)
	p := Precompiled(1, opcode.ECADD, nil, nil)
	assert.NoError(t, Validate(&p))
}
