package oob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/add"
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/mod"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/opcode"
	"github.com/roach88/zkarith/internal/testutil"
	"github.com/roach88/zkarith/internal/wcp"
	"github.com/roach88/zkarith/internal/word"
)

type fixture struct {
	oob *Module
	add *add.Module
	mod *mod.Module
	wcp *wcp.Module
}

func newFixture() *fixture {
	f := &fixture{add: add.New(), mod: mod.New(), wcp: wcp.New()}
	f.oob = New(f.add, f.mod, f.wcp)
	return f
}

func (f *fixture) record(t *testing.T, ev event.Event) []module.Handle {
	t.Helper()
	hs, err := f.oob.RecordPreOpcode(&ev)
	require.NoError(t, err)
	return hs
}

func w(v uint64) word.Word { return word.FromUint64(v) }

func one(l word.Limb) bool { return l == word.LimbFromUint64(1) }

func callTo(p uint64, cds, rac uint64, env event.Env, callData []byte) event.Event {
	ev := event.Op(opcode.CALL, w(100000), w(p), word.Zero, word.Zero, w(cds), word.Zero, w(rac))
	ev.Env = env
	ev.CallData = callData
	return ev
}

func TestJump(t *testing.T) {
	f := newFixture()
	ev := event.Op(opcode.JUMP, w(5))
	ev.Env.CodeSize = 10
	hs := f.record(t, ev)
	require.Len(t, hs, 1)

	op := f.oob.Operations()[0]
	assert.Equal(t, JUMP, op.Instruction())
	assert.False(t, one(op.Data(7)))
	assert.True(t, one(op.Data(8)))
	assert.Len(t, f.wcp.Operations(), 1)

	tr := testutil.Commit(t, f.oob)
	require.Equal(t, 1, tr.Rows)
	assert.True(t, testutil.Bool(t, tr, colIsJump, 0))
	assert.False(t, testutil.Bool(t, tr, colIsJumpi, 0))
	assert.Equal(t, uint64(JUMP), testutil.Uint(t, tr, colOobInst, 0))
	assert.True(t, testutil.Bool(t, tr, colWcpFlag, 0))
	assert.Equal(t, uint64(opcode.LT), testutil.Uint(t, tr, colOutInst, 0))
	assert.Equal(t, uint64(5), testutil.Uint(t, tr, colOutData2, 0))
	assert.Equal(t, uint64(10), testutil.Uint(t, tr, colOutData4, 0))
	assert.Equal(t, uint64(1), testutil.Uint(t, tr, colOutResLo, 0))
	assert.Equal(t, uint64(1), testutil.Uint(t, tr, colStamp, 0))
}

func TestJumpiNotTaken(t *testing.T) {
	f := newFixture()
	ev := event.Op(opcode.JUMPI, w(50), word.Zero)
	ev.Env.CodeSize = 10
	f.record(t, ev)

	op := f.oob.Operations()[0]
	assert.Equal(t, 2, op.RowCount())
	assert.True(t, one(op.Data(6)))
	assert.False(t, one(op.Data(7)), "no exception when the jump is not taken")
	assert.False(t, one(op.Data(8)))
}

func TestReturnDataCopy(t *testing.T) {
	cases := []struct {
		name   string
		offset word.Word
		size   uint64
		oob    bool
		adds   int
	}{
		{"inside", w(2), 3, false, 1},
		{"past end", w(3), 3, true, 1},
		{"high limb", word.FromLimbs(word.LimbFromUint64(1), word.Limb{}), 0, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			ev := event.Op(opcode.RETURNDATACOPY, word.Zero, tc.offset, w(tc.size))
			ev.Env.ReturnDataSize = 5
			f.record(t, ev)

			op := f.oob.Operations()[0]
			assert.Equal(t, tc.oob, one(op.Data(7)))
			assert.Len(t, f.add.Operations(), tc.adds)
			assert.Len(t, f.wcp.Operations(), 1+tc.adds)
			tr := testutil.Commit(t, f.oob)
			assert.Equal(t, 3, tr.Rows)
		})
	}
}

func TestSstoreStipend(t *testing.T) {
	f := newFixture()
	for _, gas := range []uint64{2300, 2301} {
		ev := event.Op(opcode.SSTORE, word.Zero, word.Zero)
		ev.Env.Gas = gas
		f.record(t, ev)
	}
	ops := f.oob.Operations()
	assert.True(t, one(ops[0].Data(7)))
	assert.False(t, one(ops[1].Data(7)))
}

func TestDeploymentOnlyInDeploymentContext(t *testing.T) {
	f := newFixture()
	ev := event.Op(opcode.RETURN, word.Zero, w(maxCodeSize+1))
	assert.Empty(t, f.record(t, ev))

	ev.Env.Deployment = true
	f.record(t, ev)
	require.Len(t, f.oob.Operations(), 1)
	assert.True(t, one(f.oob.Operations()[0].Data(7)))
}

func TestCreateFailureOnUsedAddress(t *testing.T) {
	f := newFixture()
	ev := event.Op(opcode.CREATE, w(1), word.Zero, word.Zero)
	ev.Env = event.Env{Balance: w(10), Depth: 3, DeployedNonce: 1, CreatorNonce: 7}
	f.record(t, ev)

	op := f.oob.Operations()[0]
	assert.Equal(t, 4, op.RowCount())
	assert.False(t, one(op.Data(7)))
	assert.True(t, one(op.Data(8)))
	assert.Equal(t, word.LimbFromUint64(7), op.Data(9))
}

func TestCallToEcrecover(t *testing.T) {
	f := newFixture()
	hs := f.record(t, callTo(1, 128, 32, event.Env{Balance: w(10), Depth: 1, CalleeGas: 5000}, nil))
	require.Len(t, hs, 2)

	ops := f.oob.Operations()
	assert.Equal(t, CALL, ops[0].Instruction())
	assert.False(t, one(ops[0].Data(8)))
	assert.Equal(t, ECRECOVER, ops[1].Instruction())
	assert.True(t, one(ops[1].Data(4)))
	assert.Equal(t, word.LimbFromUint64(2000), ops[1].Data(5))
	assert.True(t, one(ops[1].Data(6)))
	assert.Len(t, f.wcp.Operations(), 6)

	tr := testutil.Commit(t, f.oob)
	assert.Equal(t, 6, tr.Rows)
	assert.Equal(t, uint64(2), testutil.Uint(t, tr, colStamp, 3))
}

func TestAbortedCallSkipsPrecompile(t *testing.T) {
	f := newFixture()
	hs := f.record(t, callTo(1, 128, 32, event.Env{Balance: w(10), Depth: maxCallDepth, CalleeGas: 5000}, nil))
	require.Len(t, hs, 1)
	assert.True(t, one(f.oob.Operations()[0].Data(8)))
}

func TestStaticCallWithValue(t *testing.T) {
	f := newFixture()
	ev := event.Op(opcode.CALL, w(0), w(0xabc), w(1), word.Zero, word.Zero, word.Zero, word.Zero)
	ev.Env.Static = true
	require.Len(t, f.record(t, ev), 1)
	assert.Equal(t, XCALL, f.oob.Operations()[0].Instruction())

	ev.Stack[2] = word.Zero
	require.Len(t, f.record(t, ev), 2)
	assert.Equal(t, CALL, f.oob.Operations()[2].Instruction())
}

func TestHashPrecompileCost(t *testing.T) {
	f := newFixture()
	// 33 bytes are two words: 60 + 2*12.
	f.record(t, callTo(2, 33, 0, event.Env{Balance: w(1), CalleeGas: 100}, nil))
	op := f.oob.Operations()[1]
	assert.Equal(t, SHA2, op.Instruction())
	assert.Equal(t, word.LimbFromUint64(16), op.Data(5))
	assert.False(t, one(op.Data(7)))
	assert.False(t, one(op.Data(8)))
	require.Len(t, f.mod.Operations(), 1)
}

func TestHashPrecompileCostSaturates(t *testing.T) {
	beyond64 := word.Add(word.FromUint64(^uint64(0)), w(1))
	for _, cds := range []word.Word{word.Max, word.Sub(word.Max, w(30)), beyond64, w(^uint64(0) - 5)} {
		f := newFixture()
		c := f.oob.chunk(SHA2)
		assert.False(t, c.precompile(opcode.SHA256, 1_000_000, cds, word.Zero), "cds %s", cds)
		assert.False(t, one(c.op.Data(4)))
		assert.Equal(t, word.Limb{}, c.op.Data(5))
		// ISZERO cds, ISZERO rac, then the word count division.
		require.Len(t, c.op.calls, 4)
		assert.Equal(t, opcode.DIV, c.op.calls[2].inst)
		assert.Equal(t, w(^uint64(0)), c.op.calls[2].arg1)
	}
}

func TestPairingRequiresWholePairs(t *testing.T) {
	f := newFixture()
	f.record(t, callTo(8, 100, 32, event.Env{Balance: w(1), CalleeGas: 1_000_000}, nil))
	op := f.oob.Operations()[1]
	assert.False(t, one(op.Data(4)))
	assert.Equal(t, word.Limb{}, op.Data(5))

	tr := testutil.Commit(t, f.oob)
	require.Equal(t, 8, tr.Rows)
	last := 7
	assert.False(t, testutil.Bool(t, tr, colWcpFlag, last))
	assert.Equal(t, uint64(0), testutil.Uint(t, tr, colOutInst, last))
	assert.True(t, testutil.Bool(t, tr, colModFlag, 5))
	assert.Equal(t, uint64(100), testutil.Uint(t, tr, colOutResLo, 5))
}

func TestPairingCost(t *testing.T) {
	f := newFixture()
	f.record(t, callTo(8, 2*pairSize, 32, event.Env{Balance: w(1), CalleeGas: 120_000}, nil))
	op := f.oob.Operations()[1]
	assert.True(t, one(op.Data(4)))
	assert.Equal(t, word.LimbFromUint64(120_000-45_000-2*34_000), op.Data(5))
}

func modexpInput(bbs, ebs, mbs uint64, tail ...byte) []byte {
	var in []byte
	for _, v := range []uint64{bbs, ebs, mbs} {
		in = append(in, w(v).Bytes()...)
	}
	return append(in, tail...)
}

func TestModexpEmitsSevenChunks(t *testing.T) {
	f := newFixture()
	in := modexpInput(1, 1, 1, 3, 5, 7)
	hs := f.record(t, callTo(5, uint64(len(in)), 1, event.Env{Balance: w(1), CalleeGas: 1000}, in))
	require.Len(t, hs, 8)

	ops := f.oob.Operations()
	want := []Instruction{CALL, MODEXP_CDS, MODEXP_XBS, MODEXP_XBS, MODEXP_XBS, MODEXP_LEAD, MODEXP_PRICING, MODEXP_EXTRACT}
	for i, inst := range want {
		assert.Equal(t, inst, ops[i].Instruction(), "chunk %d", i)
	}

	mbs := ops[4]
	assert.True(t, one(mbs.Data(4)))
	assert.Equal(t, word.LimbFromUint64(1), mbs.Data(7))

	lead := ops[5]
	assert.True(t, one(lead.Data(4)))
	assert.Equal(t, word.LimbFromUint64(2), lead.Data(6))

	pricing := ops[6]
	assert.Equal(t, word.LimbFromUint64(2), pricing.Data(6), "floor(log2(5))")
	assert.True(t, one(pricing.Data(4)))
	assert.Equal(t, word.LimbFromUint64(800), pricing.Data(5))

	extract := ops[7]
	for i := 6; i <= 8; i++ {
		assert.True(t, one(extract.Data(i)), "DATA_%d", i)
	}
	assert.Len(t, f.mod.Operations(), 2)

	tr := testutil.Commit(t, f.oob)
	assert.Equal(t, 29, tr.Rows)
}

func TestModexpOversizedBaseDoesNotPanic(t *testing.T) {
	f := newFixture()
	in := modexpInput(1<<20, 40, 1)
	hs := f.record(t, callTo(5, uint64(len(in)), 1, event.Env{Balance: w(1), CalleeGas: 1 << 40}, in))
	require.Len(t, hs, 8)
	pricing := f.oob.Operations()[6]
	assert.Equal(t, word.LimbFromUint64(64), pricing.Data(6), "8*(40-32) with a zero leading word")
}

func blakeInput(rounds uint32, final byte) []byte {
	in := make([]byte, blakeCallData)
	in[0], in[1], in[2], in[3] = byte(rounds>>24), byte(rounds>>16), byte(rounds>>8), byte(rounds)
	in[blakeCallData-1] = final
	return in
}

func TestBlakeParamsFollowValidCds(t *testing.T) {
	f := newFixture()
	env := event.Env{Balance: w(1), CalleeGas: 100}
	require.Len(t, f.record(t, callTo(9, 212, 64, env, blakeInput(12, 1))), 2)
	require.Len(t, f.record(t, callTo(9, 213, 64, env, blakeInput(12, 1))), 3)

	params := f.oob.Operations()[4]
	assert.Equal(t, BLAKE2F_PARAMS, params.Instruction())
	assert.True(t, one(params.Data(8)))
	assert.Equal(t, word.LimbFromUint64(88), params.Data(5))
}

func TestBlakeRejectsBadFinalFlag(t *testing.T) {
	f := newFixture()
	f.record(t, callTo(9, 213, 64, event.Env{Balance: w(1), CalleeGas: 100}, blakeInput(1, 2)))
	params := f.oob.Operations()[2]
	assert.False(t, one(params.Data(8)))
	assert.Equal(t, word.Limb{}, params.Data(5))
}

func TestRollbackDropsChunks(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.oob.EnterScope())
	f.record(t, callTo(1, 128, 32, event.Env{Balance: w(10), CalleeGas: 5000}, nil))
	require.NoError(t, f.oob.LeaveScope(false))
	assert.Equal(t, 0, f.oob.RowCount())
	testutil.Commit(t, f.oob)
}

func TestRecordEventIgnoresUntracedOpcodes(t *testing.T) {
	f := newFixture()
	ev := event.Op(opcode.ADD, w(1), w(2))
	_, ok, err := f.oob.RecordEvent(&ev)
	require.NoError(t, err)
	assert.False(t, ok)
}
