package wcp

import "github.com/roach88/zkarith/internal/trace"

// Name is the module name and column prefix.
const Name = "wcp"

const (
	colAcc1        = "wcp.ACC_1"
	colAcc2        = "wcp.ACC_2"
	colAcc3        = "wcp.ACC_3"
	colAcc4        = "wcp.ACC_4"
	colAcc5        = "wcp.ACC_5"
	colAcc6        = "wcp.ACC_6"
	colArg1Hi      = "wcp.ARGUMENT_1_HI"
	colArg1Lo      = "wcp.ARGUMENT_1_LO"
	colArg2Hi      = "wcp.ARGUMENT_2_HI"
	colArg2Lo      = "wcp.ARGUMENT_2_LO"
	colBit1        = "wcp.BIT_1"
	colBit2        = "wcp.BIT_2"
	colBit3        = "wcp.BIT_3"
	colBit4        = "wcp.BIT_4"
	colBits        = "wcp.BITS"
	colByte1       = "wcp.BYTE_1"
	colByte2       = "wcp.BYTE_2"
	colByte3       = "wcp.BYTE_3"
	colByte4       = "wcp.BYTE_4"
	colByte5       = "wcp.BYTE_5"
	colByte6       = "wcp.BYTE_6"
	colCounter     = "wcp.COUNTER"
	colCtMax       = "wcp.CT_MAX"
	colInst        = "wcp.INST"
	colIsEq        = "wcp.IS_EQ"
	colIsGeq       = "wcp.IS_GEQ"
	colIsGt        = "wcp.IS_GT"
	colIsIszero    = "wcp.IS_ISZERO"
	colIsLeq       = "wcp.IS_LEQ"
	colIsLt        = "wcp.IS_LT"
	colIsSgt       = "wcp.IS_SGT"
	colIsSlt       = "wcp.IS_SLT"
	colNeg1        = "wcp.NEG_1"
	colNeg2        = "wcp.NEG_2"
	colOneLine     = "wcp.ONE_LINE_INSTRUCTION"
	colResult      = "wcp.RESULT"
	colVariableLen = "wcp.VARIABLE_LENGTH_INSTRUCTION"
	colStamp       = "wcp.WORD_COMPARISON_STAMP"
)

// Columns is the module's layout.
var Columns = trace.Layout{
	{Name: colAcc1, Width: 16},
	{Name: colAcc2, Width: 16},
	{Name: colAcc3, Width: 16},
	{Name: colAcc4, Width: 16},
	{Name: colAcc5, Width: 16},
	{Name: colAcc6, Width: 16},
	{Name: colArg1Hi, Width: 16},
	{Name: colArg1Lo, Width: 16},
	{Name: colArg2Hi, Width: 16},
	{Name: colArg2Lo, Width: 16},
	{Name: colBit1, Width: 1},
	{Name: colBit2, Width: 1},
	{Name: colBit3, Width: 1},
	{Name: colBit4, Width: 1},
	{Name: colBits, Width: 1},
	{Name: colByte1, Width: 1},
	{Name: colByte2, Width: 1},
	{Name: colByte3, Width: 1},
	{Name: colByte4, Width: 1},
	{Name: colByte5, Width: 1},
	{Name: colByte6, Width: 1},
	{Name: colCounter, Width: 1},
	{Name: colCtMax, Width: 1},
	{Name: colInst, Width: 1},
	{Name: colIsEq, Width: 1},
	{Name: colIsGeq, Width: 1},
	{Name: colIsGt, Width: 1},
	{Name: colIsIszero, Width: 1},
	{Name: colIsLeq, Width: 1},
	{Name: colIsLt, Width: 1},
	{Name: colIsSgt, Width: 1},
	{Name: colIsSlt, Width: 1},
	{Name: colNeg1, Width: 1},
	{Name: colNeg2, Width: 1},
	{Name: colOneLine, Width: 1},
	{Name: colResult, Width: 1},
	{Name: colVariableLen, Width: 1},
	{Name: colStamp, Width: 4},
}.Headers()
