package shf

import "github.com/roach88/zkarith/internal/trace"

// Name is the module name and column prefix.
const Name = "shf"

const (
	colAcc1           = "shf.ACC_1"
	colAcc2           = "shf.ACC_2"
	colAcc3           = "shf.ACC_3"
	colAcc4           = "shf.ACC_4"
	colAcc5           = "shf.ACC_5"
	colArg1Hi         = "shf.ARG_1_HI"
	colArg1Lo         = "shf.ARG_1_LO"
	colArg2Hi         = "shf.ARG_2_HI"
	colArg2Lo         = "shf.ARG_2_LO"
	colBit1           = "shf.BIT_1"
	colBit2           = "shf.BIT_2"
	colBit3           = "shf.BIT_3"
	colBit4           = "shf.BIT_4"
	colBitB3          = "shf.BIT_B_3"
	colBitB4          = "shf.BIT_B_4"
	colBitB5          = "shf.BIT_B_5"
	colBitB6          = "shf.BIT_B_6"
	colBitB7          = "shf.BIT_B_7"
	colBits           = "shf.BITS"
	colByte1          = "shf.BYTE_1"
	colByte2          = "shf.BYTE_2"
	colByte3          = "shf.BYTE_3"
	colByte4          = "shf.BYTE_4"
	colByte5          = "shf.BYTE_5"
	colCounter        = "shf.COUNTER"
	colInst           = "shf.INST"
	colIomf           = "shf.IOMF"
	colKnown          = "shf.KNOWN"
	colLasHi          = "shf.LEFT_ALIGNED_SUFFIX_HIGH"
	colLasLo          = "shf.LEFT_ALIGNED_SUFFIX_LOW"
	colLow3           = "shf.LOW_3"
	colMicroShift     = "shf.MICRO_SHIFT_PARAMETER"
	colNeg            = "shf.NEG"
	colOneLine        = "shf.ONE_LINE_INSTRUCTION"
	colOnes           = "shf.ONES"
	colResHi          = "shf.RES_HI"
	colResLo          = "shf.RES_LO"
	colRapHi          = "shf.RIGHT_ALIGNED_PREFIX_HIGH"
	colRapLo          = "shf.RIGHT_ALIGNED_PREFIX_LOW"
	colShb3Hi         = "shf.SHB_3_HI"
	colShb3Lo         = "shf.SHB_3_LO"
	colShb4Hi         = "shf.SHB_4_HI"
	colShb4Lo         = "shf.SHB_4_LO"
	colShb5Hi         = "shf.SHB_5_HI"
	colShb5Lo         = "shf.SHB_5_LO"
	colShb6Hi         = "shf.SHB_6_HI"
	colShb6Lo         = "shf.SHB_6_LO"
	colShb7Hi         = "shf.SHB_7_HI"
	colShb7Lo         = "shf.SHB_7_LO"
	colShiftDirection = "shf.SHIFT_DIRECTION"
	colStamp          = "shf.SHIFT_STAMP"
)

// Columns is the module's layout.
var Columns = trace.Layout{
	{Name: colAcc1, Width: 16},
	{Name: colAcc2, Width: 16},
	{Name: colAcc3, Width: 16},
	{Name: colAcc4, Width: 16},
	{Name: colAcc5, Width: 16},
	{Name: colArg1Hi, Width: 16},
	{Name: colArg1Lo, Width: 16},
	{Name: colArg2Hi, Width: 16},
	{Name: colArg2Lo, Width: 16},
	{Name: colBit1, Width: 1},
	{Name: colBit2, Width: 1},
	{Name: colBit3, Width: 1},
	{Name: colBit4, Width: 1},
	{Name: colBitB3, Width: 1},
	{Name: colBitB4, Width: 1},
	{Name: colBitB5, Width: 1},
	{Name: colBitB6, Width: 1},
	{Name: colBitB7, Width: 1},
	{Name: colBits, Width: 1},
	{Name: colByte1, Width: 1},
	{Name: colByte2, Width: 1},
	{Name: colByte3, Width: 1},
	{Name: colByte4, Width: 1},
	{Name: colByte5, Width: 1},
	{Name: colCounter, Width: 1},
	{Name: colInst, Width: 1},
	{Name: colIomf, Width: 1},
	{Name: colKnown, Width: 1},
	{Name: colLasHi, Width: 1},
	{Name: colLasLo, Width: 1},
	{Name: colLow3, Width: 1},
	{Name: colMicroShift, Width: 1},
	{Name: colNeg, Width: 1},
	{Name: colOneLine, Width: 1},
	{Name: colOnes, Width: 1},
	{Name: colResHi, Width: 16},
	{Name: colResLo, Width: 16},
	{Name: colRapHi, Width: 1},
	{Name: colRapLo, Width: 1},
	{Name: colShb3Hi, Width: 1},
	{Name: colShb3Lo, Width: 1},
	{Name: colShb4Hi, Width: 1},
	{Name: colShb4Lo, Width: 1},
	{Name: colShb5Hi, Width: 1},
	{Name: colShb5Lo, Width: 1},
	{Name: colShb6Hi, Width: 1},
	{Name: colShb6Lo, Width: 1},
	{Name: colShb7Hi, Width: 1},
	{Name: colShb7Lo, Width: 1},
	{Name: colShiftDirection, Width: 1},
	{Name: colStamp, Width: 4},
}.Headers()
