package oob

import "github.com/roach88/zkarith/internal/trace"

// Name is the module name and column prefix.
const Name = "oob"

const (
	colAddFlag         = "oob.ADD_FLAG"
	colCt              = "oob.CT"
	colCtMax           = "oob.CT_MAX"
	colData1           = "oob.DATA_1"
	colData2           = "oob.DATA_2"
	colData3           = "oob.DATA_3"
	colData4           = "oob.DATA_4"
	colData5           = "oob.DATA_5"
	colData6           = "oob.DATA_6"
	colData7           = "oob.DATA_7"
	colData8           = "oob.DATA_8"
	colData9           = "oob.DATA_9"
	colIsBlake2fCds    = "oob.IS_BLAKE2F_CDS"
	colIsBlake2fParams = "oob.IS_BLAKE2F_PARAMS"
	colIsCall          = "oob.IS_CALL"
	colIsCdl           = "oob.IS_CDL"
	colIsCreate        = "oob.IS_CREATE"
	colIsDeployment    = "oob.IS_DEPLOYMENT"
	colIsEcadd         = "oob.IS_ECADD"
	colIsEcmul         = "oob.IS_ECMUL"
	colIsEcpairing     = "oob.IS_ECPAIRING"
	colIsEcrecover     = "oob.IS_ECRECOVER"
	colIsIdentity      = "oob.IS_IDENTITY"
	colIsJump          = "oob.IS_JUMP"
	colIsJumpi         = "oob.IS_JUMPI"
	colIsModexpCds     = "oob.IS_MODEXP_CDS"
	colIsModexpExtract = "oob.IS_MODEXP_EXTRACT"
	colIsModexpLead    = "oob.IS_MODEXP_LEAD"
	colIsModexpPricing = "oob.IS_MODEXP_PRICING"
	colIsModexpXbs     = "oob.IS_MODEXP_XBS"
	colIsP256Verify    = "oob.IS_P256_VERIFY"
	colIsRdc           = "oob.IS_RDC"
	colIsRipemd        = "oob.IS_RIPEMD"
	colIsSha2          = "oob.IS_SHA2"
	colIsSstore        = "oob.IS_SSTORE"
	colIsXcall         = "oob.IS_XCALL"
	colModFlag         = "oob.MOD_FLAG"
	colOobInst         = "oob.OOB_INST"
	colOutData1        = "oob.OUTGOING_DATA_1"
	colOutData2        = "oob.OUTGOING_DATA_2"
	colOutData3        = "oob.OUTGOING_DATA_3"
	colOutData4        = "oob.OUTGOING_DATA_4"
	colOutInst         = "oob.OUTGOING_INST"
	colOutResLo        = "oob.OUTGOING_RES_LO"
	colStamp           = "oob.STAMP"
	colWcpFlag         = "oob.WCP_FLAG"
)

// Columns is the module's layout.
var Columns = trace.Layout{
	{Name: colAddFlag, Width: 1},
	{Name: colCt, Width: 1},
	{Name: colCtMax, Width: 1},
	{Name: colData1, Width: 16},
	{Name: colData2, Width: 16},
	{Name: colData3, Width: 16},
	{Name: colData4, Width: 16},
	{Name: colData5, Width: 16},
	{Name: colData6, Width: 16},
	{Name: colData7, Width: 16},
	{Name: colData8, Width: 16},
	{Name: colData9, Width: 16},
	{Name: colIsBlake2fCds, Width: 1},
	{Name: colIsBlake2fParams, Width: 1},
	{Name: colIsCall, Width: 1},
	{Name: colIsCdl, Width: 1},
	{Name: colIsCreate, Width: 1},
	{Name: colIsDeployment, Width: 1},
	{Name: colIsEcadd, Width: 1},
	{Name: colIsEcmul, Width: 1},
	{Name: colIsEcpairing, Width: 1},
	{Name: colIsEcrecover, Width: 1},
	{Name: colIsIdentity, Width: 1},
	{Name: colIsJump, Width: 1},
	{Name: colIsJumpi, Width: 1},
	{Name: colIsModexpCds, Width: 1},
	{Name: colIsModexpExtract, Width: 1},
	{Name: colIsModexpLead, Width: 1},
	{Name: colIsModexpPricing, Width: 1},
	{Name: colIsModexpXbs, Width: 1},
	{Name: colIsP256Verify, Width: 1},
	{Name: colIsRdc, Width: 1},
	{Name: colIsRipemd, Width: 1},
	{Name: colIsSha2, Width: 1},
	{Name: colIsSstore, Width: 1},
	{Name: colIsXcall, Width: 1},
	{Name: colModFlag, Width: 1},
	{Name: colOobInst, Width: 2},
	{Name: colOutData1, Width: 16},
	{Name: colOutData2, Width: 16},
	{Name: colOutData3, Width: 16},
	{Name: colOutData4, Width: 16},
	{Name: colOutInst, Width: 1},
	{Name: colOutResLo, Width: 16},
	{Name: colStamp, Width: 4},
	{Name: colWcpFlag, Width: 1},
}.Headers()

var dataColumns = [9]string{
	colData1, colData2, colData3, colData4, colData5, colData6, colData7, colData8, colData9,
}

var outgoingColumns = [4]string{colOutData1, colOutData2, colOutData3, colOutData4}
