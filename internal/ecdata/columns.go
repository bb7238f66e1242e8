package ecdata

import "github.com/roach88/zkarith/internal/trace"

// Name is the module name and column prefix.
const Name = "ecdata"

const (
	colAccPairings       = "ecdata.ACC_PAIRINGS"
	colAcceptablePair    = "ecdata.ACCEPTABLE_PAIR_OF_POINTS_FOR_PAIRING_CIRCUIT"
	colByteDelta         = "ecdata.BYTE_DELTA"
	colSelectorEcadd     = "ecdata.CIRCUIT_SELECTOR_ECADD"
	colSelectorEcmul     = "ecdata.CIRCUIT_SELECTOR_ECMUL"
	colSelectorEcpairing = "ecdata.CIRCUIT_SELECTOR_ECPAIRING"
	colSelectorEcrecover = "ecdata.CIRCUIT_SELECTOR_ECRECOVER"
	colSelectorG2        = "ecdata.CIRCUIT_SELECTOR_G2_MEMBERSHIP"
	colSelectorP256      = "ecdata.CIRCUIT_SELECTOR_P256_VERIFY"
	colCt                = "ecdata.CT"
	colCtMax             = "ecdata.CT_MAX"
	colExtArg1Hi         = "ecdata.EXT_ARG1_HI"
	colExtArg1Lo         = "ecdata.EXT_ARG1_LO"
	colExtArg2Hi         = "ecdata.EXT_ARG2_HI"
	colExtArg2Lo         = "ecdata.EXT_ARG2_LO"
	colExtArg3Hi         = "ecdata.EXT_ARG3_HI"
	colExtArg3Lo         = "ecdata.EXT_ARG3_LO"
	colExtFlag           = "ecdata.EXT_FLAG"
	colExtInst           = "ecdata.EXT_INST"
	colExtResHi          = "ecdata.EXT_RES_HI"
	colExtResLo          = "ecdata.EXT_RES_LO"
	colG2TestRequired    = "ecdata.G2_MEMBERSHIP_TEST_REQUIRED"
	colHurdle            = "ecdata.HURDLE"
	colID                = "ecdata.ID"
	colIndex             = "ecdata.INDEX"
	colIndexMax          = "ecdata.INDEX_MAX"
	colICP               = "ecdata.INTERNAL_CHECKS_PASSED"
	colIsEcaddData       = "ecdata.IS_ECADD_DATA"
	colIsEcaddResult     = "ecdata.IS_ECADD_RESULT"
	colIsEcmulData       = "ecdata.IS_ECMUL_DATA"
	colIsEcmulResult     = "ecdata.IS_ECMUL_RESULT"
	colIsEcpairingData   = "ecdata.IS_ECPAIRING_DATA"
	colIsEcpairingResult = "ecdata.IS_ECPAIRING_RESULT"
	colIsEcrecoverData   = "ecdata.IS_ECRECOVER_DATA"
	colIsEcrecoverResult = "ecdata.IS_ECRECOVER_RESULT"
	colIsInfinity        = "ecdata.IS_INFINITY"
	colIsLargePoint      = "ecdata.IS_LARGE_POINT"
	colIsP256Data        = "ecdata.IS_P256_VERIFY_DATA"
	colIsP256Result      = "ecdata.IS_P256_VERIFY_RESULT"
	colIsSmallPoint      = "ecdata.IS_SMALL_POINT"
	colLimb              = "ecdata.LIMB"
	colNotOnG2           = "ecdata.NOT_ON_G2"
	colNotOnG2Acc        = "ecdata.NOT_ON_G2_ACC"
	colNotOnG2AccMax     = "ecdata.NOT_ON_G2_ACC_MAX"
	colTrivialPairing    = "ecdata.OVERALL_TRIVIAL_PAIRING"
	colPhase             = "ecdata.PHASE"
	colStamp             = "ecdata.STAMP"
	colSuccessBit        = "ecdata.SUCCESS_BIT"
	colTotalPairings     = "ecdata.TOTAL_PAIRINGS"
	colTotalSize         = "ecdata.TOTAL_SIZE"
	colWcpArg1Hi         = "ecdata.WCP_ARG1_HI"
	colWcpArg1Lo         = "ecdata.WCP_ARG1_LO"
	colWcpArg2Hi         = "ecdata.WCP_ARG2_HI"
	colWcpArg2Lo         = "ecdata.WCP_ARG2_LO"
	colWcpFlag           = "ecdata.WCP_FLAG"
	colWcpInst           = "ecdata.WCP_INST"
	colWcpRes            = "ecdata.WCP_RES"
)

// Columns is the module's layout.
var Columns = trace.Layout{
	{Name: colAccPairings, Width: 2},
	{Name: colAcceptablePair, Width: 1},
	{Name: colByteDelta, Width: 1},
	{Name: colSelectorEcadd, Width: 1},
	{Name: colSelectorEcmul, Width: 1},
	{Name: colSelectorEcpairing, Width: 1},
	{Name: colSelectorEcrecover, Width: 1},
	{Name: colSelectorG2, Width: 1},
	{Name: colSelectorP256, Width: 1},
	{Name: colCt, Width: 1},
	{Name: colCtMax, Width: 1},
	{Name: colExtArg1Hi, Width: 16},
	{Name: colExtArg1Lo, Width: 16},
	{Name: colExtArg2Hi, Width: 16},
	{Name: colExtArg2Lo, Width: 16},
	{Name: colExtArg3Hi, Width: 16},
	{Name: colExtArg3Lo, Width: 16},
	{Name: colExtFlag, Width: 1},
	{Name: colExtInst, Width: 1},
	{Name: colExtResHi, Width: 16},
	{Name: colExtResLo, Width: 16},
	{Name: colG2TestRequired, Width: 1},
	{Name: colHurdle, Width: 1},
	{Name: colID, Width: 4},
	{Name: colIndex, Width: 2},
	{Name: colIndexMax, Width: 2},
	{Name: colICP, Width: 1},
	{Name: colIsEcaddData, Width: 1},
	{Name: colIsEcaddResult, Width: 1},
	{Name: colIsEcmulData, Width: 1},
	{Name: colIsEcmulResult, Width: 1},
	{Name: colIsEcpairingData, Width: 1},
	{Name: colIsEcpairingResult, Width: 1},
	{Name: colIsEcrecoverData, Width: 1},
	{Name: colIsEcrecoverResult, Width: 1},
	{Name: colIsInfinity, Width: 1},
	{Name: colIsLargePoint, Width: 1},
	{Name: colIsP256Data, Width: 1},
	{Name: colIsP256Result, Width: 1},
	{Name: colIsSmallPoint, Width: 1},
	{Name: colLimb, Width: 16},
	{Name: colNotOnG2, Width: 1},
	{Name: colNotOnG2Acc, Width: 1},
	{Name: colNotOnG2AccMax, Width: 1},
	{Name: colTrivialPairing, Width: 1},
	{Name: colPhase, Width: 2},
	{Name: colStamp, Width: 4},
	{Name: colSuccessBit, Width: 1},
	{Name: colTotalPairings, Width: 2},
	{Name: colTotalSize, Width: 2},
	{Name: colWcpArg1Hi, Width: 16},
	{Name: colWcpArg1Lo, Width: 16},
	{Name: colWcpArg2Hi, Width: 16},
	{Name: colWcpArg2Lo, Width: 16},
	{Name: colWcpFlag, Width: 1},
	{Name: colWcpInst, Width: 1},
	{Name: colWcpRes, Width: 1},
}.Headers()
