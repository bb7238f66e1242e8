package oob

import "fmt"

// Instruction is the OOB_INST code of a chunk.
type Instruction uint16

const (
	JUMP           Instruction = 0x56
	JUMPI          Instruction = 0x57
	RDC            Instruction = 0x3e
	CDL            Instruction = 0x35
	CALL           Instruction = 0xca
	XCALL          Instruction = 0xcc
	CREATE         Instruction = 0xce
	SSTORE         Instruction = 0x55
	DEPLOYMENT     Instruction = 0xf3
	ECRECOVER      Instruction = 0xff01
	SHA2           Instruction = 0xff02
	RIPEMD         Instruction = 0xff03
	IDENTITY       Instruction = 0xff04
	ECADD          Instruction = 0xff06
	ECMUL          Instruction = 0xff07
	ECPAIRING      Instruction = 0xff08
	P256VERIFY     Instruction = 0xff0a
	BLAKE2F_CDS    Instruction = 0xfa09
	BLAKE2F_PARAMS Instruction = 0xfb09
	MODEXP_CDS     Instruction = 0xfa05
	MODEXP_XBS     Instruction = 0xfb05
	MODEXP_LEAD    Instruction = 0xfc05
	MODEXP_PRICING Instruction = 0xfd05
	MODEXP_EXTRACT Instruction = 0xfe05
)

type instructionInfo struct {
	name  string
	ctMax int
	flag  string
}

var instructions = map[Instruction]instructionInfo{
	JUMP:           {"JUMP", 0, colIsJump},
	JUMPI:          {"JUMPI", 1, colIsJumpi},
	RDC:            {"RDC", 2, colIsRdc},
	CDL:            {"CDL", 0, colIsCdl},
	CALL:           {"CALL", 2, colIsCall},
	XCALL:          {"XCALL", 0, colIsXcall},
	CREATE:         {"CREATE", 3, colIsCreate},
	SSTORE:         {"SSTORE", 0, colIsSstore},
	DEPLOYMENT:     {"DEPLOYMENT", 0, colIsDeployment},
	ECRECOVER:      {"ECRECOVER", 2, colIsEcrecover},
	SHA2:           {"SHA2", 3, colIsSha2},
	RIPEMD:         {"RIPEMD", 3, colIsRipemd},
	IDENTITY:       {"IDENTITY", 3, colIsIdentity},
	ECADD:          {"ECADD", 2, colIsEcadd},
	ECMUL:          {"ECMUL", 2, colIsEcmul},
	ECPAIRING:      {"ECPAIRING", 4, colIsEcpairing},
	P256VERIFY:     {"P256VERIFY", 2, colIsP256Verify},
	BLAKE2F_CDS:    {"BLAKE2F_CDS", 1, colIsBlake2fCds},
	BLAKE2F_PARAMS: {"BLAKE2F_PARAMS", 1, colIsBlake2fParams},
	MODEXP_CDS:     {"MODEXP_CDS", 2, colIsModexpCds},
	MODEXP_XBS:     {"MODEXP_XBS", 2, colIsModexpXbs},
	MODEXP_LEAD:    {"MODEXP_LEAD", 3, colIsModexpLead},
	MODEXP_PRICING: {"MODEXP_PRICING", 5, colIsModexpPricing},
	MODEXP_EXTRACT: {"MODEXP_EXTRACT", 3, colIsModexpExtract},
}

var flagColumns = func() []string {
	cols := make([]string, 0, len(instructions))
	for _, info := range instructions {
		cols = append(cols, info.flag)
	}
	return cols
}()

func (i Instruction) String() string {
	if info, ok := instructions[i]; ok {
		return info.name
	}
	return fmt.Sprintf("0x%04x", uint16(i))
}

// CtMax is the last counter value of a chunk; the chunk spans CtMax+1 rows.
func (i Instruction) CtMax() int {
	return instructions[i].ctMax
}
