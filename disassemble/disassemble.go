// Package disassemble renders a decoded isa.Instruction back into the
// textual form the assembler accepts, used by cmd/apexdump and by the
// trace package's per-stage printer.
package disassemble

import (
	"fmt"

	"github.com/binghamton-cs520/apex/isa"
)

// Format returns the printable form of ins, e.g. "STORE,R1,R2,#4".
// Matches the operand order fixed by the assembler, which is not
// uniform across opcodes (STORE lists rs1 before rs2, LOAD lists rd
// before rs1).
func Format(ins isa.Instruction) string {
	switch ins.Op {
	case isa.OpMovc:
		return fmt.Sprintf("MOVC,R%d,#%d", ins.Rd, ins.Imm)
	case isa.OpStore:
		return fmt.Sprintf("STORE,R%d,R%d,#%d", ins.Rs1, ins.Rs2, ins.Imm)
	case isa.OpLoad:
		return fmt.Sprintf("LOAD,R%d,R%d,#%d", ins.Rd, ins.Rs1, ins.Imm)
	case isa.OpAdd:
		return fmt.Sprintf("ADD,R%d,R%d,R%d", ins.Rd, ins.Rs1, ins.Rs2)
	case isa.OpSub:
		return fmt.Sprintf("SUB,R%d,R%d,R%d", ins.Rd, ins.Rs1, ins.Rs2)
	case isa.OpAnd:
		return fmt.Sprintf("AND,R%d,R%d,R%d", ins.Rd, ins.Rs1, ins.Rs2)
	case isa.OpOr:
		return fmt.Sprintf("OR,R%d,R%d,R%d", ins.Rd, ins.Rs1, ins.Rs2)
	case isa.OpXor:
		return fmt.Sprintf("XOR,R%d,R%d,R%d", ins.Rd, ins.Rs1, ins.Rs2)
	case isa.OpMul:
		return fmt.Sprintf("MUL,R%d,R%d,R%d", ins.Rd, ins.Rs1, ins.Rs2)
	case isa.OpJump:
		return fmt.Sprintf("JUMP,R%d,#%d", ins.Rs1, ins.Imm)
	case isa.OpBz:
		return fmt.Sprintf("BZ,#%d", ins.Imm)
	case isa.OpBnz:
		return fmt.Sprintf("BNZ,#%d", ins.Imm)
	case isa.OpHalt:
		return "HALT"
	default:
		return "EMPTY"
	}
}
