package pipeline

import "github.com/binghamton-cs520/apex/isa"

// executeMemOp computes the effective address for STORE/LOAD; the
// actual data memory access happens in the Memory stage.
func (m *Machine) executeMemOp(e *Latch) {
	switch e.Op {
	case isa.OpStore:
		e.MemAddress = e.Rs2Value + e.Imm
	case isa.OpLoad:
		e.MemAddress = e.Imm + e.Rs1Value
	}
}
