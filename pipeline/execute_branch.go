package pipeline

import "github.com/binghamton-cs520/apex/isa"

// executeBranch resolves JUMP immediately (redirecting PC this same
// Tick) and computes the taken-target address for BZ/BNZ, left for
// Memory to actually redirect PC and squash the pipeline once the
// branch is no longer speculative.
//
// JUMP is a preserved quirk: it redirects PC without flushing DRF/F,
// so the instruction already fetched into DRF along the sequential
// path behind it is not discarded - it continues through the pipeline
// and retires. See DESIGN.md.
func (m *Machine) executeBranch(e *Latch) {
	switch e.Op {
	case isa.OpJump:
		m.pc = int(e.Rs1Value + e.Imm)
	case isa.OpBz:
		if m.zero {
			e.MemAddress = int32(e.PC) + e.Imm
			m.zero = false
		} else {
			e.MemAddress = 0
		}
	case isa.OpBnz:
		if !m.zero {
			e.MemAddress = int32(e.PC) + e.Imm
		} else {
			e.MemAddress = 0
		}
	}
}
