package pipeline

import "github.com/binghamton-cs520/apex/isa"

// writeback commits a result to the register file and retires the
// instruction. A bubble (Valid==false) or a MUL's first-cycle nop does
// neither. HALT retiring is special: it sets the retired count to one
// short of code memory size so the unconditional increment below it
// lands exactly on the termination condition, and it blanks every
// upstream latch so nothing the front end had already fetched past the
// HALT is mistaken for still-live work.
func (m *Machine) writeback() {
	w := &m.stage[WB]
	if !w.Valid || w.NOP {
		m.traceStage("Writeback", *w)
		return
	}

	switch w.Op {
	case isa.OpMovc, isa.OpLoad, isa.OpAdd, isa.OpSub, isa.OpAnd, isa.OpOr, isa.OpXor, isa.OpMul:
		m.Regs[w.Rd] = w.Buffer
		m.regsValid[w.Rd]++
		m.stage[DRF].Stalled = false
		m.stage[F].Stalled = false
	case isa.OpHalt:
		m.retired = m.Code.Size() - 1
		m.stage[EX] = Latch{Stalled: true}
		m.stage[DRF] = Latch{Stalled: true}
		m.stage[F] = Latch{Stalled: true}
		m.stage[MEM] = Latch{Stalled: true}
		m.exHalt = true
	}

	m.retired++
	m.traceStage("Writeback", *w)
}
