package pipeline

import "github.com/binghamton-cs520/apex/isa"

// execute runs the instruction in EX, if any, and forwards the result
// into MEM. A latch with Valid==false (a bubble, from a Decode stall
// or the initial empty pipeline) just forwards unchanged.
func (m *Machine) execute() {
	e := &m.stage[EX]
	if !e.Valid {
		m.stage[MEM] = *e
		m.traceStage("Execute", *e)
		return
	}

	switch e.Op {
	case isa.OpStore, isa.OpLoad:
		m.executeMemOp(e)
	case isa.OpAdd, isa.OpSub, isa.OpAnd, isa.OpOr, isa.OpXor, isa.OpMul, isa.OpMovc:
		m.executeALU(e)
	case isa.OpJump, isa.OpBz, isa.OpBnz:
		m.executeBranch(e)
	case isa.OpHalt:
		e.Flush = true
		m.stage[DRF] = Latch{Stalled: true}
		m.stage[F] = Latch{Stalled: true}
		m.exHalt = true
	}

	m.stage[MEM] = *e
	m.traceStage("Execute", *e)
}
