package pipeline

import "github.com/binghamton-cs520/apex/isa"

// executeALU computes the result of an arithmetic/logic/MOVC
// instruction sitting in EX. MUL is the odd one out: it occupies EX
// for two consecutive Ticks, stalling DRF and F for the first one. It
// sets both Stalled (which keeps Fetch from advancing PC) and Busy
// (which skips Decode outright rather than having it re-fail a hazard
// check every cycle).
func (m *Machine) executeALU(e *Latch) {
	switch e.Op {
	case isa.OpMovc:
		e.Buffer = e.Imm
	case isa.OpAdd:
		e.Buffer = e.Rs1Value + e.Rs2Value
		m.zero = e.Buffer == 0
	case isa.OpSub:
		e.Buffer = e.Rs1Value - e.Rs2Value
		m.zero = e.Buffer == 0
	case isa.OpAnd:
		e.Buffer = e.Rs2Value & e.Rs1Value
	case isa.OpOr:
		e.Buffer = e.Rs2Value | e.Rs1Value
	case isa.OpXor:
		e.Buffer = e.Rs2Value ^ e.Rs1Value
	case isa.OpMul:
		if !e.MulFlag {
			m.stage[F].Stalled = true
			m.stage[DRF].Stalled = true
			m.stage[F].Busy = true
			m.stage[DRF].Busy = true
			e.NOP = true
		} else {
			e.Buffer = e.Rs1Value * e.Rs2Value
			m.stage[F].Stalled = false
			m.stage[DRF].Stalled = false
			m.stage[F].Busy = false
			m.stage[DRF].Busy = false
			e.NOP = false
		}
		e.MulFlag = true
		m.zero = e.Buffer == 0
	}
}
