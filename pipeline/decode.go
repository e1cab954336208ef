package pipeline

import "github.com/binghamton-cs520/apex/isa"

// decode resolves register operands for the instruction sitting in
// DRF and, if it can be admitted this Tick, copies it into EX.
//
// Three distinct stall mechanisms meet here:
//
//   - A register hazard (RAW on a source register not yet valid, or a
//     BZ/BNZ behind an unretired arithmetic producer) fails admission
//     for exactly as long as the hazard lasts. DRF is re-evaluated
//     fresh every Tick - since F won't hand DRF a new instruction while
//     DRF.Stalled is set, DRF keeps holding the same instruction until
//     the hazard clears. On a failed admission EX receives a bubble
//     rather than stale content, so Execute never re-runs work it
//     already forwarded to MEM.
//   - The MUL two-cycle occupancy of EX freezes DRF and F via Busy,
//     set directly by Execute; while Busy is set decode does nothing
//     at all; EX keeps the same MUL instruction across both cycles.
//   - HALT freezes F permanently (ex_halt) while still being admitted
//     into EX itself, so it can drain through MEM and WB normally.
func (m *Machine) decode() {
	d := &m.stage[DRF]

	if m.stage[EX].Flush {
		m.stage[F].Valid = false
		m.traceStage("Decode/RF", Latch{})
		return
	}

	if d.Busy {
		m.traceStage("Decode/RF", *d)
		return
	}
	if !d.Valid {
		m.traceStage("Decode/RF", *d)
		return
	}

	if d.Op == isa.OpHalt {
		d.ArithmeticInstr = false
		m.stage[F].Stalled = true
		m.stage[F].Valid = false
		m.stage[F].PC = 0
		m.exHalt = true
		d.Stalled = false
		m.stage[EX] = *d
		m.traceStage("Decode/RF", *d)
		return
	}

	admit := true
	switch d.Op {
	case isa.OpStore:
		d.ArithmeticInstr = false
		if m.regsValid[d.Rs1] > 0 && m.regsValid[d.Rs2] > 0 {
			d.Rs1Value = m.Regs[d.Rs1]
			d.Rs2Value = m.Regs[d.Rs2]
		} else {
			admit = false
		}
	case isa.OpLoad:
		d.ArithmeticInstr = false
		if m.regsValid[d.Rs1] > 0 {
			d.Rs1Value = m.Regs[d.Rs1]
			m.regsValid[d.Rd]--
		} else {
			admit = false
		}
	case isa.OpJump:
		d.ArithmeticInstr = false
		// No RAW gate on rs1, preserved; see DESIGN.md.
		d.Rs1Value = m.Regs[d.Rs1]
	case isa.OpMovc:
		d.ArithmeticInstr = false
		m.regsValid[d.Rd]--
	case isa.OpAdd, isa.OpSub, isa.OpMul:
		d.ArithmeticInstr = true
		if m.regsValid[d.Rs1] > 0 && m.regsValid[d.Rs2] > 0 {
			d.Rs1Value = m.Regs[d.Rs1]
			d.Rs2Value = m.Regs[d.Rs2]
			m.regsValid[d.Rd]--
		} else {
			admit = false
		}
	case isa.OpAnd, isa.OpOr, isa.OpXor:
		d.ArithmeticInstr = false
		if m.regsValid[d.Rs1] > 0 && m.regsValid[d.Rs2] > 0 {
			d.Rs1Value = m.Regs[d.Rs1]
			d.Rs2Value = m.Regs[d.Rs2]
			m.regsValid[d.Rd]--
		} else {
			admit = false
		}
	case isa.OpBz, isa.OpBnz:
		d.ArithmeticInstr = false
		if m.stage[MEM].ArithmeticInstr || m.stage[WB].ArithmeticInstr {
			admit = false
		}
	}

	if admit {
		m.stage[F].Stalled = false
		d.Stalled = false
		m.stage[EX] = *d
	} else {
		if d.Op != isa.OpBz && d.Op != isa.OpBnz {
			m.stage[F].Stalled = true
		}
		d.Stalled = true
		m.stage[EX] = Latch{}
	}
	m.traceStage("Decode/RF", *d)
}
