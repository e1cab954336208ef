package pipeline

import "github.com/binghamton-cs520/apex/isa"

// memoryStage performs the data memory access for STORE/LOAD, and for
// a taken BZ/BNZ redirects PC and squashes the one instruction already
// sitting in EX and the one already sitting in DRF - the two
// wrong-path instructions the in-order front end had already fetched
// on the not-taken assumption. HALT freezes the rest of the pipeline
// here too, one Tick after Execute first raised the flush.
func (m *Machine) memoryStage() error {
	mm := &m.stage[MEM]
	if !mm.Valid || mm.NOP {
		m.stage[WB] = *mm
		m.traceStage("Memory", *mm)
		return nil
	}

	switch mm.Op {
	case isa.OpStore:
		if err := m.Data.Store(mm.MemAddress, mm.Rs1Value); err != nil {
			m.Logger.Printf("store fault at clock %d, pc %d: %v", m.clock, mm.PC, err)
			return err
		}
	case isa.OpLoad:
		v, err := m.Data.Load(mm.MemAddress)
		if err != nil {
			m.Logger.Printf("load fault at clock %d, pc %d: %v", m.clock, mm.PC, err)
			return err
		}
		mm.Buffer = v
	case isa.OpBz, isa.OpBnz:
		m.resolveBranch(mm)
	case isa.OpHalt:
		m.stage[EX] = Latch{Stalled: true}
		m.stage[DRF] = Latch{Stalled: true}
		m.stage[F] = Latch{Stalled: true}
		m.exHalt = true
	}

	m.stage[WB] = *mm
	m.traceStage("Memory", *mm)
	return nil
}

func (m *Machine) resolveBranch(mm *Latch) {
	if mm.MemAddress == 0 {
		return
	}
	m.pc = int(mm.MemAddress)

	if m.stage[EX].Op.WritesRd() && m.stage[EX].Valid {
		m.regsValid[m.stage[EX].Rd]++
	}
	m.stage[DRF] = Latch{}
	m.stage[EX] = Latch{}

	// Retired-counter correction: couples termination to the static
	// branch displacement rather than actual dynamic retirements.
	// Preserved as found; see DESIGN.md.
	if mm.Imm < 0 {
		m.retired = m.retired + int(mm.Imm/4) - 1
	} else {
		m.retired = m.retired - int(mm.Imm/4)
	}

	if m.exHalt {
		m.exHalt = false
		m.stage[F].Stalled = false
	}
}
