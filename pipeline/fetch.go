package pipeline

// fetch keeps F populated with the instruction at the current PC.
//
// If EX is flushing (a HALT just reached Execute), F is
// blanked instead. Otherwise F is always refreshed from code memory;
// whether that refresh actually advances the machine depends on DRF:
// if DRF is stalled (a hazard, a pending BZ/BNZ, or the MUL freeze),
// PC does not advance and F's new contents are not hand off to DRF, so
// the same instruction is re-observed next Tick.
func (m *Machine) fetch() {
	f := &m.stage[F]
	if m.stage[EX].Flush {
		*f = Latch{}
		m.traceStage("Fetch", *f)
		return
	}

	f.PC = m.pc
	if ins, ok := m.Code.At(m.pc); ok {
		f.Op = ins.Op
		f.Rd, f.Rs1, f.Rs2, f.Imm = ins.Rd, ins.Rs1, ins.Rs2, ins.Imm
		f.Valid = true
	} else {
		f.Op, f.Rd, f.Rs1, f.Rs2, f.Imm = 0, 0, 0, 0, 0
		f.Valid = false
	}

	if !m.stage[DRF].Stalled {
		m.pc += 4
		m.stage[DRF] = *f
	}
	m.traceStage("Fetch", *f)
}
