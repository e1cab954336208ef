// Package trace prints per-cycle pipeline state and final machine
// state, the Go equivalent of the reference simulator's
// ENABLE_DEBUG_MESSAGES printf calls - except gated by a runtime flag
// and written to an io.Writer instead of hardcoded to stdout.
package trace

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/binghamton-cs520/apex/disassemble"
	"github.com/binghamton-cs520/apex/isa"
	"github.com/binghamton-cs520/apex/pipeline"
)

// Printer implements pipeline.Tracer and also prints program listings
// and final machine state. Stage prints nothing whenever Debug is false,
// so callers can always wire a Printer in and toggle tracing with a
// single flag.
//
// When BufferCap is positive, Stage also keeps the last BufferCap
// formatted lines in Buffer regardless of Debug, so a caller can dump
// recent pipeline activity after a fatal error without having printed
// every cycle along the way.
type Printer struct {
	W     io.Writer
	Debug bool

	BufferCap int
	Buffer    []string
}

// New returns a Printer writing to w. Debug controls whether Stage
// prints anything; PrintProgram and PrintState always print.
func New(w io.Writer, debug bool) *Printer {
	return &Printer{W: w, Debug: debug}
}

// Stage implements pipeline.Tracer.
func (p *Printer) Stage(name string, l pipeline.Latch) {
	line := fmt.Sprintf("%-15s: pc(%d) %s", name, l.PC, formatLatch(l))
	if p.BufferCap > 0 {
		p.Buffer = append(p.Buffer, line)
		if len(p.Buffer) > p.BufferCap {
			p.Buffer = p.Buffer[len(p.Buffer)-p.BufferCap:]
		}
	}
	if !p.Debug {
		return
	}
	fmt.Fprintln(p.W, line)
}

// DumpBuffer prints whatever ring-buffered trace lines are still held,
// oldest first. A no-op if BufferCap was never set.
func (p *Printer) DumpBuffer(w io.Writer) {
	if len(p.Buffer) == 0 {
		return
	}
	fmt.Fprintf(w, "==== Last %d Stage Transitions ====\n", len(p.Buffer))
	for _, line := range p.Buffer {
		fmt.Fprintln(w, line)
	}
}

// DumpMachine writes a full field-by-field dump of m, unexported
// fields included, for failure diagnostics.
func DumpMachine(w io.Writer, m *pipeline.Machine) {
	fmt.Fprintln(w, "==== Machine State ====")
	spew.Fdump(w, m)
}

func formatLatch(l pipeline.Latch) string {
	if !l.Valid {
		return "EMPTY"
	}
	return disassemble.Format(isa.Instruction{
		Op:  l.Op,
		Rd:  l.Rd,
		Rs1: l.Rs1,
		Rs2: l.Rs2,
		Imm: l.Imm,
	})
}

// PrintProgram prints the parsed source listing the way the reference
// simulator echoes code memory back at startup.
func PrintProgram(w io.Writer, listing []string) {
	fmt.Fprintf(w, "APEX_CPU : loaded %d instructions\n", len(listing))
	for i, line := range listing {
		fmt.Fprintf(w, "%d: %s\n", i, line)
	}
}

// PrintState prints every register's value and validity, and the
// first dumpCells words of data memory.
func PrintState(w io.Writer, m *pipeline.Machine, dumpCells int) {
	fmt.Fprintf(w, "\n==== Register Values ====\n")
	for i := 0; i < 16; i++ {
		status := "Invalid"
		if m.RegValid(i) {
			status = "Valid"
		}
		fmt.Fprintf(w, "| R%-2d | Value = %-8d | status = %s |\n", i, m.Regs[i], status)
	}
	fmt.Fprintf(w, "==== Data Memory ====\n")
	for i, v := range m.Data.Dump(dumpCells) {
		fmt.Fprintf(w, "| MEM[%d] | Value = %d |\n", i, v)
	}
}
