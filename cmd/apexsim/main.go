// apexsim loads an APEX assembly source file and runs it to
// completion or to a cycle budget, printing final register and data
// memory state. Mirrors the original CLI contract: <file> <sim-mode>
// <cycles>.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/binghamton-cs520/apex/asm"
	"github.com/binghamton-cs520/apex/pipeline"
	"github.com/binghamton-cs520/apex/trace"
)

var (
	debug       = flag.Bool("debug", false, "If true, print per-cycle stage contents while running")
	dumpCells   = flag.Int("dump_cells", 99, "Number of data memory cells to print at completion")
	traceBuffer = flag.Int("trace_buffer", 0, "If > 0, retain the last N stage-trace lines for a post-mortem dump on error")
	dumpState   = flag.Bool("dump_state", false, "If true, print a full field-by-field Machine dump at completion")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		log.Fatalf("Usage: %s [-debug] [-dump_cells N] <source> <sim-mode> <cycles>", os.Args[0])
	}

	f, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("Unable to open %s: %v", args[0], err)
	}
	defer f.Close()

	program, listing, err := asm.ParseProgram(f)
	if err != nil {
		log.Fatalf("Unable to parse %s: %v", args[0], err)
	}

	cycles, err := strconv.Atoi(args[2])
	if err != nil {
		log.Fatalf("Invalid cycle count %q: %v", args[2], err)
	}

	m := pipeline.New(program, args[1])
	printer := trace.New(os.Stdout, *debug)
	printer.BufferCap = *traceBuffer
	m.Tracer = printer

	if *debug {
		trace.PrintProgram(os.Stdout, listing)
	}

	if err := m.Run(cycles); err != nil {
		printer.DumpBuffer(os.Stdout)
		log.Fatalf("Simulation stopped: %v", err)
	}

	fmt.Printf("(apex) >> Simulation complete: %d instructions retired in %d cycles\n", m.Retired(), m.Clock())
	trace.PrintState(os.Stdout, m, *dumpCells)
	if *dumpState {
		trace.DumpMachine(os.Stdout, m)
	}
}
