// Package pipeline implements the APEX five-stage in-order pipeline:
// Fetch, Decode/Register-Read, Execute, Memory and Writeback, driven
// one clock edge at a time by Machine.Tick.
package pipeline

import (
	"errors"
	"io"
	"log"

	"github.com/binghamton-cs520/apex/isa"
	"github.com/binghamton-cs520/apex/memory"
)

// ErrAlreadyDone is returned by Tick if called again after every
// instruction in code memory has already retired. Run never triggers
// it itself (it checks Done before each Tick); it exists for callers
// driving Tick directly.
var ErrAlreadyDone = errors.New("pipeline: machine already retired every instruction")

// Stage indices into Machine.stage. Latches are processed in reverse
// pipeline order within a single Tick (WB, MEM, EX, DRF, F) so that
// every stage consumes the latch a previous Tick wrote before a later
// stage in the same Tick overwrites it.
const (
	F = iota
	DRF
	EX
	MEM
	WB
	numStages
)

// Latch is the pipeline register sitting between two stages. Fields
// unrelated to the opcode currently occupying the latch are left at
// their zero value; Valid is what distinguishes a latch holding a real
// instruction from an empty bubble (there is no sentinel opcode value
// for "nothing here" - see isa.OpEmpty, which never appears in parsed
// code and is only ever observed via Valid==false).
type Latch struct {
	PC  int
	Op  isa.Opcode
	Rd  int
	Rs1 int
	Rs2 int
	Imm int32

	Rs1Value   int32
	Rs2Value   int32
	Buffer     int32
	MemAddress int32

	ArithmeticInstr bool
	Stalled         bool
	Busy            bool
	NOP             bool
	Flush           bool
	MulFlag         bool
	Valid           bool
}

// Tracer receives a copy of each stage's latch once per Tick, after
// that stage has run. Implementations must not retain the Latch they
// are given beyond the call. A nil Tracer on Machine disables tracing
// entirely at no cost beyond a nil check.
type Tracer interface {
	Stage(name string, l Latch)
}

// Machine is a single APEX core: sixteen general registers, their
// validity counters, the five pipeline latches and the code/data
// memories they read and write.
type Machine struct {
	Regs      [16]int32
	regsValid [16]int
	zero      bool

	pc      int
	clock   int
	retired int
	exHalt  bool

	stage [numStages]Latch

	Code *memory.CodeBank
	Data *memory.DataBank

	// Sim records the simulation mode argument passed on the command
	// line. Nothing in the pipeline branches on it; it is accepted and
	// stored for parity with the original CLI contract, in case a
	// future front end wants to key behavior off it.
	Sim string

	// Logger receives runtime diagnostics (currently just memory-fault
	// detail ahead of the error Tick returns). Defaults to a discarding
	// logger so a Machine built via New is silent unless a caller opts in.
	Logger *log.Logger

	Tracer Tracer
}

// New builds a Machine ready to run program, starting at the
// conventional APEX load address.
func New(program []isa.Instruction, sim string) *Machine {
	m := &Machine{
		Code:   memory.NewCodeBank(program),
		Data:   memory.NewDataBank(),
		Sim:    sim,
		pc:     memory.CodeBase,
		Logger: log.New(io.Discard, "", 0),
	}
	for i := range m.regsValid {
		m.regsValid[i] = 1
	}
	return m
}

// Clock returns the number of ticks executed so far.
func (m *Machine) Clock() int {
	return m.clock
}

// Retired returns the number of instructions that have completed
// Writeback.
func (m *Machine) Retired() int {
	return m.retired
}

// PC returns the current fetch program counter.
func (m *Machine) PC() int {
	return m.pc
}

// RegValid reports whether register i currently holds a committed
// value (as opposed to one still in flight behind a pending writer).
func (m *Machine) RegValid(i int) bool {
	return m.regsValid[i] > 0
}

// Done reports whether the machine has retired every instruction in
// code memory. Run also stops on a cycle budget; Done alone does not
// reflect that.
func (m *Machine) Done() bool {
	return m.retired == m.Code.Size()
}

// Tick advances every pipeline stage by one clock edge. Stages run in
// reverse pipeline order (Writeback first, Fetch last) so each one
// sees the latch contents left by the previous Tick before anything
// in this Tick overwrites them.
func (m *Machine) Tick() error {
	if m.Done() {
		return ErrAlreadyDone
	}
	m.writeback()
	if err := m.memoryStage(); err != nil {
		return err
	}
	m.execute()
	m.decode()
	m.fetch()
	m.clock++
	return nil
}

// Run ticks the machine until every instruction has retired or cycles
// have elapsed, whichever comes first.
func (m *Machine) Run(cycles int) error {
	for m.retired != m.Code.Size() && m.clock != cycles {
		if err := m.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) traceStage(name string, l Latch) {
	if m.Tracer != nil {
		m.Tracer.Stage(name, l)
	}
}
