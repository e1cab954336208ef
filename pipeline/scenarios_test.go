package pipeline_test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/binghamton-cs520/apex/asm"
	"github.com/binghamton-cs520/apex/pipeline"
)

func build(t *testing.T, src string) *pipeline.Machine {
	t.Helper()
	program, _, err := asm.ParseProgram(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return pipeline.New(program, "simulate")
}

func run(t *testing.T, m *pipeline.Machine, cycles int) {
	t.Helper()
	if err := m.Run(cycles); err != nil {
		t.Fatalf("Run: %v\nstate: %s", err, spew.Sdump(m))
	}
}

// S1: straight-line MOVC+ADD, no hazards.
func TestScenarioMovcAdd(t *testing.T) {
	m := build(t, `
MOVC,R1,#5
MOVC,R2,#7
ADD,R3,R1,R2
HALT
`)
	run(t, m, 50)

	if got, want := m.Regs[1], int32(5); got != want {
		t.Errorf("R1 = %d, want %d", got, want)
	}
	if got, want := m.Regs[2], int32(7); got != want {
		t.Errorf("R2 = %d, want %d", got, want)
	}
	if got, want := m.Regs[3], int32(12); got != want {
		t.Errorf("R3 = %d, want %d", got, want)
	}
	if got, want := m.Retired(), 4; got != want {
		t.Errorf("Retired() = %d, want %d", got, want)
	}
}

// S2: RAW stall through a STORE/LOAD round trip to data memory.
func TestScenarioRAWStallOnLoad(t *testing.T) {
	m := build(t, `
MOVC,R1,#100
MOVC,R2,#3
STORE,R2,R1,#0
LOAD,R4,R1,#0
ADD,R5,R4,R4
HALT
`)
	run(t, m, 50)

	v, err := m.Data.Load(100)
	if err != nil {
		t.Fatalf("Data.Load(100): %v", err)
	}
	if got, want := v, int32(3); got != want {
		t.Errorf("data_memory[100] = %d, want %d", got, want)
	}
	if got, want := m.Regs[4], int32(3); got != want {
		t.Errorf("R4 = %d, want %d", got, want)
	}
	if got, want := m.Regs[5], int32(6); got != want {
		t.Errorf("R5 = %d, want %d", got, want)
	}
}

// S3: MUL occupies EX for two cycles; the dependent ADD must wait for it.
func TestScenarioMulLatency(t *testing.T) {
	m := build(t, `
MOVC,R1,#6
MOVC,R2,#7
MUL,R3,R1,R2
ADD,R4,R3,R3
HALT
`)
	run(t, m, 50)

	if got, want := m.Regs[3], int32(42); got != want {
		t.Errorf("R3 = %d, want %d", got, want)
	}
	if got, want := m.Regs[4], int32(84); got != want {
		t.Errorf("R4 = %d, want %d", got, want)
	}
}

// S5: a taken branch must squash the ADDs it jumps over without
// permanently wedging their destination register's validity counter.
func TestScenarioBranchSquashRestoresValidity(t *testing.T) {
	m := build(t, `
MOVC,R1,#0
SUB,R0,R1,R1
BZ,#20
ADD,R7,R1,R1
ADD,R7,R1,R1
ADD,R7,R1,R1
ADD,R7,R1,R1
HALT
`)
	run(t, m, 100)

	if got, want := m.Regs[7], int32(0); got != want {
		t.Errorf("R7 = %d, want %d (squashed ADDs must never commit)", got, want)
	}
	if !m.RegValid(7) {
		t.Errorf("RegValid(7) = false, want true: branch squash must undo Decode's validity decrement")
	}
}

// S6: when the cycle cap is reached before the program retires, the
// simulator must stop cleanly at exactly that clock value.
func TestScenarioCycleCap(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "MOVC,R0,#1")
	}
	m := build(t, strings.Join(lines, "\n"))

	const cap = 5
	run(t, m, cap)

	if got := m.Clock(); got != cap {
		t.Errorf("Clock() = %d, want %d", got, cap)
	}
	if m.Retired() >= 20 {
		t.Errorf("Retired() = %d, want < 20 (cap should cut the run short)", m.Retired())
	}
}

func TestTickAfterDoneReturnsErrAlreadyDone(t *testing.T) {
	m := build(t, "MOVC,R0,#1\nHALT\n")
	run(t, m, 50)
	if !m.Done() {
		t.Fatalf("Done() = false after Run to completion")
	}
	if err := m.Tick(); err != pipeline.ErrAlreadyDone {
		t.Errorf("Tick() after completion = %v, want ErrAlreadyDone", err)
	}
}
