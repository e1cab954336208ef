package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/binghamton-cs520/apex/isa"
	"github.com/binghamton-cs520/apex/pipeline"
)

func TestStageDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)
	p.Stage("Fetch", pipeline.Latch{Valid: true, Op: isa.OpHalt})
	if buf.Len() != 0 {
		t.Errorf("Stage with Debug=false wrote %q, want nothing", buf.String())
	}
}

func TestStageFormatsLatch(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Stage("Fetch", pipeline.Latch{PC: 4000, Valid: true, Op: isa.OpMovc, Rd: 1, Imm: 5})
	got := buf.String()
	if !strings.Contains(got, "Fetch") || !strings.Contains(got, "MOVC,R1,#5") {
		t.Errorf("Stage output = %q, want it to mention Fetch and MOVC,R1,#5", got)
	}
}

func TestStageEmptyLatch(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Stage("Decode/RF", pipeline.Latch{})
	if !strings.Contains(buf.String(), "EMPTY") {
		t.Errorf("Stage output = %q, want EMPTY for an invalid latch", buf.String())
	}
}

func TestStageBufferCapRetainsOnlyLastN(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)
	p.BufferCap = 2
	p.Stage("Fetch", pipeline.Latch{PC: 4000, Valid: true, Op: isa.OpMovc, Imm: 1})
	p.Stage("Fetch", pipeline.Latch{PC: 4004, Valid: true, Op: isa.OpMovc, Imm: 2})
	p.Stage("Fetch", pipeline.Latch{PC: 4008, Valid: true, Op: isa.OpMovc, Imm: 3})

	if len(p.Buffer) != 2 {
		t.Fatalf("len(Buffer) = %d, want 2", len(p.Buffer))
	}
	if strings.Contains(p.Buffer[0], "#1") {
		t.Errorf("Buffer[0] = %q, oldest entry should have been evicted", p.Buffer[0])
	}

	var out bytes.Buffer
	p.DumpBuffer(&out)
	if !strings.Contains(out.String(), "#2") || !strings.Contains(out.String(), "#3") {
		t.Errorf("DumpBuffer output = %q, want the 2 retained lines", out.String())
	}
}

func TestDumpMachineIncludesRegisterState(t *testing.T) {
	m := pipeline.New(nil, "simulate")
	m.Regs[3] = 42
	var buf bytes.Buffer
	DumpMachine(&buf, m)
	if !strings.Contains(buf.String(), "42") {
		t.Errorf("DumpMachine output missing register value 42:\n%s", buf.String())
	}
}
