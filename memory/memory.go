// Package memory holds the two address spaces an APEX machine touches:
// a fixed, read-only code memory built once by the assembler, and a
// flat data memory the Memory stage loads and stores through.
package memory

import (
	"fmt"

	"github.com/binghamton-cs520/apex/isa"
)

// CodeBase is the PC value of the first instruction in code memory.
// Every instruction lives at CodeBase + 4*index.
const CodeBase = 4000

// DataSize is the number of int32 cells in a DataBank.
const DataSize = 4096

// OutOfRangeError reports an access outside the bounds of a memory bank.
type OutOfRangeError struct {
	Addr int32
	Size int
}

// Error implements the error interface.
func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("address %d out of range [0,%d)", e.Addr, e.Size)
}

// CodeBank is the fixed instruction memory produced by the assembler.
// Unlike DataBank it is never written to once the program is loaded.
type CodeBank struct {
	instructions []isa.Instruction
}

// NewCodeBank wraps a parsed instruction stream as a CodeBank.
func NewCodeBank(instructions []isa.Instruction) *CodeBank {
	return &CodeBank{instructions: instructions}
}

// Size returns the number of instructions in code memory.
func (c *CodeBank) Size() int {
	return len(c.instructions)
}

// At returns the instruction whose PC is pc, and whether pc mapped to a
// valid code index. PC values are the 4000-series addresses used
// throughout the pipeline, not raw indices.
func (c *CodeBank) At(pc int) (isa.Instruction, bool) {
	idx := (pc - CodeBase) / 4
	if idx < 0 || idx >= len(c.instructions) {
		return isa.Instruction{}, false
	}
	return c.instructions[idx], true
}

// DataBank is the flat data memory the Memory stage reads and writes.
type DataBank struct {
	cells [DataSize]int32
}

// NewDataBank returns a zeroed data memory.
func NewDataBank() *DataBank {
	return &DataBank{}
}

// PowerOn resets every cell to zero.
func (d *DataBank) PowerOn() {
	for i := range d.cells {
		d.cells[i] = 0
	}
}

// Load returns the value stored at addr.
func (d *DataBank) Load(addr int32) (int32, error) {
	if addr < 0 || int(addr) >= len(d.cells) {
		return 0, OutOfRangeError{Addr: addr, Size: len(d.cells)}
	}
	return d.cells[addr], nil
}

// Store writes val at addr.
func (d *DataBank) Store(addr int32, val int32) error {
	if addr < 0 || int(addr) >= len(d.cells) {
		return OutOfRangeError{Addr: addr, Size: len(d.cells)}
	}
	d.cells[addr] = val
	return nil
}

// Dump returns a copy of the first n cells, for trace/state printing.
func (d *DataBank) Dump(n int) []int32 {
	if n > len(d.cells) {
		n = len(d.cells)
	}
	out := make([]int32, n)
	copy(out, d.cells[:n])
	return out
}
