package disassemble

import (
	"testing"

	"github.com/binghamton-cs520/apex/isa"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		ins  isa.Instruction
		want string
	}{
		{"movc", isa.Instruction{Op: isa.OpMovc, Rd: 1, Imm: 5}, "MOVC,R1,#5"},
		{"store", isa.Instruction{Op: isa.OpStore, Rs1: 2, Rs2: 3, Imm: -4}, "STORE,R2,R3,#-4"},
		{"load", isa.Instruction{Op: isa.OpLoad, Rd: 4, Rs1: 5, Imm: 0}, "LOAD,R4,R5,#0"},
		{"add", isa.Instruction{Op: isa.OpAdd, Rd: 1, Rs1: 2, Rs2: 3}, "ADD,R1,R2,R3"},
		{"jump", isa.Instruction{Op: isa.OpJump, Rs1: 1, Imm: 8}, "JUMP,R1,#8"},
		{"bz", isa.Instruction{Op: isa.OpBz, Imm: -8}, "BZ,#-8"},
		{"halt", isa.Instruction{Op: isa.OpHalt}, "HALT"},
		{"empty", isa.Instruction{}, "EMPTY"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.ins); got != tc.want {
				t.Errorf("Format(%+v) = %q, want %q", tc.ins, got, tc.want)
			}
		})
	}
}
