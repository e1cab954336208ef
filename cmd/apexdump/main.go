// apexdump loads an APEX assembly source file and prints its decoded
// instruction listing without running it. The companion to apexsim,
// grounded on the same "load and disassemble, don't run" shape.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/binghamton-cs520/apex/asm"
	"github.com/binghamton-cs520/apex/disassemble"
	"github.com/binghamton-cs520/apex/memory"
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Usage: %s <source>", os.Args[0])
	}
	fn := flag.Args()[0]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Unable to open %s: %v", fn, err)
	}
	defer f.Close()

	program, _, err := asm.ParseProgram(f)
	if err != nil {
		log.Fatalf("Unable to parse %s: %v", fn, err)
	}

	for i, ins := range program {
		pc := memory.CodeBase + i*4
		fmt.Printf("%.4d: %s\n", pc, disassemble.Format(ins))
	}
}
