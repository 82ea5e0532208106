// Package main provides the entry point for RSim.
// RSim is a simulated RISC-style CPU core: it decodes 32-bit
// instruction words and executes their arithmetic in order.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/rsimlab/rsim/emu"
	"github.com/rsimlab/rsim/insts"
	"github.com/rsimlab/rsim/loader"
)

var (
	verbose = flag.Bool("v", false, "Dump each decoded instruction before running")
	trace   = flag.Bool("trace", false, "Print a per-instruction execution trace")
	maxInst = flag.Uint64("max", 0, "Maximum instructions to execute (0 = no limit)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rsim [options] <program.hex>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s (%d words)\n", programPath, len(prog.Words))
		dumpProgram(prog.Words)
	}

	os.Exit(run(prog.Words))
}

// dumpProgram decodes every word up front and dumps the instruction
// values. Decode errors are reported here but left to the emulator to
// surface at execution time.
func dumpProgram(words []uint32) {
	codec := insts.NewCodec()
	for i, word := range words {
		inst, err := codec.Decode(word)
		if err != nil {
			fmt.Printf("%4d  0x%08X  %v\n", i, word, err)
			continue
		}
		fmt.Printf("%4d  0x%08X\n", i, word)
		spew.Dump(inst)
	}
}

// run executes the program and prints the final register file.
func run(words []uint32) int {
	opts := []emu.EmulatorOption{
		emu.WithMaxInstructions(*maxInst),
	}
	if *trace {
		opts = append(opts, emu.WithTrace(os.Stdout))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.LoadProgram(words)

	err := emulator.Run()

	regFile := emulator.RegFile()
	fmt.Println("Registers:")
	for reg := uint8(0); reg < emu.NumRegs; reg++ {
		fmt.Printf("  r%-2d = %d\n", reg, regFile.Read(reg))
	}
	fmt.Printf("Instructions executed: %d\n", emulator.InstructionCount())

	if err != nil {
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", err)
		return 1
	}
	return 0
}
