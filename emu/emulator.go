package emu

import (
	"fmt"
	"io"

	"github.com/rsimlab/rsim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if the program stopped, either via HALT or by
	// running off the end of the program.
	Halted bool

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes a program one instruction at a time. A program is
// a flat sequence of 32-bit words consumed strictly in order: there is
// no memory, no branching, and no program counter arithmetic. Each
// step decodes a word, reads the source operands, dispatches to the
// ALU, and writes the result back to the target register. The second
// operand is the second source register plus the signed offset, which
// is how immediates reach the ALU.
type Emulator struct {
	regFile *RegFile
	codec   *insts.Codec
	alu     *ALU

	program []uint32
	next    int

	trace io.Writer

	lastCond         Condition
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithTrace sets a writer that receives a one-line report per executed
// instruction. The library layers below never log; reporting lives
// here in the driver.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// WithMaxInstructions sets the maximum number of instructions to
// execute. 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates an emulator with an empty program.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:  &RegFile{},
		codec:    insts.NewCodec(),
		alu:      NewALU(),
		lastCond: CondZero,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LastCondition returns the sign classification of the most recent ALU
// result. It is recorded for the benefit of a later CPU stage and
// never interpreted here.
func (e *Emulator) LastCondition() Condition {
	return e.lastCond
}

// LoadProgram replaces the current program and rewinds execution to
// its first word. Registers are left untouched.
func (e *Emulator) LoadProgram(words []uint32) {
	e.program = words
	e.next = 0
}

// Reset clears the registers and execution state, keeping the loaded
// program.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{}
	e.next = 0
	e.lastCond = CondZero
	e.instructionCount = 0
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	// Running off the end of the program is an implicit halt.
	if e.next >= len(e.program) {
		return StepResult{Halted: true}
	}

	pos := e.next
	word := e.program[pos]
	e.next++

	inst, err := e.codec.Decode(word)
	if err != nil {
		return StepResult{
			Err: fmt.Errorf("word %d (0x%08X): %w", pos, word, err),
		}
	}

	if inst.Op == insts.OpHalt {
		e.instructionCount++
		if e.trace != nil {
			_, _ = fmt.Fprintf(e.trace, "%4d  HALT\n", pos)
		}
		return StepResult{Halted: true}
	}

	op1 := e.regFile.Read(inst.Rs1)
	op2 := e.regFile.Read(inst.Rs2) + int32(inst.Offset)

	// LOAD and STORE reach the ALU too and surface its
	// unsupported-operation error: they need the memory stage,
	// which is not part of this core.
	result, cond, err := e.alu.Exec(inst.Op, op1, op2)
	if err != nil {
		return StepResult{
			Err: fmt.Errorf("word %d (0x%08X): %w", pos, word, err),
		}
	}

	e.regFile.Write(inst.Rd, result)
	e.lastCond = cond
	e.instructionCount++

	if e.trace != nil {
		_, _ = fmt.Fprintf(e.trace, "%4d  %-5v r%d <- %d (%v)\n",
			pos, inst.Op, inst.Rd, result, cond)
	}

	return StepResult{}
}

// Run executes instructions until the program halts or an error
// occurs.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Halted {
			return nil
		}
	}
}
