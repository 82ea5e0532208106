// Package emu provides functional emulation of the RSim core: the
// arithmetic unit and the sequential driver loop that feeds it.
package emu

import (
	"errors"
	"fmt"

	"github.com/rsimlab/rsim/insts"
)

// ErrUnsupportedOp indicates arithmetic dispatch of a non-arithmetic
// or unknown opcode. HALT, LOAD, and STORE are control opcodes that
// are meaningless without the CPU and memory layer above this core.
var ErrUnsupportedOp = errors.New("unsupported arithmetic operation")

// ErrDivideByZero indicates a DIV instruction with a zero divisor. It
// is surfaced distinctly so callers can report a program error rather
// than a host fault.
var ErrDivideByZero = errors.New("division by zero")

// Condition classifies the sign of an ALU result. This core only
// produces it; conditional execution belongs to a later CPU stage.
type Condition int8

// Condition values.
const (
	CondNegative Condition = iota - 1
	CondZero
	CondPositive
)

// String returns the condition name.
func (c Condition) String() string {
	switch c {
	case CondNegative:
		return "negative"
	case CondZero:
		return "zero"
	case CondPositive:
		return "positive"
	}
	return "unknown"
}

type aluFunc func(op1, op2 int32) (int32, error)

// ALU computes single-instruction arithmetic results. The operation
// table is built once by NewALU and never mutated, so one ALU may be
// shared across goroutines without locking.
type ALU struct {
	ops map[insts.Op]aluFunc
}

// NewALU creates an ALU with the arithmetic opcodes wired.
func NewALU() *ALU {
	return &ALU{
		ops: map[insts.Op]aluFunc{
			insts.OpAdd: func(op1, op2 int32) (int32, error) { return op1 + op2, nil },
			insts.OpSub: func(op1, op2 int32) (int32, error) { return op1 - op2, nil },
			insts.OpMul: func(op1, op2 int32) (int32, error) { return op1 * op2, nil },
			insts.OpDiv: div,
		},
	}
}

// div truncates toward zero, matching the host's two's-complement
// integer division.
func div(op1, op2 int32) (int32, error) {
	if op2 == 0 {
		return 0, fmt.Errorf("%w: %d / 0", ErrDivideByZero, op1)
	}
	return op1 / op2, nil
}

// Exec applies the function for op to (op1, op2) and classifies the
// result's sign. It fails wrapping ErrUnsupportedOp when op has no
// table entry and ErrDivideByZero on a zero divisor.
func (a *ALU) Exec(op insts.Op, op1, op2 int32) (int32, Condition, error) {
	fn, ok := a.ops[op]
	if !ok {
		return 0, CondZero, fmt.Errorf("%w: %v", ErrUnsupportedOp, op)
	}

	result, err := fn(op1, op2)
	if err != nil {
		return 0, CondZero, err
	}

	return result, classify(result), nil
}

func classify(result int32) Condition {
	switch {
	case result < 0:
		return CondNegative
	case result == 0:
		return CondZero
	default:
		return CondPositive
	}
}
