// Package insts provides instruction definitions and the word codec.
//
// An instruction is a single 32-bit word. Sub-ranges of the word hold
// the opcode, the condition code, three register indices, and a signed
// 10-bit offset. The Codec packs an Instruction into a word and
// recovers it losslessly.
//
// Usage:
//
//	codec := insts.NewCodec()
//	inst, err := codec.Decode(0x0C04000F) // ADD ALWAYS r1 r0 r0 15
//	word := codec.Encode(inst)
package insts

// Op is an operation selector embedded in an instruction word.
type Op uint8

// Opcodes. Ordinal 4 is reserved and decodes as an error.
const (
	OpHalt  Op = 0
	OpLoad  Op = 1
	OpStore Op = 2
	OpAdd   Op = 3
	OpSub   Op = 5
	OpMul   Op = 6
	OpDiv   Op = 7
)

// Valid reports whether op is an enumerated opcode.
func (op Op) Valid() bool {
	switch op {
	case OpHalt, OpLoad, OpStore, OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// String returns the opcode mnemonic.
func (op Op) String() string {
	switch op {
	case OpHalt:
		return "HALT"
	case OpLoad:
		return "LOAD"
	case OpStore:
		return "STORE"
	case OpAdd:
		return "ADD"
	case OpSub:
		return "SUB"
	case OpMul:
		return "MUL"
	case OpDiv:
		return "DIV"
	}
	return "UNKNOWN"
}

// Cond is a condition code. This layer carries it through encode and
// decode but never evaluates it; interpretation belongs to a later
// CPU stage.
type Cond uint8

// Condition codes.
const (
	CondAlways Cond = iota // execute unconditionally
	CondEQ                 // last result was zero
	CondNE                 // last result was nonzero
	CondLT                 // last result was negative
	CondGE                 // last result was zero or positive
	CondGT                 // last result was positive
	CondLE                 // last result was zero or negative
)

// Valid reports whether c is an enumerated condition code.
func (c Cond) Valid() bool {
	return c <= CondLE
}

// String returns the condition mnemonic.
func (c Cond) String() string {
	switch c {
	case CondAlways:
		return "ALWAYS"
	case CondEQ:
		return "EQ"
	case CondNE:
		return "NE"
	case CondLT:
		return "LT"
	case CondGE:
		return "GE"
	case CondGT:
		return "GT"
	case CondLE:
		return "LE"
	}
	return "UNKNOWN"
}

// Instruction is a decoded instruction. It is a plain value: Decode
// builds one from a word, Encode packs one back, and neither mutates
// it.
type Instruction struct {
	Op   Op   // Operation code
	Cond Cond // Condition code, carried but not evaluated here

	Rd  uint8 // Target register, 0-15
	Rs1 uint8 // First source register, 0-15
	Rs2 uint8 // Second source register, 0-15

	// Offset is the signed immediate added to the second source
	// operand, in [-512, 511].
	Offset int16
}
