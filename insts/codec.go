package insts

import (
	"errors"
	"fmt"

	"github.com/rsimlab/rsim/bitfield"
)

// ErrDecode indicates a word whose opcode or condition sub-value has
// no matching enumeration entry.
var ErrDecode = errors.New("cannot decode instruction word")

// Instruction word layout (bit ranges inclusive):
//
//	reserved[31] opcode[30:26] cond[25:22] rd[21:18] rs1[17:14] rs2[13:10] offset[9:0]
//
// The fields tile bits 0-30 exactly once; bit 31 is reserved and
// untouched by both Encode and Decode. This layout is load-bearing:
// changing it breaks every previously encoded program.
var (
	opField     = bitfield.MustNew(26, 30)
	condField   = bitfield.MustNew(22, 25)
	rdField     = bitfield.MustNew(18, 21)
	rs1Field    = bitfield.MustNew(14, 17)
	rs2Field    = bitfield.MustNew(10, 13)
	offsetField = bitfield.MustNew(0, 9) // signed
)

// Codec encodes and decodes instruction words. It holds no state and
// is safe for concurrent use.
type Codec struct{}

// NewCodec creates a new instruction codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode unpacks a 32-bit instruction word. It fails with an error
// wrapping ErrDecode if the opcode or condition ordinal has no
// enumerated value. Bit 31 is ignored.
func (c *Codec) Decode(word uint32) (Instruction, error) {
	rawOp := opField.Extract(word)
	op := Op(rawOp)
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("%w: no opcode with ordinal %d", ErrDecode, rawOp)
	}

	rawCond := condField.Extract(word)
	cond := Cond(rawCond)
	if !cond.Valid() {
		return Instruction{}, fmt.Errorf("%w: no condition with ordinal %d", ErrDecode, rawCond)
	}

	return Instruction{
		Op:     op,
		Cond:   cond,
		Rd:     uint8(rdField.Extract(word)),
		Rs1:    uint8(rs1Field.Extract(word)),
		Rs2:    uint8(rs2Field.Extract(word)),
		Offset: int16(offsetField.ExtractSigned(word)),
	}, nil
}

// Encode packs an instruction into a 32-bit word. Field values wider
// than their slots truncate to their low-order bits per the bitfield
// wraparound policy, so Encode never fails; callers needing range
// validation check before encoding. Decode(Encode(i)) == i whenever
// every field of i is within its declared range.
func (c *Codec) Encode(inst Instruction) uint32 {
	var word uint32
	word = opField.Insert(int32(inst.Op), word)
	word = condField.Insert(int32(inst.Cond), word)
	word = rdField.Insert(int32(inst.Rd), word)
	word = rs1Field.Insert(int32(inst.Rs1), word)
	word = rs2Field.Insert(int32(inst.Rs2), word)
	word = offsetField.Insert(int32(inst.Offset), word)
	return word
}
