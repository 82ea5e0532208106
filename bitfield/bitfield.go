// Package bitfield provides packing and extraction of bit ranges within
// 32-bit instruction words.
//
// A BitField names a contiguous, inclusive range of bit positions inside
// a fixed-width word. Bit 0 is the low-order bit. Fields are immutable
// and carry no per-word state: Extract, ExtractSigned, and Insert are
// pure functions over words, so a single field table can be shared by
// any number of goroutines without synchronization.
package bitfield

import (
	"errors"
	"fmt"
)

// WordSize is the width in bits of an instruction word.
const WordSize = 32

// ErrRange indicates a malformed field range at construction time.
var ErrRange = errors.New("bit range out of bounds")

// ErrFieldOverflow indicates a value that does not fit in a field's
// width, reported only by InsertChecked.
var ErrFieldOverflow = errors.New("value does not fit in field")

// BitField handles insertion and extraction of one field within a word.
type BitField struct {
	lsb   uint
	width uint
	mask  uint32 // low-order width bits, unshifted
}

// New creates a field covering bits lsb through msb inclusive.
// For example, New(0, 4) is a 5-bit field with bits numbered 0..4.
func New(lsb, msb int) (BitField, error) {
	if lsb < 0 || msb < 0 {
		return BitField{}, fmt.Errorf("%w: negative bit index (lsb=%d, msb=%d)", ErrRange, lsb, msb)
	}
	if lsb > msb {
		return BitField{}, fmt.Errorf("%w: lsb %d above msb %d", ErrRange, lsb, msb)
	}
	if msb >= WordSize {
		return BitField{}, fmt.Errorf("%w: msb %d outside %d-bit word", ErrRange, msb, WordSize)
	}

	width := uint(msb - lsb + 1)

	var mask uint32
	if width == WordSize {
		mask = ^uint32(0)
	} else {
		mask = uint32(1)<<width - 1
	}

	return BitField{lsb: uint(lsb), width: width, mask: mask}, nil
}

// MustNew is like New but panics on a malformed range. It is intended
// for fixed field tables validated by tests, such as the instruction
// word layout.
func MustNew(lsb, msb int) BitField {
	f, err := New(lsb, msb)
	if err != nil {
		panic(err)
	}
	return f
}

// Lsb returns the index of the field's least-significant bit.
func (f BitField) Lsb() int {
	return int(f.lsb)
}

// Msb returns the index of the field's most-significant bit.
func (f BitField) Msb() int {
	return int(f.lsb + f.width - 1)
}

// Width returns the field's width in bits.
func (f BitField) Width() int {
	return int(f.width)
}

// Mask returns the field's mask positioned at Lsb within the word.
func (f BitField) Mask() uint32 {
	return f.mask << f.lsb
}

// Extract returns the field's value in word as an unsigned integer in
// [0, 2^width - 1]. Bits outside the field are ignored.
func (f BitField) Extract(word uint32) uint32 {
	return (word >> f.lsb) & f.mask
}

// ExtractSigned returns the field's value in word interpreted as a
// width-bit two's-complement integer, sign-extended into the host
// range [-2^(width-1), 2^(width-1) - 1].
func (f BitField) ExtractSigned(word uint32) int32 {
	v := f.Extract(word)
	if f.width < WordSize && v>>(f.width-1) == 1 {
		v |= ^uint32(0) << f.width
	}
	return int32(v)
}

// Insert returns word with the field's bit range replaced by the low
// width bits of value. The input word is not modified. A negative
// value contributes its two's-complement low bits, so signed and
// unsigned packing share this one operation. A value wider than the
// field truncates to its low-order bits: that is wraparound policy,
// not an error. Callers that want a range check use InsertChecked.
func (f BitField) Insert(value int32, word uint32) uint32 {
	return (word &^ (f.mask << f.lsb)) | ((uint32(value) & f.mask) << f.lsb)
}

// InsertChecked is Insert with an explicit range check: it fails if
// value cannot be represented in the field, i.e. value is outside
// [-2^(width-1), 2^width - 1].
func (f BitField) InsertChecked(value int32, word uint32) (uint32, error) {
	min := -(int64(1) << (f.width - 1))
	max := (int64(1) << f.width) - 1
	if int64(value) < min || int64(value) > max {
		return word, fmt.Errorf("%w: %d outside %d-bit range [%d, %d]",
			ErrFieldOverflow, value, f.width, min, max)
	}
	return f.Insert(value, word), nil
}
