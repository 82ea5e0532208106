package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 16

// RegFile represents the register file: 16 word-sized registers,
// zero-initialized.
type RegFile struct {
	r [NumRegs]int32
}

// Read reads a register value. Out-of-range indices read as 0; the
// 4-bit instruction fields cannot produce them.
func (r *RegFile) Read(reg uint8) int32 {
	if reg >= NumRegs {
		return 0
	}
	return r.r[reg]
}

// Write writes a value to a register. Writes to out-of-range indices
// are ignored.
func (r *RegFile) Write(reg uint8, value int32) {
	if reg >= NumRegs {
		return
	}
	r.r[reg] = value
}
