package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rsimlab/rsim/emu"
	"github.com/rsimlab/rsim/insts"
)

// encode packs an instruction for test programs.
func encode(op insts.Op, rd, rs1, rs2 uint8, offset int16) uint32 {
	return insts.NewCodec().Encode(insts.Instruction{
		Op:     op,
		Cond:   insts.CondAlways,
		Rd:     rd,
		Rs1:    rs1,
		Rs2:    rs2,
		Offset: offset,
	})
}

var _ = Describe("Emulator", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	Describe("NewEmulator", func() {
		It("should create an emulator with a zeroed register file", func() {
			Expect(e).NotTo(BeNil())
			Expect(e.RegFile()).NotTo(BeNil())
			Expect(e.RegFile().Read(0)).To(Equal(int32(0)))
			Expect(e.LastCondition()).To(Equal(emu.CondZero))
		})
	})

	Describe("Run", func() {
		It("should run the init/double/minus-5/times-2 program", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 15), // r1 = r0 + (r0 + 15) = 15
				encode(insts.OpAdd, 2, 1, 1, 0),  // r2 = r1 + (r1 + 0)  = 30
				encode(insts.OpSub, 3, 2, 0, 5),  // r3 = r2 - (r0 + 5)  = 25
				encode(insts.OpMul, 3, 3, 0, 2),  // r3 = r3 * (r0 + 2)  = 50
				encode(insts.OpHalt, 0, 0, 0, 0),
			})

			Expect(e.Run()).To(Succeed())

			Expect(e.RegFile().Read(1)).To(Equal(int32(15)))
			Expect(e.RegFile().Read(2)).To(Equal(int32(30)))
			Expect(e.RegFile().Read(3)).To(Equal(int32(50)))
			Expect(e.InstructionCount()).To(Equal(uint64(5)))
		})

		It("should stop at HALT without executing later words", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 1),
				encode(insts.OpHalt, 0, 0, 0, 0),
				encode(insts.OpAdd, 1, 0, 0, 99),
			})

			Expect(e.Run()).To(Succeed())

			Expect(e.RegFile().Read(1)).To(Equal(int32(1)))
			Expect(e.InstructionCount()).To(Equal(uint64(2)))
		})

		It("should halt implicitly at the end of the program", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 7),
			})

			Expect(e.Run()).To(Succeed())
			Expect(e.RegFile().Read(1)).To(Equal(int32(7)))
		})

		It("should surface a decode error with the word position", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 1),
				uint32(4) << 26, // reserved opcode ordinal
			})

			err := e.Run()

			Expect(err).To(MatchError(insts.ErrDecode))
			Expect(err.Error()).To(ContainSubstring("word 1"))
		})

		It("should surface division by zero as a program error", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpDiv, 1, 0, 0, 0), // r0 / (r0 + 0)
			})

			Expect(e.Run()).To(MatchError(emu.ErrDivideByZero))
		})

		It("should reject LOAD and STORE without a memory stage", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpLoad, 1, 0, 0, 8),
			})

			Expect(e.Run()).To(MatchError(emu.ErrUnsupportedOp))
		})
	})

	Describe("Step", func() {
		It("should record the condition of the last result", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpSub, 1, 0, 0, 5),  // r1 = -5
				encode(insts.OpAdd, 2, 1, 0, 5),  // r2 = 0
				encode(insts.OpAdd, 3, 0, 0, 11), // r3 = 11
			})

			Expect(e.Step().Err).To(BeNil())
			Expect(e.LastCondition()).To(Equal(emu.CondNegative))

			Expect(e.Step().Err).To(BeNil())
			Expect(e.LastCondition()).To(Equal(emu.CondZero))

			Expect(e.Step().Err).To(BeNil())
			Expect(e.LastCondition()).To(Equal(emu.CondPositive))
		})

		It("should carry the condition code without evaluating it", func() {
			word := insts.NewCodec().Encode(insts.Instruction{
				Op:     insts.OpAdd,
				Cond:   insts.CondNE, // would skip on a real CPU stage
				Rd:     1,
				Offset: 3,
			})
			e.LoadProgram([]uint32{word})

			Expect(e.Step().Err).To(BeNil())
			Expect(e.RegFile().Read(1)).To(Equal(int32(3)))
		})

		It("should enforce the instruction limit", func() {
			e = emu.NewEmulator(emu.WithMaxInstructions(1))
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 1),
				encode(insts.OpAdd, 2, 0, 0, 2),
			})

			Expect(e.Step().Err).To(BeNil())
			Expect(e.Step().Err).To(HaveOccurred())
		})
	})

	Describe("Reset", func() {
		It("should clear registers and rewind the program", func() {
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 15),
			})
			Expect(e.Run()).To(Succeed())
			Expect(e.RegFile().Read(1)).To(Equal(int32(15)))

			e.Reset()

			Expect(e.RegFile().Read(1)).To(Equal(int32(0)))
			Expect(e.InstructionCount()).To(Equal(uint64(0)))

			Expect(e.Run()).To(Succeed())
			Expect(e.RegFile().Read(1)).To(Equal(int32(15)))
		})
	})

	Describe("tracing", func() {
		It("should write one line per executed instruction", func() {
			var buf bytes.Buffer
			e = emu.NewEmulator(emu.WithTrace(&buf))
			e.LoadProgram([]uint32{
				encode(insts.OpAdd, 1, 0, 0, 15),
				encode(insts.OpHalt, 0, 0, 0, 0),
			})

			Expect(e.Run()).To(Succeed())

			Expect(buf.String()).To(ContainSubstring("ADD"))
			Expect(buf.String()).To(ContainSubstring("r1 <- 15 (positive)"))
			Expect(buf.String()).To(ContainSubstring("HALT"))
		})
	})
})
