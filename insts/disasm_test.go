package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zkvmlab/cairovm/insts"
)

var _ = Describe("Disassembly", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	disasm := func(w uint64) string {
		inst, err := decoder.Decode(w)
		Expect(err).ToNot(HaveOccurred())
		return inst.Disassemble()
	}

	It("should render an assert with add result and ap increment", func() {
		// flags 0x4832: dst=[ap], op0=[fp], op1=ap, res=add, ap=add1,
		// opcode=assert_eq; off1=-1, off2=2
		Expect(disasm(word(0x4832, 0x8002, 0x7FFF, 0x8000))).
			To(Equal("[ap] = [fp - 1] + [ap + 2]; ap++"))
	})

	It("should render an absolute call", func() {
		Expect(disasm(0x14A7800080008000)).To(Equal("call abs [fp] + imm"))
	})

	It("should render a relative call", func() {
		// flags 0x1104: opcode=call, pc=jump_rel, op1=imm
		Expect(disasm(word(0x1104, 0x8000, 0x8000, 0x8000))).
			To(Equal("call rel imm"))
	})

	It("should render ret", func() {
		Expect(disasm(word(2<<12, 0x8000, 0x8000, 0x8000))).To(Equal("ret"))
	})

	It("should render a conditional jump", func() {
		// flags 0x0204: pc=jnz, op1=imm
		Expect(disasm(word(0x0204, 0x8000, 0x8000, 0x8000))).
			To(Equal("jmp rel imm if [ap] != 0"))
	})

	It("should render a relative jump through a register cell", func() {
		// flags 0x0110: pc=jump_rel, op1=ap; off2=-3
		Expect(disasm(word(0x0110, 0x7FFD, 0x8000, 0x8000))).
			To(Equal("jmp rel [ap - 3]"))
	})

	It("should render the all-zero instruction as nop", func() {
		Expect(disasm(word(0x0000, 0x8000, 0x8000, 0x8000))).To(Equal("nop"))
	})

	It("should render a double dereference op1", func() {
		// flags 0x4000: assert_eq with op1 read through the op0 cell
		Expect(disasm(word(0x4000, 0x8001, 0x7FFF, 0x8000))).
			To(Equal("[ap] = [[ap - 1] + 1]"))
	})

	It("should name every enum value", func() {
		Expect(insts.RegAP.String()).To(Equal("ap"))
		Expect(insts.RegFP.String()).To(Equal("fp"))
		Expect(insts.Op1SrcImm.String()).To(Equal("imm"))
		Expect(insts.ResUnconstrained.String()).To(Equal("unconstrained"))
		Expect(insts.PcUpdateJnz.String()).To(Equal("jnz"))
		Expect(insts.ApUpdateAdd2.String()).To(Equal("add2"))
		Expect(insts.FpUpdateAPPlus2.String()).To(Equal("ap_plus2"))
		Expect(insts.OpcodeAssertEq.String()).To(Equal("assert_eq"))
	})
})
