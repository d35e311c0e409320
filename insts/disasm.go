package insts

import (
	"fmt"
	"strings"
)

func (r Register) String() string {
	if r == RegFP {
		return "fp"
	}
	return "ap"
}

func (s Op1Source) String() string {
	switch s {
	case Op1SrcOp0:
		return "op0"
	case Op1SrcImm:
		return "imm"
	case Op1SrcFP:
		return "fp"
	case Op1SrcAP:
		return "ap"
	default:
		return fmt.Sprintf("op1src(%d)", uint8(s))
	}
}

func (r ResLogic) String() string {
	switch r {
	case ResOp1:
		return "op1"
	case ResAdd:
		return "add"
	case ResMul:
		return "mul"
	case ResUnconstrained:
		return "unconstrained"
	default:
		return fmt.Sprintf("res(%d)", uint8(r))
	}
}

func (p PcUpdate) String() string {
	switch p {
	case PcUpdateRegular:
		return "regular"
	case PcUpdateJump:
		return "jump"
	case PcUpdateJumpRel:
		return "jump_rel"
	case PcUpdateJnz:
		return "jnz"
	default:
		return fmt.Sprintf("pc(%d)", uint8(p))
	}
}

func (a ApUpdate) String() string {
	switch a {
	case ApUpdateRegular:
		return "regular"
	case ApUpdateAdd:
		return "add"
	case ApUpdateAdd1:
		return "add1"
	case ApUpdateAdd2:
		return "add2"
	default:
		return fmt.Sprintf("ap(%d)", uint8(a))
	}
}

func (f FpUpdate) String() string {
	switch f {
	case FpUpdateRegular:
		return "regular"
	case FpUpdateAPPlus2:
		return "ap_plus2"
	case FpUpdateDst:
		return "dst"
	default:
		return fmt.Sprintf("fp(%d)", uint8(f))
	}
}

func (o Opcode) String() string {
	switch o {
	case OpcodeNop:
		return "nop"
	case OpcodeAssertEq:
		return "assert_eq"
	case OpcodeCall:
		return "call"
	case OpcodeRet:
		return "ret"
	default:
		return fmt.Sprintf("opcode(%d)", uint8(o))
	}
}

// String renders the instruction in Cairo assembly surface syntax.
func (i *Instruction) String() string {
	return i.Disassemble()
}

// Disassemble renders the instruction in Cairo assembly surface syntax.
// Immediate operands render as "imm": the immediate value lives in the next
// word, which the decoder never sees.
func (i *Instruction) Disassemble() string {
	dst := cell(i.DstReg, i.Off0)
	op0 := cell(i.Op0Reg, i.Off1)

	var op1 string
	switch i.Op1Src {
	case Op1SrcImm:
		op1 = "imm"
	case Op1SrcAP:
		op1 = cell(RegAP, i.Off2)
	case Op1SrcFP:
		op1 = cell(RegFP, i.Off2)
	default:
		// Double dereference through the op0 cell.
		op1 = fmt.Sprintf("[%s%s]", op0, offsetTerm(i.Off2))
	}

	var res string
	switch i.Res {
	case ResAdd:
		res = op0 + " + " + op1
	case ResMul:
		res = op0 + " * " + op1
	default:
		res = op1
	}

	var sb strings.Builder
	switch i.Opcode {
	case OpcodeAssertEq:
		sb.WriteString(dst + " = " + res)
	case OpcodeCall:
		if i.PcUpdate == PcUpdateJump {
			sb.WriteString("call abs " + res)
		} else {
			sb.WriteString("call rel " + res)
		}
	case OpcodeRet:
		sb.WriteString("ret")
	default:
		switch i.PcUpdate {
		case PcUpdateJump:
			sb.WriteString("jmp abs " + res)
		case PcUpdateJumpRel:
			sb.WriteString("jmp rel " + res)
		case PcUpdateJnz:
			sb.WriteString("jmp rel " + op1 + " if " + dst + " != 0")
		default:
			sb.WriteString("nop")
		}
	}

	// A call advances ap implicitly; no suffix for it.
	if i.Opcode != OpcodeCall {
		switch i.ApUpdate {
		case ApUpdateAdd:
			sb.WriteString("; ap += " + res)
		case ApUpdateAdd1:
			sb.WriteString("; ap++")
		case ApUpdateAdd2:
			sb.WriteString("; ap += 2")
		}
	}

	return sb.String()
}

// cell renders a memory cell reference such as "[ap]", "[fp + 3]" or
// "[ap - 1]".
func cell(reg Register, off int16) string {
	return fmt.Sprintf("[%s%s]", reg, offsetTerm(off))
}

func offsetTerm(off int16) string {
	switch {
	case off > 0:
		return fmt.Sprintf(" + %d", off)
	case off < 0:
		return fmt.Sprintf(" - %d", -int32(off))
	default:
		return ""
	}
}
