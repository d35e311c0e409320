package insts

// Encode packs a decoded instruction back into its 64-bit word form, the
// exact inverse of Decoder.Decode. FpUpdate is not consulted: it is derived
// from the opcode and has no encoding of its own. An instruction whose
// fields cannot be represented (an enum value outside its closed set, or a
// collapsed zero-code combination the decoder could never produce, such as
// ResOp1 under a jnz pc-update) fails with the DecodeError of the offending
// field.
func Encode(inst *Instruction) (uint64, error) {
	flags, err := encodeFlags(inst)
	if err != nil {
		return 0, err
	}

	word := uint64(flags) << flagsShift
	word |= uint64(biasedOffset(inst.Off2)) << 32
	word |= uint64(biasedOffset(inst.Off1)) << 16
	word |= uint64(biasedOffset(inst.Off0))
	return word, nil
}

func encodeFlags(inst *Instruction) (uint16, error) {
	var flags uint16

	if inst.DstReg == RegFP {
		flags |= 1 << dstRegBit
	}
	if inst.Op0Reg == RegFP {
		flags |= 1 << op0RegBit
	}

	op1Src, err := encodeOp1Source(inst.Op1Src)
	if err != nil {
		return 0, err
	}
	flags |= op1Src << op1SrcShift

	res, err := encodeResLogic(inst.Res, inst.PcUpdate)
	if err != nil {
		return 0, err
	}
	flags |= res << resLogicShift

	pcUpdate, err := encodePcUpdate(inst.PcUpdate)
	if err != nil {
		return 0, err
	}
	flags |= pcUpdate << pcUpdateShift

	apUpdate, err := encodeApUpdate(inst.ApUpdate, inst.Opcode)
	if err != nil {
		return 0, err
	}
	flags |= apUpdate << apUpdateShift

	opcode, err := encodeOpcode(inst.Opcode)
	if err != nil {
		return 0, err
	}
	flags |= opcode << opcodeShift

	return flags, nil
}

// biasedOffset converts a signed offset to its biased 16-bit encoding.
func biasedOffset(off int16) uint16 {
	return uint16(off) + offsetBias
}

func encodeOp1Source(src Op1Source) (uint16, error) {
	switch src {
	case Op1SrcOp0:
		return 0, nil
	case Op1SrcImm:
		return 1, nil
	case Op1SrcFP:
		return 2, nil
	case Op1SrcAP:
		return 4, nil
	default:
		return 0, ErrInvalidOp1Reg
	}
}

// encodeResLogic rejects the two combinations the zero-code overload makes
// unrepresentable: ResOp1 under jnz and ResUnconstrained anywhere else.
func encodeResLogic(res ResLogic, pcUpdate PcUpdate) (uint16, error) {
	switch res {
	case ResOp1:
		if pcUpdate == PcUpdateJnz {
			return 0, ErrInvalidResLogic
		}
		return 0, nil
	case ResUnconstrained:
		if pcUpdate != PcUpdateJnz {
			return 0, ErrInvalidResLogic
		}
		return 0, nil
	case ResAdd:
		return 1, nil
	case ResMul:
		return 2, nil
	default:
		return 0, ErrInvalidResLogic
	}
}

func encodePcUpdate(pcUpdate PcUpdate) (uint16, error) {
	switch pcUpdate {
	case PcUpdateRegular:
		return 0, nil
	case PcUpdateJump:
		return 1, nil
	case PcUpdateJumpRel:
		return 2, nil
	case PcUpdateJnz:
		return 4, nil
	default:
		return 0, ErrInvalidPcUpdate
	}
}

// encodeApUpdate rejects ApUpdateRegular on a call and ApUpdateAdd2 off one,
// mirroring the decoder's zero-code overload.
func encodeApUpdate(apUpdate ApUpdate, opcode Opcode) (uint16, error) {
	switch apUpdate {
	case ApUpdateRegular:
		if opcode == OpcodeCall {
			return 0, ErrInvalidApUpdate
		}
		return 0, nil
	case ApUpdateAdd2:
		if opcode != OpcodeCall {
			return 0, ErrInvalidApUpdate
		}
		return 0, nil
	case ApUpdateAdd:
		return 1, nil
	case ApUpdateAdd1:
		return 2, nil
	default:
		return 0, ErrInvalidApUpdate
	}
}

func encodeOpcode(opcode Opcode) (uint16, error) {
	switch opcode {
	case OpcodeNop:
		return 0, nil
	case OpcodeCall:
		return 1, nil
	case OpcodeRet:
		return 2, nil
	case OpcodeAssertEq:
		return 4, nil
	default:
		return 0, ErrInvalidOpcode
	}
}
