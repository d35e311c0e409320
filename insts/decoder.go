package insts

// Register identifies the base register contributing to an address
// computation.
type Register uint8

// Base registers.
const (
	RegAP Register = iota // Allocation pointer
	RegFP                 // Frame pointer
)

// Op1Source identifies where the second operand's address offset originates.
type Op1Source uint8

// Op1 sources.
const (
	Op1SrcOp0 Op1Source = iota // Offset from the op0 cell
	Op1SrcImm                  // Immediate in the next word
	Op1SrcFP                   // Offset from fp
	Op1SrcAP                   // Offset from ap
)

// ResLogic identifies how the instruction result is computed from its
// operands.
type ResLogic uint8

// Result logics.
const (
	ResOp1 ResLogic = iota // Result is op1 itself
	ResAdd                 // Result is op0 + op1
	ResMul                 // Result is op0 * op1
	ResUnconstrained       // No result constraint (conditional jumps)
)

// PcUpdate identifies how the program counter advances.
type PcUpdate uint8

// Pc updates.
const (
	PcUpdateRegular PcUpdate = iota // pc += instruction size
	PcUpdateJump                    // pc = res (absolute jump)
	PcUpdateJumpRel                 // pc += res (relative jump)
	PcUpdateJnz                     // pc += op1 if dst != 0, else regular
)

// ApUpdate identifies how the allocation pointer advances.
type ApUpdate uint8

// Ap updates.
const (
	ApUpdateRegular ApUpdate = iota // ap unchanged
	ApUpdateAdd                     // ap += res
	ApUpdateAdd1                    // ap += 1
	ApUpdateAdd2                    // ap += 2 (implicit on call)
)

// FpUpdate identifies how the frame pointer advances. It is never encoded
// independently; it is fully determined by the opcode.
type FpUpdate uint8

// Fp updates.
const (
	FpUpdateRegular FpUpdate = iota // fp unchanged
	FpUpdateAPPlus2                 // fp = ap + 2 (call)
	FpUpdateDst                     // fp = dst (ret)
)

// Opcode identifies the instruction's operation class.
type Opcode uint8

// Opcodes.
const (
	OpcodeNop Opcode = iota
	OpcodeAssertEq
	OpcodeCall
	OpcodeRet
)

// Word layout: bit 63 reserved (zero), bits [62:48] flags, bits [47:0] three
// packed 16-bit biased offsets.
const (
	highBitMask = uint64(1) << 63
	flagsShift  = 48
	offsetMask  = 0xFFFF
	offsetBias  = 0x8000 // biased offsets store signed value + 32768
)

// Flag-field bit positions (within the 15-bit flag field).
const (
	dstRegBit     = 0  // bit 0: dst base register
	op0RegBit     = 1  // bit 1: op0 base register
	op1SrcShift   = 2  // bits [4:2]: op1 source
	resLogicShift = 5  // bits [6:5]: result logic
	pcUpdateShift = 7  // bits [9:7]: pc update
	apUpdateShift = 10 // bits [11:10]: ap update
	opcodeShift   = 12 // bits [14:12]: opcode
)

// Instruction represents a decoded Cairo instruction.
type Instruction struct {
	// Operand offsets, sign-decoded from their biased 16-bit encodings.
	Off0 int16 // dst offset
	Off1 int16 // op0 offset
	Off2 int16 // op1 offset

	DstReg   Register  // Base register for the dst cell
	Op0Reg   Register  // Base register for the op0 cell
	Op1Src   Op1Source // Where the op1 offset applies
	Res      ResLogic  // How the result is formed
	PcUpdate PcUpdate  // Program counter transition
	ApUpdate ApUpdate  // Allocation pointer transition
	FpUpdate FpUpdate  // Frame pointer transition (derived from Opcode)
	Opcode   Opcode    // Operation class
}

// Size returns the number of words the instruction occupies. An immediate
// operand lives in the word following the instruction.
func (i *Instruction) Size() uint64 {
	if i.Op1Src == Op1SrcImm {
		return 2
	}
	return 1
}

// Decoder decodes Cairo machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new Cairo instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 64-bit Cairo instruction word. Decoding is all-or-nothing:
// the first invalid field aborts with its DecodeError and no partial
// instruction is returned.
func (d *Decoder) Decode(word uint64) (*Instruction, error) {
	if word&highBitMask != 0 {
		return nil, ErrNonZeroHighBit
	}

	flags := uint16(word >> flagsShift)

	inst := &Instruction{
		Off0: signedOffset(uint16(word & offsetMask)),
		Off1: signedOffset(uint16((word >> 16) & offsetMask)),
		Off2: signedOffset(uint16((word >> 32) & offsetMask)),
	}

	inst.DstReg = registerFromBit(flags >> dstRegBit & 0x1)
	inst.Op0Reg = registerFromBit(flags >> op0RegBit & 0x1)

	// Opcode and pc-update first: ap-update and result-logic branch on them.
	opcode, err := decodeOpcode(flags >> opcodeShift & 0x7)
	if err != nil {
		return nil, err
	}
	inst.Opcode = opcode

	pcUpdate, err := decodePcUpdate(flags >> pcUpdateShift & 0x7)
	if err != nil {
		return nil, err
	}
	inst.PcUpdate = pcUpdate

	inst.Op1Src, err = decodeOp1Source(flags >> op1SrcShift & 0x7)
	if err != nil {
		return nil, err
	}

	inst.Res, err = decodeResLogic(flags>>resLogicShift&0x3, pcUpdate)
	if err != nil {
		return nil, err
	}

	inst.ApUpdate, err = decodeApUpdate(flags>>apUpdateShift&0x3, opcode)
	if err != nil {
		return nil, err
	}

	inst.FpUpdate = fpUpdateFor(opcode)

	return inst, nil
}

// signedOffset converts a biased 16-bit offset to its signed value: the
// encoding stores value + 32768, so 0x8000 is 0, 0x0000 is -32768 and
// 0xFFFF is 32767.
func signedOffset(biased uint16) int16 {
	return int16(biased - offsetBias)
}

func registerFromBit(bit uint16) Register {
	if bit == 1 {
		return RegFP
	}
	return RegAP
}

// decodeOpcode maps the 3-bit opcode field {0,1,2,4}; all other codes are
// invalid.
func decodeOpcode(bits uint16) (Opcode, error) {
	switch bits {
	case 0:
		return OpcodeNop, nil
	case 1:
		return OpcodeCall, nil
	case 2:
		return OpcodeRet, nil
	case 4:
		return OpcodeAssertEq, nil
	default:
		return 0, ErrInvalidOpcode
	}
}

// decodePcUpdate maps the 3-bit pc-update field {0,1,2,4}; all other codes
// are invalid.
func decodePcUpdate(bits uint16) (PcUpdate, error) {
	switch bits {
	case 0:
		return PcUpdateRegular, nil
	case 1:
		return PcUpdateJump, nil
	case 2:
		return PcUpdateJumpRel, nil
	case 4:
		return PcUpdateJnz, nil
	default:
		return 0, ErrInvalidPcUpdate
	}
}

// decodeOp1Source maps the 3-bit op1-source field {0,1,2,4}; all other codes
// are invalid.
func decodeOp1Source(bits uint16) (Op1Source, error) {
	switch bits {
	case 0:
		return Op1SrcOp0, nil
	case 1:
		return Op1SrcImm, nil
	case 2:
		return Op1SrcFP, nil
	case 4:
		return Op1SrcAP, nil
	default:
		return 0, ErrInvalidOp1Reg
	}
}

// decodeResLogic maps the 2-bit result-logic field. Code 0 is overloaded:
// under a jnz pc-update the result is unconstrained, otherwise it is op1.
// The pc-update must already be decoded, which the parameter enforces.
func decodeResLogic(bits uint16, pcUpdate PcUpdate) (ResLogic, error) {
	switch bits {
	case 0:
		if pcUpdate == PcUpdateJnz {
			return ResUnconstrained, nil
		}
		return ResOp1, nil
	case 1:
		return ResAdd, nil
	case 2:
		return ResMul, nil
	default:
		return 0, ErrInvalidResLogic
	}
}

// decodeApUpdate maps the 2-bit ap-update field. Code 0 is overloaded: a
// call advances ap by two (return pc and fp), otherwise ap is unchanged.
// The opcode must already be decoded, which the parameter enforces.
func decodeApUpdate(bits uint16, opcode Opcode) (ApUpdate, error) {
	switch bits {
	case 0:
		if opcode == OpcodeCall {
			return ApUpdateAdd2, nil
		}
		return ApUpdateRegular, nil
	case 1:
		return ApUpdateAdd, nil
	case 2:
		return ApUpdateAdd1, nil
	default:
		return 0, ErrInvalidApUpdate
	}
}

// fpUpdateFor derives the frame pointer transition from the opcode: a call
// saves the caller frame (fp = ap + 2), a ret restores it from dst, and
// everything else leaves fp alone.
func fpUpdateFor(opcode Opcode) FpUpdate {
	switch opcode {
	case OpcodeCall:
		return FpUpdateAPPlus2
	case OpcodeRet:
		return FpUpdateDst
	default:
		return FpUpdateRegular
	}
}
