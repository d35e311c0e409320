package insts

// DecodeError identifies the single instruction field that failed to decode.
// The set is closed; values compare with errors.Is against the Err constants
// below.
type DecodeError uint8

// Decode failure kinds.
const (
	ErrNonZeroHighBit DecodeError = iota // bit 63 of the word is set
	ErrInvalidOp1Reg                     // op1-source field not in {0,1,2,4}
	ErrInvalidPcUpdate                   // pc-update field not in {0,1,2,4}
	ErrInvalidResLogic                   // result-logic field is 3
	ErrInvalidOpcode                     // opcode field not in {0,1,2,4}
	ErrInvalidApUpdate                   // ap-update field is 3
)

func (e DecodeError) Error() string {
	switch e {
	case ErrNonZeroHighBit:
		return "instruction high bit is not zero"
	case ErrInvalidOp1Reg:
		return "invalid op1 source field"
	case ErrInvalidPcUpdate:
		return "invalid pc update field"
	case ErrInvalidResLogic:
		return "invalid result logic field"
	case ErrInvalidOpcode:
		return "invalid opcode field"
	case ErrInvalidApUpdate:
		return "invalid ap update field"
	default:
		return "unknown decode error"
	}
}
