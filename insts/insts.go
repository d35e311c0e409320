// Package insts provides Cairo instruction definitions and decoding.
//
// This package implements decoding of the 64-bit Cairo machine word into a
// structured instruction representation: three signed 16-bit operand offsets
// plus the categorical flag fields (registers, op1 source, result logic,
// pc/ap/fp updates and opcode). It is the instruction-fetch decode stage of
// the VM; execution and trace generation consume the decoded value.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0x14A7800080008000) // call abs imm
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Opcode: %v, Off0: %d\n", inst.Opcode, inst.Off0)
package insts
