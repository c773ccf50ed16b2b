package lower

import (
	"fmt"

	"github.com/slowlang/armrv/compiler/asm/arm64"
)

type (
	// UnsupportedError is returned for a construct that has no lowering:
	// vector registers, rotate shifts, floating-point and atomic opcodes,
	// conditions that need the overflow flag.
	UnsupportedError struct {
		What  string
		Value any
	}

	// OperandError is returned when an operand is missing
	// or has a kind the opcode does not accept.
	OperandError struct {
		Op   arm64.Op
		Pos  int
		Want string
	}
)

func unsupported(what string, v any) UnsupportedError {
	return UnsupportedError{What: what, Value: v}
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s: %v", e.What, e.Value)
}

func (e OperandError) Error() string {
	return fmt.Sprintf("%v: operand %d: %s expected", e.Op, e.Pos, e.Want)
}
