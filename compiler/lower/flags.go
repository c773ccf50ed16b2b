package lower

import (
	"fmt"

	"github.com/slowlang/armrv/compiler/asm/riscv"
)

type Flag uint8

const (
	FlagZ Flag = iota
	FlagN
	FlagC
	FlagV
)

// FlagReg returns the scratch register the emulated flag lives in.
// Overflow is never computed.
func FlagReg(f Flag) (riscv.Reg, error) {
	switch f {
	case FlagZ:
		return riscv.FlagZ, nil
	case FlagN:
		return riscv.FlagN, nil
	case FlagC:
		return riscv.FlagC, nil
	}

	return 0, unsupported("flag", f)
}

// emitFlags computes zero, negative and carry flags of the result rd
// produced from rs.
func (l *lowering) emitFlags(rd, rs riscv.Reg) {
	l.clobber.SetAll(riscv.FlagZ, riscv.FlagN, riscv.FlagC)

	l.emit(
		riscv.NewI(riscv.ASLTIU, riscv.FlagZ, rd, riscv.Number(1)),
		riscv.NewR(riscv.ASLT, riscv.FlagN, rd, riscv.Zero),
		riscv.NewR(riscv.ASLTU, riscv.FlagC, rd, rs),
	)
}

// emitBorrow turns the add carry into the subtraction one.
func (l *lowering) emitBorrow() {
	l.emit(riscv.NewI(riscv.AXORI, riscv.FlagC, riscv.FlagC, riscv.Number(1)))
}

func (f Flag) String() string {
	switch f {
	case FlagZ:
		return "Z"
	case FlagN:
		return "N"
	case FlagC:
		return "C"
	case FlagV:
		return "V"
	}

	return fmt.Sprintf("flag(%d)", int(f))
}
