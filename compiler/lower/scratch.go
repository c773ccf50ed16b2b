package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
	"github.com/slowlang/armrv/compiler/set"
)

// ScratchPool is the set of registers lowering may clobber
// besides the instruction's own destination.
func ScratchPool() set.Bits[riscv.Reg] {
	return set.Of(riscv.ImmScratch, riscv.FlagZ, riscv.FlagN, riscv.FlagC, riscv.CmpScratch)
}

// Scratch returns the scratch registers written by code.
func Scratch(code []riscv.Instr) (s set.Bits[riscv.Reg]) {
	pool := ScratchPool()

	for _, x := range code {
		if r, ok := x.Dst(); ok && pool.IsSet(r) {
			s.Set(r)
		}
	}

	return s
}

// checkScratch fails if a scratch register used as a temporary
// is also one of the instruction operands.
func (l *lowering) checkScratch() error {
	if l.clobber.Size() == 0 {
		return nil
	}

	for _, a := range l.x.Args {
		var r arm64.Reg

		switch a := a.(type) {
		case arm64.RegOperand:
			r = a.Base()
		case arm64.Addr:
			r = a.Base
		default:
			continue
		}

		m, err := MapReg(r)
		if err != nil {
			continue
		}

		if l.clobber.IsSet(m) {
			return unsupported("register aliases scratch", r)
		}
	}

	return nil
}
