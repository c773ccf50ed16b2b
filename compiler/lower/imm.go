package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

// legalize decides if x fits into the immediate field.
// If it does, l.immVal is set to its effective value and ok is false.
// Otherwise x is loaded into the immediate scratch register which is returned.
// It doesn't know which opcode consumes the result.
func (l *lowering) legalize(x arm64.Imm) (tmp riscv.Reg, ok bool, err error) {
	v, eff := x.Effective()
	if !eff {
		return 0, false, unsupported("immediate shift", x)
	}

	if riscv.FitsSigned(v, l.immBits()) {
		l.immVal = v

		return 0, false, nil
	}

	tmp, err = l.materializeImm(x)
	if err != nil {
		return 0, false, err
	}

	return tmp, true, nil
}

// materializeImm loads x into the immediate scratch register
// with lui and applies its shift in place.
func (l *lowering) materializeImm(x arm64.Imm) (riscv.Reg, error) {
	if !riscv.FitsSigned(x.Value, 32) {
		return 0, unsupported("immediate", x)
	}

	tmp := riscv.ImmScratch
	l.clobber.Set(tmp)

	l.emit(riscv.NewI(riscv.ALUI, tmp, riscv.Zero, riscv.Number(int32(x.Value))))

	if x.Shift == arm64.NoShift {
		return tmp, nil
	}

	err := l.shiftInPlace(tmp, x.Shift, x.Amount)
	if err != nil {
		return 0, err
	}

	return tmp, nil
}

// loadConst loads a plain 32-bit constant into the immediate scratch register.
func (l *lowering) loadConst(v int64) (riscv.Reg, error) {
	return l.materializeImm(arm64.Immediate(v))
}
