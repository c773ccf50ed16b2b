package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

// materialize returns the register holding the operand value.
// Shift and extend modifiers are applied in place on the mapped register,
// so its original value is lost for the rest of the lowering.
func (l *lowering) materialize(o arm64.RegOperand) (riscv.Reg, error) {
	r, err := MapReg(o.Base())
	if err != nil {
		return 0, err
	}

	switch o := o.(type) {
	case arm64.Reg:
	case arm64.ShiftedReg:
		err = l.shiftInPlace(r, o.Kind, o.Amount)
	case arm64.ExtendedReg:
		err = l.extendInPlace(r, o.Kind, o.Amount)
	default:
		return 0, unsupported("register operand", o)
	}

	if err != nil {
		return 0, err
	}

	return r, nil
}

func (l *lowering) shiftInPlace(r riscv.Reg, kind arm64.Shift, amount uint8) error {
	var op riscv.Op

	switch kind {
	case arm64.LSL:
		op = riscv.ASLLI
	case arm64.LSR:
		op = riscv.ASRLI
	case arm64.ASR:
		op = riscv.ASRAI
	default:
		return unsupported("shift", kind)
	}

	if amount > 63 {
		return OperandError{Op: l.op, Pos: -1, Want: "shift amount 0-63"}
	}

	if amount == 0 {
		return nil
	}

	l.emit(riscv.NewI(op, r, r, riscv.Number(int32(amount))))

	return nil
}

// extendInPlace normalizes the low bits of r to the extension width
// and shifts it left by amount.
func (l *lowering) extendInPlace(r riscv.Reg, kind arm64.Extend, amount uint8) error {
	if amount > 4 {
		return OperandError{Op: l.op, Pos: -1, Want: "extend amount 0-4"}
	}

	drop := riscv.Number(int32(64 - kind.Width()))

	switch kind {
	case arm64.UXTB:
		l.emit(riscv.NewI(riscv.AANDI, r, r, riscv.Number(0xff)))
	case arm64.UXTH, arm64.UXTW:
		l.emit(
			riscv.NewI(riscv.ASLLI, r, r, drop),
			riscv.NewI(riscv.ASRLI, r, r, drop),
		)
	case arm64.SXTB, arm64.SXTH:
		l.emit(
			riscv.NewI(riscv.ASLLI, r, r, drop),
			riscv.NewI(riscv.ASRAI, r, r, drop),
		)
	case arm64.SXTW:
		l.emit(riscv.NewI(riscv.AADDIW, r, r, riscv.Number(0)))
	case arm64.UXTX, arm64.SXTX, arm64.ExtLSL:
	default:
		return unsupported("extend", kind)
	}

	if amount != 0 {
		l.emit(riscv.NewI(riscv.ASLLI, r, r, riscv.Number(int32(amount))))
	}

	return nil
}
