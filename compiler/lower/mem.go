package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

// loadStore lowers ldr and str. The address is operand 1.
func (l *lowering) loadStore() error {
	rt, err := l.dst()
	if err != nil {
		return err
	}

	if rt.IsFloat() {
		return unsupported("float opcode", l.op)
	}

	if lab, ok := l.rs1.(arm64.Label); ok && l.op == arm64.ALDR {
		l.emit(riscv.NewI(riscv.ALUI, rt, riscv.Zero, riscv.LabelRef(string(lab))))

		return nil
	}

	a, ok := l.rs1.(arm64.Addr)
	if !ok {
		return OperandError{Op: l.op, Pos: 1, Want: "address"}
	}

	base, err := MapReg(a.Base)
	if err != nil {
		return err
	}

	bits := l.immBits()

	switch a.Index {
	case arm64.IndexOffset:
		if riscv.FitsSigned(a.Offset, bits) {
			l.access(rt, base, a.Offset)

			return nil
		}

		tmp, err := l.loadConst(a.Offset)
		if err != nil {
			return err
		}

		l.emit(riscv.NewR(riscv.AADD, tmp, tmp, base))
		l.access(rt, tmp, 0)
	case arm64.IndexPre:
		err = l.addOffset(base, a.Offset)
		if err != nil {
			return err
		}

		l.access(rt, base, 0)
	case arm64.IndexPost:
		l.access(rt, base, 0)

		err = l.addOffset(base, a.Offset)
		if err != nil {
			return err
		}
	default:
		return unsupported("index mode", a.Index)
	}

	return nil
}

func (l *lowering) access(rt, base riscv.Reg, off int64) {
	imm := riscv.Number(int32(off))

	if l.op == arm64.ALDR {
		op := riscv.ALD
		if l.word {
			op = riscv.ALWU
		}

		l.emit(riscv.NewI(op, rt, base, imm))

		return
	}

	op := riscv.ASD
	if l.word {
		op = riscv.ASW
	}

	l.emit(riscv.NewS(op, base, rt, imm))
}

// addOffset is the base register writeback of pre and post indexed modes.
func (l *lowering) addOffset(base riscv.Reg, off int64) error {
	if off == 0 {
		return nil
	}

	if riscv.FitsSigned(off, l.immBits()) {
		l.emit(riscv.NewI(riscv.AADDI, base, base, riscv.Number(int32(off))))

		return nil
	}

	tmp, err := l.loadConst(off)
	if err != nil {
		return err
	}

	l.emit(riscv.NewR(riscv.AADD, base, base, tmp))

	return nil
}
