package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

func (l *lowering) add() error {
	rd, rs1, err := l.dstSrc()
	if err != nil {
		return err
	}

	err = l.binary(riscv.AADD, rd, rs1, 2)
	if err != nil {
		return err
	}

	if l.op.SetsFlags() {
		l.emitFlags(rd, rs1)
	}

	return nil
}

func (l *lowering) sub() error {
	rd, rs1, err := l.dstSrc()
	if err != nil {
		return err
	}

	err = l.binary(riscv.ASUB, rd, rs1, 2)
	if err != nil {
		return err
	}

	if l.op.SetsFlags() {
		l.emitFlags(rd, rs1)
		l.emitBorrow()
	}

	return nil
}

func (l *lowering) bitwise() error {
	var op riscv.Op

	switch l.op {
	case arm64.AAND:
		op = riscv.AAND
	case arm64.AORR:
		op = riscv.AOR
	case arm64.AEOR:
		op = riscv.AXOR
	}

	rd, rs1, err := l.dstSrc()
	if err != nil {
		return err
	}

	return l.binary(op, rd, rs1, 2)
}

// cmp computes the difference (or the sum for cmn) into the compare scratch
// register only to set the flags.
func (l *lowering) cmp() error {
	rn, err := l.dst()
	if err != nil {
		return err
	}

	rd := riscv.CmpScratch
	l.clobber.Set(rd)

	op := riscv.ASUB
	if l.op == arm64.ACMN {
		op = riscv.AADD
	}

	err = l.binary(op, rd, rn, 1)
	if err != nil {
		return err
	}

	l.emitFlags(rd, rn)

	if l.op == arm64.ACMP {
		l.emitBorrow()
	}

	return nil
}

// binary emits rd = rs1 op operand at pos.
// Subtraction of an immediate is an addition of the negated immediate.
func (l *lowering) binary(op riscv.Op, rd, rs1 riscv.Reg, pos int) error {
	if l.imm {
		iop, v := op, l.immVal
		if op == riscv.ASUB {
			iop, v = riscv.AADD, -v
		}

		if riscv.FitsSigned(v, l.immBits()) {
			l.emit(riscv.NewI(l.wordOp(iop).Imm(), rd, rs1, riscv.Number(int32(v))))

			return nil
		}

		// negated value no longer fits, redo as register form
		tmp, err := l.materializeImm(l.immArg)
		if err != nil {
			return err
		}

		l.tmp, l.hasTmp, l.imm = tmp, true, false
	}

	rs2, err := l.source(pos)
	if err != nil {
		return err
	}

	l.emit(riscv.NewR(l.wordOp(op), rd, rs1, rs2))

	return nil
}

func (l *lowering) mul() error {
	var op riscv.Op

	switch l.op {
	case arm64.AMUL:
		op = riscv.AMUL
	case arm64.ASDIV:
		op = riscv.ADIV
	case arm64.AUDIV:
		op = riscv.ADIVU
	}

	rd, rs1, err := l.dstSrc()
	if err != nil {
		return err
	}

	rs2, err := l.reg(2)
	if err != nil {
		return err
	}

	l.emit(riscv.NewR(l.wordOp(op), rd, rs1, rs2))

	return nil
}

// madd is rd = rs3 + rs1 * rs2.
func (l *lowering) madd() error {
	rd, rs1, err := l.dstSrc()
	if err != nil {
		return err
	}

	rs2, err := l.reg(2)
	if err != nil {
		return err
	}

	rs3, err := l.reg(3)
	if err != nil {
		return err
	}

	prod := rd
	if rd == rs3 {
		prod = riscv.ImmScratch
		l.clobber.Set(prod)
	}

	l.emit(
		riscv.NewR(l.wordOp(riscv.AMUL), prod, rs1, rs2),
		riscv.NewR(l.wordOp(riscv.AADD), rd, prod, rs3),
	)

	return nil
}

func (l *lowering) shift() error {
	var op riscv.Op

	switch l.op {
	case arm64.ALSL:
		op = riscv.ASLL
	case arm64.ALSR:
		op = riscv.ASRL
	case arm64.AASR:
		op = riscv.ASRA
	default:
		return unsupported("shift", l.op)
	}

	op = l.wordOp(op)

	rd, rs1, err := l.dstSrc()
	if err != nil {
		return err
	}

	switch a := l.rs2.(type) {
	case arm64.Imm:
		limit := int64(63)
		if l.word {
			limit = 31
		}

		if a.Value < 0 || a.Value > limit {
			return OperandError{Op: l.op, Pos: 2, Want: "shift amount in range"}
		}

		l.emit(riscv.NewI(op.Imm(), rd, rs1, riscv.Number(int32(a.Value))))
	case arm64.RegOperand:
		rs2, err := l.materialize(a)
		if err != nil {
			return err
		}

		l.emit(riscv.NewR(op, rd, rs1, rs2))
	default:
		return OperandError{Op: l.op, Pos: 2, Want: "immediate or register"}
	}

	return nil
}

func (l *lowering) mov() error {
	rd, err := l.dst()
	if err != nil {
		return err
	}

	switch a := l.rs1.(type) {
	case arm64.RegOperand:
		rs, err := l.materialize(a)
		if err != nil {
			return err
		}

		l.emit(riscv.NewR(riscv.AADD, rd, riscv.Zero, rs))
	case arm64.Imm:
		if l.hasTmp {
			l.emit(riscv.NewR(riscv.AADD, rd, riscv.Zero, l.tmp))
			break
		}

		l.emit(riscv.NewI(riscv.AADDI, rd, riscv.Zero, riscv.Number(int32(l.immVal))))
	case arm64.Label:
		l.emit(riscv.NewI(riscv.ALUI, rd, riscv.Zero, riscv.LabelRef(string(a))))
	default:
		return OperandError{Op: l.op, Pos: 1, Want: "register, immediate or label"}
	}

	return nil
}

func (l *lowering) mvn() error {
	err := l.mov()
	if err != nil {
		return err
	}

	rd, _ := l.dst()

	l.emit(riscv.NewI(riscv.AXORI, rd, rd, riscv.Number(-1)))

	return nil
}

// dstSrc maps the destination and the first source registers.
func (l *lowering) dstSrc() (rd, rs1 riscv.Reg, err error) {
	rd, err = l.dst()
	if err != nil {
		return
	}

	rs1, err = l.reg(1)

	return
}
