package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

type condBranch struct {
	flag Flag
	set  bool // branch if the flag is set
}

var condBranches = map[arm64.Op]condBranch{
	arm64.ABEQ: {flag: FlagZ, set: true},
	arm64.ABNE: {flag: FlagZ, set: false},
	arm64.ABMI: {flag: FlagN, set: true},
	arm64.ABPL: {flag: FlagN, set: false},
	arm64.ABHS: {flag: FlagC, set: true},
	arm64.ABLO: {flag: FlagC, set: false},
}

// branch lowers b and bl to jal with the label left for the linker.
func (l *lowering) branch() error {
	if l.label == "" {
		return OperandError{Op: l.op, Pos: 0, Want: "label"}
	}

	link := riscv.Zero
	if l.op == arm64.ABL {
		link = riscv.RA
	}

	l.emit(riscv.NewU(riscv.AJAL, link, riscv.LabelRef(string(l.label))))

	return nil
}

func (l *lowering) ret() error {
	r := riscv.RA

	if l.x.Arg(0) != nil {
		var err error

		r, err = l.reg(0)
		if err != nil {
			return err
		}
	}

	l.emit(riscv.NewI(riscv.AJALR, riscv.Zero, r, riscv.Number(0)))

	return nil
}

// branchCond tests the emulated flag register against zero.
// Conditions combining flags or using overflow are not supported.
func (l *lowering) branchCond() error {
	c, ok := condBranches[l.op]
	if !ok {
		return unsupported("condition", l.op)
	}

	if l.label == "" {
		return OperandError{Op: l.op, Pos: 0, Want: "label"}
	}

	fr, err := FlagReg(c.flag)
	if err != nil {
		return err
	}

	op := riscv.ABEQ
	if c.set {
		op = riscv.ABNE
	}

	l.emit(riscv.NewS(op, fr, riscv.Zero, riscv.LabelRef(string(l.label))))

	return nil
}

func (l *lowering) branchZero() error {
	rn, err := l.dst()
	if err != nil {
		return err
	}

	lab, ok := l.rs1.(arm64.Label)
	if !ok || lab == "" {
		return OperandError{Op: l.op, Pos: 1, Want: "label"}
	}

	op := riscv.ABEQ
	if l.op == arm64.ACBNZ {
		op = riscv.ABNE
	}

	l.emit(riscv.NewS(op, rn, riscv.Zero, riscv.LabelRef(string(lab))))

	return nil
}
