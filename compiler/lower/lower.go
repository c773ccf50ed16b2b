package lower

import (
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
	"github.com/slowlang/armrv/compiler/set"
)

type (
	// Translator lowers one arm64 instruction at a time.
	// It keeps no state between calls and may be shared.
	Translator struct {
		// ImmBits is the signed immediate width accepted without
		// materialization. Zero means DefaultImmBits.
		ImmBits int
	}

	// lowering is a context of a single source instruction.
	lowering struct {
		*Translator

		x  arm64.Instr
		op arm64.Op

		rd       arm64.RegOperand
		rs1, rs2 arm64.Operand
		label    arm64.Label

		imm   bool // immediate is present and needs no materialization
		word  bool // all register operands are 32-bit
		fword bool // all register operands are single precision

		immArg arm64.Imm
		immVal int64 // immArg with its shift applied

		tmp    riscv.Reg
		hasTmp bool

		clobber set.Bits[riscv.Reg] // scratch registers used as temporaries

		b []riscv.Instr
	}
)

const DefaultImmBits = 12

var std = New()

func New() *Translator {
	return &Translator{ImmBits: DefaultImmBits}
}

// Lower appends x lowered to riscv to b using the default Translator.
func Lower(b []riscv.Instr, x arm64.Instr) ([]riscv.Instr, error) {
	return std.Lower(b, x)
}

// Lower appends x lowered to riscv to b.
// On error b is returned unchanged.
func (t *Translator) Lower(b []riscv.Instr, x arm64.Instr) (_ []riscv.Instr, err error) {
	st := len(b)

	l, err := t.newLowering(b, x)
	if err == nil {
		err = l.lower()
	}

	if err == nil {
		err = l.checkScratch()
	}

	if err != nil {
		tlog.V("lower_fail").Printw("lower failed", "src", x, "err", err, "from", loc.Caller(1))

		return b[:st], err
	}

	tlog.V("lower").Printw("lower", "src", x, "code", l.b[st:], "imm", l.imm, "word", l.word, "fword", l.fword)

	return l.b, nil
}

func (t *Translator) immBits() int {
	if t == nil || t.ImmBits <= 0 {
		return DefaultImmBits
	}

	return t.ImmBits
}

func (t *Translator) newLowering(b []riscv.Instr, x arm64.Instr) (l *lowering, err error) {
	l = &lowering{
		Translator: t,
		x:          x,
		op:         x.Op,
		b:          b,
	}

	l.rd, _ = x.Arg(0).(arm64.RegOperand)
	l.label, _ = x.Arg(0).(arm64.Label)
	l.rs1 = x.Arg(1)
	l.rs2 = x.Arg(2)

	var hasImm, hasReg bool

	l.word = true
	l.fword = true

	for i, a := range x.Args {
		switch a := a.(type) {
		case arm64.Imm:
			if hasImm || i == 0 {
				break
			}

			hasImm = true
			l.immArg = a
		case arm64.RegOperand:
			hasReg = true

			r := a.Base()
			l.word = l.word && r.IsWord()
			l.fword = l.fword && r.IsFWord()
		}
	}

	if !hasReg {
		l.word, l.fword = false, false
	}

	if hasImm {
		switch x.Op.Family() {
		case arm64.FamilyArith, arm64.FamilyBitwise, arm64.FamilyCompare, arm64.FamilyMove:
			l.tmp, l.hasTmp, err = l.legalize(l.immArg)
			if err != nil {
				return nil, err
			}
		default:
			l.immVal = l.immArg.Value
		}
	}

	l.imm = hasImm && !l.hasTmp

	return l, nil
}

func (l *lowering) lower() error {
	switch l.op {
	case arm64.AADD, arm64.AADDS:
		return l.add()
	case arm64.ASUB, arm64.ASUBS:
		return l.sub()
	case arm64.AAND, arm64.AORR, arm64.AEOR:
		return l.bitwise()
	case arm64.AMUL, arm64.ASDIV, arm64.AUDIV:
		return l.mul()
	case arm64.AMADD:
		return l.madd()
	case arm64.ALSL, arm64.ALSR, arm64.AASR, arm64.AROR:
		return l.shift()
	case arm64.ACMP, arm64.ACMN:
		return l.cmp()
	case arm64.AMOV, arm64.AMOVZ:
		return l.mov()
	case arm64.AMVN:
		return l.mvn()
	case arm64.ALDR, arm64.ASTR:
		return l.loadStore()
	case arm64.AB, arm64.ABL:
		return l.branch()
	case arm64.ARET:
		return l.ret()
	case arm64.ABEQ, arm64.ABNE, arm64.ABHS, arm64.ABLO, arm64.ABMI, arm64.ABPL,
		arm64.ABHI, arm64.ABLS, arm64.ABGE, arm64.ABLT, arm64.ABGT, arm64.ABLE:
		return l.branchCond()
	case arm64.ACBZ, arm64.ACBNZ:
		return l.branchZero()
	case arm64.ANOP:
		l.emit(riscv.NewNop())
		return nil
	}

	switch f := l.op.Family(); f {
	case arm64.FamilyFloat, arm64.FamilyAtomic:
		return unsupported(f.String()+" opcode", l.op)
	}

	return unsupported("opcode", l.op)
}

func (l *lowering) emit(x ...riscv.Instr) {
	l.b = append(l.b, x...)
}

// dst maps the destination register. It must be a plain register.
func (l *lowering) dst() (riscv.Reg, error) {
	r, ok := l.rd.(arm64.Reg)
	if !ok {
		return 0, OperandError{Op: l.op, Pos: 0, Want: "register"}
	}

	return MapReg(r)
}

// reg maps a plain register operand at pos.
func (l *lowering) reg(pos int) (riscv.Reg, error) {
	r, ok := l.x.Arg(pos).(arm64.Reg)
	if !ok {
		return 0, OperandError{Op: l.op, Pos: pos, Want: "register"}
	}

	return MapReg(r)
}

// source returns the register holding the operand at pos:
// the materialized immediate or the register with its shift or extend applied.
func (l *lowering) source(pos int) (riscv.Reg, error) {
	switch a := l.x.Arg(pos).(type) {
	case arm64.Imm:
		if l.hasTmp {
			return l.tmp, nil
		}
	case arm64.RegOperand:
		return l.materialize(a)
	}

	return 0, OperandError{Op: l.op, Pos: pos, Want: "register"}
}

// wordOp selects the 32-bit form of op for word width instructions.
func (l *lowering) wordOp(op riscv.Op) riscv.Op {
	if l.word {
		return op.Word()
	}

	return op
}
