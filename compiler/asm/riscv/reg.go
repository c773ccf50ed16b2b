package riscv

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Reg is an integer register x0-x31, a floating point register f0-f31 or pc.
	Reg int

	RegKind uint8
)

const (
	KindInt RegKind = iota
	KindFloat
	KindPC
)

const (
	firstFloat Reg = 32
	PC         Reg = 64
)

// integer registers by ABI name
const (
	Zero Reg = iota
	RA
	SP
	GP
	TP
	T0
	T1
	T2
	S0
	S1
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	T3
	T4
	T5
	T6
)

// Scratch registers. ImmScratch and CmpScratch are local to one source instruction.
// Flag registers keep their values until the next flag-setting instruction.
const (
	ImmScratch = T0

	FlagZ = T3
	FlagN = T4
	FlagC = T5

	CmpScratch = T6
)

var intNames = [32]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

var floatNames = [32]string{
	"ft0", "ft1", "ft2", "ft3", "ft4", "ft5", "ft6", "ft7",
	"fs0", "fs1",
	"fa0", "fa1", "fa2", "fa3", "fa4", "fa5", "fa6", "fa7",
	"fs2", "fs3", "fs4", "fs5", "fs6", "fs7", "fs8", "fs9", "fs10", "fs11",
	"ft8", "ft9", "ft10", "ft11",
}

func X(n uint8) Reg {
	if n > 31 {
		panic(n)
	}

	return Reg(n)
}

func F(n uint8) Reg {
	if n > 31 {
		panic(n)
	}

	return firstFloat + Reg(n)
}

func (r Reg) Kind() RegKind {
	switch {
	case r >= Zero && r < firstFloat:
		return KindInt
	case r >= firstFloat && r < PC:
		return KindFloat
	}

	return KindPC
}

func (r Reg) IsInt() bool   { return r.Kind() == KindInt }
func (r Reg) IsFloat() bool { return r.Kind() == KindFloat }

// Index is the register number within its file.
func (r Reg) Index() int {
	switch r.Kind() {
	case KindInt:
		return int(r)
	case KindFloat:
		return int(r - firstFloat)
	}

	return 0
}

func (r Reg) String() string {
	switch {
	case r >= Zero && r < firstFloat:
		return intNames[r]
	case r >= firstFloat && r < PC:
		return floatNames[r-firstFloat]
	case r == PC:
		return "pc"
	}

	return fmt.Sprintf("reg(%d)", int(r))
}

func (r Reg) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, r.String())
}
