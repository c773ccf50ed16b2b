package riscv

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	Format uint8

	// Args is one of R, I, S, U, NoArgs, LabelArgs.
	Args interface {
		Format() Format
		append(b []byte) []byte
	}

	R struct {
		Rd, Rs1, Rs2 Reg
	}

	I struct {
		Rd, Rs1 Reg
		Imm     Imm
	}

	S struct {
		Rs1, Rs2 Reg
		Imm      Imm
	}

	U struct {
		Rd  Reg
		Imm Imm
	}

	NoArgs struct{}

	LabelArgs struct {
		Name string
	}

	Instr struct {
		Op   Op
		Args Args
	}
)

const (
	FormatNone Format = iota
	FormatR
	FormatI
	FormatS
	FormatU
	FormatLabel
)

func NewR(op Op, rd, rs1, rs2 Reg) Instr {
	return Instr{Op: op, Args: R{Rd: rd, Rs1: rs1, Rs2: rs2}}
}

func NewI(op Op, rd, rs1 Reg, imm Imm) Instr {
	return Instr{Op: op, Args: I{Rd: rd, Rs1: rs1, Imm: imm}}
}

func NewS(op Op, rs1, rs2 Reg, imm Imm) Instr {
	return Instr{Op: op, Args: S{Rs1: rs1, Rs2: rs2, Imm: imm}}
}

func NewU(op Op, rd Reg, imm Imm) Instr {
	return Instr{Op: op, Args: U{Rd: rd, Imm: imm}}
}

func NewNop() Instr {
	return Instr{Op: ANOP, Args: NoArgs{}}
}

func NewLabel(name string) Instr {
	return Instr{Op: ALABEL, Args: LabelArgs{Name: name}}
}

func (R) Format() Format         { return FormatR }
func (I) Format() Format         { return FormatI }
func (S) Format() Format         { return FormatS }
func (U) Format() Format         { return FormatU }
func (NoArgs) Format() Format    { return FormatNone }
func (LabelArgs) Format() Format { return FormatLabel }

// Dst returns the register the instruction writes.
func (x Instr) Dst() (Reg, bool) {
	switch a := x.Args.(type) {
	case R:
		return a.Rd, true
	case I:
		return a.Rd, true
	case U:
		return a.Rd, true
	}

	return 0, false
}

func (a R) append(b []byte) []byte {
	b = append(b, a.Rd.String()...)
	b = append(b, ", "...)
	b = append(b, a.Rs1.String()...)
	b = append(b, ", "...)

	return append(b, a.Rs2.String()...)
}

func (a I) append(b []byte) []byte {
	b = append(b, a.Rd.String()...)
	b = append(b, ", "...)
	b = append(b, a.Rs1.String()...)
	b = append(b, ", "...)

	return a.Imm.Append(b)
}

func (a S) append(b []byte) []byte {
	b = append(b, a.Rs1.String()...)
	b = append(b, ", "...)
	b = append(b, a.Rs2.String()...)
	b = append(b, ", "...)

	return a.Imm.Append(b)
}

func (a U) append(b []byte) []byte {
	b = append(b, a.Rd.String()...)
	b = append(b, ", "...)

	return a.Imm.Append(b)
}

func (NoArgs) append(b []byte) []byte { return b }

func (a LabelArgs) append(b []byte) []byte { return append(b, a.Name...) }

func (x Instr) Append(b []byte) []byte {
	if a, ok := x.Args.(LabelArgs); ok {
		b = append(b, a.Name...)
		return append(b, ':')
	}

	b = append(b, x.Op.String()...)

	if x.Args == nil {
		return b
	}

	if x.Args.Format() != FormatNone {
		b = append(b, ' ')
	}

	return x.Args.append(b)
}

func (x Instr) String() string {
	return string(x.Append(nil))
}

func (x Instr) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, x.String())
}

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatU:
		return "U"
	case FormatLabel:
		return "label"
	}

	return fmt.Sprintf("format(%d)", int(f))
}
