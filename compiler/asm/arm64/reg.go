package arm64

import (
	"fmt"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Class is a general register width class.
	Class uint8

	Special uint8

	// Reg is either General{Class, N} or Special.
	// Special is zero for general registers.
	Reg struct {
		Class   Class
		N       uint8
		Special Special
	}
)

const (
	ClassX Class = iota
	ClassW

	// vector
	ClassB
	ClassH
	ClassS
	ClassD
	ClassQ
)

const (
	_ Special = iota
	SpecialXZR
	SpecialWZR
	SpecialSP
	SpecialLR
)

var (
	XZR = Reg{Special: SpecialXZR}
	WZR = Reg{Special: SpecialWZR}
	SP  = Reg{Special: SpecialSP}
	LR  = Reg{Special: SpecialLR}
)

var classNames = [...]string{
	ClassX: "x",
	ClassW: "w",
	ClassB: "b",
	ClassH: "h",
	ClassS: "s",
	ClassD: "d",
	ClassQ: "q",
}

var specialNames = [...]string{
	SpecialXZR: "xzr",
	SpecialWZR: "wzr",
	SpecialSP:  "sp",
	SpecialLR:  "lr",
}

func X(n uint8) Reg { return Reg{Class: ClassX, N: n} }
func W(n uint8) Reg { return Reg{Class: ClassW, N: n} }
func B(n uint8) Reg { return Reg{Class: ClassB, N: n} }
func H(n uint8) Reg { return Reg{Class: ClassH, N: n} }
func S(n uint8) Reg { return Reg{Class: ClassS, N: n} }
func D(n uint8) Reg { return Reg{Class: ClassD, N: n} }
func Q(n uint8) Reg { return Reg{Class: ClassQ, N: n} }

func (r Reg) IsSpecial() bool { return r.Special != 0 }

// IsWord reports whether r is a 32-bit integer register.
func (r Reg) IsWord() bool {
	if r.IsSpecial() {
		return r.Special == SpecialWZR
	}

	return r.Class == ClassW
}

// IsFWord reports whether r is a single-precision register.
func (r Reg) IsFWord() bool {
	return !r.IsSpecial() && r.Class == ClassS
}

// IsVector reports whether r belongs to the B, H or Q classes.
func (r Reg) IsVector() bool {
	if r.IsSpecial() {
		return false
	}

	switch r.Class {
	case ClassB, ClassH, ClassQ:
		return true
	}

	return false
}

func (r Reg) IsFloat() bool {
	return !r.IsSpecial() && (r.Class == ClassS || r.Class == ClassD)
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}

	return fmt.Sprintf("class(%d)", int(c))
}

func (s Special) String() string {
	if int(s) < len(specialNames) && specialNames[s] != "" {
		return specialNames[s]
	}

	return fmt.Sprintf("special(%d)", int(s))
}

func (r Reg) String() string {
	return string(r.Append(nil))
}

func (r Reg) Append(b []byte) []byte {
	if r.IsSpecial() {
		return append(b, r.Special.String()...)
	}

	return hfmt.Appendf(b, "%s%d", r.Class.String(), int(r.N))
}

func (r Reg) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, r.String())
}

func (Reg) operand() {}

func (r Reg) Base() Reg { return r }
