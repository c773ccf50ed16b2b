package arm64

import (
	"fmt"

	"github.com/nikandfor/hacked/hfmt"
)

type (
	Shift  uint8
	Extend uint8
	Index  uint8

	Operand interface {
		operand()
		Append(b []byte) []byte
	}

	// RegOperand is Reg, ShiftedReg or ExtendedReg.
	RegOperand interface {
		Operand
		Base() Reg
	}

	ShiftedReg struct {
		Reg    Reg
		Amount uint8
		Kind   Shift
	}

	ExtendedReg struct {
		Reg    Reg
		Amount uint8
		Kind   Extend
	}

	// Imm is an immediate with an optional shift.
	// Shift == NoShift means no shift is applied.
	Imm struct {
		Value  int64
		Amount uint8
		Shift  Shift
	}

	Addr struct {
		Base   Reg
		Offset int64
		Index  Index
	}

	Label string
)

const (
	NoShift Shift = iota
	LSL
	LSR
	ASR
	ROR
)

const (
	UXTB Extend = iota
	UXTH
	UXTW
	UXTX
	SXTB
	SXTH
	SXTW
	SXTX
	ExtLSL
)

const (
	IndexOffset Index = iota
	IndexPre
	IndexPost
)

var shiftNames = [...]string{
	NoShift: "",
	LSL:     "lsl",
	LSR:     "lsr",
	ASR:     "asr",
	ROR:     "ror",
}

var extendNames = [...]string{
	UXTB:   "uxtb",
	UXTH:   "uxth",
	UXTW:   "uxtw",
	UXTX:   "uxtx",
	SXTB:   "sxtb",
	SXTH:   "sxth",
	SXTW:   "sxtw",
	SXTX:   "sxtx",
	ExtLSL: "lsl",
}

func Shifted(r Reg, kind Shift, amount uint8) ShiftedReg {
	return ShiftedReg{Reg: r, Amount: amount, Kind: kind}
}

func Extended(r Reg, kind Extend, amount uint8) ExtendedReg {
	return ExtendedReg{Reg: r, Amount: amount, Kind: kind}
}

func Immediate(v int64) Imm { return Imm{Value: v} }

func ShiftedImm(v int64, kind Shift, amount uint8) Imm {
	return Imm{Value: v, Amount: amount, Shift: kind}
}

func (s Shift) String() string {
	if int(s) < len(shiftNames) {
		return shiftNames[s]
	}

	return fmt.Sprintf("shift(%d)", int(s))
}

func (x Extend) String() string {
	if int(x) < len(extendNames) {
		return extendNames[x]
	}

	return fmt.Sprintf("extend(%d)", int(x))
}

// IsSigned reports whether the extension sign-extends its source.
func (x Extend) IsSigned() bool {
	switch x {
	case SXTB, SXTH, SXTW, SXTX:
		return true
	}

	return false
}

// Width is the number of source bits the extension keeps.
func (x Extend) Width() int {
	switch x {
	case UXTB, SXTB:
		return 8
	case UXTH, SXTH:
		return 16
	case UXTW, SXTW:
		return 32
	}

	return 64
}

func (ShiftedReg) operand()  {}
func (ExtendedReg) operand() {}
func (Imm) operand()         {}
func (Addr) operand()        {}
func (Label) operand()       {}

func (r ShiftedReg) Base() Reg  { return r.Reg }
func (r ExtendedReg) Base() Reg { return r.Reg }

func (r ShiftedReg) Append(b []byte) []byte {
	b = r.Reg.Append(b)

	return hfmt.Appendf(b, ", %s #%d", r.Kind.String(), int(r.Amount))
}

func (r ExtendedReg) Append(b []byte) []byte {
	b = r.Reg.Append(b)
	b = hfmt.Appendf(b, ", %s", r.Kind.String())

	if r.Amount != 0 {
		b = hfmt.Appendf(b, " #%d", int(r.Amount))
	}

	return b
}

// Effective returns the value with its shift applied.
// ok is false if the shift kind has no constant meaning or overflows int64.
func (x Imm) Effective() (v int64, ok bool) {
	switch x.Shift {
	case NoShift:
		return x.Value, true
	case LSL:
		if x.Amount >= 63 {
			return 0, x.Value == 0
		}

		v = x.Value << x.Amount
		if v>>x.Amount != x.Value {
			return 0, false
		}

		return v, true
	case LSR:
		if x.Amount >= 64 {
			return 0, true
		}

		return int64(uint64(x.Value) >> x.Amount), true
	case ASR:
		if x.Amount >= 64 {
			x.Amount = 63
		}

		return x.Value >> x.Amount, true
	}

	return 0, false
}

func (x Imm) Append(b []byte) []byte {
	b = hfmt.Appendf(b, "#%d", x.Value)

	if x.Shift != NoShift {
		b = hfmt.Appendf(b, ", %s #%d", x.Shift.String(), int(x.Amount))
	}

	return b
}

func (a Addr) Append(b []byte) []byte {
	b = append(b, '[')
	b = a.Base.Append(b)

	switch a.Index {
	case IndexPost:
		return hfmt.Appendf(b, "], #%d", a.Offset)
	case IndexPre:
		return hfmt.Appendf(b, ", #%d]!", a.Offset)
	}

	if a.Offset != 0 {
		b = hfmt.Appendf(b, ", #%d", a.Offset)
	}

	return append(b, ']')
}

func (l Label) Append(b []byte) []byte {
	return append(b, l...)
}

func (r ShiftedReg) String() string  { return string(r.Append(nil)) }
func (r ExtendedReg) String() string { return string(r.Append(nil)) }
func (x Imm) String() string         { return string(x.Append(nil)) }
func (a Addr) String() string        { return string(a.Append(nil)) }
