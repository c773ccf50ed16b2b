package riscv

import "github.com/nikandfor/hacked/hfmt"

type (
	// Imm is either a number or a label reference left for the linker.
	// Label is empty for numbers.
	Imm struct {
		Num   int32
		Label string
	}
)

func Number(v int32) Imm { return Imm{Num: v} }

func LabelRef(name string) Imm { return Imm{Label: name} }

func (x Imm) IsLabel() bool { return x.Label != "" }

// Fits reports whether the number is representable as a signed
// immediate of the given bit width. Labels always fit, they are
// resolved later.
func (x Imm) Fits(bits int) bool {
	if x.IsLabel() {
		return true
	}

	return FitsSigned(int64(x.Num), bits)
}

func FitsSigned(v int64, bits int) bool {
	if bits <= 0 || bits >= 64 {
		return bits >= 64
	}

	lim := int64(1) << (bits - 1)

	return v >= -lim && v < lim
}

func (x Imm) Append(b []byte) []byte {
	if x.IsLabel() {
		return append(b, x.Label...)
	}

	return hfmt.Appendf(b, "%d", int(x.Num))
}

func (x Imm) String() string {
	return string(x.Append(nil))
}
