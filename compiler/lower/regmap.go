package lower

import (
	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

// MapReg maps an arm64 register to the riscv one.
// General x/w registers keep their number in the integer file,
// s/d registers keep it in the floating point file.
// b, h and q registers have no mapping.
func MapReg(r arm64.Reg) (riscv.Reg, error) {
	if r.IsSpecial() {
		switch r.Special {
		case arm64.SpecialXZR, arm64.SpecialWZR:
			return riscv.Zero, nil
		case arm64.SpecialSP:
			return riscv.SP, nil
		case arm64.SpecialLR:
			return riscv.RA, nil
		}

		return 0, unsupported("register", r)
	}

	if r.N > 31 {
		return 0, unsupported("register", r)
	}

	switch r.Class {
	case arm64.ClassX, arm64.ClassW:
		return riscv.X(r.N), nil
	case arm64.ClassS, arm64.ClassD:
		return riscv.F(r.N), nil
	}

	return 0, unsupported("register class", r.Class)
}
