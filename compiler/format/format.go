package format

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

// Format appends a text listing of x.
// x is an instruction or a slice of instructions of either architecture.
func Format(b []byte, x any) ([]byte, error) {
	switch x := x.(type) {
	case arm64.Instr:
		return formatArm(b, x, 1), nil
	case []arm64.Instr:
		for _, x := range x {
			b = formatArm(b, x, 1)
		}

		return b, nil
	case riscv.Instr:
		return formatRiscv(b, x, 1), nil
	case []riscv.Instr:
		for _, x := range x {
			b = formatRiscv(b, x, 1)
		}

		return b, nil
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

// Listing appends code interleaved with the source instructions
// it was lowered from. offsets[i] is the index in code where
// the lowering of src[i] starts.
func Listing(b []byte, src []arm64.Instr, code []riscv.Instr, offsets []int) ([]byte, error) {
	if len(src) != len(offsets) {
		return nil, errors.New("offsets: %d for %d instructions", len(offsets), len(src))
	}

	for i, x := range src {
		st := offsets[i]
		end := len(code)

		if i+1 < len(offsets) {
			end = offsets[i+1]
		}

		if st < 0 || st > end || end > len(code) {
			return nil, errors.New("instr %d: bad code range %d:%d", i, st, end)
		}

		if i != 0 {
			b = append(b, '\n')
		}

		b = app(b, 1, "// %d: ", i)
		b = x.Append(b)
		b = append(b, '\n')

		for _, y := range code[st:end] {
			b = formatRiscv(b, y, 1)
		}
	}

	return b, nil
}

func formatArm(b []byte, x arm64.Instr, d int) []byte {
	b = app(b, d, "")
	b = x.Append(b)

	return append(b, '\n')
}

func formatRiscv(b []byte, x riscv.Instr, d int) []byte {
	if x.Op == riscv.ALABEL {
		d = 0
	}

	b = app(b, d, "")
	b = x.Append(b)

	return append(b, '\n')
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
