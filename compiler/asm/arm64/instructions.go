package arm64

import "tlog.app/go/tlog/tlwire"

type (
	// Instr is a decoded instruction.
	// Which argument is destination and which is source
	// depends on the opcode family.
	Instr struct {
		Op   Op
		Args []Operand
	}
)

func New(op Op, args ...Operand) Instr {
	return Instr{Op: op, Args: args}
}

// Arg returns i-th argument or nil.
func (x Instr) Arg(i int) Operand {
	if i < 0 || i >= len(x.Args) {
		return nil
	}

	return x.Args[i]
}

func (x Instr) Append(b []byte) []byte {
	b = append(b, x.Op.String()...)

	for i, a := range x.Args {
		if i == 0 {
			b = append(b, ' ')
		} else {
			b = append(b, ", "...)
		}

		b = a.Append(b)
	}

	return b
}

func (x Instr) String() string {
	return string(x.Append(nil))
}

func (x Instr) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, x.String())
}
