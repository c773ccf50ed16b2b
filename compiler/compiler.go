package compiler

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
	"github.com/slowlang/armrv/compiler/format"
	"github.com/slowlang/armrv/compiler/lower"
)

type (
	Translator struct {
		Lower *lower.Translator
	}

	// Program is a translated instruction sequence.
	Program struct {
		Code []riscv.Instr

		// Offsets[i] is the index in Code of the first instruction
		// lowered from the i-th source instruction.
		Offsets []int
	}
)

var std = New()

func New() *Translator {
	return &Translator{
		Lower: lower.New(),
	}
}

// Translate lowers prog using the default Translator.
func Translate(ctx context.Context, prog []arm64.Instr) (*Program, error) {
	return std.Translate(ctx, prog)
}

// Translate lowers prog instruction by instruction.
// It stops at the first instruction that can't be lowered.
func (t *Translator) Translate(ctx context.Context, prog []arm64.Instr) (p *Program, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "translate", "instrs", len(prog))
	defer tr.Finish("err", &err)

	if tr.If("dump_in") {
		for i, x := range prog {
			tr.Printw("source", "i", i, "instr", x)
		}
	}

	lt := t.Lower
	if lt == nil {
		lt = lower.New()
	}

	p = &Program{
		Code:    make([]riscv.Instr, 0, 2*len(prog)),
		Offsets: make([]int, len(prog)),
	}

	for i, x := range prog {
		p.Offsets[i] = len(p.Code)

		p.Code, err = lt.Lower(p.Code, x)
		if err != nil {
			return nil, errors.Wrap(err, "instr %d: %v", i, x)
		}
	}

	if tr.If("scratch") {
		tr.Printw("scratch registers", "used", lower.Scratch(p.Code), "pool", lower.ScratchPool())
	}

	if tr.If("dump_out") {
		b, err := format.Listing(nil, prog, p.Code, p.Offsets)
		if err != nil {
			return nil, errors.Wrap(err, "format listing")
		}

		tr.Printw("listing", "code", string(b))
	}

	tr.Printw("translated", "instrs", len(prog), "code", len(p.Code))

	return p, nil
}

// Span returns the part of the Code lowered from the i-th source instruction.
func (p *Program) Span(i int) []riscv.Instr {
	end := len(p.Code)
	if i+1 < len(p.Offsets) {
		end = p.Offsets[i+1]
	}

	return p.Code[p.Offsets[i]:end]
}
