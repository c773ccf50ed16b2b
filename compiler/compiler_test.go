package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
	"github.com/slowlang/armrv/compiler/lower"
)

func TestTranslate(t *testing.T) {
	ctx := context.Background()

	prog := []arm64.Instr{
		arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5)),
		arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5000)),
		arm64.New(arm64.ASUBS, arm64.X(2), arm64.X(3), arm64.X(4)),
		arm64.New(arm64.ABNE, arm64.Label("loop")),
		arm64.New(arm64.ARET),
	}

	p, err := Translate(ctx, prog)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 3, 8, 9}, p.Offsets)
	assert.Len(t, p.Code, 10)

	assert.Equal(t, []riscv.Instr{
		riscv.NewI(riscv.AJALR, riscv.Zero, riscv.RA, riscv.Number(0)),
	}, p.Span(4))

	assert.Len(t, p.Span(2), 5)

	for i, x := range prog {
		code, err := lower.Lower(nil, x)
		require.NoError(t, err)

		assert.Equal(t, code, p.Span(i), "%v", x)
	}
}

func TestTranslateEmpty(t *testing.T) {
	p, err := Translate(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, p.Code)
	assert.Empty(t, p.Offsets)
}

func TestTranslateError(t *testing.T) {
	prog := []arm64.Instr{
		arm64.New(arm64.ANOP),
		arm64.New(arm64.AFADD, arm64.D(0), arm64.D(1), arm64.D(2)),
		arm64.New(arm64.ANOP),
	}

	p, err := Translate(context.Background(), prog)
	assert.Nil(t, p)
	assert.ErrorContains(t, err, "instr 1")
	assert.ErrorContains(t, err, "fadd d0, d1, d2")
}

func TestTranslateImmBits(t *testing.T) {
	tr := &Translator{Lower: &lower.Translator{ImmBits: 32}}

	p, err := tr.Translate(context.Background(), []arm64.Instr{
		arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5000)),
	})
	require.NoError(t, err)

	assert.Len(t, p.Code, 1)
}
