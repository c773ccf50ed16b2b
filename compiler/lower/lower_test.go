package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/armrv/compiler/asm/arm64"
	"github.com/slowlang/armrv/compiler/asm/riscv"
)

type lowerCase struct {
	name string
	x    arm64.Instr
	exp  []riscv.Instr
}

func num(v int32) riscv.Imm { return riscv.Number(v) }

func runCases(t *testing.T, cases []lowerCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := Lower(nil, tc.x)
			require.NoError(t, err, "%v", tc.x)
			assert.Equal(t, tc.exp, code, "%v", tc.x)
		})
	}
}

func TestLowerArith(t *testing.T) {
	x0, x1, x2 := riscv.X(0), riscv.X(1), riscv.X(2)

	runCases(t, []lowerCase{
		{
			name: "add_imm",
			x:    arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AADDI, x0, x1, num(5)),
			},
		},
		{
			name: "add_large_imm",
			x:    arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5000)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.ALUI, riscv.T0, riscv.Zero, num(5000)),
				riscv.NewR(riscv.AADD, x0, x1, riscv.T0),
			},
		},
		{
			name: "add_imm_max",
			x:    arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(2047)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AADDI, x0, x1, num(2047)),
			},
		},
		{
			name: "add_imm_over",
			x:    arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(2048)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.ALUI, riscv.T0, riscv.Zero, num(2048)),
				riscv.NewR(riscv.AADD, x0, x1, riscv.T0),
			},
		},
		{
			name: "add_imm_to_t0",
			x:    arm64.New(arm64.AADD, arm64.X(5), arm64.X(1), arm64.Immediate(5)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AADDI, riscv.T0, x1, num(5)),
			},
		},
		{
			name: "add_shifted_imm",
			x:    arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.ShiftedImm(1, arm64.LSL, 12)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.ALUI, riscv.T0, riscv.Zero, num(1)),
				riscv.NewI(riscv.ASLLI, riscv.T0, riscv.T0, num(12)),
				riscv.NewR(riscv.AADD, x0, x1, riscv.T0),
			},
		},
		{
			name: "add_shifted_reg",
			x:    arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Shifted(arm64.X(2), arm64.LSL, 3)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.ASLLI, x2, x2, num(3)),
				riscv.NewR(riscv.AADD, x0, x1, x2),
			},
		},
		{
			name: "add_reg_word",
			x:    arm64.New(arm64.AADD, arm64.W(0), arm64.W(1), arm64.W(2)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.AADDW, x0, x1, x2),
			},
		},
		{
			name: "add_imm_word",
			x:    arm64.New(arm64.AADD, arm64.W(0), arm64.W(1), arm64.Immediate(-3)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AADDIW, x0, x1, num(-3)),
			},
		},
		{
			name: "add_sp",
			x:    arm64.New(arm64.AADD, arm64.SP, arm64.SP, arm64.Immediate(16)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AADDI, riscv.SP, riscv.SP, num(16)),
			},
		},
		{
			name: "sub_imm",
			x:    arm64.New(arm64.ASUB, arm64.X(0), arm64.X(1), arm64.Immediate(5)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AADDI, x0, x1, num(-5)),
			},
		},
		{
			name: "sub_imm_min",
			x:    arm64.New(arm64.ASUB, arm64.X(0), arm64.X(1), arm64.Immediate(-2048)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.ALUI, riscv.T0, riscv.Zero, num(-2048)),
				riscv.NewR(riscv.ASUB, x0, x1, riscv.T0),
			},
		},
		{
			name: "sub_reg",
			x:    arm64.New(arm64.ASUB, arm64.X(0), arm64.X(1), arm64.X(2)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.ASUB, x0, x1, x2),
			},
		},
		{
			name: "and_imm",
			x:    arm64.New(arm64.AAND, arm64.X(0), arm64.X(1), arm64.Immediate(0xff)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.AANDI, x0, x1, num(0xff)),
			},
		},
		{
			name: "orr_reg_word",
			x:    arm64.New(arm64.AORR, arm64.W(0), arm64.W(1), arm64.W(2)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.AOR, x0, x1, x2),
			},
		},
		{
			name: "eor_reg",
			x:    arm64.New(arm64.AEOR, arm64.X(0), arm64.X(1), arm64.X(2)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.AXOR, x0, x1, x2),
			},
		},
	})
}

func TestLowerMulDiv(t *testing.T) {
	x0, x1, x2, x3 := riscv.X(0), riscv.X(1), riscv.X(2), riscv.X(3)

	runCases(t, []lowerCase{
		{
			name: "mul",
			x:    arm64.New(arm64.AMUL, arm64.X(0), arm64.X(1), arm64.X(2)),
			exp:  []riscv.Instr{riscv.NewR(riscv.AMUL, x0, x1, x2)},
		},
		{
			name: "mul_word",
			x:    arm64.New(arm64.AMUL, arm64.W(0), arm64.W(1), arm64.W(2)),
			exp:  []riscv.Instr{riscv.NewR(riscv.AMULW, x0, x1, x2)},
		},
		{
			name: "sdiv",
			x:    arm64.New(arm64.ASDIV, arm64.X(0), arm64.X(1), arm64.X(2)),
			exp:  []riscv.Instr{riscv.NewR(riscv.ADIV, x0, x1, x2)},
		},
		{
			name: "udiv_word",
			x:    arm64.New(arm64.AUDIV, arm64.W(0), arm64.W(1), arm64.W(2)),
			exp:  []riscv.Instr{riscv.NewR(riscv.ADIVUW, x0, x1, x2)},
		},
		{
			name: "madd",
			x:    arm64.New(arm64.AMADD, arm64.X(0), arm64.X(1), arm64.X(2), arm64.X(3)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.AMUL, x0, x1, x2),
				riscv.NewR(riscv.AADD, x0, x0, x3),
			},
		},
		{
			name: "madd_acc_is_dst",
			x:    arm64.New(arm64.AMADD, arm64.X(3), arm64.X(1), arm64.X(2), arm64.X(3)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.AMUL, riscv.T0, x1, x2),
				riscv.NewR(riscv.AADD, x3, riscv.T0, x3),
			},
		},
	})
}

func TestLowerShift(t *testing.T) {
	x0, x1, x2 := riscv.X(0), riscv.X(1), riscv.X(2)

	runCases(t, []lowerCase{
		{
			name: "lsl_imm",
			x:    arm64.New(arm64.ALSL, arm64.X(0), arm64.X(1), arm64.Immediate(3)),
			exp:  []riscv.Instr{riscv.NewI(riscv.ASLLI, x0, x1, num(3))},
		},
		{
			name: "lsr_imm_word",
			x:    arm64.New(arm64.ALSR, arm64.W(0), arm64.W(1), arm64.Immediate(31)),
			exp:  []riscv.Instr{riscv.NewI(riscv.ASRLIW, x0, x1, num(31))},
		},
		{
			name: "asr_reg",
			x:    arm64.New(arm64.AASR, arm64.X(0), arm64.X(1), arm64.X(2)),
			exp:  []riscv.Instr{riscv.NewR(riscv.ASRA, x0, x1, x2)},
		},
	})
}

func TestLowerMove(t *testing.T) {
	x0, x1 := riscv.X(0), riscv.X(1)

	runCases(t, []lowerCase{
		{
			name: "mov_reg",
			x:    arm64.New(arm64.AMOV, arm64.X(0), arm64.X(1)),
			exp:  []riscv.Instr{riscv.NewR(riscv.AADD, x0, riscv.Zero, x1)},
		},
		{
			name: "mov_imm",
			x:    arm64.New(arm64.AMOV, arm64.X(1), arm64.Immediate(-1)),
			exp:  []riscv.Instr{riscv.NewI(riscv.AADDI, x1, riscv.Zero, num(-1))},
		},
		{
			name: "mov_large_imm",
			x:    arm64.New(arm64.AMOVZ, arm64.X(1), arm64.Immediate(70000)),
			exp: []riscv.Instr{
				riscv.NewI(riscv.ALUI, riscv.T0, riscv.Zero, num(70000)),
				riscv.NewR(riscv.AADD, x1, riscv.Zero, riscv.T0),
			},
		},
		{
			name: "mov_label",
			x:    arm64.New(arm64.AMOV, arm64.X(0), arm64.Label("my_label")),
			exp:  []riscv.Instr{riscv.NewI(riscv.ALUI, x0, riscv.Zero, riscv.LabelRef("my_label"))},
		},
		{
			name: "mov_zr",
			x:    arm64.New(arm64.AMOV, arm64.X(1), arm64.XZR),
			exp:  []riscv.Instr{riscv.NewR(riscv.AADD, x1, riscv.Zero, riscv.Zero)},
		},
		{
			name: "mvn",
			x:    arm64.New(arm64.AMVN, arm64.X(0), arm64.X(1)),
			exp: []riscv.Instr{
				riscv.NewR(riscv.AADD, x0, riscv.Zero, x1),
				riscv.NewI(riscv.AXORI, x0, x0, num(-1)),
			},
		},
		{
			name: "nop",
			x:    arm64.New(arm64.ANOP),
			exp:  []riscv.Instr{riscv.NewNop()},
		},
	})
}

func TestLowerFlags(t *testing.T) {
	x0, x1, x2 := riscv.X(0), riscv.X(1), riscv.X(2)

	flags := func(rd, rs riscv.Reg) []riscv.Instr {
		return []riscv.Instr{
			riscv.NewI(riscv.ASLTIU, riscv.FlagZ, rd, num(1)),
			riscv.NewR(riscv.ASLT, riscv.FlagN, rd, riscv.Zero),
			riscv.NewR(riscv.ASLTU, riscv.FlagC, rd, rs),
		}
	}

	borrow := riscv.NewI(riscv.AXORI, riscv.FlagC, riscv.FlagC, num(1))

	runCases(t, []lowerCase{
		{
			name: "subs_word",
			x:    arm64.New(arm64.ASUBS, arm64.W(0), arm64.W(1), arm64.W(2)),
			exp: append(append([]riscv.Instr{
				riscv.NewR(riscv.ASUBW, x0, x1, x2),
			}, flags(x0, x1)...), borrow),
		},
		{
			name: "adds_imm",
			x:    arm64.New(arm64.AADDS, arm64.X(0), arm64.X(1), arm64.Immediate(1)),
			exp: append([]riscv.Instr{
				riscv.NewI(riscv.AADDI, x0, x1, num(1)),
			}, flags(x0, x1)...),
		},
		{
			name: "cmp_imm",
			x:    arm64.New(arm64.ACMP, arm64.X(1), arm64.Immediate(3)),
			exp: append(append([]riscv.Instr{
				riscv.NewI(riscv.AADDI, riscv.CmpScratch, x1, num(-3)),
			}, flags(riscv.CmpScratch, x1)...), borrow),
		},
		{
			name: "cmn_reg",
			x:    arm64.New(arm64.ACMN, arm64.X(1), arm64.X(2)),
			exp: append([]riscv.Instr{
				riscv.NewR(riscv.AADD, riscv.CmpScratch, x1, x2),
			}, flags(riscv.CmpScratch, x1)...),
		},
	})
}

func TestFlagCount(t *testing.T) {
	plain, err := Lower(nil, arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.X(2)))
	require.NoError(t, err)

	adds, err := Lower(nil, arm64.New(arm64.AADDS, arm64.X(0), arm64.X(1), arm64.X(2)))
	require.NoError(t, err)

	subs, err := Lower(nil, arm64.New(arm64.ASUBS, arm64.X(0), arm64.X(1), arm64.X(2)))
	require.NoError(t, err)

	assert.Len(t, adds, len(plain)+3)
	assert.Len(t, subs, len(plain)+4)
}

func TestFlagReg(t *testing.T) {
	for f, exp := range map[Flag]riscv.Reg{
		FlagZ: riscv.T3,
		FlagN: riscv.T4,
		FlagC: riscv.T5,
	} {
		r, err := FlagReg(f)
		require.NoError(t, err, "%v", f)
		assert.Equal(t, exp, r, "%v", f)
	}

	_, err := FlagReg(FlagV)

	var ue UnsupportedError
	assert.ErrorAs(t, err, &ue)
}

func TestLowerAppends(t *testing.T) {
	b := []riscv.Instr{riscv.NewNop()}

	b, err := Lower(b, arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5)))
	require.NoError(t, err)

	assert.Equal(t, []riscv.Instr{
		riscv.NewNop(),
		riscv.NewI(riscv.AADDI, riscv.X(0), riscv.X(1), num(5)),
	}, b)
}

func TestLowerDeterministic(t *testing.T) {
	for _, x := range []arm64.Instr{
		arm64.New(arm64.ASUBS, arm64.W(0), arm64.W(1), arm64.W(2)),
		arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5000)),
		arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Extended(arm64.W(2), arm64.SXTH, 2)),
		arm64.New(arm64.ALDR, arm64.X(0), arm64.Addr{Base: arm64.X(1), Offset: 1 << 20}),
	} {
		a, err := Lower(nil, x)
		require.NoError(t, err)

		b, err := Lower(nil, x)
		require.NoError(t, err)

		assert.Equal(t, a, b, "%v", x)
	}
}

func TestImmBits(t *testing.T) {
	x := arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(5000))

	wide := &Translator{ImmBits: 20}

	code, err := wide.Lower(nil, x)
	require.NoError(t, err)
	assert.Equal(t, []riscv.Instr{
		riscv.NewI(riscv.AADDI, riscv.X(0), riscv.X(1), num(5000)),
	}, code)

	var zero Translator

	code, err = zero.Lower(nil, x)
	require.NoError(t, err)
	assert.Len(t, code, 2)
}

func TestLowerErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		x    arm64.Instr
		ue   bool // UnsupportedError, OperandError otherwise
	}{
		{"float", arm64.New(arm64.AFADD, arm64.D(0), arm64.D(1), arm64.D(2)), true},
		{"atomic", arm64.New(arm64.ALDAXR, arm64.X(0), arm64.Addr{Base: arm64.X(1)}), true},
		{"movk", arm64.New(arm64.AMOVK, arm64.X(0), arm64.Immediate(1)), true},
		{"umaddl", arm64.New(arm64.AUMADDL, arm64.X(0), arm64.W(1), arm64.W(2), arm64.X(3)), true},
		{"csel", arm64.New(arm64.ACSEL, arm64.X(0), arm64.X(1), arm64.X(2)), true},
		{"vector_reg", arm64.New(arm64.AADD, arm64.Q(0), arm64.Q(1), arm64.Q(2)), true},
		{"ror_operand", arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Shifted(arm64.X(2), arm64.ROR, 0)), true},
		{"ror_opcode", arm64.New(arm64.AROR, arm64.X(0), arm64.X(1), arm64.Immediate(3)), true},
		{"imm_too_big", arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.Immediate(1<<32)), true},
		{"imm_bad_shift", arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.ShiftedImm(1, arm64.ROR, 4)), true},
		{"reg_num", arm64.New(arm64.AADD, arm64.X(0), arm64.X(1), arm64.X(32)), true},
		{"missing_operand", arm64.New(arm64.AADD, arm64.X(0), arm64.X(1)), false},
		{"imm_dst", arm64.New(arm64.AADD, arm64.Immediate(1), arm64.X(1), arm64.X(2)), false},
		{"shift_amount", arm64.New(arm64.ALSL, arm64.W(0), arm64.W(1), arm64.Immediate(40)), false},
		{"shifted_dst", arm64.New(arm64.AMOV, arm64.Shifted(arm64.X(0), arm64.LSL, 1), arm64.X(1)), false},
		{"mul_imm", arm64.New(arm64.AMUL, arm64.X(0), arm64.X(1), arm64.Immediate(3)), false},
		{"adds_flag_alias", arm64.New(arm64.AADDS, arm64.X(28), arm64.X(1), arm64.X(2)), true},
		{"subs_flag_alias", arm64.New(arm64.ASUBS, arm64.X(0), arm64.X(30), arm64.X(2)), true},
		{"imm_scratch_alias", arm64.New(arm64.AADD, arm64.X(0), arm64.X(5), arm64.Immediate(5000)), true},
		{"cmp_flag_alias", arm64.New(arm64.ACMP, arm64.X(28), arm64.X(2)), true},
		{"cmn_result_alias", arm64.New(arm64.ACMN, arm64.X(31), arm64.X(2)), true},
		{"madd_product_alias", arm64.New(arm64.AMADD, arm64.X(3), arm64.X(5), arm64.X(2), arm64.X(3)), true},
		{"ldr_base_alias", arm64.New(arm64.ALDR, arm64.X(0), arm64.Addr{Base: arm64.X(5), Offset: 8000}), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := []riscv.Instr{riscv.NewNop()}

			res, err := Lower(b, tc.x)
			require.Error(t, err)
			assert.Equal(t, b, res)

			if tc.ue {
				var ue UnsupportedError
				assert.ErrorAs(t, err, &ue)
			} else {
				var oe OperandError
				assert.ErrorAs(t, err, &oe)
			}
		})
	}
}

func TestLowerNoPartialOutput(t *testing.T) {
	b := make([]riscv.Instr, 1, 16)
	b[0] = riscv.NewNop()

	// the load is emitted before the writeback offset turns out unsupported
	x := arm64.New(arm64.ALDR, arm64.X(0), arm64.Addr{Base: arm64.X(1), Offset: 1 << 33, Index: arm64.IndexPost})

	res, err := Lower(b, x)
	require.Error(t, err)
	assert.Equal(t, []riscv.Instr{riscv.NewNop()}, res)
}

func TestScratchAliasError(t *testing.T) {
	_, err := Lower(nil, arm64.New(arm64.AADDS, arm64.X(28), arm64.X(1), arm64.X(2)))
	assert.EqualError(t, err, "unsupported register aliases scratch: x28")

	// scratch registers the lowering doesn't write are ordinary registers
	code, err := Lower(nil, arm64.New(arm64.AADD, arm64.X(28), arm64.X(29), arm64.X(30)))
	require.NoError(t, err)
	assert.Equal(t, []riscv.Instr{riscv.NewR(riscv.AADD, riscv.T3, riscv.T4, riscv.T5)}, code)
}

func TestErrorText(t *testing.T) {
	_, err := Lower(nil, arm64.New(arm64.AFADD, arm64.D(0), arm64.D(1), arm64.D(2)))
	assert.EqualError(t, err, "unsupported float opcode: fadd")

	_, err = Lower(nil, arm64.New(arm64.AADD, arm64.X(0), arm64.X(1)))
	assert.EqualError(t, err, "add: operand 2: register expected")
}
