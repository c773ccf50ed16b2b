package arm64

import "fmt"

type (
	Op     uint8
	Family uint8
)

const (
	FamilyMisc Family = iota
	FamilyArith
	FamilyBitwise
	FamilyShift
	FamilyCompare
	FamilyMove
	FamilyLoadStore
	FamilyBranch
	FamilyFloat
	FamilyAtomic
)

const (
	ANOP Op = iota

	// arithmetic
	AADD
	AADDS
	ASUB
	ASUBS
	AMUL
	ASDIV
	AUDIV
	AMADD
	AUMADDL

	// bitwise
	AAND
	AORR
	AEOR

	// shift
	ALSL
	ALSR
	AASR
	AROR

	// compare
	ACMP
	ACMN

	// move
	AMOV
	AMVN
	AMOVZ
	AMOVK

	// load/store
	ALDR
	ASTR

	// branch
	AB
	ABL
	ARET
	ABEQ
	ABNE
	ABHS
	ABLO
	ABMI
	ABPL
	ABHI
	ABLS
	ABGE
	ABLT
	ABGT
	ABLE
	ACBZ
	ACBNZ
	ACSEL
	ACSET

	// floating-point
	AFMOV
	AUCVTF
	ASCVTF
	AFCMP
	AFCMPE
	AFADD
	AFSUB
	AFMUL
	AFDIV
	AFNEG
	AFSQRT
	AFMADD
	AFMSUB
	AFNMADD
	AFNMUL

	// atomic
	ALDAXR
	ASTLXR
	ALDAR
	ASTLR

	opCount
)

var opNames = [...]string{
	ANOP: "nop",

	AADD:    "add",
	AADDS:   "adds",
	ASUB:    "sub",
	ASUBS:   "subs",
	AMUL:    "mul",
	ASDIV:   "sdiv",
	AUDIV:   "udiv",
	AMADD:   "madd",
	AUMADDL: "umaddl",

	AAND: "and",
	AORR: "orr",
	AEOR: "eor",

	ALSL: "lsl",
	ALSR: "lsr",
	AASR: "asr",
	AROR: "ror",

	ACMP: "cmp",
	ACMN: "cmn",

	AMOV:  "mov",
	AMVN:  "mvn",
	AMOVZ: "movz",
	AMOVK: "movk",

	ALDR: "ldr",
	ASTR: "str",

	AB:    "b",
	ABL:   "bl",
	ARET:  "ret",
	ABEQ:  "b.eq",
	ABNE:  "b.ne",
	ABHS:  "b.hs",
	ABLO:  "b.lo",
	ABMI:  "b.mi",
	ABPL:  "b.pl",
	ABHI:  "b.hi",
	ABLS:  "b.ls",
	ABGE:  "b.ge",
	ABLT:  "b.lt",
	ABGT:  "b.gt",
	ABLE:  "b.le",
	ACBZ:  "cbz",
	ACBNZ: "cbnz",
	ACSEL: "csel",
	ACSET: "cset",

	AFMOV:   "fmov",
	AUCVTF:  "ucvtf",
	ASCVTF:  "scvtf",
	AFCMP:   "fcmp",
	AFCMPE:  "fcmpe",
	AFADD:   "fadd",
	AFSUB:   "fsub",
	AFMUL:   "fmul",
	AFDIV:   "fdiv",
	AFNEG:   "fneg",
	AFSQRT:  "fsqrt",
	AFMADD:  "fmadd",
	AFMSUB:  "fmsub",
	AFNMADD: "fnmadd",
	AFNMUL:  "fnmul",

	ALDAXR: "ldaxr",
	ASTLXR: "stlxr",
	ALDAR:  "ldar",
	ASTLR:  "stlr",
}

// mnemonics is read-only after init.
var mnemonics map[string]Op

func init() {
	mnemonics = make(map[string]Op, len(opNames))

	for op, name := range opNames {
		mnemonics[name] = Op(op)
	}
}

// LookupOp finds the opcode by its lower case mnemonic.
// The lookup is case-sensitive.
func LookupOp(name string) (Op, bool) {
	op, ok := mnemonics[name]
	return op, ok
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}

	return fmt.Sprintf("op(%d)", int(op))
}

func (op Op) Family() Family {
	switch {
	case op == ANOP:
		return FamilyMisc
	case op <= AUMADDL:
		return FamilyArith
	case op <= AEOR:
		return FamilyBitwise
	case op <= AROR:
		return FamilyShift
	case op <= ACMN:
		return FamilyCompare
	case op <= AMOVK:
		return FamilyMove
	case op <= ASTR:
		return FamilyLoadStore
	case op <= ACSET:
		return FamilyBranch
	case op <= AFNMUL:
		return FamilyFloat
	case op <= ASTLR:
		return FamilyAtomic
	}

	return FamilyMisc
}

// SetsFlags reports whether the opcode writes the condition flags.
func (op Op) SetsFlags() bool {
	switch op {
	case AADDS, ASUBS, ACMP, ACMN:
		return true
	}

	return false
}

func (f Family) String() string {
	switch f {
	case FamilyMisc:
		return "misc"
	case FamilyArith:
		return "arith"
	case FamilyBitwise:
		return "bitwise"
	case FamilyShift:
		return "shift"
	case FamilyCompare:
		return "compare"
	case FamilyMove:
		return "move"
	case FamilyLoadStore:
		return "load/store"
	case FamilyBranch:
		return "branch"
	case FamilyFloat:
		return "float"
	case FamilyAtomic:
		return "atomic"
	}

	return fmt.Sprintf("family(%d)", int(f))
}
