package riscv

import "fmt"

type Op uint8

const (
	ANOP Op = iota

	// arithmetic
	AADD
	AADDI
	ASUB
	ALUI
	AAUIPC
	AADDW
	AADDIW
	ASUBW

	// shift
	ASLL
	ASLLI
	ASRL
	ASRLI
	ASRA
	ASRAI
	ASLLW
	ASLLIW
	ASRLW
	ASRLIW
	ASRAW
	ASRAIW

	// logical
	AXOR
	AXORI
	AAND
	AANDI
	AOR
	AORI

	// compare
	ASLT
	ASLTI
	ASLTU
	ASLTIU

	// branch
	ABEQ
	ABNE
	ABLT
	ABGE
	ABLTU
	ABGEU

	// jump and link
	AJAL
	AJALR

	// system
	AECALL
	AEBREAK
	AFENCE

	// load
	ALB
	ALH
	ALBU
	ALHU
	ALW
	ALWU
	ALD

	// store
	ASB
	ASH
	ASW
	ASD

	// multiply and divide
	AMUL
	AMULH
	AMULHSU
	AMULHU
	AMULW
	ADIV
	ADIVU
	ADIVW
	ADIVUW
	AREM
	AREMU

	// pseudo
	AMV
	ANOT
	ANEG
	ANEGW
	AJ
	ARET
	ALI
	ALA

	// ALABEL marks a label definition, it emits no code.
	ALABEL

	opCount
)

var opNames = [...]string{
	ANOP: "nop",

	AADD:   "add",
	AADDI:  "addi",
	ASUB:   "sub",
	ALUI:   "lui",
	AAUIPC: "auipc",
	AADDW:  "addw",
	AADDIW: "addiw",
	ASUBW:  "subw",

	ASLL:   "sll",
	ASLLI:  "slli",
	ASRL:   "srl",
	ASRLI:  "srli",
	ASRA:   "sra",
	ASRAI:  "srai",
	ASLLW:  "sllw",
	ASLLIW: "slliw",
	ASRLW:  "srlw",
	ASRLIW: "srliw",
	ASRAW:  "sraw",
	ASRAIW: "sraiw",

	AXOR:  "xor",
	AXORI: "xori",
	AAND:  "and",
	AANDI: "andi",
	AOR:   "or",
	AORI:  "ori",

	ASLT:   "slt",
	ASLTI:  "slti",
	ASLTU:  "sltu",
	ASLTIU: "sltiu",

	ABEQ:  "beq",
	ABNE:  "bne",
	ABLT:  "blt",
	ABGE:  "bge",
	ABLTU: "bltu",
	ABGEU: "bgeu",

	AJAL:  "jal",
	AJALR: "jalr",

	AECALL:  "ecall",
	AEBREAK: "ebreak",
	AFENCE:  "fence",

	ALB:  "lb",
	ALH:  "lh",
	ALBU: "lbu",
	ALHU: "lhu",
	ALW:  "lw",
	ALWU: "lwu",
	ALD:  "ld",

	ASB: "sb",
	ASH: "sh",
	ASW: "sw",
	ASD: "sd",

	AMUL:    "mul",
	AMULH:   "mulh",
	AMULHSU: "mulhsu",
	AMULHU:  "mulhu",
	AMULW:   "mulw",
	ADIV:    "div",
	ADIVU:   "divu",
	ADIVW:   "divw",
	ADIVUW:  "divuw",
	AREM:    "rem",
	AREMU:   "remu",

	AMV:   "mv",
	ANOT:  "not",
	ANEG:  "neg",
	ANEGW: "negw",
	AJ:    "j",
	ARET:  "ret",
	ALI:   "li",
	ALA:   "la",

	ALABEL: "label",
}

var immForm = map[Op]Op{
	AADD:  AADDI,
	AADDW: AADDIW,
	AXOR:  AXORI,
	AAND:  AANDI,
	AOR:   AORI,
	ASLT:  ASLTI,
	ASLTU: ASLTIU,
	ASLL:  ASLLI,
	ASRL:  ASRLI,
	ASRA:  ASRAI,
	ASLLW: ASLLIW,
	ASRLW: ASRLIW,
	ASRAW: ASRAIW,
}

// Imm returns the immediate form of a register-register opcode.
// Opcodes without one are returned as is.
func (op Op) Imm() Op {
	if r, ok := immForm[op]; ok {
		return r
	}

	return op
}

// Word returns the 32-bit form of the opcode, if there is one.
func (op Op) Word() Op {
	switch op {
	case AADD:
		return AADDW
	case AADDI:
		return AADDIW
	case ASUB:
		return ASUBW
	case ASLL:
		return ASLLW
	case ASLLI:
		return ASLLIW
	case ASRL:
		return ASRLW
	case ASRLI:
		return ASRLIW
	case ASRA:
		return ASRAW
	case ASRAI:
		return ASRAIW
	case AMUL:
		return AMULW
	case ADIV:
		return ADIVW
	case ADIVU:
		return ADIVUW
	case ANEG:
		return ANEGW
	}

	return op
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}

	return fmt.Sprintf("op(%d)", int(op))
}
