// rv32i.go - RV32I base integer instruction set

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later

RV32I instruction formats (32 bits, little-endian in memory):

  R-type:  funct7[31:25] rs2[24:20] rs1[19:15] funct3[14:12] rd[11:7] opcode[6:0]
  I-type:  imm[31:20]               rs1[19:15] funct3[14:12] rd[11:7] opcode[6:0]
  S-type:  imm[11:5][31:25] rs2     rs1        funct3        imm[4:0][11:7] opcode
  B-type:  imm[12|10:5][31:25] rs2  rs1        funct3        imm[4:1|11][11:7] opcode
  U-type:  imm[31:12]                                        rd       opcode
  J-type:  imm[20|10:1|11|19:12][31:12]                      rd       opcode

Branch and jump immediates are in multiples of 2 bytes; bit 0 is
implicit and never stored.
*/

package isa

import (
	"fmt"
	"math"
)

// Major opcodes.
const (
	opLUI    = 0b0110111
	opAUIPC  = 0b0010111
	opJAL    = 0b1101111
	opJALR   = 0b1100111
	opBRANCH = 0b1100011
	opLOAD   = 0b0000011
	opSTORE  = 0b0100011
	opOPIMM  = 0b0010011
	opOP     = 0b0110011
	opSYSTEM = 0b1110011
)

// Default section base addresses.
const (
	TextBase = 0x00000000
	DataBase = 0x10000000
	BSSBase  = 0x11000000
)

// ---------------------------------------------------------------------
// Format constructors
// ---------------------------------------------------------------------

func rType(name string, funct3, funct7 uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rd"), regOp("rs1"), regOp("rs2")},
		fixed("opcode", 6, 0, opOP),
		fixed("funct3", 14, 12, funct3),
		fixed("funct7", 31, 25, funct7),
		reg("rd", 11, 7), reg("rs1", 19, 15), reg("rs2", 24, 20),
	)
}

func iType(name string, opcode, funct3 uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rd"), regOp("rs1"), immOp("imm")},
		fixed("opcode", 6, 0, opcode),
		fixed("funct3", 14, 12, funct3),
		reg("rd", 11, 7), reg("rs1", 19, 15),
		imm("imm", 12, true, false, Slice{11, 0, 20}),
	)
}

func shiftType(name string, funct3, funct7 uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rd"), regOp("rs1"), immOp("shamt")},
		fixed("opcode", 6, 0, opOPIMM),
		fixed("funct3", 14, 12, funct3),
		fixed("funct7", 31, 25, funct7),
		reg("rd", 11, 7), reg("rs1", 19, 15),
		imm("shamt", 5, false, false, Slice{4, 0, 20}),
	)
}

func loadType(name string, funct3 uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rd"), memOp("imm", "rs1")},
		fixed("opcode", 6, 0, opLOAD),
		fixed("funct3", 14, 12, funct3),
		reg("rd", 11, 7), reg("rs1", 19, 15),
		imm("imm", 12, true, false, Slice{11, 0, 20}),
	)
}

func storeType(name string, funct3 uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rs2"), memOp("imm", "rs1")},
		fixed("opcode", 6, 0, opSTORE),
		fixed("funct3", 14, 12, funct3),
		reg("rs1", 19, 15), reg("rs2", 24, 20),
		imm("imm", 12, true, false, Slice{11, 5, 25}, Slice{4, 0, 7}),
	)
}

func branchType(name string, funct3 uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rs1"), regOp("rs2"), immOp("imm")},
		fixed("opcode", 6, 0, opBRANCH),
		fixed("funct3", 14, 12, funct3),
		reg("rs1", 19, 15), reg("rs2", 24, 20),
		imm("imm", 13, true, true,
			Slice{12, 12, 31}, Slice{10, 5, 25}, Slice{4, 1, 8}, Slice{11, 11, 7}),
	)
}

func uType(name string, opcode uint32) *Instruction {
	return newInstruction(name,
		[]Operand{regOp("rd"), immOp("imm")},
		fixed("opcode", 6, 0, opcode),
		reg("rd", 11, 7),
		imm("imm", 20, false, false, Slice{19, 0, 12}),
	)
}

func systemType(name string, funct12 uint32) *Instruction {
	return newInstruction(name, nil,
		fixed("opcode", 6, 0, opSYSTEM),
		fixed("rd", 11, 7, 0),
		fixed("funct3", 14, 12, 0),
		fixed("rs1", 19, 15, 0),
		fixed("funct12", 31, 20, funct12),
	)
}

// ---------------------------------------------------------------------
// RV32I descriptor
// ---------------------------------------------------------------------

// RV32I builds the complete RV32I descriptor arena: the base integer
// instruction catalog, the x-register file with ABI aliases, and the
// pseudo-instruction table.
func RV32I() *ISA {
	instrs := []*Instruction{
		uType("lui", opLUI),
		uType("auipc", opAUIPC),

		newInstruction("jal",
			[]Operand{regOp("rd"), immOp("imm")},
			fixed("opcode", 6, 0, opJAL),
			reg("rd", 11, 7),
			imm("imm", 21, true, true,
				Slice{20, 20, 31}, Slice{10, 1, 21}, Slice{11, 11, 20}, Slice{19, 12, 12}),
		),
		iType("jalr", opJALR, 0b000),

		branchType("beq", 0b000),
		branchType("bne", 0b001),
		branchType("blt", 0b100),
		branchType("bge", 0b101),
		branchType("bltu", 0b110),
		branchType("bgeu", 0b111),

		loadType("lb", 0b000),
		loadType("lh", 0b001),
		loadType("lw", 0b010),
		loadType("lbu", 0b100),
		loadType("lhu", 0b101),

		storeType("sb", 0b000),
		storeType("sh", 0b001),
		storeType("sw", 0b010),

		iType("addi", opOPIMM, 0b000),
		iType("slti", opOPIMM, 0b010),
		iType("sltiu", opOPIMM, 0b011),
		iType("xori", opOPIMM, 0b100),
		iType("ori", opOPIMM, 0b110),
		iType("andi", opOPIMM, 0b111),
		shiftType("slli", 0b001, 0b0000000),
		shiftType("srli", 0b101, 0b0000000),
		shiftType("srai", 0b101, 0b0100000),

		rType("add", 0b000, 0b0000000),
		rType("sub", 0b000, 0b0100000),
		rType("sll", 0b001, 0b0000000),
		rType("slt", 0b010, 0b0000000),
		rType("sltu", 0b011, 0b0000000),
		rType("xor", 0b100, 0b0000000),
		rType("srl", 0b101, 0b0000000),
		rType("sra", 0b101, 0b0100000),
		rType("or", 0b110, 0b0000000),
		rType("and", 0b111, 0b0000000),

		systemType("ecall", 0),
		systemType("ebreak", 1),
	}

	regs := NewRegisterFile("x", 32, map[string]int{
		"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
		"t0": 5, "t1": 6, "t2": 7,
		"s0": 8, "fp": 8, "s1": 9,
		"a0": 10, "a1": 11, "a2": 12, "a3": 13,
		"a4": 14, "a5": 15, "a6": 16, "a7": 17,
		"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
		"s8": 24, "s9": 25, "s10": 26, "s11": 27,
		"t3": 28, "t4": 29, "t5": 30, "t6": 31,
	})

	bases := map[string]uint32{
		".text": TextBase,
		".data": DataBase,
		".bss":  BSSBase,
	}

	return NewISA("RV32I", instrs, regs, rv32iPseudos(), bases)
}

// ---------------------------------------------------------------------
// Pseudo-instructions
// ---------------------------------------------------------------------

// fixedExpand builds an expansion that substitutes operands into a
// static template. Template entries "$0".."$9" name the pseudo's
// operands.
func fixedExpand(template ...[]string) ExpandFunc {
	return func(args []string, eval EvalConst) ([][]string, error) {
		out := make([][]string, len(template))
		for i, line := range template {
			expanded := make([]string, len(line))
			for j, tok := range line {
				if len(tok) == 2 && tok[0] == '$' && tok[1] >= '0' && tok[1] <= '9' {
					expanded[j] = args[tok[1]-'0']
				} else {
					expanded[j] = tok
				}
			}
			out[i] = expanded
		}
		return out, nil
	}
}

func expandLI(args []string, eval EvalConst) ([][]string, error) {
	rd := args[0]
	v, err := eval(args[1])
	if err != nil {
		// Symbolic operand: addresses are not known yet, take the full
		// two-instruction form and let the encoder resolve the halves.
		return [][]string{
			{"lui", rd, "%hi(" + args[1] + ")"},
			{"addi", rd, rd, "%lo(" + args[1] + ")"},
		}, nil
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return nil, fmt.Errorf("li immediate %d does not fit in 32 bits", v)
	}
	if v >= -2048 && v <= 2047 {
		return [][]string{{"addi", rd, "x0", fmt.Sprintf("%d", v)}}, nil
	}
	u := uint32(v)
	lo := int64(int32(u<<20) >> 20) // sign-extended low 12 bits
	hi := (u - uint32(lo)) >> 12 & 0xFFFFF
	lines := [][]string{{"lui", rd, fmt.Sprintf("%d", hi)}}
	if lo != 0 {
		lines = append(lines, []string{"addi", rd, rd, fmt.Sprintf("%d", lo)})
	}
	return lines, nil
}

func expandLA(args []string, eval EvalConst) ([][]string, error) {
	rd := args[0]
	return [][]string{
		{"lui", rd, "%hi(" + args[1] + ")"},
		{"addi", rd, rd, "%lo(" + args[1] + ")"},
	}, nil
}

func rv32iPseudos() []*Pseudo {
	return []*Pseudo{
		{Name: "nop", Operands: 0, Expand: fixedExpand([]string{"addi", "x0", "x0", "0"})},
		{Name: "mv", Operands: 2, Expand: fixedExpand([]string{"addi", "$0", "$1", "0"})},
		{Name: "not", Operands: 2, Expand: fixedExpand([]string{"xori", "$0", "$1", "-1"})},
		{Name: "neg", Operands: 2, Expand: fixedExpand([]string{"sub", "$0", "x0", "$1"})},
		{Name: "seqz", Operands: 2, Expand: fixedExpand([]string{"sltiu", "$0", "$1", "1"})},
		{Name: "snez", Operands: 2, Expand: fixedExpand([]string{"sltu", "$0", "x0", "$1"})},
		{Name: "sltz", Operands: 2, Expand: fixedExpand([]string{"slt", "$0", "$1", "x0"})},
		{Name: "sgtz", Operands: 2, Expand: fixedExpand([]string{"slt", "$0", "x0", "$1"})},

		{Name: "beqz", Operands: 2, Expand: fixedExpand([]string{"beq", "$0", "x0", "$1"})},
		{Name: "bnez", Operands: 2, Expand: fixedExpand([]string{"bne", "$0", "x0", "$1"})},
		{Name: "blez", Operands: 2, Expand: fixedExpand([]string{"bge", "x0", "$0", "$1"})},
		{Name: "bgez", Operands: 2, Expand: fixedExpand([]string{"bge", "$0", "x0", "$1"})},
		{Name: "bltz", Operands: 2, Expand: fixedExpand([]string{"blt", "$0", "x0", "$1"})},
		{Name: "bgtz", Operands: 2, Expand: fixedExpand([]string{"blt", "x0", "$0", "$1"})},
		{Name: "bgt", Operands: 3, Expand: fixedExpand([]string{"blt", "$1", "$0", "$2"})},
		{Name: "ble", Operands: 3, Expand: fixedExpand([]string{"bge", "$1", "$0", "$2"})},
		{Name: "bgtu", Operands: 3, Expand: fixedExpand([]string{"bltu", "$1", "$0", "$2"})},
		{Name: "bleu", Operands: 3, Expand: fixedExpand([]string{"bgeu", "$1", "$0", "$2"})},

		{Name: "j", Operands: 1, Expand: fixedExpand([]string{"jal", "x0", "$0"})},
		{Name: "jal", Operands: 1, Expand: fixedExpand([]string{"jal", "x1", "$0"})},
		{Name: "jr", Operands: 1, Expand: fixedExpand([]string{"jalr", "x0", "$0", "0"})},
		{Name: "jalr", Operands: 1, Expand: fixedExpand([]string{"jalr", "x1", "$0", "0"})},
		{Name: "ret", Operands: 0, Expand: fixedExpand([]string{"jalr", "x0", "x1", "0"})},
		{Name: "call", Operands: 1, Expand: fixedExpand([]string{"jal", "x1", "$0"})},

		{Name: "li", Operands: 2, Expand: expandLI},
		{Name: "la", Operands: 2, Expand: expandLA},
	}
}
