// directive.go - assembler directives

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later
*/

package asm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Directive catalog. Data directives never auto-align: a .word after a
// .byte lands on the odd cursor unless the user writes .align first.
//
//	.text / .data / .bss    switch section, no arguments
//	.word expr...           4-byte little-endian values
//	.half expr...           2-byte little-endian values
//	.byte expr...           1-byte values
//	.string / .asciz "s"... strings, each NUL-terminated
//	.ascii "s"...           strings without NUL
//	.zero count             count zero bytes
//	.align exp              pad to a multiple of 2^exp with zeroes
//	.globl / .global sym    mark sym externally visible (advisory)
type directive struct {
	minArgs int
	maxArgs int // -1 = unbounded
	apply   func(b *builder, args []string, emit bool, syms map[string]uint32) error
}

var directives = map[string]*directive{
	".text": sectionSwitch(".text"),
	".data": sectionSwitch(".data"),
	".bss":  sectionSwitch(".bss"),

	".word": {1, -1, emitInts(4)},
	".half": {1, -1, emitInts(2)},
	".byte": {1, -1, emitInts(1)},

	".string": {1, -1, emitStrings(true)},
	".asciz":  {1, -1, emitStrings(true)},
	".ascii":  {1, -1, emitStrings(false)},

	".zero": {1, 1, applyZero},

	".align": {1, 1, applyAlign},

	".globl":  {1, 1, applyGlobl},
	".global": {1, 1, applyGlobl},
}

// lookupDirective resolves a directive token, reporting unknown names
// and argument arity mistakes.
func lookupDirective(name string, argc int) (*directive, error) {
	d, ok := directives[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown directive '%s'", name)
	}
	if argc < d.minArgs {
		return nil, fmt.Errorf("directive '%s' expects at least %d argument(s), got %d", name, d.minArgs, argc)
	}
	if d.maxArgs >= 0 && argc > d.maxArgs {
		if d.maxArgs == 0 {
			return nil, fmt.Errorf("directive '%s' takes no arguments", name)
		}
		return nil, fmt.Errorf("directive '%s' expects at most %d argument(s), got %d", name, d.maxArgs, argc)
	}
	return d, nil
}

func sectionSwitch(name string) *directive {
	return &directive{0, 0, func(b *builder, args []string, emit bool, syms map[string]uint32) error {
		b.switchTo(name)
		return nil
	}}
}

// emitInts emits one little-endian value of the given width per
// argument. During layout only the cursor advances; expressions are
// evaluated once the symbol map is complete.
func emitInts(width int) func(*builder, []string, bool, map[string]uint32) error {
	return func(b *builder, args []string, emit bool, syms map[string]uint32) error {
		if !emit {
			b.advance(uint32(width * len(args)))
			return nil
		}
		buf := make([]byte, width)
		for _, arg := range args {
			v, err := evalExpr(arg, syms)
			if err != nil {
				return err
			}
			switch width {
			case 4:
				binary.LittleEndian.PutUint32(buf, uint32(v))
			case 2:
				binary.LittleEndian.PutUint16(buf, uint16(v))
			default:
				buf[0] = byte(v)
			}
			b.append(buf)
		}
		return nil
	}
}

// emitStrings emits each string literal's bytes verbatim, optionally
// NUL-terminated.
func emitStrings(nullTerminate bool) func(*builder, []string, bool, map[string]uint32) error {
	return func(b *builder, args []string, emit bool, syms map[string]uint32) error {
		for _, arg := range args {
			if !isStringLiteral(arg) {
				return fmt.Errorf("expected string literal, got '%s'", arg)
			}
			body := []byte(stringBody(arg))
			if nullTerminate {
				body = append(body, 0)
			}
			if emit {
				b.append(body)
			} else {
				b.advance(uint32(len(body)))
			}
		}
		return nil
	}
}

func applyZero(b *builder, args []string, emit bool, syms map[string]uint32) error {
	n, err := evalExpr(args[0], nil)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf(".zero count must be non-negative, got %d", n)
	}
	b.advance(uint32(n))
	return nil
}

func applyAlign(b *builder, args []string, emit bool, syms map[string]uint32) error {
	exp, err := evalExpr(args[0], nil)
	if err != nil {
		return err
	}
	if exp < 0 || exp > 30 {
		return fmt.Errorf(".align exponent %d out of range [0, 30]", exp)
	}
	b.advance(b.alignPadding(int(exp)))
	return nil
}

func applyGlobl(b *builder, args []string, emit bool, syms map[string]uint32) error {
	if !validSymbolName(args[0]) {
		return fmt.Errorf("invalid symbol name '%s'", args[0])
	}
	b.markGlobal(args[0])
	return nil
}
