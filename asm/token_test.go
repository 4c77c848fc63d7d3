// token_test.go

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later
*/

package asm

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   \t ", nil},
		{"# just a comment", nil},
		{"addi a0 a0 123 # Hello world", []string{"addi", "a0", "a0", "123"}},
		{".word 1, 2, 3 ,4", []string{".word", "1", "2", "3", "4"}},
		{"B:nop", []string{"B:", "nop"}},
		{"A: B: addi a0, a0, -1", []string{"A:", "B:", "addi", "a0", "a0", "-1"}},
		{"A:", []string{"A:"}},
		{`.string "hello world!"`, []string{".string", `"hello world!"`}},
		{`.string "a # not a comment"`, []string{".string", `"a # not a comment"`}},
		{`.string "1*2+(3/foo)"`, []string{".string", `"1*2+(3/foo)"`}},
		{"lw x10, (4*3+123)(x10)", []string{"lw", "x10", "(4*3+123)(x10)"}},
		{"lw x10 (123 + (4* 3))(x10)", []string{"lw", "x10", "(123 + (4* 3))(x10)"}},
		{"sw x0, 24(sp) # tmp", []string{"sw", "x0", "24(sp)"}},
	}
	for _, c := range cases {
		got, err := tokenize(c.line)
		if err != nil {
			t.Errorf("tokenize(%q): %v", c.line, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("tokenize(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestTokenize_Errors(t *testing.T) {
	for _, line := range []string{
		`.string "unterminated`,
		"addi a0 a0 (a",
		"addi a0 a0 1)",
		"bad\x01char",
	} {
		if _, err := tokenize(line); err == nil {
			t.Errorf("tokenize(%q) succeeded, want error", line)
		}
	}
}

func TestSplitSymbols(t *testing.T) {
	labels, rest, err := splitSymbols([]string{"A:", "B:", "addi", "a0", "a0", "1"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(labels, []string{"A", "B"}) {
		t.Errorf("labels = %q", labels)
	}
	if !reflect.DeepEqual(rest, []string{"addi", "a0", "a0", "1"}) {
		t.Errorf("rest = %q", rest)
	}

	labels, rest, err = splitSymbols([]string{"nop"})
	if err != nil || len(labels) != 0 || len(rest) != 1 {
		t.Errorf("splitSymbols(nop) = %q, %q, %v", labels, rest, err)
	}

	if _, _, err := splitSymbols([]string{"ABC+:", "nop"}); err == nil {
		t.Error("label 'ABC+' accepted, want error")
	}
	if _, _, err := splitSymbols([]string{"9abc:", "nop"}); err == nil {
		t.Error("label '9abc' accepted, want error")
	}
}
