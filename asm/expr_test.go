// expr_test.go

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later
*/

package asm

import "testing"

func TestExpr_Literals(t *testing.T) {
	cases := map[string]int64{
		"0":          0,
		"42":         42,
		"-1":         -1,
		"0x10":       16,
		"0XFF":       255,
		"0b101":      5,
		"0123":       83,
		"2047":       2047,
		"0xabcdabcd": 0xabcdabcd,
	}
	for expr, want := range cases {
		got, err := evalExpr(expr, nil)
		if err != nil {
			t.Errorf("evalExpr(%q): %v", expr, err)
			continue
		}
		if got != want {
			t.Errorf("evalExpr(%q) = %d, want %d", expr, got, want)
		}
	}
}

func TestExpr_Arithmetic(t *testing.T) {
	cases := map[string]int64{
		"1+2":            3,
		"2+3*4":          14,
		"(2+3)*4":        20,
		"4*3+123":        135,
		"(123 + (4* 3))": 135,
		"10/3":           3,
		"-2*3":           -6,
		"- -5":           5,
		"+7":             7,
		"1 - 2 - 3":      -4,
	}
	for expr, want := range cases {
		got, err := evalExpr(expr, nil)
		if err != nil {
			t.Errorf("evalExpr(%q): %v", expr, err)
			continue
		}
		if got != want {
			t.Errorf("evalExpr(%q) = %d, want %d", expr, got, want)
		}
	}
}

func TestExpr_Symbols(t *testing.T) {
	symbols := map[string]uint32{"start": 0x100, "data_end": 0x10000010}
	got, err := evalExpr("start+8", symbols)
	if err != nil || got != 0x108 {
		t.Errorf("start+8 = %d (%v), want %d", got, err, 0x108)
	}
	if _, err := evalExpr("missing", symbols); err == nil {
		t.Error("undefined symbol accepted")
	}
	if _, err := evalExpr("start", nil); err == nil {
		t.Error("symbol accepted where only constants are allowed")
	}
}

func TestExpr_AddressHalves(t *testing.T) {
	// (hi << 12) + signextend(lo) must reconstruct the value.
	for _, v := range []uint32{0x12345678, 0x00000FFF, 0xFFFFF800, 0x80000000, 0} {
		symbols := map[string]uint32{"sym": v}
		hi, err := evalExpr("%hi(sym)", symbols)
		if err != nil {
			t.Fatalf("%%hi(0x%08x): %v", v, err)
		}
		lo, err := evalExpr("%lo(sym)", symbols)
		if err != nil {
			t.Fatalf("%%lo(0x%08x): %v", v, err)
		}
		if got := uint32(hi<<12) + uint32(lo); got != v {
			t.Errorf("hi/lo of 0x%08x reconstructs 0x%08x", v, got)
		}
		if hi < 0 || hi > 0xFFFFF {
			t.Errorf("%%hi(0x%08x) = %d outside 20-bit range", v, hi)
		}
		if lo < -2048 || lo > 2047 {
			t.Errorf("%%lo(0x%08x) = %d outside 12-bit range", v, lo)
		}
	}
}

func TestExpr_Errors(t *testing.T) {
	for _, expr := range []string{
		"",
		"0q1234",
		"08",
		"0xzz",
		"0b2",
		"1/0",
		"(1",
		"1)",
		"1+",
		"%hi sym",
		"%mid(1)",
		"2 3",
	} {
		if _, err := evalExpr(expr, map[string]uint32{"sym": 0}); err == nil {
			t.Errorf("evalExpr(%q) succeeded, want error", expr)
		}
	}
}
