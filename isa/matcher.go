// matcher.go - instruction word to descriptor matching

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later
*/

package isa

import (
	"fmt"
	"math/bits"
	"sort"
)

// ErrAmbiguousTable is wrapped by NewMatcher when two descriptors
// cannot be told apart by their fixed bits.
var ErrAmbiguousTable = fmt.Errorf("ambiguous instruction table")

// Matcher maps 32-bit instruction words back to their descriptors by
// fixed-bit mask and pattern. Descriptors are tried most-specific
// first (highest mask popcount), which keeps matching deterministic
// when one instruction's fixed bits are a superset of another's.
type Matcher struct {
	instrs []*Instruction
}

// NewMatcher builds a matcher over the given descriptors. Two
// descriptors with identical masks and identical patterns can never be
// distinguished; that is a construction error on the table, not a
// per-word error.
func NewMatcher(instrs []*Instruction) (*Matcher, error) {
	sorted := make([]*Instruction, len(instrs))
	copy(sorted, instrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bits.OnesCount32(sorted[i].Mask()) > bits.OnesCount32(sorted[j].Mask())
	})
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			if a.Mask() == b.Mask() && a.Pattern() == b.Pattern() {
				return nil, fmt.Errorf("%w: '%s' and '%s' share mask %08x pattern %08x",
					ErrAmbiguousTable, a.Name, b.Name, a.Mask(), a.Pattern())
			}
		}
	}
	return &Matcher{instrs: sorted}, nil
}

// Match returns the unique descriptor whose fixed bits match word.
func (m *Matcher) Match(word uint32) (*Instruction, error) {
	for _, in := range m.instrs {
		if word&in.Mask() == in.Pattern() {
			return in, nil
		}
	}
	return nil, fmt.Errorf("no instruction matches word %08x", word)
}
