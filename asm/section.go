// section.go - program image builder

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later
*/

package asm

import (
	"fmt"

	"github.com/intuitionamiga/rvasm/isa"
)

// Section is one named, contiguous byte region of the program image.
// The insertion cursor is implicit: bytes append at Base+len(data).
type Section struct {
	Name string
	Base uint32
	data []byte
}

// Bytes returns the section contents. Callers must treat the slice as
// read-only.
func (s *Section) Bytes() []byte { return s.data }

// Size returns the section length in bytes.
func (s *Section) Size() int { return len(s.data) }

// Address returns the current insertion address.
func (s *Section) Address() uint32 { return s.Base + uint32(len(s.data)) }

// Image is the assembled output: sections keyed by name plus the
// symbol map. Valid only when assembly reported no errors.
type Image struct {
	sections map[string]*Section
	order    []string
	symbols  map[string]uint32
	globals  map[string]bool
}

// Section returns the named section, or nil if the program never
// touched it. .text is the initial section and always exists.
func (im *Image) Section(name string) *Section { return im.sections[name] }

// Sections returns all sections in first-use order.
func (im *Image) Sections() []*Section {
	out := make([]*Section, len(im.order))
	for i, name := range im.order {
		out[i] = im.sections[name]
	}
	return out
}

// Symbols returns a copy of the symbol map.
func (im *Image) Symbols() map[string]uint32 {
	out := make(map[string]uint32, len(im.symbols))
	for k, v := range im.symbols {
		out[k] = v
	}
	return out
}

// Global reports whether a symbol was marked externally visible.
func (im *Image) Global(name string) bool { return im.globals[name] }

// builder owns the section table while the passes run. Switching away
// from a section and back resumes appending where the section left
// off.
type builder struct {
	img *Image
	isa *isa.ISA
	cur *Section
}

func newBuilder(descriptor *isa.ISA) *builder {
	b := &builder{
		img: &Image{
			sections: make(map[string]*Section),
			symbols:  make(map[string]uint32),
			globals:  make(map[string]bool),
		},
		isa: descriptor,
	}
	b.switchTo(".text")
	return b
}

// switchTo makes name the current section, creating it at its
// ISA-defined base address on first use.
func (b *builder) switchTo(name string) {
	if s, ok := b.img.sections[name]; ok {
		b.cur = s
		return
	}
	base, ok := b.isa.SectionBase(name)
	if !ok {
		base = 0
	}
	s := &Section{Name: name, Base: base}
	b.img.sections[name] = s
	b.img.order = append(b.img.order, name)
	b.cur = s
}

// addr returns the current insertion address.
func (b *builder) addr() uint32 { return b.cur.Address() }

// append emits bytes into the current section.
func (b *builder) append(data []byte) {
	b.cur.data = append(b.cur.data, data...)
}

// advance grows the current section with zero bytes. The layout pass
// uses it where the final byte values are not yet known.
func (b *builder) advance(n uint32) {
	b.cur.data = append(b.cur.data, make([]byte, n)...)
}

// alignPadding returns how many zero bytes pad the cursor to a
// multiple of 2^exp.
func (b *builder) alignPadding(exp int) uint32 {
	size := uint32(1) << uint(exp)
	return (size - b.addr()%size) % size
}

// bind records a symbol at the given address. Redefinition is an
// error.
func (b *builder) bind(name string, addr uint32) error {
	if _, exists := b.img.symbols[name]; exists {
		return fmt.Errorf("symbol '%s' is already defined", name)
	}
	b.img.symbols[name] = addr
	return nil
}

// markGlobal flags a symbol as externally visible. Purely advisory;
// encoding is unaffected.
func (b *builder) markGlobal(name string) {
	b.img.globals[name] = true
}
