// main.go - rvasm command line front end

/*
rvasm — RISC-V (RV32I) multi-pass assembler
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/rvasm
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/intuitionamiga/rvasm/asm"
	"github.com/intuitionamiga/rvasm/isa"
)

type cliArgs struct {
	Asm cliAsmCmd `cmd:"" help:"Assemble a RISC-V source file."`
	Dis cliDisCmd `cmd:"" help:"Disassemble a flat binary as RV32I words."`
}

type cliAsmCmd struct {
	Path string `arg:"" help:"Path to assembly source file."`
	Out  string `short:"o" help:"Output file for the .text image (default: source with .bin extension)."`
	Data string `name:"data" help:"Optional output file for the .data image."`
	List bool   `short:"l" name:"list" help:"Print a section and symbol listing instead of writing files."`
}

type cliDisCmd struct {
	Path string `arg:"" help:"Path to flat binary."`
	Base uint32 `name:"base" default:"0" help:"Address of the first word."`
}

func main() {
	var args cliArgs
	ctx := kong.Parse(&args,
		kong.Name("rvasm"),
		kong.Description("RISC-V (RV32I) assembler and disassembler."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorize("error:", "\x1b[31m"), err)
		os.Exit(1)
	}
}

// colorize wraps s in an ANSI color when stderr is a terminal.
func colorize(s, color string) string {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return s
	}
	return color + s + "\x1b[0m"
}

func (c *cliAsmCmd) Run() error {
	source, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	assembler := asm.New(isa.RV32I())
	img, errs := assembler.Assemble(string(source))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s %s\n",
				colorize(fmt.Sprintf("%s:%d:", c.Path, e.Line), "\x1b[31m"), e.Message)
		}
		return fmt.Errorf("%d error(s)", len(errs))
	}

	if c.List {
		printListing(img)
		return nil
	}

	outPath := c.Out
	if outPath == "" {
		outPath = strings.TrimSuffix(c.Path, ".s") + ".bin"
	}
	text := img.Section(".text")
	if err := os.WriteFile(outPath, text.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Printf("%s: %d bytes\n", outPath, text.Size())

	if c.Data != "" {
		data := img.Section(".data")
		var payload []byte
		if data != nil {
			payload = data.Bytes()
		}
		if err := os.WriteFile(c.Data, payload, 0644); err != nil {
			return err
		}
		fmt.Printf("%s: %d bytes\n", c.Data, len(payload))
	}
	return nil
}

// printListing dumps each section as addressed hex rows, then the
// symbol map.
func printListing(img *asm.Image) {
	for _, section := range img.Sections() {
		fmt.Printf("%s @ %08X (%d bytes)\n", section.Name, section.Base, section.Size())
		data := section.Bytes()
		for off := 0; off < len(data); off += 16 {
			end := off + 16
			if end > len(data) {
				end = len(data)
			}
			hex := ""
			for i, b := range data[off:end] {
				if i > 0 {
					hex += " "
				}
				hex += fmt.Sprintf("%02X", b)
			}
			fmt.Printf("%08X  %s\n", section.Base+uint32(off), hex)
		}
	}
	symbols := img.Symbols()
	if len(symbols) > 0 {
		names := make([]string, 0, len(symbols))
		for name := range symbols {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("symbols:")
		for _, name := range names {
			marker := " "
			if img.Global(name) {
				marker = "g"
			}
			fmt.Printf("%08X %s %s\n", symbols[name], marker, name)
		}
	}
}

func (c *cliDisCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	descriptor := isa.RV32I()
	matcher, err := isa.NewMatcher(descriptor.Instructions)
	if err != nil {
		return err
	}
	for off := 0; off+4 <= len(data); off += 4 {
		pc := c.Base + uint32(off)
		word := binary.LittleEndian.Uint32(data[off : off+4])
		in, err := matcher.Match(word)
		if err != nil {
			fmt.Printf("%08X  %08X  .word 0x%08x\n", pc, word, word)
			continue
		}
		tokens := in.Disassemble(word, pc, descriptor.Regs)
		line := tokens[0]
		if len(tokens) > 1 {
			line += " " + strings.Join(tokens[1:], ", ")
		}
		fmt.Printf("%08X  %08X  %s\n", pc, word, line)
	}
	if rem := len(data) % 4; rem != 0 {
		fmt.Fprintf(os.Stderr, "warning: %d trailing byte(s) ignored\n", rem)
	}
	return nil
}
