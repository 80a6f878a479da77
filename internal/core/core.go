/*
 * asm370 - Instruction table, addressing modes and bit-field layout.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package core holds the fixed, read-only shape of the source language:
// the instruction table, the addressing-mode encoding, the machine word's
// bit-field layout, and the validators that classify tokens as registers,
// directives, or symbol names.
package core

import "github.com/rcornwell/asm370/internal/diag"

// Addressing modes, 2-bit operand-level encoding.
const (
	ModeImmediate = 0 // #N
	ModeDirect    = 1 // symbol
	ModeRelative  = 2 // &symbol
	ModeRegister  = 3 // r0..r7
)

// ARE encoding class, occupies bits 0-2 of every machine word. Only
// relocatable and external symbol references need a distinguishable
// non-zero code; absolute (no relocation needed) is the zero value,
// confirmed by the worked "stop" and "mov r3, r5" encodings, whose
// low 3 bits are 0 despite being absolute-class words.
const (
	AreAbsolute  = 0 // A
	AreRelocated = 2 // R
	AreExternal  = 1 // E
)

// Bit-field layout: (start bit, width) pairs, per spec.md section 3.
const (
	FieldARE      = 0
	WidthARE      = 3
	FieldFUNCT    = 3
	WidthFUNCT    = 5
	FieldDESTREG  = 8
	WidthDESTREG  = 3
	FieldDESTADDR = 11
	WidthDESTADDR = 2
	FieldSRCREG   = 13
	WidthSRCREG   = 3
	FieldSRCADDR  = 16
	WidthSRCADDR  = 2
	FieldOPCODE   = 18
	WidthOPCODE   = 6
)

// InitialLoadAddr is the base address of the code image.
const InitialLoadAddr = 100

// PayloadStart/PayloadWidth locate the 21-bit non-ARE payload shared by
// operand-extension words and symbol replacement words: bits 3-23.
const (
	PayloadStart = 3
	PayloadWidth = 21
)

// MaxLineLength is the longest source line accepted, excluding the newline.
const MaxLineLength = 80

// MaxSymbolLength is the longest accepted symbol name.
const MaxSymbolLength = 31

// addrModeSet is a small bitset over the four addressing modes.
type addrModeSet uint8

func modes(m ...int) addrModeSet {
	var s addrModeSet
	for _, mm := range m {
		s |= 1 << uint(mm)
	}
	return s
}

func (s addrModeSet) allows(mode int) bool {
	return s&(1<<uint(mode)) != 0
}

// Instruction is the read-only descriptor for one mnemonic.
type Instruction struct {
	Opcode   int
	Funct    int
	Operands int // 0, 1 or 2
	SrcModes addrModeSet
	DstModes addrModeSet
}

// instTable is the fixed table from spec.md section 4.1.
var instTable = map[string]Instruction{
	"mov":  {Opcode: 0, Funct: 0, Operands: 2, SrcModes: modes(ModeImmediate, ModeDirect, ModeRegister), DstModes: modes(ModeDirect, ModeRegister)},
	"cmp":  {Opcode: 1, Funct: 0, Operands: 2, SrcModes: modes(ModeImmediate, ModeDirect, ModeRegister), DstModes: modes(ModeImmediate, ModeDirect, ModeRegister)},
	"add":  {Opcode: 2, Funct: 1, Operands: 2, SrcModes: modes(ModeImmediate, ModeDirect, ModeRegister), DstModes: modes(ModeDirect, ModeRegister)},
	"sub":  {Opcode: 2, Funct: 2, Operands: 2, SrcModes: modes(ModeImmediate, ModeDirect, ModeRegister), DstModes: modes(ModeDirect, ModeRegister)},
	"lea":  {Opcode: 4, Funct: 0, Operands: 2, SrcModes: modes(ModeDirect), DstModes: modes(ModeDirect, ModeRegister)},
	"clr":  {Opcode: 5, Funct: 1, Operands: 1, DstModes: modes(ModeDirect, ModeRegister)},
	"not":  {Opcode: 5, Funct: 2, Operands: 1, DstModes: modes(ModeDirect, ModeRegister)},
	"inc":  {Opcode: 5, Funct: 3, Operands: 1, DstModes: modes(ModeDirect, ModeRegister)},
	"dec":  {Opcode: 5, Funct: 4, Operands: 1, DstModes: modes(ModeDirect, ModeRegister)},
	"jmp":  {Opcode: 9, Funct: 1, Operands: 1, DstModes: modes(ModeDirect, ModeRelative)},
	"bne":  {Opcode: 9, Funct: 2, Operands: 1, DstModes: modes(ModeDirect, ModeRelative)},
	"jsr":  {Opcode: 9, Funct: 3, Operands: 1, DstModes: modes(ModeDirect, ModeRelative)},
	"red":  {Opcode: 12, Funct: 0, Operands: 1, DstModes: modes(ModeDirect, ModeRegister)},
	"prn":  {Opcode: 13, Funct: 0, Operands: 1, DstModes: modes(ModeImmediate, ModeDirect, ModeRegister)},
	"rts":  {Opcode: 14, Funct: 0, Operands: 0},
	"stop": {Opcode: 15, Funct: 0, Operands: 0},
}

// FindInstruction looks up a mnemonic. Lookup is case sensitive: the
// source language is lower case only, same as its directive names.
func FindInstruction(mnemonic string) (Instruction, bool) {
	inst, ok := instTable[mnemonic]
	return inst, ok
}

// SrcModeAllowed reports whether inst permits mode for its source operand.
func (inst Instruction) SrcModeAllowed(mode int) bool { return inst.SrcModes.allows(mode) }

// DstModeAllowed reports whether inst permits mode for its destination operand.
func (inst Instruction) DstModeAllowed(mode int) bool { return inst.DstModes.allows(mode) }

// Directive identifies one of the four recognised directives.
type Directive int

const (
	DirUnknown Directive = iota
	DirData
	DirString
	DirEntry
	DirExtern
)

// ClassifyDirective maps a directive name (without the leading '.') to
// its kind. Matching is an exact string comparison, not a prefix test.
func ClassifyDirective(name string) Directive {
	switch name {
	case "data":
		return DirData
	case "string":
		return DirString
	case "entry":
		return DirEntry
	case "extern":
		return DirExtern
	default:
		return DirUnknown
	}
}

// ClassifyRegister reports the register index for a token of the form
// "r" followed by a decimal register number in 0..7.
func ClassifyRegister(token string) (int, bool) {
	if len(token) < 2 || token[0] != 'r' {
		return 0, false
	}
	n, ok := diag.ParseUnsignedDigits(token[1:])
	if !ok || n > 7 {
		return 0, false
	}
	return n, true
}

// reservedWords are names a symbol may never collide with: every
// mnemonic, every directive, and every register name.
var reservedWords = func() map[string]bool {
	r := make(map[string]bool, len(instTable)+8)
	for name := range instTable {
		r[name] = true
	}
	for _, d := range []string{"data", "string", "entry", "extern"} {
		r[d] = true
	}
	for i := 0; i <= 7; i++ {
		r[string(rune('r'))+string(rune('0'+i))] = true
	}
	return r
}()

// SymbolNameError classifies why a candidate symbol name was rejected.
type SymbolNameError int

const (
	SymbolOK SymbolNameError = iota
	SymbolEmpty
	SymbolNotAlphaStart
	SymbolNotAlnumRest
	SymbolTooLong
	SymbolReserved
)

// ValidateSymbolName checks name against spec.md section 4.1's rules:
// starts with a letter, remaining characters alphanumeric, length at
// most MaxSymbolLength, and not a reserved word.
func ValidateSymbolName(name string) SymbolNameError {
	if name == "" {
		return SymbolEmpty
	}
	if len(name) > MaxSymbolLength {
		return SymbolTooLong
	}
	first := name[0]
	if !isLetter(first) {
		return SymbolNotAlphaStart
	}
	for i := 1; i < len(name); i++ {
		if !isLetter(name[i]) && !isDigit(name[i]) {
			return SymbolNotAlnumRest
		}
	}
	if reservedWords[name] {
		return SymbolReserved
	}
	return SymbolOK
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
