/*
 * asm370 - Pass one: builds the symbol table and the provisional images.
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

// Package passone walks a source file once, building the symbol table
// and a provisional code/data image. Operands that depend on a symbol
// address are encoded as zero placeholders; pass two fills them in.
package passone

import (
	"errors"
	"io"

	"github.com/rcornwell/asm370/internal/core"
	"github.com/rcornwell/asm370/internal/diag"
	"github.com/rcornwell/asm370/internal/lineio"
	"github.com/rcornwell/asm370/internal/opparse"
	"github.com/rcornwell/asm370/internal/program"
	"github.com/rcornwell/asm370/internal/word"
)

// Run reads every line from r, reporting diagnostics to sink, and
// populates res. After the last line it shifts every data symbol's
// address by the final code size plus core.InitialLoadAddr, per
// section 4.5's deferred data-base relocation.
func Run(r io.Reader, sink *diag.Sink, res *program.Result) {
	reader := lineio.NewReader(r)
	lineNum := 0
	for {
		line, err := reader.ReadLine()
		lineNum++
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, lineio.ErrLineTooLong) {
			sink.Errorf(lineNum, "line too long")
			continue
		}
		if lineio.IsComment(line) {
			continue
		}
		processLine(line, lineNum, sink, res)
	}
	res.Symbols.ShiftDataAddresses(res.Code.Len() + core.InitialLoadAddr)
}

func processLine(line string, lineNum int, sink *diag.Sink, res *program.Result) {
	stmt, ok, warnEmptyLabel := opparse.ParseLine(line)
	if !ok {
		if warnEmptyLabel {
			sink.Warnf(lineNum, "label with no statement")
		}
		return
	}
	if stmt.IsDirective {
		processDirective(stmt, lineNum, sink, res)
		return
	}
	processInstruction(stmt, lineNum, sink, res)
}

func processDirective(stmt opparse.Statement, lineNum int, sink *diag.Sink, res *program.Result) {
	switch core.ClassifyDirective(stmt.Key) {
	case core.DirData:
		if stmt.HasLabel {
			installDataSymbol(stmt.Label, lineNum, sink, res)
		}
		values, err := opparse.ParseDataList(stmt.Tokens, diag.ParseInt)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		for _, v := range values {
			res.Data.Append(word.FromSigned24(v))
		}

	case core.DirString:
		if stmt.HasLabel {
			installDataSymbol(stmt.Label, lineNum, sink, res)
		}
		body, ok := diag.ParseStringLiteral(stmt.Rest)
		if !ok {
			sink.Errorf(lineNum, "malformed string literal")
			return
		}
		for i := 0; i < len(body); i++ {
			res.Data.Append(word.CharToWord(body[i]))
		}
		res.Data.Append(word.CharToWord(0))

	case core.DirEntry:
		if stmt.HasLabel {
			sink.Warnf(lineNum, "label on .entry directive is ignored")
		}
		// Validated in pass two, once every symbol is known.

	case core.DirExtern:
		if stmt.HasLabel {
			sink.Warnf(lineNum, "label on .extern directive is ignored")
		}
		name, err := opparse.SplitOneOperand(stmt.Tokens)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		if core.ValidateSymbolName(name) != core.SymbolOK {
			sink.Errorf(lineNum, "invalid external symbol name %q", name)
			return
		}
		if !res.Symbols.Install(name, 0, true, false, false) {
			sink.Errorf(lineNum, "duplicate symbol %q", name)
		}

	default:
		sink.Errorf(lineNum, "unknown directive %q", "."+stmt.Key)
	}
}

func installDataSymbol(label string, lineNum int, sink *diag.Sink, res *program.Result) {
	if core.ValidateSymbolName(label) != core.SymbolOK {
		sink.Errorf(lineNum, "invalid symbol name %q", label)
		return
	}
	if !res.Symbols.Install(label, res.Data.Len(), false, false, true) {
		sink.Errorf(lineNum, "duplicate symbol %q", label)
	}
}

func processInstruction(stmt opparse.Statement, lineNum int, sink *diag.Sink, res *program.Result) {
	inst, ok := core.FindInstruction(stmt.Key)
	if !ok {
		sink.Errorf(lineNum, "unknown instruction %q", stmt.Key)
		return
	}
	if stmt.HasLabel {
		if core.ValidateSymbolName(stmt.Label) != core.SymbolOK {
			sink.Errorf(lineNum, "invalid symbol name %q", stmt.Label)
		} else if !res.Symbols.Install(stmt.Label, core.InitialLoadAddr+res.Code.Len(), false, false, false) {
			sink.Errorf(lineNum, "duplicate symbol %q", stmt.Label)
		}
	}

	var src, dst opparse.Operand
	var haveSrc, haveDst bool
	switch inst.Operands {
	case 0:
		if err := opparse.SplitNoOperands(stmt.Tokens); err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
	case 1:
		tok, err := opparse.SplitOneOperand(stmt.Tokens)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		op, err := opparse.ClassifyOperand(tok, diag.ParseInt)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		if !inst.DstModeAllowed(op.Mode) {
			sink.Errorf(lineNum, "addressing mode not allowed for %s", stmt.Key)
			return
		}
		dst, haveDst = op, true
	case 2:
		srcTok, dstTok, err := opparse.SplitTwoOperands(stmt.Tokens)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		srcOp, err := opparse.ClassifyOperand(srcTok, diag.ParseInt)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		dstOp, err := opparse.ClassifyOperand(dstTok, diag.ParseInt)
		if err != nil {
			sink.Errorf(lineNum, "%s", err)
			return
		}
		if !inst.SrcModeAllowed(srcOp.Mode) {
			sink.Errorf(lineNum, "addressing mode not allowed for source operand of %s", stmt.Key)
			return
		}
		if !inst.DstModeAllowed(dstOp.Mode) {
			sink.Errorf(lineNum, "addressing mode not allowed for destination operand of %s", stmt.Key)
			return
		}
		src, haveSrc = srcOp, true
		dst, haveDst = dstOp, true
	}

	var w word.Word
	w = w.SetField(core.FieldARE, core.WidthARE, core.AreAbsolute)
	w = w.SetField(core.FieldOPCODE, core.WidthOPCODE, inst.Opcode)
	w = w.SetField(core.FieldFUNCT, core.WidthFUNCT, inst.Funct)
	if haveSrc {
		w = w.SetField(core.FieldSRCADDR, core.WidthSRCADDR, src.Mode)
		if src.Mode == core.ModeRegister {
			w = w.SetField(core.FieldSRCREG, core.WidthSRCREG, src.Register)
		}
	}
	if haveDst {
		w = w.SetField(core.FieldDESTADDR, core.WidthDESTADDR, dst.Mode)
		if dst.Mode == core.ModeRegister {
			w = w.SetField(core.FieldDESTREG, core.WidthDESTREG, dst.Register)
		}
	}
	res.Code.Append(w)

	if haveSrc {
		appendExtensionWord(src, res)
	}
	if haveDst {
		appendExtensionWord(dst, res)
	}
}

// appendExtensionWord appends the operand-extension word for one
// non-register operand. Register operands need none: both register
// indices live in the instruction word itself (section 3's DEST_REG
// and SRC_REG fields), confirmed by the one-code-word, no-extension
// encoding of a two-register instruction in section 8's scenarios.
func appendExtensionWord(op opparse.Operand, res *program.Result) {
	switch op.Mode {
	case core.ModeRegister:
		return
	case core.ModeImmediate:
		var w word.Word
		w = w.SetField(core.FieldARE, core.WidthARE, core.AreAbsolute)
		w = w.SetField(core.PayloadStart, core.PayloadWidth, word.ToS21(op.Immediate))
		res.Code.Append(w)
	default: // direct, relative: placeholder, patched in pass two
		res.Code.Append(word.Word(0))
	}
}
