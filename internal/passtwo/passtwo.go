/*
 * asm370 - Pass two: resolves symbol-dependent operands and externals.
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

// Package passtwo re-reads the same source a second time, re-tokenising
// each statement exactly as pass one did, and patches every
// symbol-dependent operand word now that the whole symbol table is
// known. It also builds the external-reference list and validates
// .entry directives.
package passtwo

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

// Run re-reads r line by line against the already-built res.Symbols,
// patching res.Code and appending to res.Externals. When mutate is
// false (pass one already reported an error for this file), symbol
// resolution and .entry validation still run and still report
// diagnostics, but the code image and external list are left
// untouched, per section 4.6.
func Run(r io.Reader, sink *diag.Sink, res *program.Result, mutate bool) {
	reader := lineio.NewReader(r)
	lineNum := 0
	cursor := 0
	for {
		line, err := reader.ReadLine()
		lineNum++
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, lineio.ErrLineTooLong) {
			continue
		}
		if lineio.IsComment(line) {
			continue
		}
		processLine(line, lineNum, sink, res, mutate, &cursor)
	}
}

func processLine(line string, lineNum int, sink *diag.Sink, res *program.Result, mutate bool, cursor *int) {
	stmt, ok, _ := opparse.ParseLine(line)
	if !ok {
		return
	}
	if stmt.IsDirective {
		processDirective(stmt, lineNum, sink, res, mutate)
		return
	}
	processInstruction(stmt, lineNum, sink, res, mutate, cursor)
}

func processDirective(stmt opparse.Statement, lineNum int, sink *diag.Sink, res *program.Result, mutate bool) {
	if core.ClassifyDirective(stmt.Key) != core.DirEntry {
		return
	}
	if stmt.HasLabel {
		sink.Warnf(lineNum, "label on .entry directive is ignored")
	}
	name, err := opparse.SplitOneOperand(stmt.Tokens)
	if err != nil {
		sink.Errorf(lineNum, "%s", err)
		return
	}
	if core.ValidateSymbolName(name) != core.SymbolOK {
		sink.Errorf(lineNum, "invalid symbol name %q", name)
		return
	}
	sym, found := res.Symbols.Lookup(name)
	if !found {
		sink.Errorf(lineNum, "unknown symbol %q in .entry", name)
		return
	}
	if sym.External {
		sink.Errorf(lineNum, "external symbol %q cannot be declared .entry", name)
		return
	}
	if mutate {
		res.Symbols.MarkEntry(name)
	}
}

func processInstruction(stmt opparse.Statement, lineNum int, sink *diag.Sink, res *program.Result, mutate bool, cursor *int) {
	inst, ok := core.FindInstruction(stmt.Key)
	if !ok {
		return
	}
	instrAddr := core.InitialLoadAddr + *cursor
	*cursor++

	switch inst.Operands {
	case 0:
		// no operand-extension words.
	case 1:
		tok, err := opparse.SplitOneOperand(stmt.Tokens)
		if err != nil {
			return
		}
		op, err := opparse.ClassifyOperand(tok, diag.ParseInt)
		if err != nil {
			return
		}
		resolveOperand(op, instrAddr, lineNum, sink, res, mutate, cursor)
	case 2:
		srcTok, dstTok, err := opparse.SplitTwoOperands(stmt.Tokens)
		if err != nil {
			return
		}
		srcOp, err := opparse.ClassifyOperand(srcTok, diag.ParseInt)
		if err != nil {
			return
		}
		dstOp, err := opparse.ClassifyOperand(dstTok, diag.ParseInt)
		if err != nil {
			return
		}
		resolveOperand(srcOp, instrAddr, lineNum, sink, res, mutate, cursor)
		resolveOperand(dstOp, instrAddr, lineNum, sink, res, mutate, cursor)
	}
}

// resolveOperand advances cursor past op's extension word, if any, and
// for a direct or relative operand patches that word now that op's
// symbol is resolvable.
func resolveOperand(op opparse.Operand, instrAddr, lineNum int, sink *diag.Sink, res *program.Result, mutate bool, cursor *int) {
	switch op.Mode {
	case core.ModeRegister:
		return
	case core.ModeImmediate:
		*cursor++
		return
	}

	wordIndex := *cursor
	*cursor++

	sym, found := res.Symbols.Lookup(op.Symbol)
	if !found {
		sink.Errorf(lineNum, "unknown symbol %q", op.Symbol)
		return
	}

	switch op.Mode {
	case core.ModeDirect:
		if mutate && wordIndex < res.Code.Len() {
			res.Code.Set(wordIndex, sym.Word)
		}
		if sym.External && mutate {
			res.Externals.Append(op.Symbol, core.InitialLoadAddr+wordIndex)
		}
	case core.ModeRelative:
		if sym.External {
			sink.Errorf(lineNum, "relative addressing of external symbol %q is not allowed", op.Symbol)
			return
		}
		if mutate && wordIndex < res.Code.Len() {
			var w word.Word
			w = w.SetField(core.FieldARE, core.WidthARE, core.AreAbsolute)
			w = w.SetField(core.PayloadStart, core.PayloadWidth, word.ToS21(sym.Address()-instrAddr))
			res.Code.Set(wordIndex, w)
		}
	}
}
