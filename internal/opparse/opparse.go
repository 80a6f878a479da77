/*
 * asm370 - Shared statement and operand parsing for both assembly passes.
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

// Package opparse splits one source line into a label, a key and an
// operand token list the same way in both passes, so pass two's
// re-tokenisation of a statement always matches pass one's.
package opparse

import (
	"errors"
	"strings"

	"github.com/rcornwell/asm370/internal/core"
	"github.com/rcornwell/asm370/internal/diag"
	"github.com/rcornwell/asm370/internal/lineio"
)

// Statement is the decoded shape of one non-blank, non-comment line.
type Statement struct {
	Label    string // without the trailing ':'
	HasLabel bool
	Key      string // directive name without '.' or instruction mnemonic, empty if label had no statement
	IsDirective bool
	Rest     string   // raw remainder of the line after Key, for .string
	Tokens   []string // lineio.Tokenize(Rest), for everything else
}

// SplitFirstToken splits leading whitespace-delimited token tok from s,
// returning it and the untouched remainder, mirroring the
// skip-whitespace-then-scan-to-whitespace idiom used throughout the
// source language's own tools.
func SplitFirstToken(s string) (tok, rest string) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	s = s[i:]
	j := 0
	for j < len(s) && !isSpace(s[j]) {
		j++
	}
	return s[:j], s[j:]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// ParseLine decodes line into a Statement. ok is false when the line is
// blank (possibly label-only) or the caller should otherwise advance to
// the next line without further processing; warnEmptyLabel reports that
// a label with no following statement was found, so callers can emit
// their own warning with the right line number.
func ParseLine(line string) (stmt Statement, ok bool, warnEmptyLabel bool) {
	if strings.TrimSpace(line) == "" {
		return Statement{}, false, false
	}
	tok, rest := SplitFirstToken(line)
	if strings.HasSuffix(tok, ":") {
		stmt.Label = tok[:len(tok)-1]
		stmt.HasLabel = true
		tok, rest = SplitFirstToken(rest)
	}
	if tok == "" {
		return Statement{}, false, stmt.HasLabel
	}
	if strings.HasPrefix(tok, ".") {
		stmt.IsDirective = true
		stmt.Key = tok[1:]
	} else {
		stmt.Key = tok
	}
	stmt.Rest = strings.TrimSpace(rest)
	stmt.Tokens = lineio.Tokenize(rest)
	return stmt, true, false
}

// Operand is one classified instruction operand.
type Operand struct {
	Mode      int // core.Mode*
	Symbol    string
	Immediate int
	Register  int
}

var (
	errEmptyOperand  = errors.New("empty operand")
	errBadImmediate  = errors.New("malformed immediate value")
	errBadSymbol     = errors.New("invalid symbol name")
)

// ClassifyOperand parses a single operand token: "#N" immediate,
// "&name" relative, "rN" register, or else a direct symbol reference.
func ClassifyOperand(tok string, parseInt func(string) (int, bool)) (Operand, error) {
	if tok == "" {
		return Operand{}, errEmptyOperand
	}
	switch tok[0] {
	case '#':
		v, ok := parseInt(tok[1:])
		if !ok {
			return Operand{}, errBadImmediate
		}
		return Operand{Mode: core.ModeImmediate, Immediate: v}, nil
	case '&':
		name := tok[1:]
		if core.ValidateSymbolName(name) != core.SymbolOK {
			return Operand{}, errBadSymbol
		}
		return Operand{Mode: core.ModeRelative, Symbol: name}, nil
	}
	if reg, ok := core.ClassifyRegister(tok); ok {
		return Operand{Mode: core.ModeRegister, Register: reg}, nil
	}
	if core.ValidateSymbolName(tok) != core.SymbolOK {
		return Operand{}, errBadSymbol
	}
	return Operand{Mode: core.ModeDirect, Symbol: tok}, nil
}

var (
	// ErrWantOneOperand etc. name the operand-count/shape mismatches
	// both passes report identically.
	ErrWantNoOperands  = errors.New("instruction takes no operands")
	ErrWantOneOperand  = errors.New("instruction takes exactly one operand")
	ErrWantTwoOperands = errors.New("instruction takes exactly two operands, separated by a comma")
)

// SplitNoOperands validates that tokens is empty.
func SplitNoOperands(tokens []string) error {
	if len(tokens) != 0 {
		return ErrWantNoOperands
	}
	return nil
}

// SplitOneOperand validates that tokens holds exactly one operand token.
func SplitOneOperand(tokens []string) (string, error) {
	if len(tokens) != 1 {
		return "", ErrWantOneOperand
	}
	return tokens[0], nil
}

// SplitTwoOperands validates that tokens holds exactly "src , dst".
func SplitTwoOperands(tokens []string) (src, dst string, err error) {
	if len(tokens) != 3 || !diag.ExpectComma(tokens[1]) {
		return "", "", ErrWantTwoOperands
	}
	return tokens[0], tokens[2], nil
}

// ParseDataList parses a comma-separated list of decimal integers, as
// used by a .data directive's operand list. It rejects an empty list,
// a leading or trailing comma, and adjacent commas with no value
// between them.
func ParseDataList(tokens []string, parseInt func(string) (int, bool)) ([]int, error) {
	if len(tokens) == 0 {
		return nil, errors.New("expected at least one value")
	}
	var values []int
	expectValue := true
	for _, tok := range tokens {
		if diag.ExpectComma(tok) {
			if expectValue {
				return nil, errors.New("multiple consecutive commas")
			}
			expectValue = true
			continue
		}
		if !expectValue {
			return nil, errors.New("missing comma between values")
		}
		v, ok := parseInt(tok)
		if !ok {
			return nil, errors.New("malformed integer")
		}
		values = append(values, v)
		expectValue = false
	}
	if expectValue {
		return nil, errors.New("trailing comma")
	}
	return values, nil
}
