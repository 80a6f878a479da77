/*
 * asm370 - Diagnostic sink and input validators.
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

// Package diag is the assembler's diagnostic sink - a sticky
// current-file name plus formatted error/warning lines - and the
// small validators that classify commas, numeric literals and string
// literals. End-of-line (extraneous token) checks live in opparse's
// Split* functions, not here.
package diag

import (
	"fmt"
	"io"
)

// Sink accumulates and reports assembly diagnostics for one input
// file at a time. The current file name is sticky: callers set it
// once per file and every subsequent Errorf/Warnf uses it, following
// the source's "process-wide current file name" state (spec section
// 4, L4) without actually being process-wide here - one Sink per run.
type Sink struct {
	out         io.Writer
	currentFile string
	errors      int
	warnings    int
}

// New creates a Sink writing formatted diagnostics to out.
func New(out io.Writer) *Sink {
	return &Sink{out: out}
}

// SetFile sets the sticky current file name for subsequent diagnostics.
func (s *Sink) SetFile(name string) {
	s.currentFile = name
}

// Errorf records and writes one assembly error at line.
func (s *Sink) Errorf(line int, format string, args ...any) {
	s.errors++
	fmt.Fprintf(s.out, "%s:%d: error: %s\n", s.currentFile, line, fmt.Sprintf(format, args...))
}

// Warnf records and writes one assembly warning at line. Warnings do
// not suppress output file emission.
func (s *Sink) Warnf(line int, format string, args ...any) {
	s.warnings++
	fmt.Fprintf(s.out, "%s:%d: warning: %s\n", s.currentFile, line, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error has been recorded so far.
func (s *Sink) HasErrors() bool { return s.errors > 0 }

// ErrorCount and WarningCount report the running totals.
func (s *Sink) ErrorCount() int   { return s.errors }
func (s *Sink) WarningCount() int { return s.warnings }

// Reset clears accumulated counts before assembling the next file.
// The current file name is left for the caller to set explicitly.
func (s *Sink) Reset() {
	s.errors = 0
	s.warnings = 0
}

// ExpectComma reports whether tok is the single-character comma token.
func ExpectComma(tok string) bool {
	return tok == ","
}

// ParseInt parses a decimal integer with an optional leading sign,
// same grammar as a .data literal or an immediate operand's digits.
// It rejects empty strings and any non-digit trailing characters.
func ParseInt(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	neg := false
	i := 0
	switch tok[0] {
	case '+':
		i = 1
	case '-':
		neg = true
		i = 1
	}
	if i == len(tok) {
		return 0, false
	}
	value := 0
	for ; i < len(tok); i++ {
		c := tok[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		value = value*10 + int(c-'0')
	}
	if neg {
		value = -value
	}
	return value, true
}

// ParseUnsignedDigits parses a run of decimal digits with no sign,
// used for register indices. It does no range check; the caller
// bounds-checks the result.
func ParseUnsignedDigits(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	value := 0
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		value = value*10 + int(c-'0')
	}
	return value, true
}

// ParseStringLiteral validates and unquotes a .string operand: the
// trimmed remainder of the line must begin and end with a double
// quote, and every character between the quotes must be printable
// (7-bit, space through tilde).
func ParseStringLiteral(remainder string) (string, bool) {
	if len(remainder) < 2 || remainder[0] != '"' || remainder[len(remainder)-1] != '"' {
		return "", false
	}
	body := remainder[1 : len(remainder)-1]
	for i := 0; i < len(body); i++ {
		if !isPrintable(body[i]) {
			return "", false
		}
	}
	return body, true
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}
