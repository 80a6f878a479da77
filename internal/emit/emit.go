/*
 * asm370 - Formats and writes the .ob, .ext and .ent output files.
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

// Package emit formats the three per-file assembly outputs: the object
// image (.ob), the external-reference list (.ext) and the entry-symbol
// list (.ent).
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/rcornwell/asm370/internal/core"
	"github.com/rcornwell/asm370/internal/program"
	"github.com/rcornwell/asm370/internal/word"
)

// FatalError distinguishes a technical failure (cannot open, create or
// write a file) from a recoverable assembly error reported through
// diag.Sink. main.go maps it to its own process exit code, kept
// distinct from the "assembly reported errors" code.
type FatalError struct {
	Path string
	Err  error
}

func (e *FatalError) Error() string { return fmt.Sprintf("%s: %s", e.Path, e.Err) }

func (e *FatalError) Unwrap() error { return e.Err }

// WriteObject writes the header line (code word count, data word
// count), one line per code word, a blank separator line, then one
// line per data word. Each payload line is a 7-digit decimal address,
// a space, and a 6-digit lowercase-hex word. The data image is
// addressed immediately after the code image. Records are joined by
// "\n" with no terminator after the final line.
func WriteObject(w io.Writer, res *program.Result) error {
	lines := make([]string, 0, res.Code.Len()+res.Data.Len()+2)
	lines = append(lines, fmt.Sprintf("%d %d", res.Code.Len(), res.Data.Len()))
	addr := core.InitialLoadAddr
	for _, cw := range res.Code.All() {
		lines = append(lines, formatWordLine(addr, cw))
		addr++
	}
	lines = append(lines, "")
	for _, dw := range res.Data.All() {
		lines = append(lines, formatWordLine(addr, dw))
		addr++
	}
	return writeLines(w, lines)
}

func formatWordLine(addr int, w word.Word) string {
	return fmt.Sprintf("%s %s", word.FormatAddressDecimal(addr), word.FormatWordHex(w))
}

// writeLines joins lines with "\n" and writes them with no trailing
// newline after the final line, per section 4.7's record-separator
// (not terminator) convention.
func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// HasExternals reports whether any external reference was recorded, so
// the caller can skip creating an empty .ext file.
func HasExternals(res *program.Result) bool {
	return len(res.Externals.All()) > 0
}

// WriteExternals writes one "name address" line per external-symbol
// occurrence, in source-appearance order.
func WriteExternals(w io.Writer, res *program.Result) error {
	refs := res.Externals.All()
	lines := make([]string, 0, len(refs))
	for _, ref := range refs {
		lines = append(lines, fmt.Sprintf("%s %s", ref.Name, word.FormatAddressDecimal(ref.Address)))
	}
	return writeLines(w, lines)
}

// HasEntries reports whether any symbol was marked .entry, so the
// caller can skip creating an empty .ent file.
func HasEntries(res *program.Result) bool {
	for _, name := range res.Symbols.DeclOrder() {
		if sym, ok := res.Symbols.Lookup(name); ok && sym.Entry {
			return true
		}
	}
	return false
}

// WriteEntries writes one "name address" line per entry symbol, in
// declaration order.
func WriteEntries(w io.Writer, res *program.Result) error {
	var lines []string
	for _, name := range res.Symbols.DeclOrder() {
		sym, ok := res.Symbols.Lookup(name)
		if !ok || !sym.Entry {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", name, word.FormatAddressDecimal(sym.Address())))
	}
	return writeLines(w, lines)
}
