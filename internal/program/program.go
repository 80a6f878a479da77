/*
 * asm370 - Shared per-file assembly state threaded between both passes.
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

// Package program holds the symbol table, code image, data image and
// external-reference list built by pass one and refined by pass two -
// the state the two passes hand off through, rather than each other.
package program

import (
	"github.com/rcornwell/asm370/internal/symtab"
	"github.com/rcornwell/asm370/internal/word"
)

// Result is one source file's accumulated assembly state.
type Result struct {
	Symbols   *symtab.Table
	Code      word.Image
	Data      word.Image
	Externals word.ExternalRefs
}

// New returns an empty Result ready for pass one.
func New() *Result {
	return &Result{Symbols: symtab.New()}
}
