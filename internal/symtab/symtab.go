/*
 * asm370 - Symbol table.
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

// Package symtab is the symbol table: name to address plus external,
// entry and data flags, with duplicate-install detection and a bulk
// shift of data-symbol addresses.
package symtab

import (
	"github.com/rcornwell/asm370/internal/core"
	"github.com/rcornwell/asm370/internal/word"
)

// Symbol is a named address plus its flags. The Word field is the
// replacement word used at every use site: ARE class plus address in
// the non-ARE payload bits.
type Symbol struct {
	Name     string
	Word     word.Word
	External bool
	Entry    bool
	Data     bool
}

// Address returns the symbol's current address, read from its
// replacement word's non-ARE payload bits.
func (s *Symbol) Address() int {
	return s.Word.Field(core.PayloadStart, core.PayloadWidth)
}

func replacementWord(address int, isExternal bool) word.Word {
	are := core.AreRelocated
	if isExternal {
		are = core.AreExternal
	}
	var w word.Word
	w = w.SetField(core.FieldARE, core.WidthARE, are)
	w = w.SetField(core.PayloadStart, core.PayloadWidth, address)
	return w
}

// Table is the mapping from symbol name to Symbol. The table also
// records declaration order separately from the map, since Go map
// iteration order is not the source's declaration order and the
// entries file must be emitted in declaration order (spec section 9).
type Table struct {
	symbols map[string]*Symbol
	order   []string
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Install adds a symbol. It fails with ok=false if a symbol with this
// name already exists, regardless of the existing symbol's flags -
// this is what turns a later label on an already-.extern'd name into
// a duplicate-symbol error.
func (t *Table) Install(name string, address int, isExternal, isEntry, isData bool) (ok bool) {
	if _, exists := t.symbols[name]; exists {
		return false
	}
	t.symbols[name] = &Symbol{
		Name:     name,
		Word:     replacementWord(address, isExternal),
		External: isExternal,
		Entry:    isEntry,
		Data:     isData,
	}
	t.order = append(t.order, name)
	return true
}

// Lookup returns the symbol named name, if any.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// MarkEntry sets the entry flag on an existing, already-installed
// symbol. Returns false if the symbol does not exist.
func (t *Table) MarkEntry(name string) bool {
	s, ok := t.symbols[name]
	if !ok {
		return false
	}
	s.Entry = true
	return true
}

// ShiftDataAddresses adds delta to the payload address of every
// data-flagged symbol, preserving each symbol's ARE class. Called
// once, after pass one, with delta equal to the final code-image size
// plus the initial load address.
func (t *Table) ShiftDataAddresses(delta int) {
	for _, s := range t.symbols {
		if !s.Data {
			continue
		}
		are := s.Word.Field(core.FieldARE, core.WidthARE)
		newAddr := s.Address() + delta
		var w word.Word
		w = w.SetField(core.FieldARE, core.WidthARE, are)
		w = w.SetField(core.PayloadStart, core.PayloadWidth, newAddr)
		s.Word = w
	}
}

// DeclOrder returns symbol names in the order they were first
// installed, i.e. source-declaration order.
func (t *Table) DeclOrder() []string {
	return t.order
}
