/*
 * asm370 - Fixed-width machine word with typed bit-field access.
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

// Package word implements the 24-bit machine word, its bit-field
// accessors, the ordered image of words that makes up the code and
// data segments, and the ordered list of external-symbol references.
package word

import "strings"

var hexDigit = "0123456789abcdef"

// Word is a 24-bit unsigned value stored in a wider signed integer;
// bits above bit 23 are ignored everywhere except by Go's own int32
// arithmetic rules, and are masked off before being emitted.
type Word int32

// Mask returns the bitmask covering width bits starting at bit start.
func Mask(start, width int) uint32 {
	return ((uint32(1) << uint(width)) - 1) << uint(start)
}

// Field extracts an unsigned width-bit field starting at bit start.
func (w Word) Field(start, width int) int {
	return int((uint32(w) & Mask(start, width)) >> uint(start))
}

// SetField clears the width-bit field at bit start and ORs in value,
// truncated (with two's-complement wraparound for negative values) to
// fit. This mirrors the mask-then-OR write used throughout the
// source's memory layer for packing sub-word fields.
func (w Word) SetField(start, width, value int) Word {
	mask := Mask(start, width)
	cleared := uint32(w) &^ mask
	shifted := (uint32(value) << uint(start)) & mask
	return Word(cleared | shifted)
}

// ToS21 truncates x to a signed 21-bit two's-complement representative.
func ToS21(x int) int { return toSigned(x, 21) }

// ToS24 truncates x to a signed 24-bit two's-complement representative.
func ToS24(x int) int { return toSigned(x, 24) }

func toSigned(x, bits int) int {
	mask := (1 << uint(bits)) - 1
	v := x & mask
	if v&(1<<uint(bits-1)) != 0 {
		v -= 1 << uint(bits)
	}
	return v
}

// CharToWord casts the unsigned byte value of c into a data-image word.
func CharToWord(c byte) Word { return Word(c) }

// FromSigned24 builds a data-image word (a .data literal) holding x
// truncated to 24 signed bits, occupying the
// entire word rather than sharing space with an ARE field.
func FromSigned24(x int) Word {
	return Word(uint32(ToS24(x)) & uint32(Mask(0, 24)))
}

// FormatWordHex renders w as exactly 6 lowercase hex digits.
func FormatWordHex(w Word) string {
	v := uint32(w) & uint32(Mask(0, 24))
	var b strings.Builder
	shift := 20
	for range 6 {
		b.WriteByte(hexDigit[(v>>uint(shift))&0xf])
		shift -= 4
	}
	return b.String()
}

// FormatAddressDecimal renders addr as exactly 7 decimal digits,
// zero-padded; addresses too large to fit have their high digits
// truncated rather than the field widening.
func FormatAddressDecimal(addr int) string {
	const modulus = 10000000
	v := addr % modulus
	if v < 0 {
		v += modulus
	}
	digits := [7]byte{}
	for i := 6; i >= 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[:])
}

// Image is an ordered, append-only sequence of machine words, used for
// both the code image and the data image.
type Image struct {
	words []Word
}

// Append adds w to the tail of the image and returns its index.
func (im *Image) Append(w Word) int {
	im.words = append(im.words, w)
	return len(im.words) - 1
}

// Len reports the number of words currently in the image.
func (im *Image) Len() int { return len(im.words) }

// At returns the word at index i.
func (im *Image) At(i int) Word { return im.words[i] }

// Set overwrites the word at index i, used by pass two to patch a
// placeholder left by pass one.
func (im *Image) Set(i int, w Word) { im.words[i] = w }

// All returns the words in append order, for emission.
func (im *Image) All() []Word { return im.words }

// ExternalRef is one textual appearance of an external symbol as a
// direct operand.
type ExternalRef struct {
	Name    string
	Address int
}

// ExternalRefs is the ordered, append-only list of external-reference
// occurrences, one per appearance in source order.
type ExternalRefs struct {
	refs []ExternalRef
}

// Append records one occurrence at the tail, preserving source order.
func (e *ExternalRefs) Append(name string, address int) {
	e.refs = append(e.refs, ExternalRef{Name: name, Address: address})
}

// All returns the recorded occurrences in source-appearance order.
func (e *ExternalRefs) All() []ExternalRef { return e.refs }
