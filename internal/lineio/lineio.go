/*
 * asm370 - Line reader and tokeniser.
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

// Package lineio reads source lines with a length cap and splits them
// into whitespace/comma-delimited tokens.
package lineio

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/rcornwell/asm370/internal/core"
)

// ErrLineTooLong is returned by Reader.ReadLine when a line exceeds
// core.MaxLineLength characters. The remainder of that physical line,
// up to the next newline, has already been discarded.
var ErrLineTooLong = errors.New("line too long")

// Reader reads length-capped lines from an underlying byte stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r for line-at-a-time reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line, without its terminating newline. It
// returns io.EOF once the stream is exhausted, or ErrLineTooLong if
// the line's length (excluding the newline) exceeds
// core.MaxLineLength; in the latter case the line is not usable and
// should be skipped by the caller.
func (r *Reader) ReadLine() (string, error) {
	var buf []byte
	tooLong := false
	sawByte := false
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		sawByte = true
		if b == '\n' {
			break
		}
		if len(buf) < core.MaxLineLength {
			buf = append(buf, b)
		} else {
			tooLong = true
		}
	}
	if !sawByte {
		return "", io.EOF
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return string(buf), nil
}

// IsComment reports whether line is a comment line. Per the source
// language's original implementation, this tests only the raw first
// character, not the first non-whitespace character - a line of
// "   ; x" is therefore NOT a comment.
func IsComment(line string) bool {
	return len(line) > 0 && line[0] == ';'
}

// Tokenize splits line on whitespace, treating a comma as its own
// single-character token even when it abuts adjacent text.
func Tokenize(line string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			flush()
		case c == ',':
			flush()
			tokens = append(tokens, ",")
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens
}
