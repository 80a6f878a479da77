/*
 * asm370 - Orchestrates one source file through both passes and emission.
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

// Package assemble ties the line reader, both passes, and the emitter
// together into the single entry point the command line front end
// calls once per input base name.
package assemble

import (
	"os"

	"github.com/rcornwell/asm370/internal/diag"
	"github.com/rcornwell/asm370/internal/emit"
	"github.com/rcornwell/asm370/internal/passone"
	"github.com/rcornwell/asm370/internal/passtwo"
	"github.com/rcornwell/asm370/internal/program"
)

// Stats summarizes one file's assembly for the caller's exit-code and
// logging decisions.
type Stats struct {
	Errors   int
	Warnings int
}

// File assembles the source named base+".as", reporting diagnostics
// through sink, and on success writes base+".ob", and base+".ext" and
// base+".ent" if non-empty. If either pass reports an error, none of
// the three output files are written, but pass two still runs so that
// pass-two-only diagnostics are reported too.
func File(base string, sink *diag.Sink) (Stats, error) {
	sink.SetFile(base + ".as")
	sink.Reset()

	src, err := os.Open(base + ".as")
	if err != nil {
		return Stats{}, &emit.FatalError{Path: base + ".as", Err: err}
	}
	defer src.Close()

	res := program.New()
	passone.Run(src, sink, res)

	src2, err := os.Open(base + ".as")
	if err != nil {
		return Stats{}, &emit.FatalError{Path: base + ".as", Err: err}
	}
	defer src2.Close()

	mutate := !sink.HasErrors()
	passtwo.Run(src2, sink, res, mutate)

	stats := Stats{Errors: sink.ErrorCount(), Warnings: sink.WarningCount()}
	if sink.HasErrors() {
		return stats, nil
	}

	if err := writeOutputs(base, res); err != nil {
		return stats, err
	}
	return stats, nil
}

func writeOutputs(base string, res *program.Result) error {
	ob, err := os.Create(base + ".ob")
	if err != nil {
		return &emit.FatalError{Path: base + ".ob", Err: err}
	}
	defer ob.Close()
	if err := emit.WriteObject(ob, res); err != nil {
		return &emit.FatalError{Path: base + ".ob", Err: err}
	}

	if emit.HasExternals(res) {
		ext, err := os.Create(base + ".ext")
		if err != nil {
			return &emit.FatalError{Path: base + ".ext", Err: err}
		}
		defer ext.Close()
		if err := emit.WriteExternals(ext, res); err != nil {
			return &emit.FatalError{Path: base + ".ext", Err: err}
		}
	}

	if emit.HasEntries(res) {
		ent, err := os.Create(base + ".ent")
		if err != nil {
			return &emit.FatalError{Path: base + ".ent", Err: err}
		}
		defer ent.Close()
		if err := emit.WriteEntries(ent, res); err != nil {
			return &emit.FatalError{Path: base + ".ent", Err: err}
		}
	}
	return nil
}
