/*
 * asm370 - Main process.
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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/asm370/internal/assemble"
	"github.com/rcornwell/asm370/internal/diag"
	"github.com/rcornwell/asm370/internal/emit"
	"github.com/rcornwell/asm370/internal/oplog"
)

// Process exit codes, kept as distinct values per category rather than
// one generic failure code.
const (
	exitOK             = 0
	exitAssemblyErrors = 1
	exitFatal          = 2
)

var Logger *slog.Logger

func main() {
	optVerbose := getopt.BoolLong("verbose", 'v', "Verbose operational logging")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(exitOK)
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if *optVerbose {
		level.Set(slog.LevelDebug)
	}
	Logger = slog.New(oplog.NewHandler(nil, &slog.HandlerOptions{Level: level}, *optVerbose))
	slog.SetDefault(Logger)

	bases := getopt.Args()
	if len(bases) == 0 {
		fmt.Fprintln(os.Stderr, "asm370: no input files")
		os.Exit(exitOK)
	}

	sink := diag.New(os.Stderr)

	hadAssemblyErrors := false
	for _, base := range bases {
		base = strings.TrimSuffix(base, ".as")
		Logger.Debug("assembling", "file", base+".as")

		stats, err := assemble.File(base, sink)
		if err != nil {
			var fatal *emit.FatalError
			if errors.As(err, &fatal) {
				Logger.Error("fatal error", "path", fatal.Path, "err", fatal.Err.Error())
				os.Exit(exitFatal)
			}
			Logger.Error(err.Error())
			os.Exit(exitFatal)
		}

		if stats.Errors > 0 {
			hadAssemblyErrors = true
			Logger.Debug("assembly failed", "file", base+".as", "errors", stats.Errors, "warnings", stats.Warnings)
			continue
		}
		Logger.Debug("assembly succeeded", "file", base+".as", "warnings", stats.Warnings)
	}

	if hadAssemblyErrors {
		os.Exit(exitAssemblyErrors)
	}
	os.Exit(exitOK)
}
