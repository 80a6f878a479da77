package passone

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rcornwell/asm370/internal/core"
	"github.com/rcornwell/asm370/internal/diag"
	"github.com/rcornwell/asm370/internal/program"
)

func runSource(t *testing.T, source string) (*program.Result, *diag.Sink, string) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf)
	sink.SetFile("t.as")
	res := program.New()
	Run(strings.NewReader(source), sink, res)
	return res, sink, buf.String()
}

func TestPassOneInstallsCodeLabel(t *testing.T) {
	res, sink, diags := runSource(t, "L: stop\n")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags)
	}
	sym, ok := res.Symbols.Lookup("L")
	if !ok {
		t.Fatal("L should be installed")
	}
	if sym.Address() != core.InitialLoadAddr {
		t.Errorf("L address = %d, want %d", sym.Address(), core.InitialLoadAddr)
	}
	if res.Code.Len() != 1 {
		t.Errorf("code len = %d, want 1", res.Code.Len())
	}
}

func TestPassOneDataSymbolsShiftedAfterCode(t *testing.T) {
	res, sink, diags := runSource(t, "stop\nD: .data 5\n")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags)
	}
	sym, ok := res.Symbols.Lookup("D")
	if !ok {
		t.Fatal("D should be installed")
	}
	want := core.InitialLoadAddr + res.Code.Len()
	if sym.Address() != want {
		t.Errorf("D address = %d, want %d (shifted past the 1-word code image)", sym.Address(), want)
	}
}

func TestPassOneDuplicateSymbolReported(t *testing.T) {
	_, sink, _ := runSource(t, "L: stop\nL: stop\n")
	if sink.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1 duplicate-symbol error", sink.ErrorCount())
	}
}

func TestPassOneUnknownInstructionReported(t *testing.T) {
	_, sink, _ := runSource(t, "frobnicate\n")
	if !sink.HasErrors() {
		t.Error("unknown instruction should be reported")
	}
}

func TestPassOneRegisterOperandsProduceNoExtensionWord(t *testing.T) {
	res, sink, diags := runSource(t, "mov r3, r5\n")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags)
	}
	if res.Code.Len() != 1 {
		t.Errorf("code len = %d, want 1 (no extension words for register operands)", res.Code.Len())
	}
}

func TestPassOneImmediateOperandProducesExtensionWord(t *testing.T) {
	res, sink, diags := runSource(t, "mov #5, r1\n")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags)
	}
	if res.Code.Len() != 2 {
		t.Errorf("code len = %d, want 2 (main word + immediate extension)", res.Code.Len())
	}
}

func TestPassOneExternDeclaration(t *testing.T) {
	res, sink, diags := runSource(t, ".extern X\n")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags)
	}
	sym, ok := res.Symbols.Lookup("X")
	if !ok || !sym.External {
		t.Error("X should be installed as external")
	}
}
