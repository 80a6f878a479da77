package passtwo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rcornwell/asm370/internal/core"
	"github.com/rcornwell/asm370/internal/diag"
	"github.com/rcornwell/asm370/internal/passone"
	"github.com/rcornwell/asm370/internal/program"
	"github.com/rcornwell/asm370/internal/word"
)

func runBothPasses(t *testing.T, source string, mutate bool) (*program.Result, *diag.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf)
	sink.SetFile("t.as")
	res := program.New()
	passone.Run(strings.NewReader(source), sink, res)
	Run(strings.NewReader(source), sink, res, mutate)
	return res, sink
}

func TestPassTwoPatchesDirectReference(t *testing.T) {
	res, sink := runBothPasses(t, "jmp L\nL: stop\n", true)
	if sink.HasErrors() {
		t.Fatal("unexpected errors")
	}
	patched := res.Code.At(1)
	wantAddr := core.InitialLoadAddr + 2 // L follows the 2-word jmp
	if patched.Field(core.PayloadStart, core.PayloadWidth) != wantAddr {
		t.Errorf("patched word address = %d, want %d", patched.Field(core.PayloadStart, core.PayloadWidth), wantAddr)
	}
}

func TestPassTwoRelativeDisplacementToSelf(t *testing.T) {
	res, sink := runBothPasses(t, "HERE: jmp &HERE\nstop\n", true)
	if sink.HasErrors() {
		t.Fatal("unexpected errors")
	}
	w := res.Code.At(1)
	disp := w.Field(core.PayloadStart, core.PayloadWidth)
	if disp != 0 {
		t.Errorf("self-referential relative displacement = %d, want 0", disp)
	}
}

func TestPassTwoExternalRecordedOnlyForDirect(t *testing.T) {
	res, sink := runBothPasses(t, ".extern X\njmp X\n", true)
	if sink.HasErrors() {
		t.Fatal("unexpected errors")
	}
	refs := res.Externals.All()
	if len(refs) != 1 || refs[0].Name != "X" {
		t.Fatalf("Externals = %v, want one ref to X", refs)
	}
}

func TestPassTwoRelativeToExternalIsError(t *testing.T) {
	_, sink := runBothPasses(t, ".extern X\njmp &X\n", true)
	if !sink.HasErrors() {
		t.Error("relative addressing of an external symbol should be an error")
	}
}

func TestPassTwoMutateFalseLeavesCodeUntouched(t *testing.T) {
	res, sink := runBothPasses(t, "jmp L\nL: stop\n", false)
	_ = sink
	patched := res.Code.At(1)
	if patched != word.Word(0) {
		t.Errorf("code should be left as the placeholder zero word when mutate=false, got %v", patched)
	}
	if len(res.Externals.All()) != 0 {
		t.Error("externals should not be recorded when mutate=false")
	}
}

func TestPassTwoEntryValidation(t *testing.T) {
	_, sink := runBothPasses(t, ".entry MISSING\nstop\n", true)
	if !sink.HasErrors() {
		t.Error(".entry referencing an unknown symbol should be an error")
	}
}

func TestPassTwoEntryOfExternalIsError(t *testing.T) {
	_, sink := runBothPasses(t, ".extern X\n.entry X\n", true)
	if !sink.HasErrors() {
		t.Error(".entry of an external symbol should be an error")
	}
}
