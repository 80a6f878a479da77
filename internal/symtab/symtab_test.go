package symtab

import (
	"testing"

	"github.com/rcornwell/asm370/internal/core"
)

func TestInstallAndLookup(t *testing.T) {
	tab := New()
	if !tab.Install("X", 100, false, false, false) {
		t.Fatal("first install of X should succeed")
	}
	sym, ok := tab.Lookup("X")
	if !ok {
		t.Fatal("X should be found")
	}
	if sym.Address() != 100 {
		t.Errorf("X address = %d, want 100", sym.Address())
	}
	if sym.Word.Field(core.FieldARE, core.WidthARE) != core.AreRelocated {
		t.Errorf("internal symbol ARE = %d, want %d", sym.Word.Field(core.FieldARE, core.WidthARE), core.AreRelocated)
	}
}

func TestInstallDuplicateRejected(t *testing.T) {
	tab := New()
	tab.Install("X", 0, true, false, false) // .extern X
	if tab.Install("X", 100, false, false, false) {
		t.Fatal("re-installing X as a label should fail regardless of the existing symbol's flags")
	}
}

func TestExternalSymbolARE(t *testing.T) {
	tab := New()
	tab.Install("X", 0, true, false, false)
	sym, _ := tab.Lookup("X")
	if sym.Word.Field(core.FieldARE, core.WidthARE) != core.AreExternal {
		t.Errorf("external symbol ARE = %d, want %d", sym.Word.Field(core.FieldARE, core.WidthARE), core.AreExternal)
	}
}

func TestMarkEntry(t *testing.T) {
	tab := New()
	tab.Install("L", 5, false, false, true)
	if !tab.MarkEntry("L") {
		t.Fatal("MarkEntry should succeed for existing symbol")
	}
	sym, _ := tab.Lookup("L")
	if !sym.Entry {
		t.Error("L should be marked entry")
	}
	if tab.MarkEntry("nosuch") {
		t.Error("MarkEntry should fail for unknown symbol")
	}
}

func TestShiftDataAddresses(t *testing.T) {
	tab := New()
	tab.Install("L", 0, false, false, true)  // data symbol, tentative address 0
	tab.Install("CODE", 100, false, false, false) // code symbol, untouched by the shift
	tab.ShiftDataAddresses(101)

	data, _ := tab.Lookup("L")
	if data.Address() != 101 {
		t.Errorf("data symbol address after shift = %d, want 101", data.Address())
	}
	if data.Word.Field(core.FieldARE, core.WidthARE) != core.AreRelocated {
		t.Error("shifted data symbol should keep its ARE class")
	}

	code, _ := tab.Lookup("CODE")
	if code.Address() != 100 {
		t.Errorf("code symbol address after shift = %d, want 100 (unchanged)", code.Address())
	}
}

func TestDeclOrderIsInstallOrder(t *testing.T) {
	tab := New()
	tab.Install("C", 0, false, false, false)
	tab.Install("A", 0, false, false, false)
	tab.Install("B", 0, false, false, false)
	order := tab.DeclOrder()
	want := []string{"C", "A", "B"}
	if len(order) != len(want) {
		t.Fatalf("DeclOrder() = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("DeclOrder()[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}
