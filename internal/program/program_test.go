package program

import "testing"

func TestNewIsEmptyAndReady(t *testing.T) {
	res := New()
	if res.Symbols == nil {
		t.Fatal("New() should initialize a symbol table")
	}
	if res.Code.Len() != 0 || res.Data.Len() != 0 {
		t.Errorf("New() code/data should start empty, got code=%d data=%d", res.Code.Len(), res.Data.Len())
	}
	if len(res.Externals.All()) != 0 {
		t.Error("New() externals should start empty")
	}
}
