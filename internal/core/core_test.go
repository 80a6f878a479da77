package core

import "testing"

func TestFindInstruction(t *testing.T) {
	tests := []struct {
		mnemonic string
		wantOK   bool
		opcode   int
		funct    int
		operands int
	}{
		{"mov", true, 0, 0, 2},
		{"stop", true, 15, 0, 0},
		{"jmp", true, 9, 1, 1},
		{"nosuch", false, 0, 0, 0},
	}
	for _, tt := range tests {
		inst, ok := FindInstruction(tt.mnemonic)
		if ok != tt.wantOK {
			t.Fatalf("FindInstruction(%q) ok = %v, want %v", tt.mnemonic, ok, tt.wantOK)
		}
		if !ok {
			continue
		}
		if inst.Opcode != tt.opcode || inst.Funct != tt.funct || inst.Operands != tt.operands {
			t.Errorf("FindInstruction(%q) = %+v, want opcode=%d funct=%d operands=%d",
				tt.mnemonic, inst, tt.opcode, tt.funct, tt.operands)
		}
	}
}

func TestInstructionModeAllowed(t *testing.T) {
	mov, _ := FindInstruction("mov")
	if !mov.SrcModeAllowed(ModeImmediate) {
		t.Error("mov should allow immediate source")
	}
	if mov.DstModeAllowed(ModeImmediate) {
		t.Error("mov should not allow immediate destination")
	}
	jmp, _ := FindInstruction("jmp")
	if !jmp.DstModeAllowed(ModeRelative) {
		t.Error("jmp should allow relative destination")
	}
	if jmp.DstModeAllowed(ModeImmediate) {
		t.Error("jmp should not allow immediate destination")
	}
}

func TestClassifyRegister(t *testing.T) {
	tests := []struct {
		tok     string
		wantReg int
		wantOK  bool
	}{
		{"r0", 0, true},
		{"r7", 7, true},
		{"r8", 0, false},
		{"R0", 0, false},
		{"r", 0, false},
		{"r12", 0, false},
	}
	for _, tt := range tests {
		reg, ok := ClassifyRegister(tt.tok)
		if ok != tt.wantOK || (ok && reg != tt.wantReg) {
			t.Errorf("ClassifyRegister(%q) = (%d, %v), want (%d, %v)", tt.tok, reg, ok, tt.wantReg, tt.wantOK)
		}
	}
}

func TestClassifyDirective(t *testing.T) {
	tests := map[string]Directive{
		"data":   DirData,
		"string": DirString,
		"entry":  DirEntry,
		"extern": DirExtern,
		"bogus":  DirUnknown,
	}
	for name, want := range tests {
		if got := ClassifyDirective(name); got != want {
			t.Errorf("ClassifyDirective(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestValidateSymbolName(t *testing.T) {
	tests := []struct {
		name string
		want SymbolNameError
	}{
		{"", SymbolEmpty},
		{"L", SymbolOK},
		{"Loop1", SymbolOK},
		{"1Loop", SymbolNotAlphaStart},
		{"Lo-op", SymbolNotAlnumRest},
		{"r3", SymbolReserved},
		{"mov", SymbolReserved},
		{"data", SymbolReserved},
	}

	for _, tt := range tests {
		if got := ValidateSymbolName(tt.name); got != tt.want {
			t.Errorf("ValidateSymbolName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidateSymbolNameBoundary(t *testing.T) {
	exact := make([]byte, MaxSymbolLength)
	exact[0] = 'a'
	for i := 1; i < len(exact); i++ {
		exact[i] = 'b'
	}
	if got := ValidateSymbolName(string(exact)); got != SymbolOK {
		t.Errorf("31-char symbol name should be ok, got %v", got)
	}

	tooLong := make([]byte, MaxSymbolLength+1)
	tooLong[0] = 'a'
	for i := 1; i < len(tooLong); i++ {
		tooLong[i] = 'b'
	}
	if got := ValidateSymbolName(string(tooLong)); got != SymbolTooLong {
		t.Errorf("32-char symbol name should be too_long, got %v", got)
	}
}
