package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestSinkErrorfFormat(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	s.SetFile("prog.as")
	s.Errorf(3, "unknown instruction %q", "foo")
	got := buf.String()
	want := "prog.as:3: error: unknown instruction \"foo\"\n"
	if got != want {
		t.Errorf("Errorf output = %q, want %q", got, want)
	}
	if !s.HasErrors() || s.ErrorCount() != 1 {
		t.Errorf("HasErrors/ErrorCount wrong after one error")
	}
}

func TestSinkWarnfDoesNotCountAsError(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	s.SetFile("prog.as")
	s.Warnf(1, "label with no statement")
	if s.HasErrors() {
		t.Error("a warning alone should not set HasErrors")
	}
	if s.WarningCount() != 1 {
		t.Errorf("WarningCount() = %d, want 1", s.WarningCount())
	}
}

func TestSinkReset(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	s.Errorf(1, "boom")
	s.Reset()
	if s.HasErrors() || s.ErrorCount() != 0 {
		t.Error("Reset should clear error count")
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		tok    string
		want   int
		wantOK bool
	}{
		{"5", 5, true},
		{"-1", -1, true},
		{"+7", 7, true},
		{"", 0, false},
		{"-", 0, false},
		{"5a", 0, false},
		{"a5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInt(tt.tok)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseInt(%q) = (%d, %v), want (%d, %v)", tt.tok, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseStringLiteral(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{`"Hi"`, "Hi", true},
		{`""`, "", true},
		{`"unterminated`, "", false},
		{`no quotes`, "", false},
		{`"`, "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStringLiteral(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseStringLiteral(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestErrorfAccumulatesAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	s.SetFile("a.as")
	s.Errorf(1, "first")
	s.Errorf(2, "second")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 diagnostic lines, got %d: %q", len(lines), buf.String())
	}
	if s.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2", s.ErrorCount())
	}
}
