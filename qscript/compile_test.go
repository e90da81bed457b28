package qscript

import (
	"errors"
	"slices"
	"testing"
)

func TestCompileParsesEveryLine(t *testing.T) {
	program := Compile("# bell-ish\nQREG 2\n\n  CNOT 0 1\r\nBAD\n")
	lines := program.Lines()
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !lines[0].IsBlank() || !lines[2].IsBlank() {
		t.Fatalf("comment and blank lines should be blank")
	}
	if lines[1].Instr.Op != OpQReg || lines[1].Instr.Args[0] != 2 {
		t.Fatalf("unexpected QREG parse: %+v", lines[1].Instr)
	}
	cnot := lines[3]
	if cnot.Instr.Op != OpCNOT || cnot.Column != 3 || cnot.Command() != "CNOT" {
		t.Fatalf("unexpected CNOT parse: %+v", cnot)
	}
	if lines[4].Err == nil {
		t.Fatalf("expected deferred error on BAD")
	}
}

func TestDiagnostics(t *testing.T) {
	program := Compile("QREG 1\nJUMP 3\nX\nPRINT_STATE")
	diags := program.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	var scriptErr *ScriptError
	if !errors.As(diags[0], &scriptErr) || scriptErr.Line != 2 || scriptErr.Kind != KindMalformedCommand {
		t.Fatalf("unexpected first diagnostic: %v", diags[0])
	}
	if !errors.Is(diags[1], ErrMalformedCommand) {
		t.Fatalf("expected ErrMalformedCommand, got %v", diags[1])
	}
}

func TestOpNamesRoundTrip(t *testing.T) {
	for _, name := range Commands() {
		spec := commands[name]
		if spec.op.String() != name {
			t.Fatalf("%s maps to %s", name, spec.op)
		}
		if spec.op.Arity() != spec.arity {
			t.Fatalf("%s arity mismatch", name)
		}
	}
	if OpNop.String() != "NOP" {
		t.Fatalf("unexpected nop name %q", OpNop.String())
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		source string
		want   []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"a\vb\fc", []string{"a", "b", "c"}},
		{"a\x1cb\x1dc\x1ed", []string{"a", "b", "c", "d"}},
		{"a\u0085b\u2028c\u2029", []string{"a", "b", "c"}},
		{"a\r\n\r\n", []string{"a", ""}},
	}
	for _, tc := range cases {
		got := SplitLines(tc.source)
		if !slices.Equal(got, tc.want) {
			t.Fatalf("SplitLines(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestCodeFrameUnderlinesCommand(t *testing.T) {
	line := parseLine(12, "  MEASURE 4 0")
	want := "  --> line 12, column 3\n 12 | MEASURE 4 0\n    | ^^^^^^^"
	if got := codeFrame(line); got != want {
		t.Fatalf("unexpected frame:\n%s\nwant\n%s", got, want)
	}
	if codeFrame(parseLine(3, "# note")) != "" {
		t.Fatalf("comment lines have no frame")
	}
}
