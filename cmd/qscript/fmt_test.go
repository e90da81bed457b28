package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatScriptSourceIndentsBlocks(t *testing.T) {
	input := "QREG   2\r\nLOOP 2\nIF 0   1\n# note\nX\t0\nENDIF\nENDLOOP   \n\n\n"
	want := "QREG 2\nLOOP 2\n  IF 0 1\n    # note\n    X 0\n  ENDIF\nENDLOOP\n"
	if got := formatScriptSource(input); got != want {
		t.Fatalf("unexpected format:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatScriptSourceUnbalancedDoesNotGoNegative(t *testing.T) {
	got := formatScriptSource("ENDLOOP\nH 0\n")
	if got != "ENDLOOP\nH 0\n" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestFmtCommandWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.qs")
	if err := os.WriteFile(path, []byte("LOOP 3\nX 0\nENDLOOP"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("LOOP 3"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := fmtCommand([]string{"-check", dir}); err == nil || !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Fatalf("expected check failure, got %v", err)
	}
	if err := fmtCommand([]string{"-w", dir}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	formatted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(formatted) != "LOOP 3\n  X 0\nENDLOOP\n" {
		t.Fatalf("unexpected rewrite %q", formatted)
	}
	untouched, _ := os.ReadFile(other)
	if string(untouched) != "LOOP 3" {
		t.Fatalf("non-script file was modified: %q", untouched)
	}
	if err := fmtCommand([]string{"-check", dir}); err != nil {
		t.Fatalf("expected clean check, got %v", err)
	}
}

func TestFmtCommandRequiresPath(t *testing.T) {
	if err := fmtCommand(nil); err == nil || !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatScriptSourceHonoursAllLineBreaks(t *testing.T) {
	got := formatScriptSource("QREG 1\fLOOP 2\u2028X 0\vENDLOOP")
	want := "QREG 1\nLOOP 2\n  X 0\nENDLOOP\n"
	if got != want {
		t.Fatalf("unexpected format %q, want %q", got, want)
	}
}
