package qscript

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// constSource always returns the same draw.
type constSource float64

func (s constSource) Float64() float64 {
	return float64(s)
}

// seqSource replays draws in order and then repeats the last one.
type seqSource struct {
	values []float64
	next   int
}

func (s *seqSource) Float64() float64 {
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

func newTestEngine(t *testing.T, src float64) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	engine, err := NewEngine(Config{Output: &out, Random: constSource(src)})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, &out
}

func runScript(t *testing.T, source string) string {
	t.Helper()
	engine, out := newTestEngine(t, 0.5)
	if err := engine.Execute(context.Background(), source); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	return out.String()
}

func runScriptError(t *testing.T, source string) (*ScriptError, string) {
	t.Helper()
	engine, out := newTestEngine(t, 0.5)
	err := engine.Execute(context.Background(), source)
	if err == nil {
		t.Fatalf("expected error, got output %q", out.String())
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected *ScriptError, got %T: %v", err, err)
	}
	return scriptErr, out.String()
}

func outputLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}
