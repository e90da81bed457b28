package qscript

import (
	"math"
	"testing"

	"github.com/mgomes/qscript/quantum"
)

func TestLoopBackRepeatsUntilExhausted(t *testing.T) {
	stack := enterLoop(nil, 2, 3)

	stack, next, ok := loopBack(stack, 4)
	if !ok || next != 2 || len(stack) != 1 || stack[0].remaining != 2 {
		t.Fatalf("first pass: next=%d stack=%+v ok=%v", next, stack, ok)
	}
	stack, next, _ = loopBack(stack, 4)
	if next != 2 || stack[0].remaining != 1 {
		t.Fatalf("second pass: next=%d stack=%+v", next, stack)
	}
	stack, next, _ = loopBack(stack, 4)
	if next != 4 || len(stack) != 0 {
		t.Fatalf("final pass should fall through: next=%d stack=%+v", next, stack)
	}
}

func TestLoopBackEmptyStack(t *testing.T) {
	if _, next, ok := loopBack(nil, 7); ok || next != 7 {
		t.Fatalf("expected underflow, got next=%d ok=%v", next, ok)
	}
}

func TestLoopBackInnermostFirst(t *testing.T) {
	stack := enterLoop(nil, 0, 2)
	stack = enterLoop(stack, 1, 1)
	stack, next, _ := loopBack(stack, 3)
	if next != 3 || len(stack) != 1 || stack[0].start != 0 {
		t.Fatalf("inner loop should be popped: next=%d stack=%+v", next, stack)
	}
}

func TestSkipToEndIf(t *testing.T) {
	program := Compile("IF 0 1\nX 0\n  ENDIF\nY 0\nENDIF")
	lines := program.Lines()
	if got := skipToEndIf(lines, 0); got != 2 {
		t.Fatalf("expected first ENDIF at index 2, got %d", got)
	}
	if got := skipToEndIf(lines, 3); got != 4 {
		t.Fatalf("expected second ENDIF at index 4, got %d", got)
	}
	if got := skipToEndIf(lines[:2], 0); got != 2 {
		t.Fatalf("expected scan to run off the end, got %d", got)
	}
}

func TestFormatAmplitude(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{-1, "-1.0"},
		{1 / math.Sqrt(2), "0.7071067811865475"},
		{0.5, "0.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{2.220446049250313e-16, "2.220446049250313e-16"},
	}
	for _, tc := range cases {
		if got := FormatAmplitude(tc.in); got != tc.want {
			t.Fatalf("FormatAmplitude(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatStateVector(t *testing.T) {
	if got := FormatStateVector(nil); got != "[]" {
		t.Fatalf("empty register: %q", got)
	}
	got := FormatStateVector([]quantum.Amplitudes{{Alpha: 1, Beta: 0}, {Alpha: 0, Beta: 1}})
	if got != "[(1.0, 0.0), (0.0, 1.0)]" {
		t.Fatalf("unexpected rendering %q", got)
	}
}
