package qscript

import (
	"math"
	"strconv"
	"strings"

	"github.com/mgomes/qscript/quantum"
)

// FormatStateVector renders amplitude pairs as "[(a, b), (c, d)]".
func FormatStateVector(state []quantum.Amplitudes) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, amp := range state {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(FormatAmplitude(amp.Alpha))
		b.WriteString(", ")
		b.WriteString(FormatAmplitude(amp.Beta))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

// FormatAmplitude prints the shortest representation that round-trips,
// always with a fractional part or exponent: 1 prints as "1.0", -0 as "-0.0",
// and magnitudes below 1e-4 switch to exponent form ("1e-05").
func FormatAmplitude(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
