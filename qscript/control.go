package qscript

import "strings"

// loopFrame records the LOOP line a block returns to and how many passes
// remain, counting the one in progress.
type loopFrame struct {
	start     int
	remaining int
}

// enterLoop pushes the frame for a LOOP at index ip.
func enterLoop(stack []loopFrame, ip, count int) []loopFrame {
	return append(stack, loopFrame{start: ip, remaining: count})
}

// loopBack resolves an ENDLOOP at index ip. It pops the innermost frame and
// either re-pushes it and returns the LOOP index (the caller's increment then
// lands on the first body line) or leaves it popped and returns ip. A count of
// zero or less still runs the body once.
func loopBack(stack []loopFrame, ip int) ([]loopFrame, int, bool) {
	if len(stack) == 0 {
		return stack, ip, false
	}
	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	top.remaining--
	if top.remaining > 0 {
		return append(stack, top), top.start, true
	}
	return stack, ip, true
}

// skipToEndIf scans forward from index from to the first line whose text
// starts with ENDIF, or to len(lines) when there is none. Nested IF blocks are
// not tracked: the scan stops at the first ENDIF it sees.
func skipToEndIf(lines []Line, from int) int {
	i := from
	for i < len(lines) && !strings.HasPrefix(lines[i].Text, "ENDIF") {
		i++
	}
	return i
}
