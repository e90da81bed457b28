package qscript

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// codeFrame renders a failing line with its command underlined:
//
//	  --> line 5, column 3
//	 5 | MEASURE 4 0
//	   | ^^^^^^^
func codeFrame(line Line) string {
	if line.Number <= 0 || line.IsBlank() {
		return ""
	}
	label := strconv.Itoa(line.Number)
	gutter := strings.Repeat(" ", len(label))
	marker := strings.Repeat("^", max(utf8.RuneCountInString(line.Command()), 1))

	var b strings.Builder
	b.WriteString("  --> line " + label + ", column " + strconv.Itoa(max(line.Column, 1)) + "\n")
	b.WriteString(" " + label + " | " + line.Text + "\n")
	b.WriteString(" " + gutter + " | " + marker)
	return b.String()
}
