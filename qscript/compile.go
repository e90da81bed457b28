package qscript

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Instruction is a parsed command with its integer arguments.
type Instruction struct {
	Op   Op
	Args []int
}

// Line is one source line. Number and Column are 1-based; Column points at
// the first non-blank character. Err holds a parse failure that is raised
// only if the line is executed.
type Line struct {
	Number int
	Column int
	Text   string
	Instr  Instruction
	Err    error
}

// Command returns the leading token of the line, or "" for blank and comment
// lines.
func (l Line) Command() string {
	if l.IsBlank() {
		return ""
	}
	fields := strings.Fields(l.Text)
	return fields[0]
}

// IsBlank reports whether the line is empty or a comment.
func (l Line) IsBlank() bool {
	return l.Text == "" || strings.HasPrefix(l.Text, "#")
}

// Program is a compiled script.
type Program struct {
	lines []Line
}

// Compile parses every line of source. It never fails: malformed lines keep
// their error and surface it when reached, so a bad line inside a skipped IF
// block does not abort the run. Use Diagnostics to validate up front.
func Compile(source string) *Program {
	raw := SplitLines(source)
	lines := make([]Line, len(raw))
	for i, text := range raw {
		lines[i] = parseLine(i+1, text)
	}
	return &Program{lines: lines}
}

// Lines returns the compiled lines in source order.
func (p *Program) Lines() []Line {
	out := make([]Line, len(p.lines))
	copy(out, p.lines)
	return out
}

// Diagnostics returns every deferred parse error as a *ScriptError, in line
// order.
func (p *Program) Diagnostics() []error {
	var errs []error
	for _, line := range p.lines {
		if line.Err != nil {
			errs = append(errs, attach(line.Err, line))
		}
	}
	return errs
}

// SplitLines breaks source into lines. Besides \n, \r and \r\n it treats
// \v, \f, the separators \x1c to \x1e, NEL, and U+2028/U+2029 as line
// ends. A final line end does not open an extra empty line.
func SplitLines(source string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRuneInString(source[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, source[start:i])
		i += size
		if r == '\r' && i < len(source) && source[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func parseLine(number int, raw string) Line {
	line := Line{Number: number, Text: strings.TrimSpace(raw)}
	if idx := strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) }); idx >= 0 {
		line.Column = utf8.RuneCountInString(raw[:idx]) + 1
	}
	if line.IsBlank() {
		line.Instr = Instruction{Op: OpNop}
		return line
	}
	line.Instr, line.Err = parseInstruction(strings.Fields(line.Text))
	return line
}

func parseInstruction(fields []string) (Instruction, error) {
	name := fields[0]
	spec, ok := commands[name]
	if !ok {
		return Instruction{}, malformed("unknown command %q", name)
	}
	args := fields[1:]
	if len(args) != spec.arity {
		return Instruction{}, malformed("%s expects %d argument(s), got %d", name, spec.arity, len(args))
	}
	ints := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Instruction{}, malformed("%s argument %d: %q is not an integer", name, i+1, arg)
		}
		ints[i] = n
	}
	if err := validateArgs(spec.op, ints); err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: spec.op, Args: ints}, nil
}

func validateArgs(op Op, args []int) error {
	switch op {
	case OpQReg, OpCReg:
		if args[0] < 0 {
			return malformed("%s size must be non-negative, got %d", op, args[0])
		}
	case OpMeasureN:
		if args[2] < 1 {
			return malformed("%s sample count must be at least 1, got %d", op, args[2])
		}
	}
	return nil
}
