package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgomes/qscript/qscript"
)

type lintWarning struct {
	Line    int
	Column  int
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("qscript analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	warnings := analyzeProgram(qscript.Compile(string(input)))
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		column := warning.Column
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s\n", scriptPath, warning.Line, column, warning.Message)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzeProgram walks the program in source order. Register checks follow
// source order too, so a QREG inside a skipped IF still counts as allocated.
func analyzeProgram(program *qscript.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	warn := func(line qscript.Line, format string, args ...any) {
		warnings = append(warnings, lintWarning{Line: line.Number, Column: line.Column, Message: fmt.Sprintf(format, args...)})
	}

	var loops, ifs []qscript.Line
	haveQuantum, haveClassical := false, false

	for _, line := range program.Lines() {
		if line.IsBlank() {
			continue
		}
		if line.Err != nil {
			warn(line, "%v", line.Err)
			continue
		}
		op := line.Instr.Op
		if op.NeedsQuantumRegister() && !haveQuantum {
			warn(line, "%s used before any QREG", op)
		}
		if op.NeedsClassicalRegister() && !haveClassical {
			warn(line, "%s used before any CREG", op)
		}

		switch op {
		case qscript.OpQReg:
			haveQuantum = true
		case qscript.OpCReg:
			haveClassical = true
		case qscript.OpLoop:
			if line.Instr.Args[0] < 1 {
				warn(line, "LOOP %d still runs its body once", line.Instr.Args[0])
			}
			loops = append(loops, line)
		case qscript.OpEndLoop:
			if len(loops) == 0 {
				warn(line, "ENDLOOP without a matching LOOP")
				continue
			}
			loops = loops[:len(loops)-1]
		case qscript.OpIf:
			if len(ifs) > 0 {
				outer := ifs[len(ifs)-1]
				warn(line, "IF nested inside IF on line %d; skipping the outer block stops at the first ENDIF", outer.Number)
			}
			ifs = append(ifs, line)
		case qscript.OpEndIf:
			if len(ifs) == 0 {
				warn(line, "ENDIF without a matching IF")
				continue
			}
			ifs = ifs[:len(ifs)-1]
		}
	}

	for _, line := range loops {
		warn(line, "LOOP is never closed by ENDLOOP")
	}
	for _, line := range ifs {
		warn(line, "IF without ENDIF; a false condition skips the rest of the script")
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Line != warnings[j].Line {
			return warnings[i].Line < warnings[j].Line
		}
		return warnings[i].Column < warnings[j].Column
	})
	return warnings
}
