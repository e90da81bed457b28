package qscript

import (
	"maps"
	"slices"
)

// Op identifies a QScript command.
type Op int

const (
	OpNop Op = iota
	OpQReg
	OpCReg
	OpHadamard
	OpPauliX
	OpPauliY
	OpPauliZ
	OpCNOT
	OpToffoli
	OpSwap
	OpMeasure
	OpMeasureN
	OpPrint
	OpPrintState
	OpLoop
	OpEndLoop
	OpIf
	OpEndIf
)

type opSpec struct {
	op    Op
	arity int
}

var commands = map[string]opSpec{
	"QREG":        {OpQReg, 1},
	"CREG":        {OpCReg, 1},
	"H":           {OpHadamard, 1},
	"X":           {OpPauliX, 1},
	"Y":           {OpPauliY, 1},
	"Z":           {OpPauliZ, 1},
	"CNOT":        {OpCNOT, 2},
	"TOFFOLI":     {OpToffoli, 3},
	"SWAP":        {OpSwap, 2},
	"MEASURE":     {OpMeasure, 2},
	"MEASURE_N":   {OpMeasureN, 3},
	"PRINT":       {OpPrint, 1},
	"PRINT_STATE": {OpPrintState, 0},
	"LOOP":        {OpLoop, 1},
	"ENDLOOP":     {OpEndLoop, 0},
	"IF":          {OpIf, 2},
	"ENDIF":       {OpEndIf, 0},
}

var opNames = func() map[Op]string {
	names := make(map[Op]string, len(commands)+1)
	names[OpNop] = "NOP"
	for name, spec := range commands {
		names[spec.op] = name
	}
	return names
}()

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// Arity reports how many integer arguments the command takes.
func (op Op) Arity() int {
	if spec, ok := commands[op.String()]; ok {
		return spec.arity
	}
	return 0
}

// Commands lists the recognised command keywords in sorted order.
func Commands() []string {
	return slices.Sorted(maps.Keys(commands))
}

// NeedsQuantumRegister reports whether executing op requires a prior QREG.
func (op Op) NeedsQuantumRegister() bool {
	switch op {
	case OpHadamard, OpPauliX, OpPauliY, OpPauliZ, OpCNOT, OpToffoli, OpSwap,
		OpMeasure, OpMeasureN, OpPrintState:
		return true
	default:
		return false
	}
}

// NeedsClassicalRegister reports whether executing op requires a prior CREG.
func (op Op) NeedsClassicalRegister() bool {
	switch op {
	case OpMeasure, OpMeasureN, OpPrint, OpIf:
		return true
	default:
		return false
	}
}
