package qscript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/mgomes/qscript/quantum"
)

// Machine is the state of one script run: the registers, the instruction
// pointer, and the loop stack. Registers persist across calls to Run so a host
// can feed a session one program at a time; control state does not.
type Machine struct {
	out    io.Writer
	logger *log.Logger
	random quantum.Source
	quota  int
	limit  int

	qreg *quantum.QuantumRegister
	creg *quantum.ClassicalRegister

	program *Program
	ip      int
	loops   []loopFrame
	steps   int
}

// Run executes program from its first line until the instruction pointer
// passes the last line or an error halts it.
func (m *Machine) Run(ctx context.Context, program *Program) error {
	m.program = program
	m.ip = 0
	m.loops = m.loops[:0]
	m.steps = 0

	for m.ip < len(program.lines) {
		line := program.lines[m.ip]
		if err := m.step(ctx, line); err != nil {
			return attach(err, line)
		}
		if err := m.exec(line); err != nil {
			return attach(err, line)
		}
		m.ip++
	}
	return nil
}

// Reset drops both registers.
func (m *Machine) Reset() {
	m.qreg = nil
	m.creg = nil
}

// StateVector returns the quantum register's amplitudes, or false when no
// register has been allocated.
func (m *Machine) StateVector() ([]quantum.Amplitudes, bool) {
	if m.qreg == nil {
		return nil, false
	}
	return m.qreg.StateVector(), true
}

// ClassicalBits returns a copy of the classical register, or false when no
// register has been allocated.
func (m *Machine) ClassicalBits() ([]int, bool) {
	if m.creg == nil {
		return nil, false
	}
	return m.creg.Bits(), true
}

func (m *Machine) step(ctx context.Context, line Line) error {
	if line.IsBlank() {
		return nil
	}
	m.steps++
	if m.quota > 0 && m.steps > m.quota {
		return failure(KindStepQuotaExceeded, nil, "%v (%d)", ErrStepQuotaExceeded, m.quota)
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return failure(KindCanceled, ctx.Err(), "run canceled: %v", ctx.Err())
		default:
		}
	}
	return nil
}

func (m *Machine) exec(line Line) error {
	if line.Err != nil {
		return line.Err
	}
	in := line.Instr
	if in.Op == OpNop {
		return nil
	}
	if in.Op.NeedsQuantumRegister() && m.qreg == nil {
		return failure(KindUninitializedRegister, nil, "%s requires a quantum register; no QREG has run", in.Op)
	}
	if in.Op.NeedsClassicalRegister() && m.creg == nil && !collapsesFirst(in.Op) {
		return missingClassical(in.Op)
	}
	m.logger.Debug("exec", "line", line.Number, "op", in.Op, "args", in.Args)

	a := in.Args
	switch in.Op {
	case OpQReg:
		if err := m.checkSize(in.Op, a[0]); err != nil {
			return err
		}
		m.qreg = quantum.NewQuantumRegister(a[0])
		m.logger.Info("allocated quantum register", "qubits", a[0])
		return m.printf("Quantum Register initialized with %d qubits.\n", a[0])
	case OpCReg:
		if err := m.checkSize(in.Op, a[0]); err != nil {
			return err
		}
		m.creg = quantum.NewClassicalRegister(a[0])
		m.logger.Info("allocated classical register", "bits", a[0])
		return m.printf("Classical Register initialized with %d bits.\n", a[0])
	case OpHadamard:
		return rangeError(m.qreg.ApplyHadamard(a[0]))
	case OpPauliX:
		return rangeError(m.qreg.ApplyPauliX(a[0]))
	case OpPauliY:
		return rangeError(m.qreg.ApplyPauliY(a[0]))
	case OpPauliZ:
		return rangeError(m.qreg.ApplyPauliZ(a[0]))
	case OpCNOT:
		return rangeError(m.qreg.ApplyCNOT(a[0], a[1], m.random))
	case OpToffoli:
		return rangeError(m.qreg.ApplyToffoli(a[0], a[1], a[2], m.random))
	case OpSwap:
		return rangeError(m.qreg.ApplySwap(a[0], a[1]))
	case OpMeasure:
		result, err := m.measure(a[0])
		if err != nil {
			return err
		}
		return m.store(in.Op, a[1], result)
	case OpMeasureN:
		return m.measureN(a[0], a[1], a[2])
	case OpPrint:
		value, err := m.creg.Result(a[0])
		if err != nil {
			return rangeError(err)
		}
		return m.printf("Classical Register %d: %d\n", a[0], value)
	case OpPrintState:
		return m.printf("State vector: %s\n", FormatStateVector(m.qreg.StateVector()))
	case OpLoop:
		m.loops = enterLoop(m.loops, m.ip, a[0])
		return nil
	case OpEndLoop:
		loops, next, ok := loopBack(m.loops, m.ip)
		if !ok {
			return failure(KindUnbalancedControlFlow, nil, "ENDLOOP without a matching LOOP")
		}
		m.loops = loops
		m.ip = next
		return nil
	case OpIf:
		value, err := m.creg.Result(a[0])
		if err != nil {
			return rangeError(err)
		}
		if value != a[1] {
			m.ip = skipToEndIf(m.program.lines, m.ip)
			m.logger.Debug("skip", "from", line.Number, "to", m.ip+1)
		}
		return nil
	case OpEndIf:
		return nil
	default:
		return malformed("unhandled command %s", in.Op)
	}
}

// measure collapses the whole register and returns qubit's outcome. The
// register collapses even when qubit is out of range.
func (m *Machine) measure(qubit int) (int, error) {
	results := m.qreg.MeasureAll(m.random)
	if qubit < 0 || qubit >= len(results) {
		return 0, rangeError(fmt.Errorf("%w: qubit %d (register has %d)", quantum.ErrIndexOutOfRange, qubit, len(results)))
	}
	return results[qubit], nil
}

// measureN averages samples full-register measurements of qubit and stores
// the mean rounded half to even.
func (m *Machine) measureN(qubit, slot, samples int) error {
	sum := 0
	for range samples {
		result, err := m.measure(qubit)
		if err != nil {
			return err
		}
		sum += result
	}
	mean := math.RoundToEven(float64(sum) / float64(samples))
	return m.store(OpMeasureN, slot, int(mean))
}

// store writes a measurement result. MEASURE and MEASURE_N reach it after the
// register has collapsed, so a missing CREG is reported here.
func (m *Machine) store(op Op, slot, value int) error {
	if m.creg == nil {
		return missingClassical(op)
	}
	return rangeError(m.creg.Store(slot, value))
}

func (m *Machine) checkSize(op Op, size int) error {
	if size > m.limit {
		return failure(KindRegisterLimitExceeded, nil, "%s %d exceeds the register size limit of %d", op, size, m.limit)
	}
	return nil
}

// collapsesFirst reports whether op measures the quantum register before it
// needs the classical one.
func collapsesFirst(op Op) bool {
	return op == OpMeasure || op == OpMeasureN
}

func missingClassical(op Op) error {
	return failure(KindUninitializedRegister, nil, "%s requires a classical register; no CREG has run", op)
}

func (m *Machine) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(m.out, format, args...); err != nil {
		return failure(KindOutput, err, "write output: %v", err)
	}
	return nil
}

func rangeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, quantum.ErrIndexOutOfRange) {
		return failure(KindIndexOutOfRange, err, "%v", err)
	}
	return err
}
