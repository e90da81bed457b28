package quantum

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange reports a qubit or bit index outside [0, size).
var ErrIndexOutOfRange = errors.New("index out of range")

// QuantumRegister is a fixed-size arena of qubits. Gate methods take indices
// and delegate to the addressed qubit.
type QuantumRegister struct {
	qubits []Qubit
}

// NewQuantumRegister returns size qubits, all in |0⟩.
func NewQuantumRegister(size int) *QuantumRegister {
	if size < 0 {
		size = 0
	}
	qubits := make([]Qubit, size)
	for i := range qubits {
		qubits[i] = NewQubit()
	}
	return &QuantumRegister{qubits: qubits}
}

func (r *QuantumRegister) Size() int {
	return len(r.qubits)
}

func (r *QuantumRegister) qubit(index int) (*Qubit, error) {
	if index < 0 || index >= len(r.qubits) {
		return nil, fmt.Errorf("%w: qubit %d (register has %d)", ErrIndexOutOfRange, index, len(r.qubits))
	}
	return &r.qubits[index], nil
}

func (r *QuantumRegister) apply(index int, gate func(*Qubit)) error {
	q, err := r.qubit(index)
	if err != nil {
		return err
	}
	gate(q)
	return nil
}

func (r *QuantumRegister) ApplyHadamard(index int) error {
	return r.apply(index, (*Qubit).ApplyHadamard)
}

func (r *QuantumRegister) ApplyPauliX(index int) error {
	return r.apply(index, (*Qubit).ApplyPauliX)
}

func (r *QuantumRegister) ApplyPauliY(index int) error {
	return r.apply(index, (*Qubit).ApplyPauliY)
}

func (r *QuantumRegister) ApplyPauliZ(index int) error {
	return r.apply(index, (*Qubit).ApplyPauliZ)
}

// ApplyCNOT flips target when the collapsed control reads 1.
func (r *QuantumRegister) ApplyCNOT(control, target int, src Source) error {
	c, err := r.qubit(control)
	if err != nil {
		return err
	}
	t, err := r.qubit(target)
	if err != nil {
		return err
	}
	t.ApplyCNOT(c, src)
	return nil
}

func (r *QuantumRegister) ApplyToffoli(control1, control2, target int, src Source) error {
	c1, err := r.qubit(control1)
	if err != nil {
		return err
	}
	c2, err := r.qubit(control2)
	if err != nil {
		return err
	}
	t, err := r.qubit(target)
	if err != nil {
		return err
	}
	t.ApplyToffoli(c1, c2, src)
	return nil
}

func (r *QuantumRegister) ApplySwap(index1, index2 int) error {
	a, err := r.qubit(index1)
	if err != nil {
		return err
	}
	b, err := r.qubit(index2)
	if err != nil {
		return err
	}
	a.ApplySwap(b)
	return nil
}

// MeasureAll collapses every qubit in order and returns the outcomes.
func (r *QuantumRegister) MeasureAll(src Source) []int {
	results := make([]int, len(r.qubits))
	for i := range r.qubits {
		results[i] = r.qubits[i].Measure(src)
	}
	return results
}

func (r *QuantumRegister) StateVector() []Amplitudes {
	out := make([]Amplitudes, len(r.qubits))
	for i := range r.qubits {
		out[i] = r.qubits[i].StateVector()
	}
	return out
}
