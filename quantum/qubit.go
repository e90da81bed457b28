package quantum

import "math"

// Amplitudes is the (alpha, beta) pair of a single qubit, the coefficients on
// |0⟩ and |1⟩ respectively.
type Amplitudes struct {
	Alpha float64
	Beta  float64
}

// Qubit holds two real amplitudes. Gates mutate the receiver in place and do
// not renormalise; Measure is the only operation that snaps the state back to
// a basis vector.
type Qubit struct {
	alpha float64 // |0⟩ amplitude
	beta  float64 // |1⟩ amplitude
}

// NewQubit returns a qubit in the definite state |0⟩.
func NewQubit() Qubit {
	return Qubit{alpha: 1, beta: 0}
}

func (q *Qubit) ApplyHadamard() {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	newAlpha := (q.alpha + q.beta) / math.Sqrt(2)
	newBeta := (q.alpha - q.beta) / math.Sqrt(2)
	q.alpha = newAlpha
	q.beta = newBeta
}

func (q *Qubit) ApplyPauliX() {
	q.alpha, q.beta = q.beta, q.alpha
}

func (q *Qubit) ApplyPauliY() {
	q.alpha, q.beta = -q.beta, q.alpha
}

func (q *Qubit) ApplyPauliZ() {
	q.beta = -q.beta
}

// ApplyCNOT measures control and flips the receiver when the outcome is 1.
// The control collapses whichever way the measurement goes.
func (q *Qubit) ApplyCNOT(control *Qubit, src Source) {
	if control.Measure(src) == 1 {
		q.ApplyPauliX()
	}
}

// ApplyToffoli measures both controls, in order, and flips the receiver only
// when both outcomes are 1.
func (q *Qubit) ApplyToffoli(control1, control2 *Qubit, src Source) {
	m1 := control1.Measure(src)
	m2 := control2.Measure(src)
	if m1 == 1 && m2 == 1 {
		q.ApplyPauliX()
	}
}

func (q *Qubit) ApplySwap(other *Qubit) {
	q.alpha, other.alpha = other.alpha, q.alpha
	q.beta, other.beta = other.beta, q.beta
}

// Measure draws from src and collapses the qubit: |0⟩ with probability
// alpha², |1⟩ otherwise. It returns the observed bit.
func (q *Qubit) Measure(src Source) int {
	probabilityZero := q.alpha * q.alpha
	if src.Float64() < probabilityZero {
		q.alpha = 1
		q.beta = 0
		return 0
	}
	q.alpha = 0
	q.beta = 1
	return 1
}

func (q *Qubit) StateVector() Amplitudes {
	return Amplitudes{Alpha: q.alpha, Beta: q.beta}
}
