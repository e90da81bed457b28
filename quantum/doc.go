// Package quantum models the per-qubit state used by QScript programs.
//
// Every qubit carries two real amplitudes and evolves independently of its
// neighbours: there is no tensor product, so gates that take control qubits
// (CNOT, Toffoli) measure those controls and act classically on the outcome.
// Registers own their qubits as an indexed arena; callers address qubits by
// position and never hold references across operations.
package quantum
