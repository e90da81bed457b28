// Package qscript implements the QScript execution engine. A script is a
// sequence of lines, one command per line:
//   - `QREG n` and `CREG n` allocate the quantum and classical registers.
//   - `H`, `X`, `Y`, `Z`, `CNOT`, `TOFFOLI`, and `SWAP` apply gates by index.
//   - `MEASURE q c` and `MEASURE_N q c n` collapse the quantum register and
//     record a result in the classical register.
//   - `PRINT c` and `PRINT_STATE` write to the engine's output.
//   - `LOOP n` ... `ENDLOOP` repeats a block; `IF c v` ... `ENDIF` skips a
//     block unless classical slot c holds v.
//
// Blank lines and lines beginning with `#` are ignored but still count as
// lines. Every failure halts the run and is reported as a *ScriptError.
package qscript
