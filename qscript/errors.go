package qscript

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a fatal script failure.
type ErrorKind string

const (
	KindUninitializedRegister ErrorKind = "UninitializedRegister"
	KindIndexOutOfRange       ErrorKind = "IndexOutOfRange"
	KindMalformedCommand      ErrorKind = "MalformedCommand"
	KindUnbalancedControlFlow ErrorKind = "UnbalancedControlFlow"
	KindStepQuotaExceeded     ErrorKind = "StepQuotaExceeded"
	KindRegisterLimitExceeded ErrorKind = "RegisterLimitExceeded"
	KindCanceled              ErrorKind = "Canceled"
	KindOutput                ErrorKind = "OutputError"
)

var (
	ErrUninitializedRegister = errors.New("register not initialized")
	ErrIndexOutOfRange       = errors.New("index out of range")
	ErrMalformedCommand      = errors.New("malformed command")
	ErrUnbalancedControlFlow = errors.New("unbalanced control flow")
	ErrStepQuotaExceeded     = errors.New("step quota exceeded")
	ErrRegisterLimitExceeded = errors.New("register size limit exceeded")
)

var kindSentinels = map[ErrorKind]error{
	KindUninitializedRegister: ErrUninitializedRegister,
	KindIndexOutOfRange:       ErrIndexOutOfRange,
	KindMalformedCommand:      ErrMalformedCommand,
	KindUnbalancedControlFlow: ErrUnbalancedControlFlow,
	KindStepQuotaExceeded:     ErrStepQuotaExceeded,
	KindRegisterLimitExceeded: ErrRegisterLimitExceeded,
}

// ScriptError is the terminal failure of a run. Line is 1-based.
type ScriptError struct {
	Kind      ErrorKind
	Line      int
	Command   string
	Message   string
	CodeFrame string
	cause     error
}

func (e *ScriptError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

// Is matches the sentinel for the error's kind, so callers can write
// errors.Is(err, qscript.ErrIndexOutOfRange).
func (e *ScriptError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// Unwrap exposes the underlying cause, such as quantum.ErrIndexOutOfRange or
// context.Canceled.
func (e *ScriptError) Unwrap() error {
	return e.cause
}

// lineError is a failure that has not yet been attached to a source line.
type lineError struct {
	kind  ErrorKind
	msg   string
	cause error
}

func (e *lineError) Error() string {
	return e.msg
}

func (e *lineError) Unwrap() error {
	return e.cause
}

func malformed(format string, args ...any) error {
	return &lineError{kind: KindMalformedCommand, msg: fmt.Sprintf(format, args...)}
}

func failure(kind ErrorKind, cause error, format string, args ...any) error {
	return &lineError{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// attach binds err to line, producing a *ScriptError with a code frame.
func attach(err error, line Line) error {
	if err == nil {
		return nil
	}
	var scriptErr *ScriptError
	if errors.As(err, &scriptErr) {
		return err
	}
	kind := KindMalformedCommand
	var cause error
	var le *lineError
	if errors.As(err, &le) {
		kind = le.kind
		cause = le.cause
	} else {
		cause = err
	}
	return &ScriptError{
		Kind:      kind,
		Line:      line.Number,
		Command:   line.Command(),
		Message:   err.Error(),
		CodeFrame: codeFrame(line),
		cause:     cause,
	}
}
