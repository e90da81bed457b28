package qscript

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mgomes/qscript/quantum"
)

// Config controls where an engine writes and how it draws randomness.
type Config struct {
	// Output receives QREG/CREG banners and PRINT/PRINT_STATE lines.
	// Defaults to os.Stdout.
	Output io.Writer
	// Random drives measurement. Defaults to an entropy-seeded source.
	Random quantum.Source
	// Logger receives per-instruction tracing at debug level. Defaults to a
	// logger that discards everything.
	Logger *log.Logger
	// StepQuota caps the number of executed instructions per run. Zero means
	// no limit.
	StepQuota int
	// MaxRegisterSize caps the size QREG and CREG may allocate. Defaults to
	// DefaultMaxRegisterSize.
	MaxRegisterSize int
}

// DefaultMaxRegisterSize bounds register allocation when Config leaves it
// unset.
const DefaultMaxRegisterSize = 1 << 20

// Engine executes QScript programs. It is safe for concurrent use; every run
// gets its own Machine.
type Engine struct {
	config Config
	random quantum.Source
}

// NewEngine constructs an Engine, filling in defaults for unset fields.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("qscript: step quota cannot be negative (%d)", cfg.StepQuota)
	}
	if cfg.MaxRegisterSize < 0 {
		return nil, fmt.Errorf("qscript: max register size cannot be negative (%d)", cfg.MaxRegisterSize)
	}
	if cfg.MaxRegisterSize == 0 {
		cfg.MaxRegisterSize = DefaultMaxRegisterSize
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Random == nil {
		src, err := quantum.NewEntropySource()
		if err != nil {
			return nil, fmt.Errorf("qscript: %w", err)
		}
		cfg.Random = src
	}
	return &Engine{config: cfg, random: quantum.NewLockedSource(cfg.Random)}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// NewMachine returns an execution context with no registers allocated.
func (e *Engine) NewMachine() *Machine {
	return &Machine{
		out:    e.config.Output,
		logger: e.config.Logger,
		random: e.random,
		quota:  e.config.StepQuota,
		limit:  e.config.MaxRegisterSize,
	}
}

// Execute compiles source and runs it on a fresh machine.
func (e *Engine) Execute(ctx context.Context, source string) error {
	return e.NewMachine().Run(ctx, Compile(source))
}

// ConfigSummary provides a human-readable description of the engine limits.
func (e *Engine) ConfigSummary() string {
	quota := "unlimited"
	if e.config.StepQuota > 0 {
		quota = fmt.Sprintf("%d", e.config.StepQuota)
	}
	return fmt.Sprintf("steps=%s registers=%d log_level=%s", quota, e.config.MaxRegisterSize, e.config.Logger.GetLevel())
}
