package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/qscript/qscript"
)

var stdin io.Reader = os.Stdin

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "load settings from a YAML file")
	seed := fs.Uint64("seed", 0, "seed measurement randomness for reproducible runs")
	trace := fs.Bool("trace", false, "log every executed instruction to stderr")
	steps := fs.Int("steps", 0, "abort after this many instructions (0 means no limit)")
	scriptsDir := fs.String("scripts", "", "directory searched when prompting for a script name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "trace":
			cfg.Trace = *trace
		case "steps":
			cfg.StepQuota = *steps
		case "scripts":
			cfg.ScriptsDir = *scriptsDir
		}
	})

	var scriptPath string
	if remaining := fs.Args(); len(remaining) > 0 {
		scriptPath = remaining[0]
	} else {
		scriptPath, err = promptScriptPath(cfg.ScriptsDir)
		if err != nil {
			return err
		}
	}

	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	engine, err := qscript.NewEngine(cfg.engineConfig(os.Stdout, os.Stderr))
	if err != nil {
		return err
	}
	if err := engine.Execute(context.Background(), string(input)); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

// promptScriptPath asks for a file name on stdin and resolves it inside dir.
func promptScriptPath(dir string) (string, error) {
	fmt.Print("filename: ")
	reader := bufio.NewReader(stdin)
	name, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read filename: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("qscript run: script path required")
	}
	return filepath.Join(dir, name), nil
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("qscript check: script path required")
	}
	input, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	diags := qscript.Compile(string(input)).Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	for _, diag := range diags {
		fmt.Fprintln(os.Stderr, diag)
	}
	return fmt.Errorf("qscript check: %d malformed line(s)", len(diags))
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] [script]   execute a script (prompts for a name when omitted)")
	fmt.Fprintln(os.Stderr, "  check <script>         report malformed lines without executing")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths...>")
	fmt.Fprintln(os.Stderr, "                         format .qs files")
	fmt.Fprintln(os.Stderr, "  analyze <script>       warn about suspicious control flow")
	fmt.Fprintln(os.Stderr, "  repl                   start an interactive session")
	fmt.Fprintln(os.Stderr, "Run flags:")
	fmt.Fprintln(os.Stderr, "  -config string   YAML settings file")
	fmt.Fprintln(os.Stderr, "  -seed uint       seed measurement randomness")
	fmt.Fprintln(os.Stderr, "  -trace           log every executed instruction")
	fmt.Fprintln(os.Stderr, "  -steps int       abort after this many instructions")
	fmt.Fprintln(os.Stderr, "  -scripts string  directory used when prompting (default \"scripts\")")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
