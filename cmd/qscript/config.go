package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/mgomes/qscript/qscript"
	"github.com/mgomes/qscript/quantum"
)

const defaultScriptsDir = "scripts"

type cliConfig struct {
	ScriptsDir      string  `yaml:"scripts_dir"`
	Seed            *uint64 `yaml:"seed"`
	StepQuota       int     `yaml:"step_quota"`
	MaxRegisterSize int     `yaml:"max_register_size"`
	Trace           bool    `yaml:"trace"`
}

// loadConfig reads path when it is non-empty and fills in defaults.
func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if cfg.ScriptsDir == "" {
		cfg.ScriptsDir = defaultScriptsDir
	}
	if cfg.StepQuota < 0 {
		return cfg, fmt.Errorf("config: step_quota cannot be negative (%d)", cfg.StepQuota)
	}
	if cfg.MaxRegisterSize < 0 {
		return cfg, fmt.Errorf("config: max_register_size cannot be negative (%d)", cfg.MaxRegisterSize)
	}
	return cfg, nil
}

func (c cliConfig) engineConfig(out, logOut io.Writer) qscript.Config {
	logger := log.NewWithOptions(logOut, log.Options{Prefix: "qscript", Level: log.WarnLevel})
	if c.Trace {
		logger.SetLevel(log.DebugLevel)
	}
	cfg := qscript.Config{
		Output:          out,
		Logger:          logger,
		StepQuota:       c.StepQuota,
		MaxRegisterSize: c.MaxRegisterSize,
	}
	if c.Seed != nil {
		cfg.Random = quantum.NewSeededSource(*c.Seed)
	}
	return cfg
}
