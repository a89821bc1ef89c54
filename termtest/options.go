package termtest

import (
	"fmt"
	"time"

	goconsole "github.com/joeycumines/go-console"
)

// ConsoleOption configures a process-based Console.
type ConsoleOption interface {
	applyConsole(*consoleConfig) error
}

// HarnessOption configures an in-process Harness.
type HarnessOption interface {
	applyHarness(*harnessConfig) error
}

// SharedOption is accepted by both NewConsole and NewHarness.
type SharedOption interface {
	ConsoleOption
	HarnessOption
}

type ptyConfig struct {
	rows           uint16
	cols           uint16
	defaultTimeout time.Duration
}

type consoleConfig struct {
	ptyConfig
	env     []string
	dir     string
	cmdName string
	args    []string
}

type harnessConfig struct {
	ptyConfig
	outputOptions []goconsole.OutputOption
}

type sharedOption func(*ptyConfig) error

func (f sharedOption) applyConsole(c *consoleConfig) error { return f(&c.ptyConfig) }
func (f sharedOption) applyHarness(c *harnessConfig) error { return f(&c.ptyConfig) }

type consoleOption func(*consoleConfig) error

func (f consoleOption) applyConsole(c *consoleConfig) error { return f(c) }

type harnessOption func(*harnessConfig) error

func (f harnessOption) applyHarness(c *harnessConfig) error { return f(c) }

// WithSize sets the PTY dimensions. Default is 24x80.
func WithSize(rows, cols uint16) SharedOption {
	return sharedOption(func(c *ptyConfig) error {
		if rows == 0 || cols == 0 {
			return fmt.Errorf("invalid size %dx%d", rows, cols)
		}
		c.rows = rows
		c.cols = cols
		return nil
	})
}

// WithDefaultTimeout sets the timeout used by Expect when the context has no
// deadline. Default is 30s.
func WithDefaultTimeout(d time.Duration) SharedOption {
	return sharedOption(func(c *ptyConfig) error {
		c.defaultTimeout = d
		return nil
	})
}

// WithEnv appends to the environment of the process.
func WithEnv(env ...string) ConsoleOption {
	return consoleOption(func(c *consoleConfig) error {
		c.env = append(c.env, env...)
		return nil
	})
}

// WithDir sets the working directory of the process.
func WithDir(path string) ConsoleOption {
	return consoleOption(func(c *consoleConfig) error {
		c.dir = path
		return nil
	})
}

// WithCommand sets the process to run. Arguments replace any given before.
func WithCommand(cmdName string, args ...string) ConsoleOption {
	return consoleOption(func(c *consoleConfig) error {
		c.cmdName = cmdName
		c.args = args
		return nil
	})
}

// WithOutputOptions configures the Output the harness displays questions
// on, after the defaults.
func WithOutputOptions(opts ...goconsole.OutputOption) HarnessOption {
	return harnessOption(func(c *harnessConfig) error {
		c.outputOptions = append(c.outputOptions, opts...)
		return nil
	})
}

func defaultPTYConfig() ptyConfig {
	return ptyConfig{rows: 24, cols: 80, defaultTimeout: 30 * time.Second}
}

func resolveConsoleOptions(opts []ConsoleOption) (*consoleConfig, error) {
	cfg := &consoleConfig{ptyConfig: defaultPTYConfig()}
	for _, opt := range opts {
		if err := opt.applyConsole(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply console option: %w", err)
		}
	}
	return cfg, nil
}

func resolveHarnessOptions(opts []HarnessOption) (*harnessConfig, error) {
	cfg := &harnessConfig{ptyConfig: defaultPTYConfig()}
	for _, opt := range opts {
		if err := opt.applyHarness(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply harness option: %w", err)
		}
	}
	return cfg, nil
}
