package config

import (
	"os"
	"runtime"
	"time"

	"github.com/arthur-debert/winregi/pkg/errors"
)

// DefaultInterpreterKey is the interpreters entry used when the running
// platform has no entry of its own.
const DefaultInterpreterKey = "default"

type Config struct {
	Execution    Execution              `koanf:"execution"`
	Interpreters map[string]Interpreter `koanf:"interpreters"`
	Validation   Validation             `koanf:"validation"`
	Privilege    Privilege              `koanf:"privilege"`
	Store        Store                  `koanf:"store"`
	Catalog      Catalog                `koanf:"catalog"`
	TempDir      string                 `koanf:"tempdir"`
}

// Execution bounds subprocess backends.
type Execution struct {
	ShellTimeout   time.Duration `koanf:"shell_timeout"`
	ScriptTimeout  time.Duration `koanf:"script_timeout"`
	WaitDelay      time.Duration `koanf:"wait_delay"`
	MaxOutputBytes int64         `koanf:"max_output_bytes"`
}

// Interpreter holds the argv prefixes used to launch commands. The command
// text (or script path) is appended as the final argument.
type Interpreter struct {
	Shell     []string `koanf:"shell"`
	Script    []string `koanf:"script"`
	Detached  []string `koanf:"detached"`
	ScriptExt string   `koanf:"script_ext"`
}

type Validation struct {
	ExtraDenyPatterns []string `koanf:"extra_deny_patterns"`
}

type Privilege struct {
	ExtraKeywords []string `koanf:"extra_keywords"`
}

type Store struct {
	// File is the backing document of the file store used where no native
	// registry exists. Empty selects the XDG data location.
	File string `koanf:"file"`
}

// Catalog locates the action catalog used by the run, list and show commands.
type Catalog struct {
	File string `koanf:"file"`
}

// Interpreter returns the interpreter for the running platform.
func (c *Config) Interpreter() Interpreter {
	return c.InterpreterFor(runtime.GOOS)
}

// InterpreterFor returns the interpreter configured for goos, falling back to
// the default entry.
func (c *Config) InterpreterFor(goos string) Interpreter {
	if in, ok := c.Interpreters[goos]; ok {
		return in
	}
	return c.Interpreters[DefaultInterpreterKey]
}

// TempDirOrDefault returns the configured temp directory or the OS default.
func (c *Config) TempDirOrDefault() string {
	if c.TempDir != "" {
		return c.TempDir
	}
	return os.TempDir()
}

// Validate checks the decoded configuration for values the engine cannot run
// with.
func (c *Config) Validate() error {
	if c.Execution.ShellTimeout <= 0 {
		return errors.Newf(errors.ErrConfigParse, "execution.shell_timeout must be positive, got %s", c.Execution.ShellTimeout)
	}
	if c.Execution.ScriptTimeout <= 0 {
		return errors.Newf(errors.ErrConfigParse, "execution.script_timeout must be positive, got %s", c.Execution.ScriptTimeout)
	}
	if c.Execution.WaitDelay < 0 {
		return errors.Newf(errors.ErrConfigParse, "execution.wait_delay must not be negative, got %s", c.Execution.WaitDelay)
	}
	if c.Execution.MaxOutputBytes <= 0 {
		return errors.Newf(errors.ErrConfigParse, "execution.max_output_bytes must be positive, got %d", c.Execution.MaxOutputBytes)
	}
	if _, ok := c.Interpreters[DefaultInterpreterKey]; !ok {
		return errors.New(errors.ErrConfigParse, "interpreters.default is required")
	}
	for goos, in := range c.Interpreters {
		if len(in.Shell) == 0 || len(in.Script) == 0 || len(in.Detached) == 0 {
			return errors.Newf(errors.ErrConfigParse, "interpreters.%s must define all argv prefixes", goos).
				WithDetail("goos", goos)
		}
	}
	return nil
}
