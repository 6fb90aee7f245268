package config

import (
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/winregi/pkg/errors"
)

// ToMap renders the configuration with its koanf key names. Durations are
// rendered as strings so the output can be fed back as a user file.
func (c *Config) ToMap() map[string]interface{} {
	interpreters := make(map[string]interface{}, len(c.Interpreters))
	names := make([]string, 0, len(c.Interpreters))
	for goos := range c.Interpreters {
		names = append(names, goos)
	}
	sort.Strings(names)
	for _, goos := range names {
		in := c.Interpreters[goos]
		interpreters[goos] = map[string]interface{}{
			"shell":      in.Shell,
			"script":     in.Script,
			"detached":   in.Detached,
			"script_ext": in.ScriptExt,
		}
	}

	return map[string]interface{}{
		"tempdir": c.TempDir,
		"execution": map[string]interface{}{
			"shell_timeout":    c.Execution.ShellTimeout.String(),
			"script_timeout":   c.Execution.ScriptTimeout.String(),
			"wait_delay":       c.Execution.WaitDelay.String(),
			"max_output_bytes": c.Execution.MaxOutputBytes,
		},
		"interpreters": interpreters,
		"validation": map[string]interface{}{
			"extra_deny_patterns": nonNil(c.Validation.ExtraDenyPatterns),
		},
		"privilege": map[string]interface{}{
			"extra_keywords": nonNil(c.Privilege.ExtraKeywords),
		},
		"store": map[string]interface{}{
			"file": c.Store.File,
		},
		"catalog": map[string]interface{}{
			"file": c.Catalog.File,
		},
	}
}

// Render encodes the configuration as "toml" or "yaml".
func (c *Config) Render(format string) ([]byte, error) {
	switch format {
	case "", "toml":
		out, err := toml.Marshal(c.ToMap())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as toml")
		}
		return out, nil
	case "yaml", "yml":
		out, err := yaml.Marshal(c.ToMap())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as yaml")
		}
		return out, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
