// Package validate runs the per-backend pre-execution checks: mutation syntax
// and literal decoding for the registry backend, and a destructive-pattern
// deny list for the shell and script backends.
//
// The deny list is a best-effort guard against obvious accidents. It matches
// substrings of whitespace-normalised, lower-cased text and is trivially
// bypassed by obfuscation; it is not a security boundary.
package validate

import (
	"strings"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regvalue"
	"github.com/arthur-debert/winregi/pkg/types"
)

var defaultDenyPatterns = []string{
	// recursive force-delete
	"rm -rf /",
	"rm -rf ~",
	"rm -rf *",
	"rm -fr /",
	"rm -fr *",
	"rm -r -f /",
	"remove-item -recurse -force c:\\",
	"remove-item -force -recurse c:\\",
	"remove-item c:\\ -recurse",
	"remove-item -path c:\\ -recurse",
	"rd /s /q c:\\",
	"rmdir /s /q c:\\",
	"del /s /q c:\\",
	"del /f /s /q c:\\",
	// volume format
	"format c:",
	"format-volume",
	"clear-disk",
	"initialize-disk",
	"mkfs",
	"diskpart",
	// broad wildcard delete
	"del *.*",
	"del /q *",
	"del /s *",
	"erase *.*",
	"remove-item *",
	"remove-item -recurse *",
}

// DefaultDenyPatterns returns a copy of the built-in deny list.
func DefaultDenyPatterns() []string {
	return append([]string(nil), defaultDenyPatterns...)
}

// Validator checks action text before anything is executed.
type Validator struct {
	denyPatterns []string
}

// New returns a Validator using the built-in deny list extended by extra.
// Extra patterns can only add entries.
func New(extra ...string) *Validator {
	patterns := DefaultDenyPatterns()
	for _, p := range extra {
		if p = normalize(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return &Validator{denyPatterns: patterns}
}

// DenyPatterns returns the effective deny list.
func (v *Validator) DenyPatterns() []string {
	return append([]string(nil), v.denyPatterns...)
}

// Validate reports whether text is acceptable for backend.
func (v *Validator) Validate(backend types.Backend, text string) types.ValidationResult {
	if err := v.Check(backend, text); err != nil {
		return types.Invalid(err)
	}
	return types.Valid()
}

// Check is Validate returning a coded error instead of a result.
func (v *Validator) Check(backend types.Backend, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.Newf(errors.ErrInvalidFormat, "%s command is empty", backend)
	}

	switch backend {
	case types.Mutation:
		return checkMutation(text)
	case types.InteractiveShell, types.ScriptFile:
		return v.checkDenyList(text)
	case types.DetachedProcess:
		return nil
	}
	return errors.Newf(errors.ErrUnknownBackend, "unknown backend %q", backend)
}

func checkMutation(text string) error {
	cmd, err := regpath.ParseCommand(text)
	if err != nil {
		return err
	}
	if cmd.Delete {
		return nil
	}
	_, err = regvalue.Decode(cmd.Literal)
	return err
}

func (v *Validator) checkDenyList(text string) error {
	normalized := normalize(text)
	for _, pattern := range v.denyPatterns {
		if strings.Contains(normalized, pattern) {
			return errors.Newf(errors.ErrUnsafeCommand, "command contains a blocked pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}
	return nil
}

// normalize lower-cases text and collapses whitespace runs to one space.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
