package regpath

import (
	"strings"

	"github.com/arthur-debert/winregi/pkg/errors"
)

const (
	setOperator    = "="
	deleteOperator = "-"
)

// Command is a parsed mutation: either set Path to Literal, or delete Path.
type Command struct {
	Path    ResolvedPath
	Delete  bool
	Literal string
}

// ParseCommand parses "path=literal" or "path-". Malformed commands fail with
// ErrInvalidFormat; an unknown root is reported as ErrInvalidFormat wrapping
// the ErrInvalidRoot cause. The literal is returned undecoded.
func ParseCommand(raw string) (Command, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Command{}, errors.New(errors.ErrInvalidFormat, "registry command is empty")
	}

	var (
		pathText string
		cmd      Command
	)
	if path, literal, found := strings.Cut(text, setOperator); found {
		pathText = path
		cmd.Literal = literal
	} else if strings.HasSuffix(text, deleteOperator) {
		pathText = strings.TrimSuffix(text, deleteOperator)
		cmd.Delete = true
	} else {
		return Command{}, errors.Newf(errors.ErrInvalidFormat,
			"invalid registry command %q: expected path=value or path-", raw)
	}

	if !strings.Contains(strings.TrimSpace(pathText), Separator) {
		return Command{}, errors.Newf(errors.ErrInvalidFormat,
			"invalid registry path %q: expected ROOT\\Key...", pathText)
	}

	resolved, err := Resolve(pathText)
	if err != nil {
		return Command{}, errors.Wrapf(err, errors.ErrInvalidFormat,
			"registry path must start with a valid hive (HKCU, HKLM, HKCR, HKU, HKCC)")
	}
	if len(resolved.Segments) == 0 && !resolved.HasValueName() {
		return Command{}, errors.Newf(errors.ErrInvalidFormat,
			"invalid registry path %q: no key or value named", pathText)
	}

	cmd.Path = resolved
	return cmd, nil
}

// SetTarget splits the command path into the key to open and the value to
// write. An explicit ":Value" wins; otherwise the last segment names the value
// and its parent is the key.
func (c Command) SetTarget() (key ResolvedPath, valueName string) {
	if c.Path.HasValueName() {
		return c.Path.Key(), c.Path.Value()
	}
	parent, _ := c.Path.Parent()
	return parent, c.Path.Leaf()
}
