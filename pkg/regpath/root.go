package regpath

import (
	"strings"

	"github.com/arthur-debert/winregi/pkg/errors"
)

// Root is one of the five predefined registry keys.
type Root int

const (
	CurrentUser Root = iota + 1
	LocalMachine
	ClassesRoot
	Users
	CurrentConfig
)

type rootAlias struct {
	root  Root
	long  string
	short string
}

var rootAliases = []rootAlias{
	{CurrentUser, "HKEY_CURRENT_USER", "HKCU"},
	{LocalMachine, "HKEY_LOCAL_MACHINE", "HKLM"},
	{ClassesRoot, "HKEY_CLASSES_ROOT", "HKCR"},
	{Users, "HKEY_USERS", "HKU"},
	{CurrentConfig, "HKEY_CURRENT_CONFIG", "HKCC"},
}

// AllRoots returns the predefined roots in a stable order.
func AllRoots() []Root {
	roots := make([]Root, 0, len(rootAliases))
	for _, a := range rootAliases {
		roots = append(roots, a.root)
	}
	return roots
}

// ParseRoot maps a long or short alias to its Root. Matching ignores case and
// a single trailing ':' (PowerShell drive form).
func ParseRoot(alias string) (Root, error) {
	name := strings.TrimSuffix(strings.TrimSpace(alias), ":")
	for _, a := range rootAliases {
		if strings.EqualFold(name, a.long) || strings.EqualFold(name, a.short) {
			return a.root, nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidRoot, "invalid registry root %q", alias).
		WithDetail("root", alias)
}

// String returns the short alias (HKCU, HKLM, ...).
func (r Root) String() string {
	for _, a := range rootAliases {
		if a.root == r {
			return a.short
		}
	}
	return "HK?"
}

// LongName returns the long alias (HKEY_CURRENT_USER, ...).
func (r Root) LongName() string {
	for _, a := range rootAliases {
		if a.root == r {
			return a.long
		}
	}
	return "HKEY_UNKNOWN"
}

// IsMachineWide reports whether writes under r affect every user of the
// machine. Only HKLM and HKCR qualify.
func (r Root) IsMachineWide() bool {
	return r == LocalMachine || r == ClassesRoot
}
