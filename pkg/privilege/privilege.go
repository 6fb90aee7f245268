// Package privilege decides whether an action needs an elevated context. The
// decision is a pure function of the backend and the command text.
package privilege

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/types"
)

var defaultKeywords = []string{
	// service control
	"restart-service",
	"stop-service",
	"start-service",
	"set-service",
	"new-service",
	"sc config",
	"sc stop",
	"sc start",
	"net stop",
	"net start",
	// machine-wide registry roots
	"hklm:",
	"hkcr:",
	"hklm\\",
	"hkcr\\",
	"hkey_local_machine",
	"hkey_classes_root",
}

// DefaultKeywords returns a copy of the built-in keyword list.
func DefaultKeywords() []string {
	return append([]string(nil), defaultKeywords...)
}

// Policy evaluates privilege requirements.
type Policy struct {
	keywords []string
}

// New returns a Policy using the built-in keywords extended by extra.
func New(extra ...string) *Policy {
	keywords := DefaultKeywords()
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Policy{keywords: keywords}
}

// Keywords returns the effective keyword list.
func (p *Policy) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// Check returns the privilege requirement of running text on backend.
func (p *Policy) Check(backend types.Backend, text string) types.PrivilegeRequirement {
	switch backend {
	case types.Mutation:
		return checkMutation(text)
	case types.InteractiveShell, types.ScriptFile:
		return p.checkKeywords(text)
	}
	return types.PrivilegeRequirement{}
}

func checkMutation(text string) types.PrivilegeRequirement {
	cmd, err := regpath.ParseCommand(text)
	if err != nil {
		return types.PrivilegeRequirement{}
	}
	if cmd.Path.Root.IsMachineWide() {
		return types.PrivilegeRequirement{
			Required: true,
			Reason:   fmt.Sprintf("%s is a machine-wide root", cmd.Path.Root),
		}
	}
	return types.PrivilegeRequirement{}
}

func (p *Policy) checkKeywords(text string) types.PrivilegeRequirement {
	lower := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	for _, keyword := range p.keywords {
		if strings.Contains(lower, keyword) {
			return types.PrivilegeRequirement{
				Required: true,
				Reason:   fmt.Sprintf("command uses %q", keyword),
			}
		}
	}
	return types.PrivilegeRequirement{}
}
