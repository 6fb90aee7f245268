package types

import (
	"strings"

	"github.com/arthur-debert/winregi/pkg/errors"
)

// Backend identifies one of the four execution strategies.
type Backend int

const (
	// Mutation writes to or deletes from the registry in-process.
	Mutation Backend = iota + 1
	// InteractiveShell runs the text as one command through an interpreter.
	InteractiveShell
	// ScriptFile writes the text to a temporary script and runs it.
	ScriptFile
	// DetachedProcess launches the text and does not wait for it.
	DetachedProcess
)

// Canonical backend names, matching the command types of the action catalog.
const (
	BackendNameRegistry   = "registry"
	BackendNamePowerShell = "powershell"
	BackendNameBatch      = "batch"
	BackendNameSystem     = "system"
)

var backendNames = map[Backend]string{
	Mutation:         BackendNameRegistry,
	InteractiveShell: BackendNamePowerShell,
	ScriptFile:       BackendNameBatch,
	DetachedProcess:  BackendNameSystem,
}

var backendAliases = map[string]Backend{
	BackendNameRegistry:   Mutation,
	"mutation":            Mutation,
	"reg":                 Mutation,
	BackendNamePowerShell: InteractiveShell,
	"shell":               InteractiveShell,
	"ps":                  InteractiveShell,
	BackendNameBatch:      ScriptFile,
	"script":              ScriptFile,
	BackendNameSystem:     DetachedProcess,
	"detached":            DetachedProcess,
	"program":             DetachedProcess,
}

// AllBackends lists every backend in dispatch order.
func AllBackends() []Backend {
	return []Backend{Mutation, InteractiveShell, ScriptFile, DetachedProcess}
}

// String returns the canonical name of the backend.
func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether b is one of the four known backends.
func (b Backend) Valid() bool {
	_, ok := backendNames[b]
	return ok
}

// ParseBackend maps a canonical name or alias (case-insensitive) to a Backend.
func ParseBackend(name string) (Backend, error) {
	if b, ok := backendAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return 0, errors.Newf(errors.ErrUnknownBackend, "unknown backend %q", name).
		WithDetail("backend", name)
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, errors.Newf(errors.ErrUnknownBackend, "cannot encode backend %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so catalog files can name
// backends directly.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
