// Package render prints engine results, validation reports and catalog
// listings as styled terminal output, plain text or JSON.
package render

import (
	"io"

	"github.com/arthur-debert/winregi/pkg/catalog"
	"github.com/arthur-debert/winregi/pkg/types"
)

// ActionRow is a catalog action with its privilege requirement.
type ActionRow struct {
	Action    catalog.Action             `json:"action"`
	Privilege types.PrivilegeRequirement `json:"privilege"`
}

// ValidationReport is the outcome of a pre-check.
type ValidationReport struct {
	Backend    types.Backend              `json:"backend"`
	Validation types.ValidationResult     `json:"validation"`
	Privilege  types.PrivilegeRequirement `json:"privilege"`
}

// Renderer prints command output.
type Renderer interface {
	Result(result types.ExecutionResult) error
	Validation(report ValidationReport) error
	Actions(rows []ActionRow) error
	Action(row ActionRow) error
	Error(err error) error
}

// New returns the renderer for format. FormatAuto must be resolved first;
// it falls back to text.
func New(format Format, w io.Writer) Renderer {
	switch format {
	case FormatJSON:
		return newJSON(w)
	case FormatTerminal:
		return newTerminal(w)
	default:
		return newText(w)
	}
}
