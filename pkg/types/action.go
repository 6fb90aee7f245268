package types

import "github.com/arthur-debert/winregi/pkg/errors"

// ActionDescriptor is a backend tag plus the raw command text to run.
type ActionDescriptor struct {
	Backend Backend `json:"backend"`
	RawText string  `json:"command"`
}

// ValidationResult is the outcome of the pre-execution syntax and deny-list checks.
type ValidationResult struct {
	OK     bool             `json:"ok"`
	Reason string           `json:"reason,omitempty"`
	Code   errors.ErrorCode `json:"code,omitempty"`
}

// Valid returns a passing ValidationResult.
func Valid() ValidationResult {
	return ValidationResult{OK: true}
}

// Invalid builds a failing ValidationResult from err, keeping its code.
func Invalid(err error) ValidationResult {
	return ValidationResult{
		OK:     false,
		Reason: err.Error(),
		Code:   errors.GetErrorCode(err),
	}
}

// Err returns the failure as a coded error, or nil when the result is ok.
func (v ValidationResult) Err() error {
	if v.OK {
		return nil
	}
	code := v.Code
	if code == "" {
		code = errors.ErrInvalidFormat
	}
	return errors.New(code, v.Reason)
}

// PrivilegeRequirement states whether an action needs an elevated context.
type PrivilegeRequirement struct {
	Required bool   `json:"required"`
	Reason   string `json:"reason,omitempty"`
}

// ExecutionResult is the single result shape returned for every backend.
type ExecutionResult struct {
	Success       bool             `json:"success"`
	Output        string           `json:"output"`
	RequiresAdmin bool             `json:"requires_admin"`
	Code          errors.ErrorCode `json:"code,omitempty"`
	Backend       Backend          `json:"backend,omitempty"`
}
