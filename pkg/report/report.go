// Package report turns backend outcomes into the single ExecutionResult shape.
// Nothing a backend does, including panicking, escapes as anything else.
package report

import (
	"fmt"
	"runtime/debug"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/types"
)

// Success reports a completed action.
func Success(backend types.Backend, output string) types.ExecutionResult {
	return types.ExecutionResult{
		Success: true,
		Output:  output,
		Backend: backend,
	}
}

// FromOutcome reports what an executor returned. A nil err is a success.
// On failure the executor's output is preferred over the error text when
// present.
func FromOutcome(backend types.Backend, output string, err error) types.ExecutionResult {
	if err == nil {
		return Success(backend, output)
	}
	result := FromError(backend, err)
	if output != "" {
		result.Output = output
	}
	return result
}

// FromError reports a failure. Coded errors keep their code; anything else is
// a BackendFault. PrivilegeRequired sets RequiresAdmin.
func FromError(backend types.Backend, err error) types.ExecutionResult {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		code = errors.ErrBackendFault
	}
	return types.ExecutionResult{
		Success:       false,
		Output:        err.Error(),
		RequiresAdmin: code == errors.ErrPrivilegeRequired,
		Code:          code,
		Backend:       backend,
	}
}

// PrivilegeRequired reports an action refused because the caller is not
// elevated.
func PrivilegeRequired(backend types.Backend, req types.PrivilegeRequirement) types.ExecutionResult {
	reason := req.Reason
	if reason == "" {
		reason = "administrator rights required"
	}
	return types.ExecutionResult{
		Success:       false,
		Output:        "Administrator rights required: " + reason,
		RequiresAdmin: true,
		Code:          errors.ErrPrivilegeRequired,
		Backend:       backend,
	}
}

// Guard runs fn and converts a panic into a BackendFault result.
func Guard(backend types.Backend, fn func() types.ExecutionResult) (result types.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			logger := logging.GetLogger("report")
			logger.Error().
				Str("backend", backend.String()).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Backend panicked")
			result = types.ExecutionResult{
				Success: false,
				Output:  fmt.Sprintf("internal error in %s backend: %v", backend, r),
				Code:    errors.ErrBackendFault,
				Backend: backend,
			}
		}
	}()
	return fn()
}
