// Package engine is the single entry point for running an action.
//
// Every call goes through the same steps: validate the text for its backend,
// check whether it needs an elevated caller, run the backend, and report the
// outcome as an ExecutionResult. The engine keeps no mutable state between
// calls; concurrent calls only share whatever the store serialises.
package engine

import (
	"context"
	"time"

	"github.com/arthur-debert/winregi/pkg/backends"
	"github.com/arthur-debert/winregi/pkg/config"
	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/privilege"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/report"
	"github.com/arthur-debert/winregi/pkg/tempfiles"
	"github.com/arthur-debert/winregi/pkg/types"
	"github.com/arthur-debert/winregi/pkg/validate"
)

// Engine validates, gates and dispatches actions to their backends.
type Engine struct {
	validator *validate.Validator
	policy    *privilege.Policy
	backends  backends.Set
}

// New builds an engine from cfg, writing registry mutations to store.
func New(cfg *config.Config, store regstore.Store, temp tempfiles.Provider) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if temp == nil {
		temp = tempfiles.NewOS(cfg.TempDirOrDefault())
	}
	return NewWithBackends(
		validate.New(cfg.Validation.ExtraDenyPatterns...),
		privilege.New(cfg.Privilege.ExtraKeywords...),
		backends.NewSet(cfg, store, temp),
	)
}

// NewWithBackends assembles an engine from explicit parts.
func NewWithBackends(v *validate.Validator, p *privilege.Policy, set backends.Set) *Engine {
	return &Engine{validator: v, policy: p, backends: set}
}

// Validate pre-checks text for backend without running anything.
func (e *Engine) Validate(backend types.Backend, text string) types.ValidationResult {
	return e.validator.Validate(backend, text)
}

// CheckPrivilege reports whether running text on backend needs elevation.
func (e *Engine) CheckPrivilege(backend types.Backend, text string) types.PrivilegeRequirement {
	return e.policy.Check(backend, text)
}

// Execute runs desc. elevated states whether the caller holds administrative
// rights; timeoutSeconds bounds the shell and script backends, with
// non-positive values selecting their configured defaults. Execute never
// panics and never returns an error: every outcome is an ExecutionResult.
func (e *Engine) Execute(ctx context.Context, desc types.ActionDescriptor, elevated bool, timeoutSeconds int) types.ExecutionResult {
	logger := logging.ForAction("engine", desc.Backend.String(), desc.RawText).With().
		Bool("elevated", elevated).
		Logger()

	return report.Guard(desc.Backend, func() types.ExecutionResult {
		executor, ok := e.backends[desc.Backend]
		if !ok {
			return report.FromError(desc.Backend,
				errors.Newf(errors.ErrUnknownBackend, "unknown backend %q", desc.Backend))
		}

		if err := e.validator.Check(desc.Backend, desc.RawText); err != nil {
			logger.Info().Err(err).Msg("Validation failed")
			return report.FromError(desc.Backend, err)
		}

		if req := e.policy.Check(desc.Backend, desc.RawText); req.Required && !elevated {
			logger.Info().Str("reason", req.Reason).Msg("Elevation required")
			return report.PrivilegeRequired(desc.Backend, req)
		}

		done := logging.LogOperationStart(logger, "execute")
		output, err := executor.Execute(ctx, desc.RawText, time.Duration(timeoutSeconds)*time.Second)
		done()

		result := report.FromOutcome(desc.Backend, output, err)
		if err != nil {
			logger.Info().Err(err).Str("code", string(result.Code)).Msg("Action failed")
		} else {
			logger.Debug().Msg("Action succeeded")
		}
		return result
	})
}
