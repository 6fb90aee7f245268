package backends

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/sysproc"
	"github.com/arthur-debert/winregi/pkg/types"
)

// Detached launches the command text through the platform shell and returns
// once the process has started. Output is not captured.
type Detached struct {
	argv []string
}

// NewDetached returns the detached process backend.
func NewDetached(argv []string) *Detached {
	return &Detached{argv: argv}
}

func (d *Detached) Backend() types.Backend { return types.DetachedProcess }

// Execute starts the process in its own session. The context and timeout do
// not apply: the child is meant to outlive this call.
func (d *Detached) Execute(_ context.Context, text string, _ time.Duration) (string, error) {
	logger := logging.ForAction("backends.detached", types.DetachedProcess.String(), text)
	if len(d.argv) == 0 {
		return "", errors.New(errors.ErrBackendFault, "no launcher configured")
	}

	cmd := sysproc.ShellCommand(d.argv, text)
	sysproc.Detach(cmd)

	logging.LogCommand(logger, cmd.Args)
	if err := cmd.Start(); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackendFault, "failed to launch %s", d.argv[0])
	}
	pid := cmd.Process.Pid
	logger.Info().Int("pid", pid).Msg("Launched detached process")

	go func() {
		err := cmd.Wait()
		logger.Debug().Int("pid", pid).Err(err).Msg("Detached process exited")
	}()

	return fmt.Sprintf("Launched: %s (pid %d)", text, pid), nil
}
