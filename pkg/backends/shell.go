package backends

import (
	"context"
	"time"

	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/types"
)

// DefaultShellTimeout applies when neither the caller nor the config sets one.
const DefaultShellTimeout = 30 * time.Second

// Shell runs the command text as a single interpreter invocation, e.g.
// powershell.exe -NoProfile -NonInteractive -ExecutionPolicy Bypass -Command <text>.
type Shell struct {
	argv           []string
	defaultTimeout time.Duration
	opts           ProcessOptions
}

// NewShell returns the interactive shell backend. argv is the interpreter
// prefix; the command text is appended as its final argument.
func NewShell(argv []string, defaultTimeout time.Duration, opts ProcessOptions) *Shell {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultShellTimeout
	}
	return &Shell{argv: argv, defaultTimeout: defaultTimeout, opts: opts}
}

func (s *Shell) Backend() types.Backend { return types.InteractiveShell }

func (s *Shell) Execute(ctx context.Context, text string, timeout time.Duration) (string, error) {
	timeout = resolveTimeout(timeout, s.defaultTimeout)
	logger := logging.ForAction("backends.shell", types.InteractiveShell.String(), text).With().
		Dur("timeout", timeout).
		Logger()

	argv := append(append([]string{}, s.argv...), text)
	return runCaptured(ctx, logger, argv, timeout, s.opts)
}
