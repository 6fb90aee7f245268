package backends

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/sysproc"
)

// TimeoutTag prefixes the output of a command killed on timeout.
const TimeoutTag = "timeout:"

// ProcessOptions bound a captured subprocess.
type ProcessOptions struct {
	// WaitDelay bounds pipe draining after the process group is killed.
	WaitDelay time.Duration
	// MaxOutputBytes caps each captured stream.
	MaxOutputBytes int64
}

const defaultMaxOutputBytes = 1 << 20

// runCaptured runs argv to completion or until timeout, capturing stdout and
// stderr separately. On success only stdout is returned. A non-zero exit
// returns both streams merged with ErrCommandFailed; a timeout kills the
// process group and returns a TimeoutTag message with ErrTimeout.
func runCaptured(ctx context.Context, logger zerolog.Logger, argv []string, timeout time.Duration, opts ProcessOptions) (string, error) {
	if len(argv) == 0 {
		return "", errors.New(errors.ErrBackendFault, "no interpreter configured")
	}
	limit := opts.MaxOutputBytes
	if limit <= 0 {
		limit = defaultMaxOutputBytes
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	sysproc.KillGroupOnCancel(cmd)
	cmd.WaitDelay = opts.WaitDelay
	stdout := newLimitWriter(limit)
	stderr := newLimitWriter(limit)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logging.LogCommand(logger, argv)
	done := logging.LogOperationStart(logger, "run")
	err := cmd.Run()
	done()

	return classify(logger, argv[0], err, ctx.Err(), timeout, stdout.String(), stderr.String())
}

// classify turns the result of a finished run into output and a coded error.
// A clean exit wins over a deadline that expired right after it.
func classify(logger zerolog.Logger, name string, err, ctxErr error, timeout time.Duration, stdout, stderr string) (string, error) {
	if err == nil {
		return stdout, nil
	}

	if ctxErr != nil {
		reason := fmt.Sprintf("command did not finish within %s", timeout)
		if stderrors.Is(ctxErr, context.Canceled) {
			reason = "command was cancelled"
		}
		logger.Warn().Dur("timeout", timeout).Msg("Command killed")
		output := TimeoutTag + " " + reason
		if partial := mergeOutput(stdout, stderr); partial != "" {
			output += "\n" + partial
		}
		return output, errors.New(errors.ErrTimeout, reason).WithDetail("timeout", timeout.String())
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		logger.Info().Int("exit_code", code).Msg("Command failed")
		output := mergeOutput(stdout, stderr)
		return output, errors.Newf(errors.ErrCommandFailed, "command exited with status %d", code).
			WithDetail("exit_code", code)
	}

	if stderrors.Is(err, exec.ErrWaitDelay) {
		// exited cleanly; a leftover child kept the pipes open past WaitDelay
		logger.Debug().Msg("Output pipes closed after wait delay")
		return stdout, nil
	}

	return "", errors.Wrapf(err, errors.ErrBackendFault, "failed to run %s", name)
}

// resolveTimeout returns timeout, or fallback when timeout is not positive.
func resolveTimeout(timeout, fallback time.Duration) time.Duration {
	if timeout > 0 {
		return timeout
	}
	return fallback
}
