package backends

import (
	"context"
	"time"

	"github.com/arthur-debert/winregi/pkg/config"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/tempfiles"
	"github.com/arthur-debert/winregi/pkg/types"
)

// Executor runs validated command text for one backend.
//
// Execute returns the text to show the user. On failure the returned output,
// when not empty, is still meant for the user (captured stderr, a timeout
// notice); the error carries the code. A non-positive timeout selects the
// backend default; backends that do not wait ignore it.
type Executor interface {
	Backend() types.Backend
	Execute(ctx context.Context, text string, timeout time.Duration) (string, error)
}

// Set maps each backend to its executor.
type Set map[types.Backend]Executor

// NewSet builds the four executors from cfg for the running platform.
func NewSet(cfg *config.Config, store regstore.Store, temp tempfiles.Provider) Set {
	in := cfg.Interpreter()
	opts := ProcessOptions{
		WaitDelay:      cfg.Execution.WaitDelay,
		MaxOutputBytes: cfg.Execution.MaxOutputBytes,
	}
	return Set{
		types.Mutation:         NewMutation(store),
		types.InteractiveShell: NewShell(in.Shell, cfg.Execution.ShellTimeout, opts),
		types.ScriptFile:       NewScript(in.Script, in.ScriptExt, cfg.Execution.ScriptTimeout, temp, opts),
		types.DetachedProcess:  NewDetached(in.Detached),
	}
}
