package backends

import (
	"context"
	"time"

	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/tempfiles"
	"github.com/arthur-debert/winregi/pkg/types"
)

// DefaultScriptTimeout applies when neither the caller nor the config sets one.
const DefaultScriptTimeout = 60 * time.Second

// Script writes the command text to a temp file and runs it through the
// script interpreter. The file is removed on every exit path.
type Script struct {
	argv           []string
	ext            string
	defaultTimeout time.Duration
	temp           tempfiles.Provider
	opts           ProcessOptions
}

// NewScript returns the script file backend. The temp file path is appended
// to argv.
func NewScript(argv []string, ext string, defaultTimeout time.Duration, temp tempfiles.Provider, opts ProcessOptions) *Script {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultScriptTimeout
	}
	if temp == nil {
		temp = tempfiles.NewOS("")
	}
	return &Script{argv: argv, ext: ext, defaultTimeout: defaultTimeout, temp: temp, opts: opts}
}

func (s *Script) Backend() types.Backend { return types.ScriptFile }

func (s *Script) Execute(ctx context.Context, text string, timeout time.Duration) (string, error) {
	timeout = resolveTimeout(timeout, s.defaultTimeout)
	logger := logging.ForAction("backends.script", types.ScriptFile.String(), text).With().
		Dur("timeout", timeout).
		Logger()

	path, err := s.temp.Create(s.ext, []byte(text))
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.temp.Remove(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to remove script file")
		}
	}()
	logger.Debug().Str("path", path).Msg("Wrote script file")

	argv := append(append([]string{}, s.argv...), path)
	return runCaptured(ctx, logger, argv, timeout, s.opts)
}
