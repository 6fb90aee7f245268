package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/winregi/pkg/catalog"
	"github.com/arthur-debert/winregi/pkg/config"
	"github.com/arthur-debert/winregi/pkg/elevation"
	"github.com/arthur-debert/winregi/pkg/engine"
	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/types"
	"github.com/arthur-debert/winregi/pkg/ui/render"
)

// options are the persistent flags shared by every command.
type options struct {
	verbosity  int
	configPath string
	format     string
	stylesPath string
	overrides  []string
}

// session is the per-invocation state built from the persistent flags.
type session struct {
	cfg      *config.Config
	renderer render.Renderer
}

func newSession(cmd *cobra.Command, opts *options) (*session, error) {
	format, err := resolveFormat(opts.format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	overrides, err := config.ParseOverrides(opts.overrides)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadWithOverrides(opts.configPath, overrides)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
	}
	return &session{
		cfg:      cfg,
		renderer: render.New(format, cmd.OutOrStdout()),
	}, nil
}

// resolveFormat turns the --format flag into a concrete format. Auto only
// probes the terminal when w is a file.
func resolveFormat(flag string, w io.Writer) (render.Format, error) {
	format, err := render.ParseFormat(flag)
	if err != nil {
		return format, err
	}
	if f, ok := w.(*os.File); ok {
		return format.Resolve(f), nil
	}
	if format == render.FormatAuto {
		return render.FormatText, nil
	}
	return format, nil
}

func (s *session) engine() (*engine.Engine, error) {
	store, err := regstore.Default(s.cfg.Store.File)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreUnavailable, MsgErrOpenStore).
			WithDetail("path", s.cfg.Store.File)
	}
	return engine.New(s.cfg, store, nil), nil
}

func (s *session) catalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = s.cfg.Catalog.File
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadCatalog)
	}
	log.Debug().Str("path", path).Int("actions", c.Len()).Msg("Catalog loaded")
	return c, nil
}

// elevated reports the caller's elevation, honouring the --elevated override.
func elevated(override bool) bool {
	if override {
		return true
	}
	return elevation.IsElevated()
}

// result renders an execution result and turns a failure into an error that
// only carries the exit status.
func (s *session) result(result types.ExecutionResult) error {
	if err := s.renderer.Result(result); err != nil {
		return err
	}
	if result.Success {
		return nil
	}
	code := result.Code
	if result.RequiresAdmin {
		code = errors.ErrPrivilegeRequired
	}
	return &reportedError{err: errors.New(code, result.Output)}
}

// reportedError marks a failure whose details were already rendered.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }
