package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/winregi/internal/version"
	"github.com/arthur-debert/winregi/pkg/catalog"
	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/privilege"
	"github.com/arthur-debert/winregi/pkg/types"
	"github.com/arthur-debert/winregi/pkg/ui/render"
)

func backendCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, b := range types.AllBackends() {
		names = append(names, b.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// actionIDCompletion completes action ids from the catalog named by the
// --catalog flag or the configuration.
func actionIDCompletion(opts *options, catalogPath *string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := newSession(cmd, opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		c, err := s.catalog(*catalogPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var ids []string
		for _, a := range c.List() {
			if strings.HasPrefix(a.ID, toComplete) {
				ids = append(ids, a.ID)
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

func newExecCmd(opts *options) *cobra.Command {
	var (
		backendName string
		timeout     int
		elevatedArg bool
	)

	cmd := &cobra.Command{
		Use:     "exec --backend <name> <text>...",
		Short:   MsgExecShort,
		Long:    MsgExecLong,
		Example: MsgExecExample,
		GroupID: "actions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := types.ParseBackend(backendName)
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			eng, err := s.engine()
			if err != nil {
				return err
			}

			desc := types.ActionDescriptor{Backend: backend, RawText: strings.Join(args, " ")}
			log.Info().Str("backend", backend.String()).Int("timeout", timeout).Msg("Executing action")
			return s.result(eng.Execute(cmd.Context(), desc, elevated(elevatedArg), timeout))
		},
	}

	cmd.Flags().StringVarP(&backendName, "backend", "b", "", MsgFlagBackend)
	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, MsgFlagTimeout)
	cmd.Flags().BoolVar(&elevatedArg, "elevated", false, MsgFlagElevated)
	_ = cmd.MarkFlagRequired("backend")
	_ = cmd.RegisterFlagCompletionFunc("backend", backendCompletion)

	return cmd
}

func newValidateCmd(opts *options) *cobra.Command {
	var backendName string

	cmd := &cobra.Command{
		Use:     "validate --backend <name> <text>...",
		Short:   MsgValidateShort,
		Example: MsgValidateExample,
		GroupID: "actions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := types.ParseBackend(backendName)
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			eng, err := s.engine()
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			report := render.ValidationReport{
				Backend:    backend,
				Validation: eng.Validate(backend, text),
				Privilege:  eng.CheckPrivilege(backend, text),
			}
			if err := s.renderer.Validation(report); err != nil {
				return err
			}
			if !report.Validation.OK {
				return &reportedError{err: report.Validation.Err()}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&backendName, "backend", "b", "", MsgFlagBackend)
	_ = cmd.MarkFlagRequired("backend")
	_ = cmd.RegisterFlagCompletionFunc("backend", backendCompletion)

	return cmd
}

func newRunCmd(opts *options) *cobra.Command {
	var (
		catalogPath string
		timeout     int
		elevatedArg bool
	)

	cmd := &cobra.Command{
		Use:               "run <action-id>",
		Short:             MsgRunShort,
		Example:           MsgRunExample,
		GroupID:           "catalog",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: actionIDCompletion(opts, &catalogPath),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			c, err := s.catalog(catalogPath)
			if err != nil {
				return err
			}
			action, err := c.Get(args[0])
			if err != nil {
				return err
			}
			eng, err := s.engine()
			if err != nil {
				return err
			}

			log.Info().Str("action", action.ID).Str("backend", action.Backend.String()).Msg("Running catalog action")
			return s.result(eng.Execute(cmd.Context(), action.Descriptor(), elevated(elevatedArg), timeout))
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", MsgFlagCatalog)
	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, MsgFlagTimeout)
	cmd.Flags().BoolVar(&elevatedArg, "elevated", false, MsgFlagElevated)

	return cmd
}

// rows pairs actions with the privilege they need.
func rows(policy *privilege.Policy, actions []catalog.Action) []render.ActionRow {
	out := make([]render.ActionRow, 0, len(actions))
	for _, a := range actions {
		out = append(out, render.ActionRow{
			Action:    a,
			Privilege: policy.Check(a.Backend, a.Command),
		})
	}
	return out
}

func newListCmd(opts *options) *cobra.Command {
	var (
		catalogPath string
		category    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Example: MsgRunExample,
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			c, err := s.catalog(catalogPath)
			if err != nil {
				return err
			}

			actions := c.List()
			if category != "" {
				actions = c.InCategory(category)
			}
			policy := privilege.New(s.cfg.Privilege.ExtraKeywords...)
			return s.renderer.Actions(rows(policy, actions))
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", MsgFlagCatalog)
	cmd.Flags().StringVar(&category, "category", "", MsgFlagCategory)

	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:               "show <action-id>",
		Short:             MsgShowShort,
		Example:           MsgRunExample,
		GroupID:           "catalog",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: actionIDCompletion(opts, &catalogPath),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			c, err := s.catalog(catalogPath)
			if err != nil {
				return err
			}
			action, err := c.Get(args[0])
			if err != nil {
				return err
			}
			policy := privilege.New(s.cfg.Privilege.ExtraKeywords...)
			return s.renderer.Action(rows(policy, []catalog.Action{action})[0])
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", MsgFlagCatalog)

	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			data, err := s.cfg.Render(output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "toml", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return errors.Newf(errors.ErrInvalidInput, "unsupported shell %q", args[0])
		},
	}
}
