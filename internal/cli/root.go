// Package cli builds the winregi command tree.
package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/winregi/internal/version"
	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/ui/render"
	"github.com/arthur-debert/winregi/pkg/ui/styles"
)

// Exit statuses.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitElevationRequired = 2
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "winregi",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			if opts.stylesPath != "" {
				return styles.LoadStyles(opts.stylesPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.stylesPath, "styles", "", MsgFlagStyles)
	rootCmd.PersistentFlags().StringArrayVarP(&opts.overrides, "set", "s", nil, MsgFlagSet)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "actions",
		Title: "ACTIONS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "catalog",
		Title: "CATALOG:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newExecCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installHelpTopics(rootCmd, opts)

	return rootCmd
}

// Execute runs the command tree against os.Args and returns the exit status.
// Failures that were not already rendered are printed to stderr.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		var reported *reportedError
		if !stderrors.As(err, &reported) {
			_ = render.New(render.FormatText, os.Stderr).Error(err)
		}
	}
	return ExitCode(err)
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsErrorCode(err, errors.ErrPrivilegeRequired):
		return ExitElevationRequired
	default:
		return ExitFailure
	}
}
